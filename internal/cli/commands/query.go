package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/salescope/internal/config"
	"github.com/leapstack-labs/salescope/internal/dashboard"
	"github.com/leapstack-labs/salescope/internal/query"
	"github.com/spf13/cobra"
)

// maxCLIRows caps how many rows one-shot and REPL queries collect.
const maxCLIRows = 1000

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run ad-hoc SQL against the seeded database",
		Long: `Run ad-hoc SQL against a freshly seeded salescope database.

The session bootstraps exactly as the dashboard does (same engine, same
seed script), then executes the given SQL. Supports multiple output formats
for scripting and integration.

When invoked without arguments, enters interactive REPL mode.`,
		Example: `  # Execute SQL directly
  salescope query "SELECT region, SUM(sales) FROM orders GROUP BY region"

  # List available tables
  salescope query tables

  # Show schema for a table
  salescope query schema orders

  # Output as JSON
  salescope query "SELECT * FROM products" --format json

  # Interactive mode
  salescope query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	// Subcommands
	cmd.AddCommand(newQueryTablesCommand(opts))
	cmd.AddCommand(newQuerySchemaCommand(opts))
	cmd.AddCommand(newQueryYearsCommand(opts))

	return cmd
}

// bootstrapSession creates and bootstraps a session for CLI use.
func bootstrapSession(ctx context.Context) (*dashboard.Session, error) {
	cfg := config.Current()
	session := dashboard.New(sessionConfig(cfg, newLogger(cfg.Verbose)))
	if err := session.Bootstrap(ctx); err != nil {
		_ = session.Close()
		return nil, err
	}
	return session, nil
}

func resolveFormat(opts *QueryOptions) string {
	if opts.Format != "" {
		return opts.Format
	}
	return config.Current().Output
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	// Determine SQL source
	var sqlQuery string

	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(os.Stdin):
		// Read from stdin (piped input)
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		// No input, TTY detected - enter REPL mode
		return runQueryREPL(cmd, opts)
	}

	session, err := bootstrapSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	return executeAndRender(cmd.Context(), cmd.OutOrStdout(), session, sqlQuery, resolveFormat(opts))
}

func executeAndRender(ctx context.Context, w io.Writer, session *dashboard.Session, sqlQuery, format string) error {
	rows, err := session.DB().Query(ctx, strings.TrimSpace(sqlQuery))
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	result, err := query.Collect(rows, maxCLIRows)
	if err != nil {
		return err
	}

	return query.Render(w, result, format)
}

// newQueryTablesCommand creates the tables subcommand.
func newQueryTablesCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables in the seeded database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := bootstrapSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = session.Close() }()

			return listTables(cmd.Context(), cmd.OutOrStdout(), session, resolveFormat(opts))
		},
	}
}

// newQuerySchemaCommand creates the schema subcommand.
func newQuerySchemaCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <table>",
		Short: "Show schema for a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := bootstrapSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = session.Close() }()

			return showSchema(cmd.Context(), cmd.OutOrStdout(), session, args[0], resolveFormat(opts))
		},
	}
}

// newQueryYearsCommand creates the years subcommand.
func newQueryYearsCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List the selectable year filters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := bootstrapSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = session.Close() }()

			for _, year := range session.Surface().Years {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), year)
			}
			return nil
		},
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
