package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/leapstack-labs/salescope/internal/query"
)

// maxConsoleRows caps how many rows the console collects per run.
const maxConsoleRows = 1000

// RunQuery executes the console buffer verbatim against the handle. The
// console is a raw pass-through: no sanitization, single-user trust
// boundary. Each run replaces the whole console state; a success clears any
// prior error and a failure clears any prior result. Rapid re-invocations
// are safe because the last completed run wins wholesale.
func (s *Session) RunQuery(ctx context.Context, sqlText string) {
	trimmed := strings.TrimSpace(sqlText)
	if trimmed == "" {
		s.mutate(func(sf *Surface) {
			sf.Console = ConsoleState{SQL: sqlText, Error: "query cannot be empty"}
		})
		return
	}

	start := time.Now()
	rows, err := s.db.Query(ctx, trimmed)
	if err != nil {
		s.mutate(func(sf *Surface) {
			sf.Console = ConsoleState{SQL: sqlText, Error: err.Error()}
		})
		return
	}

	result, err := query.Collect(rows, maxConsoleRows)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		s.mutate(func(sf *Surface) {
			sf.Console = ConsoleState{SQL: sqlText, Error: err.Error()}
		})
		return
	}

	s.logger.Debug("console query executed",
		"rows", result.RowCount(), "elapsed_ms", elapsed)

	s.mutate(func(sf *Surface) {
		sf.Console = ConsoleState{
			SQL:       sqlText,
			Result:    result,
			ElapsedMS: elapsed,
		}
	})
}

// LastResult returns the most recent successful console result, if any.
func (s *Session) LastResult() *query.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.Console.Result
}
