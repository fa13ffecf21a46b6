package dashboard

import (
	"context"
	_ "embed"
	"fmt"
	"os"
)

//go:embed seed/superstore.sql
var sampleSeedSQL string

// loadSeed executes the seed script against the fresh database. A
// configured path takes precedence over the bundled sample. Errors are
// reported to the caller, which treats them as non-fatal.
func (s *Session) loadSeed(ctx context.Context) error {
	script := sampleSeedSQL
	source := "bundled sample"

	if s.cfg.SeedPath != "" {
		content, err := os.ReadFile(s.cfg.SeedPath)
		if err != nil {
			return fmt.Errorf("failed to read seed script %s: %w", s.cfg.SeedPath, err)
		}
		script = string(content)
		source = s.cfg.SeedPath
	}

	s.logger.Debug("loading seed script", "source", source)

	if err := s.db.Exec(ctx, script); err != nil {
		return fmt.Errorf("failed to execute seed script: %w", err)
	}

	return nil
}
