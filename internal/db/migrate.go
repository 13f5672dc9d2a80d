package db

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/visitmart/internal/sql"
)

// ApplyMigrations creates the warehouse and research_operations schemas by
// running the embedded migrations in filename order. Every statement is
// IF NOT EXISTS, so applying twice is a no-op.
func ApplyMigrations(ctx context.Context, conn Conn, log zerolog.Logger) error {
	entries, err := fs.ReadDir(embedsql.Migrations, "migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	applied := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		data, err := fs.ReadFile(embedsql.Migrations, "migrations/"+name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		log.Debug().Str("migration", name).Msg("applying migration")
		if _, err := conn.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("execute migration %s: %w", name, err)
		}
		applied++
	}

	log.Info().Int("count", applied).Msg("schemas up to date")
	return nil
}
