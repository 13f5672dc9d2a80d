package etl

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gyeh/visitmart/internal/db"
	embedsql "github.com/gyeh/visitmart/internal/sql"
)

// TruncateWarehouse empties the star schema tables. The run log is kept.
func TruncateWarehouse(ctx context.Context, conn db.Conn, log zerolog.Logger) error {
	if _, err := conn.Exec(ctx, embedsql.TruncateWarehouse); err != nil {
		return fmt.Errorf("truncate warehouse: %w", err)
	}
	log.Debug().Msg("warehouse tables truncated")
	return nil
}

// TruncateMart empties the research_operations tables and resets their
// identity sequences.
func TruncateMart(ctx context.Context, conn db.Conn, log zerolog.Logger) error {
	if _, err := conn.Exec(ctx, embedsql.TruncateMart); err != nil {
		return fmt.Errorf("truncate mart: %w", err)
	}
	log.Debug().Msg("mart tables truncated")
	return nil
}
