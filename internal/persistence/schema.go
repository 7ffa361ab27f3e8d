package persistence

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// Execer is the subset of a pgx pool needed to apply the schema.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// BootstrapSchema creates the tables used by the service if they do not exist yet.
// The script is idempotent and safe to run on every start.
func BootstrapSchema(ctx context.Context, db Execer, logger *zap.Logger) error {
	if db == nil {
		logger.Warn("no postgres pool available; skipping schema bootstrap")
		return nil
	}

	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	logger.Info("schema bootstrapped")
	return nil
}
