// Package schema embeds the SQL migrations and development seed data.
package schema

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jharlan/tasklane/infrastructure/postgresdb"
)

//go:embed pgmigrations/*.sql
var migrationsFS embed.FS

//go:embed seed.sql
var seedSQL string

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return postgresdb.Migrate(ctx, pool, migrationsFS, "pgmigrations")
}

// Seed loads development fixture data. The seed document uses fixed ids
// and ON CONFLICT DO NOTHING, so rerunning it is safe.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, seedSQL); err != nil {
		return fmt.Errorf("exec seed: %w", err)
	}

	return tx.Commit(ctx)
}
