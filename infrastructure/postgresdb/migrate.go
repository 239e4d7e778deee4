package postgresdb

import (
	"context"
	"crypto/sha256"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate runs all pending migrations from the embedded filesystem.
// Migrations are applied in alphabetical order (numeric prefixes:
// 001_xxx.sql, 002_xxx.sql). Applied migrations are tracked in the
// schema_migrations table. Forward-only, no rollbacks.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrationsFS embed.FS, dir string) error {
	if err := StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	if err := createMigrationsTable(ctx, pool); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	files, err := migrationFiles(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("list migration files: %w", err)
	}

	for _, file := range files {
		if err := applyMigration(ctx, pool, migrationsFS, dir, file); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}

	return nil
}

func createMigrationsTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			checksum VARCHAR(64) NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`
	_, err := pool.Exec(ctx, query)
	return err
}

func migrationFiles(migrationsFS embed.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	return files, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, migrationsFS embed.FS, dir, file string) error {
	content, err := migrationsFS.ReadFile(path.Join(dir, file))
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	version := strings.TrimSuffix(file, ".sql")
	checksum := fmt.Sprintf("%x", sha256.Sum256(content))

	var applied string
	err = pool.QueryRow(ctx,
		`SELECT checksum FROM schema_migrations WHERE version = $1`, version).Scan(&applied)
	switch {
	case err == nil:
		if applied != checksum {
			return fmt.Errorf("checksum mismatch for applied migration %s", version)
		}
		return nil
	case !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("check version: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)`, version, checksum); err != nil {
		return fmt.Errorf("record version: %w", err)
	}

	return tx.Commit(ctx)
}
