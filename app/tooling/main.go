// Package main implements the tasklane-admin CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jharlan/tasklane/infrastructure/postgresdb"
	"github.com/jharlan/tasklane/schema"
	"github.com/jharlan/tasklane/sdk/environment"
	"github.com/jharlan/tasklane/sdk/logger"
	"github.com/spf13/cobra"
)

const appName = "TASKLANE"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tasklane-admin",
	Short: "Administrative tooling for the tasklane database",
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load development seed data",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

func openPool(log *logger.Logger) (*pgxpool.Pool, error) {
	environment.Load()
	return postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	log := logger.NewDefault()

	pool, err := openPool(log)
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	if err := postgresdb.StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("database status check: %w", err)
	}

	log.InfoContext(ctx, "running migrations")
	if err := schema.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.InfoContext(ctx, "migrations completed successfully")
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	log := logger.NewDefault()

	pool, err := openPool(log)
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	log.InfoContext(ctx, "seeding database")
	if err := schema.Seed(ctx, pool); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	log.InfoContext(ctx, "seeding completed successfully")
	return nil
}
