package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/logiport/portal/internal/config"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/postgres"
	"github.com/logiport/portal/migrations"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	files, err := migrations.Postgres()
	if err != nil {
		logger.Fatalw("Failed to read migrations", "error", err)
	}

	if *dryRun {
		logger.Info("Dry run mode - printing migration SQL without executing")
		for _, m := range files {
			fmt.Printf("-- %s\n%s\n", m.Version, m.SQL)
		}
		return
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(100) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		logger.Fatalw("Failed to create schema_migrations table", "error", err)
	}

	logger.Info("Running database migrations...")
	for _, m := range files {
		m := m
		err := db.WithTx(ctx, func(ctx context.Context) error {
			q := db.GetQuerier(ctx)

			var applied bool
			if err := q.GetContext(ctx, &applied,
				`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version); err != nil {
				return err
			}
			if applied {
				logger.Debugw("migration already applied", "version", m.Version)
				return nil
			}

			if _, err := q.ExecContext(ctx, m.SQL); err != nil {
				return err
			}
			_, err := q.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version)
			return err
		})
		if err != nil {
			logger.Fatalw("Failed to apply migration", "version", m.Version, "error", err)
		}
		logger.Infow("Applied migration", "version", m.Version)
	}

	fmt.Println("Migration process completed")
}
