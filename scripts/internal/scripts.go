package internal

import (
	"fmt"

	"github.com/logiport/portal/internal/config"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/postgres"
)

type scriptEnv struct {
	cfg *config.Configuration
	log *logger.Logger
	db  *postgres.DB
}

func newScriptEnv() (*scriptEnv, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &scriptEnv{cfg: cfg, log: log, db: db}, nil
}
