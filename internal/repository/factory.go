package repository

import (
	"github.com/logiport/portal/internal/domain/activitylog"
	"github.com/logiport/portal/internal/domain/document"
	"github.com/logiport/portal/internal/domain/shipment"
	"github.com/logiport/portal/internal/domain/trade"
	"github.com/logiport/portal/internal/domain/user"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/postgres"
	postgresRepo "github.com/logiport/portal/internal/repository/postgres"
)

type RepositoryType string

const (
	PostgresRepo RepositoryType = "postgres"
)

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewShipmentRepository(db *postgres.DB, logger *logger.Logger) shipment.Repository {
	return postgresRepo.NewShipmentRepository(db, logger)
}

func NewDocumentRepository(db *postgres.DB, logger *logger.Logger) document.Repository {
	return postgresRepo.NewDocumentRepository(db, logger)
}

func NewTradeRepository(db *postgres.DB, logger *logger.Logger) trade.Repository {
	return postgresRepo.NewTradeRepository(db, logger)
}

func NewActivityLogRepository(db *postgres.DB, logger *logger.Logger) activitylog.Repository {
	return postgresRepo.NewActivityLogRepository(db, logger)
}
