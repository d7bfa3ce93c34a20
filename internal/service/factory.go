package service

import (
	"github.com/logiport/portal/internal/config"
	"github.com/logiport/portal/internal/domain/activitylog"
	"github.com/logiport/portal/internal/domain/document"
	"github.com/logiport/portal/internal/domain/shipment"
	"github.com/logiport/portal/internal/domain/trade"
	"github.com/logiport/portal/internal/domain/user"
	"github.com/logiport/portal/internal/email"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/postgres"
	"github.com/logiport/portal/internal/s3"
	"github.com/logiport/portal/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	S3     s3.Service
	Sentry *sentry.Service
	Email  email.Sender

	// Repositories
	UserRepo        user.Repository
	DocumentRepo    document.Repository
	ShipmentRepo    shipment.Repository
	TradeRepo       trade.Repository
	ActivityLogRepo activitylog.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	s3Service s3.Service,
	sentryService *sentry.Service,
	emailSender email.Sender,
	userRepo user.Repository,
	documentRepo document.Repository,
	shipmentRepo shipment.Repository,
	tradeRepo trade.Repository,
	activityLogRepo activitylog.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:          logger,
		Config:          config,
		DB:              db,
		S3:              s3Service,
		Sentry:          sentryService,
		Email:           emailSender,
		UserRepo:        userRepo,
		DocumentRepo:    documentRepo,
		ShipmentRepo:    shipmentRepo,
		TradeRepo:       tradeRepo,
		ActivityLogRepo: activityLogRepo,
	}
}
