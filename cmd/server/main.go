package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/logiport/portal/docs/swagger"
	"github.com/logiport/portal/internal/api"
	v1 "github.com/logiport/portal/internal/api/v1"
	"github.com/logiport/portal/internal/auth"
	"github.com/logiport/portal/internal/cache"
	"github.com/logiport/portal/internal/config"
	"github.com/logiport/portal/internal/email"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/postgres"
	"github.com/logiport/portal/internal/rbac"
	"github.com/logiport/portal/internal/repository"
	"github.com/logiport/portal/internal/s3"
	"github.com/logiport/portal/internal/sentry"
	"github.com/logiport/portal/internal/service"
	"github.com/logiport/portal/internal/validator"
	"go.uber.org/fx"
)

// @title Logiport Portal API
// @version 1.0
// @description Logistics customer portal API
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the token in the format **Bearer &lt;token&gt;**

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Initialize Fx application
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Object storage
			s3.NewService,

			// Email
			email.NewEmailClient,
			email.NewEmail,

			// Auth
			auth.NewProvider,
			rbac.NewRBACService,

			// Repositories
			repository.NewUserRepository,
			repository.NewShipmentRepository,
			repository.NewDocumentRepository,
			repository.NewTradeRepository,
			repository.NewActivityLogRepository,
		),
		// Monitoring
		sentry.Module(),
		// Postgres
		postgres.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewUserService,
			service.NewActivityService,
			service.NewStatisticsService,
			service.NewNotificationService,
			service.NewDashboardService,
			service.NewShipmentService,
			service.NewTradeService,
			service.NewDocumentService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			startAPIServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	db *postgres.DB,
	logger *logger.Logger,
	userService service.UserService,
	dashboardService service.DashboardService,
	shipmentService service.ShipmentService,
	tradeService service.TradeService,
	documentService service.DocumentService,
	activityService service.ActivityService,
) api.Handlers {
	return api.Handlers{
		Health:    v1.NewHealthHandler(db, logger),
		User:      v1.NewUserHandler(userService, logger),
		Dashboard: v1.NewDashboardHandler(dashboardService, logger),
		Shipment:  v1.NewShipmentHandler(shipmentService, logger),
		Trade:     v1.NewTradeHandler(tradeService, logger),
		Document:  v1.NewDocumentHandler(documentService, logger),
		Activity:  v1.NewActivityHandler(activityService, logger),
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	db *postgres.DB,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address, "mode", cfg.Deployment.Mode)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			db.Close()
			return nil
		},
	})
}
