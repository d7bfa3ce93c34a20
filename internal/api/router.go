package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/logiport/portal/internal/api/v1"
	"github.com/logiport/portal/internal/auth"
	"github.com/logiport/portal/internal/config"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/rbac"
	"github.com/logiport/portal/internal/rest/middleware"
	"github.com/logiport/portal/internal/types"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health    *v1.HealthHandler
	Dashboard *v1.DashboardHandler
	Shipment  *v1.ShipmentHandler
	Trade     *v1.TradeHandler
	Document  *v1.DocumentHandler
	Activity  *v1.ActivityHandler
	User      *v1.UserHandler
}

func NewRouter(
	handlers Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	authProvider auth.Provider,
	rbacService *rbac.RBACService,
) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware(cfg),
		middleware.SentryMiddleware(cfg),
		middleware.SentryRequestTags,
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	permission := middleware.NewPermissionMiddleware(rbacService, logger)

	v1Group := router.Group("/v1")
	v1Group.Use(middleware.AuthenticateMiddleware(authProvider, logger))
	registerV1Routes(v1Group, handlers, permission)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers, pm *middleware.PermissionMiddleware) {
	user := router.Group("/users")
	{
		user.GET("/me", pm.RequirePermission(rbac.EntityUser, rbac.ActionRead), handlers.User.GetUserInfo)
	}

	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/admin", pm.RequirePermission(rbac.EntityDashboard, rbac.ActionReadAdmin), handlers.Dashboard.GetAdminDashboard)
		dashboard.GET("/client", pm.RequirePermission(rbac.EntityDashboard, rbac.ActionReadClient), handlers.Dashboard.GetClientDashboard)
		dashboard.GET("/overview", pm.RequirePermission(rbac.EntityDashboard, rbac.ActionReadOverview), handlers.Dashboard.GetOverview)
	}

	shipments := router.Group("/shipments")
	{
		shipments.POST("", pm.RequirePermission(rbac.EntityShipment, rbac.ActionCreate), handlers.Shipment.CreateShipment)
		shipments.GET("", pm.RequirePermission(rbac.EntityShipment, rbac.ActionRead), handlers.Shipment.ListShipments)
		shipments.GET("/:id", pm.RequirePermission(rbac.EntityShipment, rbac.ActionRead), handlers.Shipment.GetShipment)
		shipments.PUT("/:id", pm.RequirePermission(rbac.EntityShipment, rbac.ActionUpdate), handlers.Shipment.UpdateShipment)
		shipments.DELETE("/:id", pm.RequirePermission(rbac.EntityShipment, rbac.ActionDelete), handlers.Shipment.DeleteShipment)
	}

	trades := router.Group("/trades")
	{
		trades.POST("", pm.RequirePermission(rbac.EntityTrade, rbac.ActionCreate), handlers.Trade.CreateTrade)
		trades.GET("", pm.RequirePermission(rbac.EntityTrade, rbac.ActionRead), handlers.Trade.ListTrades)
	}

	documents := router.Group("/documents")
	{
		documents.POST("", pm.RequirePermission(rbac.EntityDocument, rbac.ActionCreate), handlers.Document.UploadDocument)
		documents.GET("", pm.RequirePermission(rbac.EntityDocument, rbac.ActionRead), handlers.Document.ListDocuments)
		documents.DELETE("/:id", pm.RequirePermission(rbac.EntityDocument, rbac.ActionDelete), handlers.Document.DeleteDocument)
	}

	activities := router.Group("/activities")
	{
		activities.GET("", pm.RequirePermission(rbac.EntityActivity, rbac.ActionRead), handlers.Activity.ListActivities)
	}
}
