package middleware

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/rbac"
	"github.com/logiport/portal/internal/types"
)

// PermissionMiddleware handles RBAC permission checks
type PermissionMiddleware struct {
	rbacService *rbac.RBACService
	logger      *logger.Logger
}

// NewPermissionMiddleware creates a new permission middleware instance
func NewPermissionMiddleware(rbacService *rbac.RBACService, logger *logger.Logger) *PermissionMiddleware {
	return &PermissionMiddleware{
		rbacService: rbacService,
		logger:      logger,
	}
}

// RequirePermission returns a middleware that checks for specific entity.action
// against the role of the authenticated actor
func (pm *PermissionMiddleware) RequirePermission(entity string, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := types.GetActor(c.Request.Context())
		if !ok {
			_ = c.Error(ierr.NewError("no authenticated actor").
				WithHint("Authentication is required").
				Mark(ierr.ErrUnauthorized))
			c.Abort()
			return
		}

		if !pm.rbacService.HasPermission(actor.Role(), entity, action) {
			pm.logger.Infow("permission denied",
				"user_id", actor.ID,
				"role", actor.Role(),
				"entity", entity,
				"action", action,
				"path", c.Request.URL.Path,
			)

			_ = c.Error(ierr.NewErrorf("insufficient permissions to %s %s", action, entity).
				WithHintf("Insufficient permissions to %s %s", action, entity).
				Mark(ierr.ErrPermissionDenied))
			c.Abort()
			return
		}

		c.Next()
	}
}
