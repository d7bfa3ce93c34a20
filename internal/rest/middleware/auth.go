package middleware

import (
	"strings"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/logiport/portal/internal/auth"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/types"
)

// AuthenticateMiddleware authenticates requests with a JWT bearer token in
// the Authorization header and stores the resulting actor in the request
// context for downstream handlers
func AuthenticateMiddleware(authProvider auth.Provider, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header", "Authentication is required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "invalid authorization header format", "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authProvider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("failed to validate token",
				"error", err,
				"request_id", types.GetRequestID(c.Request.Context()),
			)
			abortUnauthorized(c, "invalid token", "Invalid token")
			return
		}

		actor := claims.ToActor()
		c.Request = c.Request.WithContext(types.SetActor(c.Request.Context(), actor))

		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.Scope().SetUser(sentry.User{
				ID:       actor.ID,
				Username: actor.Username,
			})
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg, hint string) {
	_ = c.Error(ierr.NewError(msg).
		WithHint(hint).
		Mark(ierr.ErrUnauthorized))
	c.Abort()
}
