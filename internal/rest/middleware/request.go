package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/logiport/portal/internal/types"
)

// RequestIDMiddleware propagates the caller's X-Request-ID or assigns a new
// one, stores it in the request context and echoes it on the response
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), types.CtxRequestID, requestID))
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
