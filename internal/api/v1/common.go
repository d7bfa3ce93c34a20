package v1

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
)

// requireActor reads the authenticated actor once so it can be passed
// explicitly to the service layer
func requireActor(c *gin.Context) (types.Actor, bool) {
	actor, ok := types.GetActor(c.Request.Context())
	if !ok {
		c.Error(ierr.NewError("no authenticated actor").
			WithHint("Authentication is required").
			Mark(ierr.ErrUnauthorized))
		return types.Actor{}, false
	}
	return actor, true
}
