package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/service"
	"github.com/logiport/portal/internal/types"
)

type ActivityHandler struct {
	service service.ActivityService
	log     *logger.Logger
}

func NewActivityHandler(service service.ActivityService, log *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		log:     log,
	}
}

// @Summary List activity
// @Description Audit trail, newest first
// @Tags Activity
// @Produce json
// @Security BearerAuth
// @Param filter query types.ActivityLogFilter false "Filter"
// @Success 200 {object} dto.ListActivityLogsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	var filter types.ActivityLogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListActivities(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
