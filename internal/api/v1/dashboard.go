package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logiport/portal/internal/api/dto"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/service"
	"github.com/logiport/portal/internal/types"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get admin dashboard
// @Description Totals, revenue, recent activity and monthly series. Staff only.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /dashboard/admin [get]
func (h *DashboardHandler) GetAdminDashboard(c *gin.Context) {
	h.compose(c, types.RoleAdmin)
}

// @Summary Get client dashboard
// @Description Recent shipments plus the requester's documents and trades
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /dashboard/client [get]
func (h *DashboardHandler) GetClientDashboard(c *gin.Context) {
	h.compose(c, types.RoleClient)
}

func (h *DashboardHandler) compose(c *gin.Context, role types.Role) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	view, err := h.service.Compose(c.Request.Context(), role, actor)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(view))
}

// @Summary Get overview
// @Description Shipment status counts, totals and the latest shipments
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OverviewResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /dashboard/overview [get]
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.service.Overview(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
