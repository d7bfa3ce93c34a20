package v1

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/logiport/portal/internal/api/dto"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/service"
	"github.com/logiport/portal/internal/types"
)

type TradeHandler struct {
	service service.TradeService
	log     *logger.Logger
}

func NewTradeHandler(service service.TradeService, log *logger.Logger) *TradeHandler {
	return &TradeHandler{
		service: service,
		log:     log,
	}
}

// @Summary Record a trade
// @Description Record a trade and email a confirmation to the owner. A failed
// @Description confirmation is reported in warnings; the trade is still stored.
// @Tags Trades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trade body dto.CreateTradeRequest true "Trade"
// @Success 201 {object} dto.CreateTradeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /trades [post]
func (h *TradeHandler) CreateTrade(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	trade, err := h.service.CreateTrade(c.Request.Context(), actor, req)
	if err != nil && !(ierr.IsNotification(err) && trade != nil) {
		c.Error(err)
		return
	}

	resp := &dto.CreateTradeResponse{Trade: trade}
	if err != nil {
		resp.Warnings = append(resp.Warnings, warningMessage(err))
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List my trades
// @Description Trades of the requester, latest trade date first
// @Tags Trades
// @Produce json
// @Security BearerAuth
// @Param filter query types.TradeFilter false "Filter"
// @Success 200 {object} dto.ListTradesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /trades [get]
func (h *TradeHandler) ListTrades(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var filter types.TradeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListTrades(c.Request.Context(), actor, &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func warningMessage(err error) string {
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		return hints[0]
	}
	return err.Error()
}
