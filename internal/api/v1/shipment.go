package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logiport/portal/internal/api/dto"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/service"
	"github.com/logiport/portal/internal/types"
)

type ShipmentHandler struct {
	service service.ShipmentService
	log     *logger.Logger
}

func NewShipmentHandler(service service.ShipmentService, log *logger.Logger) *ShipmentHandler {
	return &ShipmentHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a shipment
// @Description Create a shipment; a tracking number is generated when omitted
// @Tags Shipments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shipment body dto.CreateShipmentRequest true "Shipment"
// @Success 201 {object} dto.ShipmentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /shipments [post]
func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateShipment(c.Request.Context(), actor, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a shipment
// @Tags Shipments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /shipments/{id} [get]
func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	resp, err := h.service.GetShipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List shipments
// @Tags Shipments
// @Produce json
// @Security BearerAuth
// @Param filter query types.ShipmentFilter false "Filter"
// @Success 200 {object} dto.ListShipmentsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /shipments [get]
func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	var filter types.ShipmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListShipments(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a shipment
// @Description Update any subset of shipment fields; status may change freely
// @Tags Shipments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Param shipment body dto.UpdateShipmentRequest true "Shipment"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /shipments/{id} [put]
func (h *ShipmentHandler) UpdateShipment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateShipment(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a shipment
// @Tags Shipments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /shipments/{id} [delete]
func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.service.DeleteShipment(c.Request.Context(), actor, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "shipment deleted successfully"})
}
