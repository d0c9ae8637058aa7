package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/service"
	"fleet-service/internal/upload"
)

type maintenanceRequest struct {
	VehicleID        uint     `json:"vehicle_id" binding:"required"`
	ServiceType      string   `json:"service_type" binding:"required"`
	Cost             string   `json:"cost" binding:"required"`
	ServiceDate      string   `json:"service_date" binding:"required"`
	Odometer         float64  `json:"odometer"`
	NextDueOdometer  float64  `json:"next_due_odometer" binding:"required"`
	Description      string   `json:"description"`
	Provider         string   `json:"provider"`
	InvoiceReference string   `json:"invoice_reference"`
	Parts            []string `json:"parts"`
}

func (r maintenanceRequest) toInput() service.MaintenanceInput {
	return service.MaintenanceInput{
		VehicleID:        r.VehicleID,
		ServiceType:      r.ServiceType,
		Cost:             r.Cost,
		ServiceDate:      r.ServiceDate,
		Odometer:         r.Odometer,
		NextDueOdometer:  r.NextDueOdometer,
		Description:      r.Description,
		Provider:         r.Provider,
		InvoiceReference: r.InvoiceReference,
		Parts:            r.Parts,
	}
}

// listMaintenances refreshes due notifications before answering, so the
// maintenance screen always reflects current odometer readings.
func (h *Handler) listMaintenances(c *gin.Context) {
	if err := h.maintenanceService.RefreshNotifications(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}

	maintenances, err := h.maintenanceService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(maintenances))
}

func (h *Handler) createMaintenance(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	maintenance, err := h.maintenanceService.Create(c.Request.Context(), principal, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(maintenance))
}

func (h *Handler) getMaintenance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	maintenance, err := h.maintenanceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(maintenance))
}

func (h *Handler) updateMaintenance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	maintenance, err := h.maintenanceService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(maintenance))
}

func (h *Handler) deleteMaintenance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.maintenanceService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"message": "maintenance deleted"}))
}

func (h *Handler) listVehicleMaintenances(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	maintenances, err := h.maintenanceService.ListByVehicle(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(maintenances))
}

func (h *Handler) uploadMaintenanceInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("invoice")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invoice file missing"))
		return
	}

	relPath, err := h.uploads.Save(header, upload.KindInvoice)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	maintenance, previous, err := h.maintenanceService.SetInvoice(c.Request.Context(), id, relPath)
	if err != nil {
		h.uploads.Remove(relPath)
		h.handleError(c, err)
		return
	}
	if previous != "" {
		h.uploads.Remove(previous)
	}

	c.JSON(http.StatusOK, successResponse(maintenance))
}

func (h *Handler) listNotifications(c *gin.Context) {
	notifications, err := h.maintenanceService.ListUnreadNotifications(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(notifications))
}

func (h *Handler) markNotificationRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.maintenanceService.MarkNotificationRead(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
