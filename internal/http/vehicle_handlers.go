package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-service/internal/service"
	"fleet-service/internal/upload"
)

type vehicleRequest struct {
	PlateNumber         string  `json:"plate_number" binding:"required"`
	Make                string  `json:"make" binding:"required"`
	Model               string  `json:"model" binding:"required"`
	Seats               int     `json:"seats" binding:"required"`
	Fuel                string  `json:"fuel" binding:"required"`
	Odometer            float64 `json:"odometer"`
	Color               string  `json:"color"`
	Power               *int    `json:"power"`
	PurchasePrice       string  `json:"purchase_price"`
	Status              string  `json:"status"`
	ManufactureYear     *int    `json:"manufacture_year"`
	AcquiredAt          string  `json:"acquired_at"`
	InsuranceExpiresAt  string  `json:"insurance_expires_at"`
	InspectionExpiresAt string  `json:"inspection_expires_at"`
	Notes               string  `json:"notes"`
}

func (r vehicleRequest) toInput() service.VehicleInput {
	return service.VehicleInput{
		PlateNumber:         r.PlateNumber,
		Make:                r.Make,
		Model:               r.Model,
		Seats:               r.Seats,
		Fuel:                r.Fuel,
		Odometer:            r.Odometer,
		Color:               r.Color,
		Power:               r.Power,
		PurchasePrice:       r.PurchasePrice,
		Status:              r.Status,
		ManufactureYear:     r.ManufactureYear,
		AcquiredAt:          r.AcquiredAt,
		InsuranceExpiresAt:  r.InsuranceExpiresAt,
		InspectionExpiresAt: r.InspectionExpiresAt,
		Notes:               r.Notes,
	}
}

func (h *Handler) listVehicles(c *gin.Context) {
	vehicles, err := h.vehicleService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(vehicles))
}

func (h *Handler) createVehicle(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(vehicle))
}

func (h *Handler) getVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) updateVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"message": "vehicle deleted"}))
}

func (h *Handler) uploadVehicleImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("image file missing"))
		return
	}

	relPath, err := h.uploads.Save(header, upload.KindVehiclePhoto)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, previous, err := h.vehicleService.SetImage(c.Request.Context(), id, relPath)
	if err != nil {
		h.uploads.Remove(relPath)
		h.handleError(c, err)
		return
	}
	if previous != "" {
		h.uploads.Remove(previous)
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}
