package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-service/internal/service"
	"fleet-service/internal/upload"
)

type driverRequest struct {
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	NationalID       string `json:"national_id" binding:"required"`
	BirthDate        string `json:"birth_date" binding:"required"`
	Sex              string `json:"sex" binding:"required"`
	Phone            string `json:"phone" binding:"required"`
	EmergencyPhone   string `json:"emergency_phone"`
	Address          string `json:"address" binding:"required"`
	Email            string `json:"email"`
	LicenseNumber    string `json:"license_number" binding:"required"`
	LicenseExpiresAt string `json:"license_expires_at" binding:"required"`
	HiredAt          string `json:"hired_at" binding:"required"`
	Status           string `json:"status"`
	Notes            string `json:"notes"`
}

func (r driverRequest) toInput() service.DriverInput {
	return service.DriverInput{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		NationalID:       r.NationalID,
		BirthDate:        r.BirthDate,
		Sex:              r.Sex,
		Phone:            r.Phone,
		EmergencyPhone:   r.EmergencyPhone,
		Address:          r.Address,
		Email:            r.Email,
		LicenseNumber:    r.LicenseNumber,
		LicenseExpiresAt: r.LicenseExpiresAt,
		HiredAt:          r.HiredAt,
		Status:           r.Status,
		Notes:            r.Notes,
	}
}

func (h *Handler) listDrivers(c *gin.Context) {
	drivers, err := h.driverService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(drivers))
}

func (h *Handler) createDriver(c *gin.Context) {
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(driver))
}

func (h *Handler) getDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	driver, err := h.driverService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(driver))
}

func (h *Handler) updateDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	driver, err := h.driverService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(driver))
}

func (h *Handler) deleteDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.driverService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"message": "driver deleted"}))
}

func (h *Handler) uploadDriverPhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("photo file missing"))
		return
	}

	relPath, err := h.uploads.Save(header, upload.KindDriverPhoto)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	driver, previous, err := h.driverService.SetPhoto(c.Request.Context(), id, relPath)
	if err != nil {
		h.uploads.Remove(relPath)
		h.handleError(c, err)
		return
	}
	if previous != "" {
		h.uploads.Remove(previous)
	}

	c.JSON(http.StatusOK, successResponse(driver))
}
