package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

type tripRequest struct {
	Type           string                     `json:"type" binding:"required"`
	Name           string                     `json:"name"`
	RecurringDays  []string                   `json:"recurring_days"`
	DeparturePoint string                     `json:"departure_point"`
	ArrivalPoint   string                     `json:"arrival_point"`
	Distance       *float64                   `json:"distance"`
	DepartureDate  string                     `json:"departure_date" binding:"required"`
	DepartureTime  string                     `json:"departure_time"`
	ArrivalDate    string                     `json:"arrival_date"`
	ArrivalTime    string                     `json:"arrival_time"`
	DayCount       *int                       `json:"day_count"`
	PricingMode    string                     `json:"pricing_mode"`
	BuyPrice       string                     `json:"buy_price"`
	SellPrice      string                     `json:"sell_price"`
	Commission     string                     `json:"commission"`
	Adults         int                        `json:"adults"`
	Children       int                        `json:"children"`
	Infants        int                        `json:"infants"`
	PaymentStatus  string                     `json:"payment_status"`
	ClientName     string                     `json:"client_name"`
	ClientPhone    string                     `json:"client_phone"`
	ClientEmail    string                     `json:"client_email"`
	Comments       string                     `json:"comments"`
	Assignments    []service.AssignmentInput  `json:"assignments"`
	Expenses       []service.TripExpenseInput `json:"expenses"`
	Payment        *service.TripPaymentInput  `json:"payment"`
}

func (r tripRequest) toInput() service.TripInput {
	return service.TripInput{
		Type:           r.Type,
		Name:           r.Name,
		RecurringDays:  r.RecurringDays,
		DeparturePoint: r.DeparturePoint,
		ArrivalPoint:   r.ArrivalPoint,
		Distance:       r.Distance,
		DepartureDate:  r.DepartureDate,
		DepartureTime:  r.DepartureTime,
		ArrivalDate:    r.ArrivalDate,
		ArrivalTime:    r.ArrivalTime,
		DayCount:       r.DayCount,
		PricingMode:    r.PricingMode,
		BuyPrice:       r.BuyPrice,
		SellPrice:      r.SellPrice,
		Commission:     r.Commission,
		Adults:         r.Adults,
		Children:       r.Children,
		Infants:        r.Infants,
		PaymentStatus:  r.PaymentStatus,
		ClientName:     r.ClientName,
		ClientPhone:    r.ClientPhone,
		ClientEmail:    r.ClientEmail,
		Comments:       r.Comments,
		Assignments:    r.Assignments,
		Expenses:       r.Expenses,
		Payment:        r.Payment,
	}
}

func (h *Handler) listTrips(c *gin.Context) {
	filter := repository.TripFilter{
		Type:   model.TripType(strings.TrimSpace(c.Query("type"))),
		Status: model.TripStatus(strings.TrimSpace(c.Query("status"))),
		Search: strings.TrimSpace(c.Query("search")),
	}

	if raw := c.Query("date_from"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if raw := c.Query("date_to"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateTo = &parsed
		}
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil && perPage > 0 {
		filter.PerPage = perPage
	}

	trips, total, err := h.tripService.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{
		"trips": trips,
		"total": total,
	}))
}

func (h *Handler) createTrip(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), principal, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(trip))
}

func (h *Handler) getTripDetails(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	details, err := h.tripService.GetDetails(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(details))
}

func (h *Handler) updateTrip(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	trip, err := h.tripService.Update(c.Request.Context(), principal, id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trip))
}

func (h *Handler) deleteTrip(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.tripService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"message": "trip deleted"}))
}

func (h *Handler) changeTripStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	trip, err := h.tripService.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trip))
}

func (h *Handler) checkAvailability(c *gin.Context) {
	var req struct {
		Date      string `json:"date" binding:"required"`
		VehicleID uint   `json:"vehicle_id" binding:"required"`
		DriverID  uint   `json:"driver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.tripService.CheckAvailability(c.Request.Context(), req.Date, req.VehicleID, req.DriverID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) listCalendarTrips(c *gin.Context) {
	events, err := h.tripService.ListCalendarEvents(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	// fullcalendar consumes the event array directly.
	c.JSON(http.StatusOK, events)
}
