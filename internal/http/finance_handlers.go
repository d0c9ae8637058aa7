package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/service"
	"fleet-service/internal/upload"
)

func (h *Handler) getDashboard(c *gin.Context) {
	dashboard, err := h.financeService.Dashboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(dashboard))
}

func (h *Handler) listPayments(c *gin.Context) {
	payments, err := h.financeService.ListPayments(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(payments))
}

func (h *Handler) uploadChequeImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("image file missing"))
		return
	}

	relPath, err := h.uploads.Save(header, upload.KindCheque)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	payment, previous, err := h.financeService.SetChequeImage(c.Request.Context(), id, relPath)
	if err != nil {
		h.uploads.Remove(relPath)
		h.handleError(c, err)
		return
	}
	if previous != "" {
		h.uploads.Remove(previous)
	}

	c.JSON(http.StatusOK, successResponse(payment))
}

func (h *Handler) listExpenses(c *gin.Context) {
	expenses, err := h.expenseService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(expenses))
}

func (h *Handler) createExpense(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req service.ExpenseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(expense))
}

func (h *Handler) getExpense(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(expense))
}

func (h *Handler) updateExpense(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.ExpenseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(expense))
}

func (h *Handler) deleteExpense(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"message": "expense deleted"}))
}

// reportPeriod reads year/month query parameters, defaulting to the
// current month.
func reportPeriod(c *gin.Context) (int, int) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if raw := c.Query("year"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			year = parsed
		}
	}
	if raw := c.Query("month"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			month = parsed
		}
	}
	return year, month
}

func (h *Handler) getMonthlyReport(c *gin.Context) {
	year, month := reportPeriod(c)

	report, err := h.financeService.MonthlyReport(c.Request.Context(), year, month)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(report))
}

func (h *Handler) getVehicleReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	year, month := reportPeriod(c)

	report, err := h.financeService.VehicleReport(c.Request.Context(), id, year, month)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(report))
}
