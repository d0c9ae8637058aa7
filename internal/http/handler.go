package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
	"fleet-service/internal/upload"
)

type Handler struct {
	authService        *service.AuthService
	userService        *service.UserService
	vehicleService     *service.VehicleService
	driverService      *service.DriverService
	tripService        *service.TripService
	maintenanceService *service.MaintenanceService
	expenseService     *service.ExpenseService
	financeService     *service.FinanceService
	uploads            *upload.Store
	log                zerolog.Logger
}

func NewHandler(
	authService *service.AuthService,
	userService *service.UserService,
	vehicleService *service.VehicleService,
	driverService *service.DriverService,
	tripService *service.TripService,
	maintenanceService *service.MaintenanceService,
	expenseService *service.ExpenseService,
	financeService *service.FinanceService,
	uploads *upload.Store,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		authService:        authService,
		userService:        userService,
		vehicleService:     vehicleService,
		driverService:      driverService,
		tripService:        tripService,
		maintenanceService: maintenanceService,
		expenseService:     expenseService,
		financeService:     financeService,
		uploads:            uploads,
		log:                log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.POST("/auth/login", h.login)

	protected := r.Group("/")
	protected.Use(authMiddleware)

	auth := protected.Group("/auth")
	{
		auth.GET("/profile", h.getProfile)
		auth.PUT("/profile", h.updateProfile)
	}

	users := protected.Group("/users")
	users.Use(middleware.RequireRole(model.RoleAdmin))
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
		users.PUT("/:id/reset-password", h.resetUserPassword)
	}

	vehicles := protected.Group("/vehicles")
	{
		vehicles.GET("", h.listVehicles)
		vehicles.POST("", h.createVehicle)
		vehicles.GET("/:id", h.getVehicle)
		vehicles.PUT("/:id", h.updateVehicle)
		vehicles.DELETE("/:id", h.deleteVehicle)
		vehicles.POST("/:id/image", h.uploadVehicleImage)
		vehicles.GET("/:id/maintenances", h.listVehicleMaintenances)
	}

	drivers := protected.Group("/drivers")
	{
		drivers.GET("", h.listDrivers)
		drivers.POST("", h.createDriver)
		drivers.GET("/:id", h.getDriver)
		drivers.PUT("/:id", h.updateDriver)
		drivers.DELETE("/:id", h.deleteDriver)
		drivers.POST("/:id/photo", h.uploadDriverPhoto)
	}

	trips := protected.Group("/trips")
	{
		trips.GET("", h.listTrips)
		trips.POST("", h.createTrip)
		trips.POST("/check-availability", h.checkAvailability)
		trips.GET("/:id", h.getTripDetails)
		trips.PUT("/:id", h.updateTrip)
		trips.DELETE("/:id", h.deleteTrip)
		trips.PUT("/:id/status", h.changeTripStatus)
	}

	maintenance := protected.Group("/maintenance")
	{
		maintenance.GET("", h.listMaintenances)
		maintenance.POST("", h.createMaintenance)
		maintenance.GET("/notifications", h.listNotifications)
		maintenance.PUT("/notifications/:id/read", h.markNotificationRead)
		maintenance.GET("/:id", h.getMaintenance)
		maintenance.PUT("/:id", h.updateMaintenance)
		maintenance.DELETE("/:id", h.deleteMaintenance)
		maintenance.POST("/:id/invoice", h.uploadMaintenanceInvoice)
	}

	finances := protected.Group("/finances")
	{
		finances.GET("/dashboard", h.getDashboard)
		finances.GET("/payments", h.listPayments)
		finances.POST("/payments/:id/cheque-image", h.uploadChequeImage)
		finances.GET("/expenses", h.listExpenses)
		finances.POST("/expenses", h.createExpense)
		finances.GET("/expenses/:id", h.getExpense)
		finances.PUT("/expenses/:id", h.updateExpense)
		finances.DELETE("/expenses/:id", h.deleteExpense)
		finances.GET("/reports", h.getMonthlyReport)
		finances.GET("/reports/vehicles/:id", h.getVehicleReport)
	}

	protected.GET("/calendar/trips", h.listCalendarTrips)
}

func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, errorResponse("invalid id"))
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrInUse):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrAccountDisabled):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
