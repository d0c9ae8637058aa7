package main

import (
	"context"
	"fmt"
	"os"

	"fleet-service/internal/auth"
	"fleet-service/internal/config"
	"fleet-service/internal/db"
	httphandler "fleet-service/internal/http"
	"fleet-service/internal/http/middleware"
	"fleet-service/internal/logger"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
	"fleet-service/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	userRepo := repository.NewUserRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	driverRepo := repository.NewDriverRepository(database)
	tripRepo := repository.NewTripRepository(database)
	assignmentRepo := repository.NewAssignmentRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	expenseRepo := repository.NewExpenseRepository(database)
	maintenanceRepo := repository.NewMaintenanceRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	financeRepo := repository.NewFinanceRepository(database)

	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	authService := service.NewAuthService(userRepo, tokenIssuer)
	userService := service.NewUserService(userRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, assignmentRepo)
	driverService := service.NewDriverService(driverRepo, assignmentRepo)
	tripService := service.NewTripService(tripRepo, assignmentRepo, paymentRepo)
	maintenanceService := service.NewMaintenanceService(vehicleRepo, maintenanceRepo, notificationRepo)
	expenseService := service.NewExpenseService(expenseRepo, vehicleRepo)
	financeService := service.NewFinanceService(financeRepo, paymentRepo, expenseRepo, vehicleRepo)

	if err := authService.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to seed admin account")
	}

	uploads := upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)

	handler := httphandler.NewHandler(
		authService,
		userService,
		vehicleService,
		driverService,
		tripService,
		maintenanceService,
		expenseService,
		financeService,
		uploads,
		appLogger,
	)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.Upload.MaxBytes)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting fleet service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
