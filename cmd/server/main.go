package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpapi "rentalops-backend/internal/api/http"
	"rentalops-backend/internal/config"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/security"
	"rentalops-backend/internal/service"
	"rentalops-backend/internal/store"
	"rentalops-backend/internal/store/firestore"
	"rentalops-backend/internal/store/memory"
	"rentalops-backend/internal/store/postgres"
	"rentalops-backend/internal/workflow"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting rental operations backend",
		"store_driver", cfg.Store.Driver,
		"address", cfg.GetServerAddress())

	st, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to open record store", "driver", cfg.Store.Driver, "error", err)
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer st.Close()

	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	emailSvc := service.NewEmailService(cfg.Email)
	orchestrator := workflow.NewOrchestrator(st, emailSvc)

	router := httpapi.NewRouter(httpapi.Services{
		Customers:    service.NewCustomerService(st),
		Categories:   service.NewVehicleCategoryService(st),
		Vehicles:     service.NewVehicleService(st),
		Reservations: service.NewReservationService(st),
		Rentals:      service.NewRentalService(st),
		Invoices:     service.NewInvoiceService(st),
		Payments:     service.NewPaymentService(st, emailSvc),
		Maintenance:  service.NewMaintenanceService(st),
		Users:        service.NewUserService(st),
		Dashboard:    service.NewDashboardService(st),
		Orchestrator: orchestrator,
		Tokens:       tokenManager,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return postgres.Open(cfg.GetPostgresConnectionString())
	case "firestore":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return firestore.Open(ctx, cfg.Store.Firestore.ProjectID, cfg.Store.Firestore.CredentialsFile)
	default:
		logger.Warn("Using in-memory store, data will not survive a restart")
		return memory.New(), nil
	}
}
