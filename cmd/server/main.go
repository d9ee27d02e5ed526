package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"

	"github.com/elouannasse/fleet-management/internal/auth"
	"github.com/elouannasse/fleet-management/internal/config"
	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/handlers"
	"github.com/elouannasse/fleet-management/internal/maintenance"
	"github.com/elouannasse/fleet-management/internal/middleware"
	"github.com/elouannasse/fleet-management/internal/reports"
	"github.com/elouannasse/fleet-management/internal/server"
	"github.com/elouannasse/fleet-management/internal/trips"
)

func main() {
	cfg := config.Load()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.JSONFormatter{})

	client, err := db.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Warn("mongo disconnect failed")
		}
	}()

	database := client.Database(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		cancel()
		log.WithError(err).Fatal("failed to create indexes")
	}
	cancel()

	stores := db.NewStores(database)

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	authMW := middleware.NewAuthMiddleware(authService)

	generator := maintenance.NewGenerator(stores.Rules, stores.Vehicles, stores.Alerts)
	tripService := trips.NewService(stores.Trips, stores.Vehicles)
	recordService := maintenance.NewRecordService(stores.Maintenances, stores.Vehicles)
	reportService := reports.NewService(stores.Trucks, stores.Trailers, stores.Trips, stores.Maintenances, stores.Alerts)

	router := server.NewRouter(server.Handlers{
		Auth:         handlers.NewAuthHandler(authService, stores.Users),
		Trucks:       handlers.NewTruckHandler(stores.Trucks),
		Trailers:     handlers.NewTrailerHandler(stores.Trailers),
		Tires:        handlers.NewTireHandler(stores.Tires),
		Rules:        handlers.NewRuleHandler(stores.Rules),
		Alerts:       handlers.NewAlertHandler(stores.Alerts, generator),
		Maintenances: handlers.NewMaintenanceHandler(stores.Maintenances, recordService),
		Trips:        handlers.NewTripHandler(stores.Trips, tripService),
		Users:        handlers.NewUserHandler(stores.Users, authService),
		Reports:      handlers.NewReportHandler(reportService),
	}, authMW, cfg.FrontendURL)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
