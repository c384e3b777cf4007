package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/config"
	"github.com/elduverx/gruposmCRM-sub002/internal/database"
	"github.com/elduverx/gruposmCRM-sub002/internal/handlers"
	"github.com/elduverx/gruposmCRM-sub002/internal/jobs"
	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/repository"
	"github.com/elduverx/gruposmCRM-sub002/internal/repository/sqlstore"
	"github.com/elduverx/gruposmCRM-sub002/internal/scheduler"
	"github.com/elduverx/gruposmCRM-sub002/internal/services"
	"github.com/elduverx/gruposmCRM-sub002/pkg/logger"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	if err := models.ValidateCategoryMapping(); err != nil {
		logger.Log.WithError(err).Fatal("Activity category mapping is incomplete")
	}

	stores, err := openStores(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Database connection error")
	}

	// --- Services ---
	goalService := services.NewGoalService(stores.Goals, stores.Activities)
	activityLogger := services.NewActivityLogger(stores.Activities, stores.Goals, stores.Users, goalService)
	userService := services.NewUserService(stores.Users, goalService)
	zoneService := services.NewZoneService(stores.Zones, stores.Properties)
	propertyService := services.NewPropertyService(stores.Properties, stores.Zones, activityLogger)
	notificationService := services.NewNotificationService(stores.Notifications, stores.Goals)

	hub := handlers.NewGoalsHub(goalService, cfg.JWTSecret)
	activityLogger.OnProgress(hub.Notify)

	router := handlers.NewRouter(cfg, handlers.Services{
		Users:         userService,
		Goals:         goalService,
		Activities:    activityLogger,
		Zones:         zoneService,
		Properties:    propertyService,
		Notifications: notificationService,
		Hub:           hub,
		Ping:          stores.Ping,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	cronRunner, err := scheduler.Start(
		scheduler.Entry{Spec: cfg.ZoneReassignSchedule, Job: jobs.NewZoneReassigner(zoneService)},
		scheduler.Entry{Spec: cfg.GoalReminderSchedule, Job: jobs.NewGoalReminder(notificationService)},
		scheduler.Entry{Spec: scheduler.PurgeSchedule, Job: jobs.NewNotificationPurge(notificationService)},
	)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to start scheduler")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.WithField("port", cfg.Port).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	<-cronRunner.Stop().Done()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("HTTP shutdown failed")
	}
	if err := stores.Close(ctx); err != nil {
		logger.Log.WithError(err).Error("Failed to close store")
	}
}

func openStores(cfg *config.Config) (*repository.Stores, error) {
	if cfg.StoreDriver == config.DriverMongo {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		db, err := database.ConnectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureIndexes(ctx, db); err != nil {
			return nil, err
		}
		return repository.NewMongoStores(db), nil
	}

	db, err := database.OpenSQL(cfg)
	if err != nil {
		return nil, err
	}
	return sqlstore.NewSQLStores(db), nil
}
