package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventdesk/config"
	_ "eventdesk/docs"
	"eventdesk/internal/adapters/auth"
	httpdelivery "eventdesk/internal/delivery/http"
	"eventdesk/internal/delivery/http/controllers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/repository/postgres"
	"eventdesk/internal/services"
)

// @title EventDesk API
// @version 1.0
// @description Event management and enrollment admission API.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(cfg.DBUrl, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	participantRepo := postgres.NewParticipantRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	enrollmentRepo := postgres.NewEnrollmentRepository(db)

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokenIssuer, tokenVerifier := auth.NewJWTProvider(cfg.JWTSecret)

	authService := services.NewAuthService(participantRepo, hasher, tokenIssuer, cfg.TokenExpiry)
	participantService := services.NewParticipantService(participantRepo, enrollmentRepo, hasher)
	venueService := services.NewVenueService(venueRepo, eventRepo)
	categoryService := services.NewCategoryService(categoryRepo, eventRepo)
	eventService := services.NewEventService(eventRepo, venueRepo, categoryRepo, enrollmentRepo)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, participantRepo, eventRepo)

	mux := httpdelivery.NewRouter(
		tokenVerifier,
		controllers.NewAuthController(logger, authService),
		controllers.NewParticipantController(logger, participantService),
		controllers.NewCatalogController(logger, venueService, categoryService),
		controllers.NewEventController(logger, eventService),
		controllers.NewEnrollmentController(logger, enrollmentService),
	)

	handler := middleware.CORS(cfg.AllowedOrigins,
		middleware.RequestID(
			middleware.Logging(logger, mux),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
