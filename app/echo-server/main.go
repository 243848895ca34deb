package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"encoreTrips/app/echo-server/router"
	"encoreTrips/business/match"
	"encoreTrips/business/rank"
	"encoreTrips/business/travel"
	tripService "encoreTrips/business/trip"
	"encoreTrips/internal/middleware"
	"encoreTrips/internal/repository/postgres"
	"encoreTrips/internal/repository/providers"
	redisrepo "encoreTrips/internal/repository/redis"
	"encoreTrips/internal/rest"
	"encoreTrips/pkg/config"
	"encoreTrips/pkg/database"
	"encoreTrips/pkg/database/redis"
	"encoreTrips/pkg/logger"
	"encoreTrips/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting EncoreTrips", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redis.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := redis.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close Redis client", "error", err)
		}
	}()

	cacheRepo := redisrepo.NewCache(redisClient)

	// Init travel providers
	flightClient := providers.NewFlightClient(providers.FlightConfig{
		BaseURL: cfg.Providers.FlightBaseURL,
		APIKey:  cfg.Providers.FlightAPIKey,
	})
	hotelClient := providers.NewHotelClient(providers.HotelConfig{
		BaseURL: cfg.Providers.HotelBaseURL,
		APIKey:  cfg.Providers.HotelAPIKey,
	})
	carClient := providers.NewCarClient(providers.CarConfig{
		BaseURL: cfg.Providers.CarBaseURL,
		APIKey:  cfg.Providers.CarAPIKey,
	})
	ticketClient := providers.NewTicketClient(providers.TicketConfig{
		BaseURL:           cfg.Providers.TicketBaseURL,
		BasicAuthUsername: cfg.Providers.TicketUsername,
		BasicAuthPassword: cfg.Providers.TicketPassword,
	})
	metadataClient := providers.NewMetadataClient(providers.MetadataConfig{
		BaseURL: cfg.Providers.MetadataBaseURL,
		APIKey:  cfg.Providers.MetadataAPIKey,
	})

	// Init repo
	tripRepo := postgres.NewTripRepository(db)
	interestRepo := postgres.NewInterestRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	prefsRepo := postgres.NewPreferencesRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)
	aliasRepo := postgres.NewAliasRepository(db)
	airportRepo := postgres.NewAirportRepository(db)

	// Init engine
	matcher := match.NewMatcher(aliasRepo, metadataClient, cacheRepo)
	ranker := rank.NewRanker(matcher, rank.DefaultWeights())
	aggregator := travel.NewAggregator(flightClient, hotelClient, carClient, ticketClient, airportRepo, cacheRepo)

	// Init service
	trips := tripService.NewService(
		tripRepo,
		interestRepo,
		eventRepo,
		prefsRepo,
		feedbackRepo,
		airportRepo,
		matcher,
		ranker,
		aggregator,
		cacheRepo,
		cfg.Engine.WorkerCount,
		cfg.Engine.TargetTripCount,
	)

	// Init handler
	tripHandler := rest.NewTripHandler(trips)
	preferenceHandler := rest.NewPreferenceHandler(trips)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetTripRoutes(api, tripHandler)
	router.SetPreferenceRoutes(api, preferenceHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
