package main

import (
	"context"
	"log"
	"net/http"

	_ "lapor/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"lapor/internal/auth"
	"lapor/internal/cache"
	"lapor/internal/config"
	"lapor/internal/engine"
	"lapor/internal/geo"
	"lapor/internal/handler"
	"lapor/internal/notify"
	"lapor/internal/router"
	"lapor/internal/service"
	"lapor/internal/store"
)

// @title Lapor PPSU API
// @version 1.0
// @description Municipal field-reporting API: officers submit photo-evidenced work reports, admins review them.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	feed := store.NewFeed(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	storeClient, err := store.NewPostgres(cfg.PostgresDSN, feed)
	if err != nil {
		// The engine treats an unreachable store as an offline-mode
		// signal, not a fatal condition.
		log.Printf("remote store unavailable, starting in offline mode: %v", err)
		storeClient = nil
	}

	queue := notify.NewQueue()
	presenter := notify.NewPresenter(queue, notify.DefaultDisplayWindow)

	var eng *engine.Engine
	if storeClient != nil {
		eng = engine.New(storeClient, queue)
	} else {
		eng = engine.New(store.Unavailable{}, queue)
	}
	if err := eng.Start(context.Background()); err != nil {
		log.Fatalf("engine start: %v", err)
	}
	defer eng.Close()

	usersMode, reportsMode := eng.Modes()
	log.Printf("engine started (users: %s, reports: %s)", usersMode, reportsMode)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	gate := auth.NewGate(eng)

	// Reverse geocoder is optional; without it locations fall back to
	// raw coordinate text.
	var geocoder geo.ReverseGeocoder
	if cfg.GeocoderURL != "" {
		geocoder = geo.NewNominatim(cfg.GeocoderURL)
	}

	// Services
	authService := service.NewAuthService(gate, jwtService, tokenStore)
	reportService := service.NewReportService(eng, cacheClient, geocoder)
	userService := service.NewUserService(eng, gate)
	notificationService := service.NewNotificationService(queue, presenter)

	// Handlers
	actors := handler.NewActorResolver(eng)
	authHandler := handler.NewAuthHandler(authService)
	reportHandler := handler.NewReportHandler(reportService, actors)
	userHandler := handler.NewUserHandler(userService, actors)
	notificationHandler := handler.NewNotificationHandler(notificationService, actors)

	router.Register(e, cfg, authHandler, reportHandler, userHandler, notificationHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
