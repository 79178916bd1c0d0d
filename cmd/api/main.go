package main

import (
	"log"
	"time"

	"koligo/internal/core/config"
	"koligo/internal/core/logger"
	"koligo/internal/core/server"
	authhandler "koligo/internal/features/auth/handler"
	authservice "koligo/internal/features/auth/service"
	touradapter "koligo/internal/features/tour/adapters"
	tourhandler "koligo/internal/features/tour/handler"
	tourservice "koligo/internal/features/tour/service"

	"go.uber.org/zap"
)

// @title Koligo Tour API
// @version 1.0
// @description Mock backend for the Koligo last-mile delivery driver app.
// @contact.name API Support
// @contact.email support@koligo.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize Auth Service & Handler
	authSvc := authservice.NewAuthService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	authHdl := authhandler.NewAuthHandler(authSvc)

	// Initialize Tour Repository, Service & Handler
	tourRepo := touradapter.NewMemoryTourRepository()
	tourSvc := tourservice.NewTourService(tourRepo)
	tourHdl := tourhandler.NewTourHandler(tourSvc)

	srv := server.New(cfg)

	// Register Routes
	api := srv.App.Group("/api")
	api.Post("/auth/login", authHdl.Login)

	protected := api.Group("", authhandler.RequireBearer(authSvc))
	tourHdl.Register(protected)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
