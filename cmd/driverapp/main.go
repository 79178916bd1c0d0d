package main

import (
	"context"
	"flag"
	"log"
	"time"

	"koligo/internal/core/cache"
	"koligo/internal/core/config"
	"koligo/internal/core/logger"
	"koligo/internal/features/tour/domain"
	"koligo/internal/features/tournee/adapters"
	"koligo/internal/features/tournee/ports"
	"koligo/internal/features/tournee/service"

	"go.uber.org/zap"
)

func main() {
	employeeID := flag.String("employee", "EMP1001", "employee identifier")
	password := flag.String("password", "", "account password")
	flag.Parse()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Driver app starting",
		zap.String("environment", cfg.Environment),
		zap.String("api_url", cfg.Client.APIURL),
	)

	ctx := context.Background()

	// The snapshot store is optional: without Redis the app still works,
	// it just cannot render a tour before the network answers.
	var store ports.TourStore
	if c, err := cache.NewRedisAdapter(cfg.Client.RedisURL); err != nil {
		l.Warn("Snapshot store unavailable, continuing without cache", zap.Error(err))
	} else if err := c.Ping(ctx); err != nil {
		l.Warn("Snapshot store unreachable, continuing without cache", zap.Error(err))
		c.Close()
	} else {
		defer c.Close()
		store = adapters.NewRedisTourStore(c)
	}

	api := adapters.NewAPIAdapter(cfg.Client.APIURL, time.Duration(cfg.Client.HTTPTimeoutSeconds)*time.Second)

	auth, err := api.Login(ctx, domain.LoginInput{EmployeeID: *employeeID, Password: *password})
	if err != nil {
		l.Fatal("Login failed", zap.Error(err))
	}
	api.SetToken(auth.Token)
	l.Info("Logged in",
		zap.String("driver_id", auth.Driver.ID),
		zap.String("driver_name", auth.Driver.FirstName+" "+auth.Driver.LastName),
	)

	manager := service.NewManager(api, store, auth.Driver.ID)
	if err := manager.Initialize(ctx); err != nil {
		l.Fatal("No tour available", zap.Error(err))
	}

	tour := manager.Tour()
	stats := manager.Stats()
	l.Info("Tour loaded",
		zap.String("tour_id", tour.ID),
		zap.String("date", tour.Date),
		zap.String("status", string(tour.Status)),
		zap.Int("parcels", stats.Total),
		zap.Int("delivered", stats.Delivered),
		zap.Int("remaining", manager.Remaining()),
		zap.Int("progress_percent", stats.ProgressPercent),
	)
	if err := manager.LastError(); err != nil {
		l.Warn("Showing cached tour, refresh failed", zap.Error(err))
	}
}
