package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"techassist/internal/cache"
	"techassist/internal/catalog"
	"techassist/internal/config"
	"techassist/internal/customer"
	"techassist/internal/dashboard"
	"techassist/internal/infrastructure/logger"
	"techassist/internal/infrastructure/mysql"
	"techassist/internal/infrastructure/tracing"
	"techassist/internal/recordstore"
	"techassist/internal/report"
	"techassist/internal/server"
	"techassist/internal/serviceorder"
	"techassist/internal/technician"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	location, err := cfg.App.Location()
	if err != nil {
		zapLogger.Fatal("resolving timezone", zap.Error(err))
	}

	tracer, err := tracing.New(cfg.Tracing.Enabled, cfg.Tracing.JaegerEndpoint, cfg.Tracing.ServiceName)
	if err != nil {
		zapLogger.Fatal("initializing tracing", zap.Error(err))
	}
	zapLogger.Info("tracing configured", zap.Bool("enabled", tracer.Enabled()))

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := mysql.NewConnection(connectCtx, cfg.Database)
	cancelConnect()
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected", zap.Bool("migrations", cfg.Database.RunMigrations))

	store := recordstore.New(db)
	cacheBackend, closeCache := newCacheBackend(cfg, zapLogger)
	cacheStore := cache.NewStore(cacheBackend, zapLogger)

	serviceCtrl, serviceRepo := catalog.NewModule(store, cacheStore, zapLogger)
	dashboardCtrl, dashboardRepo := dashboard.NewModule(store, location, cfg.App.CurrencyPrefix, zapLogger)

	ctrls := server.Controllers{
		Dashboard:  dashboardCtrl,
		Customer:   customer.NewModule(store, cacheStore, zapLogger),
		Technician: technician.NewModule(store, cacheStore, zapLogger),
		Service:    serviceCtrl,
		Order:      serviceorder.NewModule(store, serviceRepo, cacheStore, zapLogger),
		Report:     report.NewModule(dashboardRepo, location, cfg.App.CurrencyPrefix, zapLogger),
	}

	router := server.NewRouter(ctrls, store, cfg.Server.AllowedOrigins, zapLogger)
	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
	}
	if err := closeCache(); err != nil {
		zapLogger.Error("cache shutdown failed", zap.Error(err))
	}
	if err := tracer.Shutdown(ctx); err != nil {
		zapLogger.Error("tracing shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

// newCacheBackend returns the configured backend and a func that releases
// its connections.
func newCacheBackend(cfg *config.Config, zapLogger *zap.Logger) (cache.Cache, func() error) {
	if cfg.Cache.Backend == config.CacheBackendRedis {
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		zapLogger.Info("using redis query cache", zap.String("addr", cfg.Cache.RedisAddr))
		return cache.NewRedis(client, cfg.Tracing.ServiceName, cfg.Cache.TTL), client.Close
	}
	return cache.NewMemory(cfg.Cache.TTL), func() error { return nil }
}
