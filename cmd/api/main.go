package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vendasul/sugestao-vendedor/api/routes"
	"github.com/vendasul/sugestao-vendedor/internal/intake"
	"github.com/vendasul/sugestao-vendedor/internal/store"
	"github.com/vendasul/sugestao-vendedor/pkg/config"
	"github.com/vendasul/sugestao-vendedor/pkg/db"
	"github.com/vendasul/sugestao-vendedor/pkg/logger"
	"github.com/vendasul/sugestao-vendedor/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "intake-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "intake-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		logg.Error(context.Background(), "failed to get sql handle", err)
		os.Exit(1)
	}
	if err := migrate.Up(context.Background(), sqlDB, cfg.DB.Driver); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	svc := intake.NewService(store.NewRepository(dbClient.DB()), cfg.Password, logg)
	registry := prometheus.NewRegistry()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting intake api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, svc, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "intake api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
