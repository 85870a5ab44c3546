// Package main is the entry point for the economic indicators dashboard
// service. It wires the provider clients, the TTL cache and the normalizer
// behind an HTTP API serving the browser front-end.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guiajf/dashboard-indicadores/internal/cache"
	"github.com/guiajf/dashboard-indicadores/internal/clients/sgs"
	"github.com/guiajf/dashboard-indicadores/internal/clients/yahoo"
	"github.com/guiajf/dashboard-indicadores/internal/config"
	"github.com/guiajf/dashboard-indicadores/internal/indicators"
	"github.com/guiajf/dashboard-indicadores/internal/registry"
	"github.com/guiajf/dashboard-indicadores/internal/scheduler"
	"github.com/guiajf/dashboard-indicadores/internal/server"
	"github.com/guiajf/dashboard-indicadores/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting indicators dashboard")

	store, err := cache.OpenStore(cfg.CacheDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache store")
	}
	defer store.Close()

	ttlCache := cache.New(store, log)
	reg := registry.New()

	svc := indicators.New(indicators.Config{
		Registry:  reg,
		Market:    yahoo.NewClient(cfg.YahooBaseURL, cfg.HTTPTimeout, log),
		Stats:     sgs.NewClient(cfg.SGSBaseURL, cfg.HTTPTimeout, log),
		Cache:     ttlCache,
		MarketTTL: cfg.MarketTTL,
		SeriesTTL: cfg.SeriesTTL,
		Log:       log,
	})

	srv := server.New(server.Config{
		Log:        log,
		Registry:   reg,
		Indicators: svc,
		Port:       cfg.Port,
		DevMode:    cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Port).Msg("Server started")

	// Housekeeping only: the janitor sweeps expired cache rows. Data fetches
	// happen exclusively on user demand.
	sched := scheduler.New(log)
	if cfg.JanitorSchedule != "" {
		if err := sched.AddJob(cfg.JanitorSchedule, scheduler.NewCacheSweep(ttlCache, log)); err != nil {
			log.Error().Err(err).Msg("Failed to register cache sweep job")
		}
		sched.Start()
		defer sched.Stop()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Shutdown complete")
}
