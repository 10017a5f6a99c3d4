package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ValueSentinel/internal/benchmark"
	"ValueSentinel/internal/config"
	"ValueSentinel/internal/provider"
	"ValueSentinel/internal/server"
	"ValueSentinel/internal/valuation"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ValueSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	log.Printf("[INFO] primary provider key: %s", maskKey(cfg.Providers.Primary.APIKey))
	log.Printf("[INFO] secondary provider key: %s", maskKey(cfg.Providers.Secondary.APIKey))

	// Init provider factory
	factory := provider.NewHTTPFactory(provider.FactoryConfig{
		PrimaryBaseURL:         cfg.Providers.Primary.BaseURL,
		PrimaryTimeout:         time.Duration(cfg.Providers.Primary.TimeoutSeconds) * time.Second,
		PrimaryRatePerMinute:   cfg.Providers.Primary.RatePerMinute,
		SecondaryBaseURL:       cfg.Providers.Secondary.BaseURL,
		SecondaryTimeout:       time.Duration(cfg.Providers.Secondary.TimeoutSeconds) * time.Second,
		SecondaryRatePerMinute: cfg.Providers.Secondary.RatePerMinute,
	})

	// Init benchmark resolver
	bench, err := benchmark.ForSource(cfg.Benchmark.Source)
	if err != nil {
		log.Fatalf("[FATAL] benchmark resolver: %v", err)
	}
	log.Printf("[INFO] market benchmark source: %s", bench.Source())

	// Init valuation service
	svc := valuation.NewService(factory, bench)

	// Start HTTP server
	srv := server.New(cfg, svc)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
	}()

	log.Println("[INFO] ValueSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[WARN] %v", err)
	}
	log.Println("[INFO] ValueSentinel stopped")
}

// maskKey hides all but the last 4 characters of an API key for logging.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
