package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CreditSentinel/internal/api"
	"CreditSentinel/internal/config"
	"CreditSentinel/internal/marketdata"
	"CreditSentinel/internal/news"
	"CreditSentinel/internal/pipeline"
	"CreditSentinel/internal/scheduler"
	"CreditSentinel/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CreditSentinel starting...")

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

	// Init market-data fetcher
	fetcher := marketdata.NewYahooFetcher(cfg.MarketData.BaseURL, cfg.Proxy)
	log.Printf("[INFO] market data source: %s", fetcher.Name())

	// Init news provider (optional)
	var headlines news.Provider
	if cfg.News.APIKey != "" {
		headlines = news.NewClient(cfg.News.BaseURL, cfg.News.APIKey, cfg.Proxy)
		log.Printf("[INFO] news source: %s", headlines.Name())
	} else {
		log.Println("[WARN] news api key not configured, news sentiment disabled")
	}

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using in-memory: %v", err)
			st = store.NewMemoryStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewMemoryStore()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional: reseed the store with placeholder snapshots
	if os.Getenv("RESEED") == "true" {
		if err := st.Reset(ctx, store.SeedRecords()); err != nil {
			log.Fatalf("[FATAL] reseed store: %v", err)
		}
	}

	// Init pipeline and scheduler
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	p := pipeline.New(fetcher, headlines, st, cfg.Companies, rng)

	sched := scheduler.NewScheduler(ctx, p)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register refresh task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Init API server
	srv := api.New(cfg.Server.Addr, st, sched)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("[FATAL] api server: %v", err)
		}
	}()

	// Optional: run immediately on start
	if os.Getenv("REFRESH_ON_START") == "true" {
		log.Println("[INFO] REFRESH_ON_START enabled, executing refresh now")
		go sched.RunNow()
	}

	log.Println("[INFO] CreditSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] api shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] CreditSentinel stopped")
}
