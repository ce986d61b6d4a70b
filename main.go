package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"flat_scout/config"
	"flat_scout/geo"
	"flat_scout/httputil"
	"flat_scout/logging"
	"flat_scout/notify"
	"flat_scout/scheduler"
	"flat_scout/scraper"
	"flat_scout/services"
	"flat_scout/storage"
)

var scrapeNow = flag.Bool("scrape", false, "Run one scrape cycle and exit")

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	logFile, err := logging.Setup("flat_scout.log")
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting flat_scout...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Search: %s, max %d zl, max %.1f km, %d blacklisted terms",
		cfg.Search.City, cfg.Search.MaxTotalCost, cfg.Search.MaxDistanceKM, len(cfg.Search.Blacklist))

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()
	log.Printf("Store: %s", cfg.Store.Driver)

	clients := httputil.NewClients(cfg.Scraper.ProxyURL)

	geocoder := geo.NewGugikClient(clients.Geocode, cfg.Search.City)
	source := scraper.NewDetailFetcher(clients.Scraping)

	enricher, err := services.NewEnrichmentService(&cfg.Search, source, geocoder)
	if err != nil {
		log.Fatalf("Failed to build enrichment service: %v", err)
	}

	notifier := notify.NewEmailNotifier(cfg.Email, nil)
	search := scraper.NewSearchHandler(cfg.Search.ScrapeURL, clients.Scraping)
	orchestrator := scraper.NewOrchestrator(cfg, search, enricher, store, notifier)

	if *scrapeNow {
		log.Println("Running scrape...")
		if err := orchestrator.Run(ctx); err != nil {
			log.Fatalf("Scrape failed: %v", err)
		}
		log.Println("Scrape complete!")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.New(cfg, orchestrator)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	log.Println("Daemon running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	sched.Stop()
	log.Println("Goodbye!")
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.Store.Driver == "postgres" {
		return storage.NewPostgresStore(ctx, cfg.Store.DBURL)
	}
	return storage.NewSQLiteStore(cfg.Store.DBPath)
}
