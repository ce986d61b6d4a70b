package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"flat_scout/config"
	"flat_scout/identity"
	"flat_scout/models"
	"flat_scout/notify"
	"flat_scout/storage"
)

// offerID must match the identity assigned during enrichment, so the
// pre-fetch seen check and the stored offer agree.
func offerID(stub models.ListingStub) string {
	return identity.OfferID(stub.Title, stub.Price)
}

// Enricher runs the per-listing enrichment pipeline.
type Enricher interface {
	Enrich(ctx context.Context, stub models.ListingStub) (*models.Offer, error)
}

// Orchestrator drives one scrape-enrich-notify cycle: search page to
// stubs, stubs to enriched offers, qualifying offers to notifications.
// Cycles never overlap; a late previous run makes the next one a no-op.
type Orchestrator struct {
	cfg      *config.Config
	search   *SearchHandler
	enricher Enricher
	store    storage.Store
	notifier notify.Notifier

	mu      sync.Mutex
	running bool
	paused  bool
}

func NewOrchestrator(cfg *config.Config, search *SearchHandler, enricher Enricher, store storage.Store, notifier notify.Notifier) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		search:   search,
		enricher: enricher,
		store:    store,
		notifier: notifier,
	}
}

func (o *Orchestrator) Pause()         { o.mu.Lock(); o.paused = true; o.mu.Unlock() }
func (o *Orchestrator) Resume()        { o.mu.Lock(); o.paused = false; o.mu.Unlock() }
func (o *Orchestrator) IsPaused() bool { o.mu.Lock(); defer o.mu.Unlock(); return o.paused }

// Run executes one full cycle. Errors for individual listings are
// logged and counted; only a failed search fetch fails the run.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.mu.Lock()
	if o.paused {
		o.mu.Unlock()
		log.Println("Scraper is paused, skipping run")
		return nil
	}
	if o.running {
		o.mu.Unlock()
		log.Println("Previous run still in progress, skipping")
		return nil
	}
	o.running = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	run := &models.ScrapeRun{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		Status:    models.RunStatusRunning,
	}
	if err := o.store.CreateRun(ctx, run); err != nil {
		log.Printf("Warning: failed to create run record: %v", err)
	}
	runID := run.ID.String()

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err := o.store.UpdateRun(ctx, run); err != nil {
			log.Printf("Warning: failed to update run record: %v", err)
		}
	}()

	o.log(ctx, &runID, models.LogLevelInfo, "Starting scrape")

	stubs, err := o.search.Fetch(ctx)
	if err != nil {
		run.Status = models.RunStatusFailed
		run.ErrorsCount++
		o.log(ctx, &runID, models.LogLevelError, fmt.Sprintf("Search fetch failed: %v", err))
		return err
	}

	run.ListingsFound = len(stubs)
	o.log(ctx, &runID, models.LogLevelInfo, fmt.Sprintf("Found %d listings", len(stubs)))

	delay := time.Duration(o.cfg.Scraper.DelayMS) * time.Millisecond

	for i, stub := range stubs {
		if ctx.Err() != nil {
			run.Status = models.RunStatusFailed
			return ctx.Err()
		}
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}

		if err := o.processStub(ctx, run, &runID, stub); err != nil {
			run.ErrorsCount++
			o.log(ctx, &runID, models.LogLevelError,
				fmt.Sprintf("Listing %q: %v", stub.Title, err))
		}
	}

	run.Status = models.RunStatusCompleted
	o.log(ctx, &runID, models.LogLevelInfo,
		fmt.Sprintf("Completed: %d found, %d new, %d skipped, %d notified, %d errors",
			run.ListingsFound, run.OffersNew, run.OffersSkipped, run.Notified, run.ErrorsCount))

	return nil
}

// processStub evaluates a single listing. Already-seen offers are
// skipped before any detail fetch so the portals are hit as little as
// possible.
func (o *Orchestrator) processStub(ctx context.Context, run *models.ScrapeRun, runID *string, stub models.ListingStub) error {
	seen, err := o.store.Seen(ctx, offerID(stub))
	if err != nil {
		return fmt.Errorf("seen check: %w", err)
	}
	if seen {
		run.OffersSkipped++
		return nil
	}

	offer, err := o.enricher.Enrich(ctx, stub)
	if err != nil {
		var missing *models.MissingContentError
		var malformed *models.MalformedListingError
		if errors.As(err, &missing) || errors.As(err, &malformed) {
			// Fatal for this listing only.
			return err
		}
		return fmt.Errorf("enrich: %w", err)
	}

	if err := o.store.RecordOffer(ctx, offer); err != nil {
		return fmt.Errorf("record offer: %w", err)
	}
	run.OffersNew++

	if !o.qualifies(offer) {
		return nil
	}

	if err := o.notifier.Notify(ctx, offer); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	run.Notified++
	o.log(ctx, runID, models.LogLevelInfo,
		fmt.Sprintf("Notified about %q (total %d zl)", offer.Title, offer.TotalCost()))

	return nil
}

func (o *Orchestrator) qualifies(offer *models.Offer) bool {
	if offer.IsTooFar(o.cfg.Search.MaxDistanceKM) {
		return false
	}
	return offer.TotalCost() <= o.cfg.Search.MaxTotalCost
}

func (o *Orchestrator) log(ctx context.Context, runID *string, level models.LogLevel, message string) {
	log.Printf("[%s] %s", level, message)
	if err := o.store.Log(ctx, runID, level, message); err != nil {
		log.Printf("Warning: failed to persist log: %v", err)
	}
}
