package storage

import (
	"context"

	"flat_scout/models"
)

// Store persists offers for deduplication plus run/log records for
// observability. Two implementations exist: SQLite for a single-host
// deployment and Postgres for a shared one, selected by configuration.
type Store interface {
	// Seen reports whether an offer identity was recorded before.
	Seen(ctx context.Context, id string) (bool, error)
	// RecordOffer stores an enriched offer. Recording an already-seen
	// identity is a no-op.
	RecordOffer(ctx context.Context, offer *models.Offer) error

	CreateRun(ctx context.Context, run *models.ScrapeRun) error
	UpdateRun(ctx context.Context, run *models.ScrapeRun) error
	Log(ctx context.Context, runID *string, level models.LogLevel, message string) error

	Close() error
}
