package models

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// ScrapeRun records one full scrape-enrich-notify cycle.
type ScrapeRun struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	StartedAt     time.Time  `json:"started_at" db:"started_at"`
	FinishedAt    *time.Time `json:"finished_at" db:"finished_at"`
	Status        RunStatus  `json:"status" db:"status"`
	ListingsFound int        `json:"listings_found" db:"listings_found"`
	OffersNew     int        `json:"offers_new" db:"offers_new"`
	OffersSkipped int        `json:"offers_skipped" db:"offers_skipped"`
	Notified      int        `json:"notified" db:"notified"`
	ErrorsCount   int        `json:"errors_count" db:"errors_count"`
}
