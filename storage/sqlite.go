package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"flat_scout/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS offers (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		price INTEGER NOT NULL,
		link TEXT,
		portal TEXT,
		description TEXT,
		rent INTEGER,
		distance REAL,
		blacklisted BOOLEAN,
		lat REAL,
		lng REAL,
		geohash TEXT,
		created_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS scrape_runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME,
		finished_at DATETIME,
		status TEXT,
		listings_found INTEGER,
		offers_new INTEGER,
		offers_skipped INTEGER,
		notified INTEGER,
		errors_count INTEGER
	);

	CREATE TABLE IF NOT EXISTS scrape_logs (
		id INTEGER PRIMARY KEY,
		run_id TEXT,
		timestamp DATETIME,
		level TEXT,
		message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_offers_created ON offers(created_at);
	CREATE INDEX IF NOT EXISTS idx_logs_run ON scrape_logs(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Seen(ctx context.Context, id string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM offers WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteStore) RecordOffer(ctx context.Context, offer *models.Offer) error {
	var lat, lng *float64
	var hash *string
	if offer.Location != nil {
		lat, lng = &offer.Location.Lat, &offer.Location.Lng
		h := offer.Location.Geohash()
		hash = &h
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO offers (
			id, title, price, link, portal, description,
			rent, distance, blacklisted, lat, lng, geohash, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		offer.ID, offer.Title, offer.Price, offer.Link, offer.Portal, offer.Description,
		offer.Rent, offer.Distance, offer.Blacklisted, lat, lng, hash, offer.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) CreateRun(ctx context.Context, run *models.ScrapeRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrape_runs (
			id, started_at, status,
			listings_found, offers_new, offers_skipped, notified, errors_count
		) VALUES (?, ?, ?, 0, 0, 0, 0, 0)`,
		run.ID.String(), run.StartedAt, run.Status,
	)
	return err
}

func (s *SQLiteStore) UpdateRun(ctx context.Context, run *models.ScrapeRun) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE scrape_runs SET
			finished_at = ?, status = ?,
			listings_found = ?, offers_new = ?, offers_skipped = ?,
			notified = ?, errors_count = ?
		WHERE id = ?`,
		run.FinishedAt, run.Status,
		run.ListingsFound, run.OffersNew, run.OffersSkipped,
		run.Notified, run.ErrorsCount, run.ID.String(),
	)
	return err
}

func (s *SQLiteStore) Log(ctx context.Context, runID *string, level models.LogLevel, message string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrape_logs (run_id, timestamp, level, message)
		VALUES (?, ?, ?, ?)`,
		runID, time.Now(), level, message,
	)
	return err
}
