package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"flat_scout/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.MaxConns = 5
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS offers (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		price INTEGER NOT NULL,
		link TEXT,
		portal TEXT,
		description TEXT,
		rent INTEGER,
		distance DOUBLE PRECISION,
		blacklisted BOOLEAN,
		lat DOUBLE PRECISION,
		lng DOUBLE PRECISION,
		geohash TEXT,
		created_at TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS scrape_runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMPTZ,
		finished_at TIMESTAMPTZ,
		status TEXT,
		listings_found INTEGER DEFAULT 0,
		offers_new INTEGER DEFAULT 0,
		offers_skipped INTEGER DEFAULT 0,
		notified INTEGER DEFAULT 0,
		errors_count INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS scrape_logs (
		id BIGSERIAL PRIMARY KEY,
		run_id TEXT,
		timestamp TIMESTAMPTZ,
		level TEXT,
		message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_offers_created ON offers(created_at);
	CREATE INDEX IF NOT EXISTS idx_logs_run ON scrape_logs(run_id);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *PostgresStore) Seen(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM offers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresStore) RecordOffer(ctx context.Context, offer *models.Offer) error {
	var lat, lng *float64
	var hash *string
	if offer.Location != nil {
		lat, lng = &offer.Location.Lat, &offer.Location.Lng
		h := offer.Location.Geohash()
		hash = &h
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO offers (
			id, title, price, link, portal, description,
			rent, distance, blacklisted, lat, lng, geohash, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING`,
		offer.ID, offer.Title, offer.Price, offer.Link, offer.Portal, offer.Description,
		offer.Rent, offer.Distance, offer.Blacklisted, lat, lng, hash, offer.CreatedAt,
	)
	return err
}

func (s *PostgresStore) CreateRun(ctx context.Context, run *models.ScrapeRun) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scrape_runs (id, started_at, status)
		VALUES ($1, $2, $3)`,
		run.ID.String(), run.StartedAt, run.Status,
	)
	return err
}

func (s *PostgresStore) UpdateRun(ctx context.Context, run *models.ScrapeRun) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE scrape_runs SET
			finished_at = $1, status = $2,
			listings_found = $3, offers_new = $4, offers_skipped = $5,
			notified = $6, errors_count = $7
		WHERE id = $8`,
		run.FinishedAt, run.Status,
		run.ListingsFound, run.OffersNew, run.OffersSkipped,
		run.Notified, run.ErrorsCount, run.ID.String(),
	)
	return err
}

func (s *PostgresStore) Log(ctx context.Context, runID *string, level models.LogLevel, message string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scrape_logs (run_id, timestamp, level, message)
		VALUES ($1, $2, $3, $4)`,
		runID, time.Now(), level, message,
	)
	return err
}
