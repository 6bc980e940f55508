package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"CreditSentinel/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists score records to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so API reads don't block refresh-cycle writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			ticker        TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			sector        TEXT NOT NULL DEFAULT '',
			market_cap    REAL,
			last_updated  INTEGER NOT NULL,
			score         REAL NOT NULL,
			score_factors TEXT NOT NULL,
			sentiment     TEXT NOT NULL,
			credit_trend  TEXT NOT NULL,
			metrics       TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_companies_name ON companies(name)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

const upsertSQL = `INSERT INTO companies
	(ticker, name, sector, market_cap, last_updated, score,
	 score_factors, sentiment, credit_trend, metrics)
	VALUES (?,?,?,?,?,?,?,?,?,?)
	ON CONFLICT(ticker) DO UPDATE SET
	 name=excluded.name, sector=excluded.sector, market_cap=excluded.market_cap,
	 last_updated=excluded.last_updated, score=excluded.score,
	 score_factors=excluded.score_factors, sentiment=excluded.sentiment,
	 credit_trend=excluded.credit_trend, metrics=excluded.metrics`

func (s *SQLiteStore) Upsert(ctx context.Context, rec *model.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	args, err := upsertArgs(rec)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, upsertSQL, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", rec.Ticker, err)
	}
	return nil
}

func upsertArgs(rec *model.ScoreRecord) ([]interface{}, error) {
	factors, err := json.Marshal(rec.ScoreFactors)
	if err != nil {
		return nil, fmt.Errorf("encode score factors: %w", err)
	}
	sentiment, err := json.Marshal(rec.Sentiment)
	if err != nil {
		return nil, fmt.Errorf("encode sentiment: %w", err)
	}
	trend, err := json.Marshal(rec.CreditTrend)
	if err != nil {
		return nil, fmt.Errorf("encode trend: %w", err)
	}
	metrics, err := json.Marshal(rec.Metrics)
	if err != nil {
		return nil, fmt.Errorf("encode metrics: %w", err)
	}

	var marketCap sql.NullFloat64
	if rec.MarketCap != nil {
		marketCap = sql.NullFloat64{Float64: *rec.MarketCap, Valid: true}
	}

	return []interface{}{
		rec.Ticker, rec.Name, rec.Sector, marketCap,
		rec.LastUpdated.Unix(), rec.Score,
		string(factors), string(sentiment), string(trend), string(metrics),
	}, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.CompanyRef, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, ticker FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var refs []model.CompanyRef
	for rows.Next() {
		var ref model.CompanyRef
		if err := rows.Scan(&ref.Name, &ref.Ticker); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (s *SQLiteStore) GetByName(ctx context.Context, name string) (*model.ScoreRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT ticker, name, sector, market_cap,
		last_updated, score, score_factors, sentiment, credit_trend, metrics
		FROM companies WHERE name = ?`, name)

	var rec model.ScoreRecord
	var marketCap sql.NullFloat64
	var updated int64
	var factors, sentiment, trend, metrics string

	err := row.Scan(&rec.Ticker, &rec.Name, &rec.Sector, &marketCap,
		&updated, &rec.Score, &factors, &sentiment, &trend, &metrics)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get company %q: %w", name, err)
	}

	if marketCap.Valid {
		rec.MarketCap = &marketCap.Float64
	}
	rec.LastUpdated = time.Unix(updated, 0).UTC()

	if err := json.Unmarshal([]byte(factors), &rec.ScoreFactors); err != nil {
		return nil, fmt.Errorf("decode score factors: %w", err)
	}
	if err := json.Unmarshal([]byte(sentiment), &rec.Sentiment); err != nil {
		return nil, fmt.Errorf("decode sentiment: %w", err)
	}
	if err := json.Unmarshal([]byte(trend), &rec.CreditTrend); err != nil {
		return nil, fmt.Errorf("decode trend: %w", err)
	}
	if err := json.Unmarshal([]byte(metrics), &rec.Metrics); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}
	return &rec, nil
}

func (s *SQLiteStore) Reset(ctx context.Context, seed []*model.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM companies`); err != nil {
		return fmt.Errorf("clear companies: %w", err)
	}
	for _, rec := range seed {
		args, err := upsertArgs(rec)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsertSQL, args...); err != nil {
			return fmt.Errorf("seed %s: %w", rec.Ticker, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	log.Printf("[INFO] store reset with %d seed records", len(seed))
	return nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
