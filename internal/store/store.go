package store

import (
	"context"
	"errors"

	"CreditSentinel/internal/model"
)

// ErrNotFound indicates a lookup for a company that has no record.
var ErrNotFound = errors.New("company not found")

// Store persists one ScoreRecord per company, keyed by ticker.
type Store interface {
	// Upsert inserts or wholly replaces the record for its ticker.
	Upsert(ctx context.Context, rec *model.ScoreRecord) error
	// List returns the identity pairs of all stored companies, ordered by name.
	List(ctx context.Context) ([]model.CompanyRef, error)
	// GetByName returns the full record for a display name, or ErrNotFound.
	GetByName(ctx context.Context, name string) (*model.ScoreRecord, error)
	// Reset wipes all records and inserts the given seed records.
	Reset(ctx context.Context, seed []*model.ScoreRecord) error
	Close() error
}
