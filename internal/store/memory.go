package store

import (
	"context"
	"sort"
	"sync"

	"CreditSentinel/internal/model"
)

// MemoryStore is an in-memory Store used when SQLite is not configured and in
// tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*model.ScoreRecord // keyed by ticker
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*model.ScoreRecord)}
}

func (m *MemoryStore) Upsert(_ context.Context, rec *model.ScoreRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.records[rec.Ticker] = &cp
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]model.CompanyRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	refs := make([]model.CompanyRef, 0, len(m.records))
	for _, rec := range m.records {
		refs = append(refs, rec.Ref())
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func (m *MemoryStore) GetByName(_ context.Context, name string) (*model.ScoreRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rec := range m.records {
		if rec.Name == name {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) Reset(_ context.Context, seed []*model.ScoreRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]*model.ScoreRecord, len(seed))
	for _, rec := range seed {
		cp := *rec
		m.records[rec.Ticker] = &cp
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
