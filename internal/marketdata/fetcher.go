package marketdata

import (
	"context"
	"errors"
	"time"

	"CreditSentinel/internal/model"
)

// Sentinel errors distinguish an unknown symbol from one that exists but has
// too little history to score.
var (
	ErrSymbolNotFound   = errors.New("symbol not found")
	ErrInsufficientData = errors.New("insufficient price history")
)

// Fetcher defines the interface for fetching company market data.
type Fetcher interface {
	CompanyData(ctx context.Context, ticker string, lookbackDays int) (*model.CompanyData, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Data  map[string]*model.CompanyData
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) CompanyData(_ context.Context, ticker string, lookbackDays int) (*model.CompanyData, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if d, ok := m.Data[ticker]; ok {
		return d, nil
	}
	return &model.CompanyData{
		Meta: model.CompanyMeta{Sector: "Technology"},
		Series: model.PriceSeries{
			Ticker:    ticker,
			Bars:      GenerateMockBars(m.Price, lookbackDays),
			FetchedAt: time.Now(),
		},
	}, nil
}

// GenerateMockBars produces a gently drifting daily series ending today.
func GenerateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:   time.Now().AddDate(0, 0, -(count - i)),
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
