package pipeline

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"CreditSentinel/internal/marketdata"
	"CreditSentinel/internal/model"
	"CreditSentinel/internal/news"
	"CreditSentinel/internal/store"
)

func seriesOf(closes []float64) model.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Date: start.AddDate(0, 0, i), Close: c, Volume: 1000}
	}
	return model.PriceSeries{Bars: bars, FetchedAt: time.Now()}
}

func flatCloses(n int, price float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return closes
}

func companyData(closes []float64, sector string) *model.CompanyData {
	revenue := 2_500_000_000.0
	margin := 0.25
	return &model.CompanyData{
		Meta: model.CompanyMeta{
			Sector:       sector,
			Revenue:      &revenue,
			ProfitMargin: &margin,
		},
		Series: seriesOf(closes),
	}
}

func newTestPipeline(fetcher marketdata.Fetcher, headlines news.Provider, st store.Store, companies []model.CompanyRef) *Pipeline {
	return New(fetcher, headlines, st, companies, rand.New(rand.NewSource(1)))
}

func TestRefresh_MomentumOnly(t *testing.T) {
	roster := []model.CompanyRef{{Name: "Apple Inc.", Ticker: "AAPL"}}
	fetcher := &marketdata.MockFetcher{
		Data: map[string]*model.CompanyData{
			"AAPL": companyData(flatCloses(200, 100), "Technology"),
		},
	}
	st := store.NewMemoryStore()
	p := newTestPipeline(fetcher, nil, st, roster)

	report := p.Refresh(context.Background())
	if report.Failed() != 0 {
		t.Fatalf("expected no failures, got %d", report.Failed())
	}

	rec, err := st.GetByName(context.Background(), "Apple Inc.")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	// Flat series: momentum 70, no news blend.
	if rec.Score != 70 {
		t.Errorf("expected score 70, got %.4f", rec.Score)
	}
	if rec.Sector != "Technology" {
		t.Errorf("expected sector Technology, got %q", rec.Sector)
	}
	if rec.Metrics["revenue"] != "$2.50B" {
		t.Errorf("expected formatted revenue, got %q", rec.Metrics["revenue"])
	}
	if rec.Metrics["profit_margin"] != "25.00%" {
		t.Errorf("expected formatted margin, got %q", rec.Metrics["profit_margin"])
	}
	if rec.Metrics["debt_to_equity"] != "N/A" {
		t.Errorf("expected N/A debt_to_equity, got %q", rec.Metrics["debt_to_equity"])
	}
}

func TestRefresh_NewsBlend(t *testing.T) {
	roster := []model.CompanyRef{{Name: "Apple Inc.", Ticker: "AAPL"}}
	fetcher := &marketdata.MockFetcher{
		Data: map[string]*model.CompanyData{
			"AAPL": companyData(flatCloses(200, 100), "Technology"),
		},
	}
	// Raw headline score +3 maps to 65.
	headlines := &news.MockProvider{Headlines: []string{"Stocks rally on strong growth"}}
	st := store.NewMemoryStore()
	p := newTestPipeline(fetcher, headlines, st, roster)

	p.Refresh(context.Background())

	rec, err := st.GetByName(context.Background(), "Apple Inc.")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	want := 70*0.7 + 65*0.3
	if math.Abs(rec.Score-want) > 1e-9 {
		t.Errorf("expected blended score %.4f, got %.4f", want, rec.Score)
	}
	// Factor order: momentum, tier, news, sector.
	if len(rec.ScoreFactors) != 4 {
		t.Fatalf("expected 4 factors with news available, got %d", len(rec.ScoreFactors))
	}
	if rec.ScoreFactors[0].Positive {
		t.Error("flat series: momentum factor should not be positive (price not above the average)")
	}
	if rec.ScoreFactors[3].Text != "The company's position in the Technology sector provides stability." {
		t.Errorf("unexpected sector factor: %q", rec.ScoreFactors[3].Text)
	}
}

func TestRefresh_NewsUnavailableNotZero(t *testing.T) {
	roster := []model.CompanyRef{{Name: "Apple Inc.", Ticker: "AAPL"}}
	fetcher := &marketdata.MockFetcher{
		Data: map[string]*model.CompanyData{
			"AAPL": companyData(flatCloses(200, 100), "Technology"),
		},
	}
	// Zero articles must act as absence of signal, not a zero score.
	headlines := &news.MockProvider{Headlines: nil}
	st := store.NewMemoryStore()
	p := newTestPipeline(fetcher, headlines, st, roster)

	p.Refresh(context.Background())

	rec, err := st.GetByName(context.Background(), "Apple Inc.")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.Score != 70 {
		t.Errorf("expected momentum-only score 70, got %.4f", rec.Score)
	}
	if len(rec.ScoreFactors) != 3 {
		t.Errorf("expected 3 factors without news, got %d", len(rec.ScoreFactors))
	}
}

func TestRefresh_InsufficientHistorySkips(t *testing.T) {
	roster := []model.CompanyRef{
		{Name: "Thin Corp.", Ticker: "THIN"},
		{Name: "Apple Inc.", Ticker: "AAPL"},
	}
	fetcher := &marketdata.MockFetcher{
		Price: 100,
		Data: map[string]*model.CompanyData{
			"THIN": companyData(flatCloses(30, 100), "Industrials"),
			"AAPL": companyData(flatCloses(200, 100), "Technology"),
		},
	}
	st := store.NewMemoryStore()
	p := newTestPipeline(fetcher, nil, st, roster)

	report := p.Refresh(context.Background())
	if report.Updated() != 1 || report.Failed() != 1 {
		t.Fatalf("expected 1 updated / 1 failed, got %d / %d", report.Updated(), report.Failed())
	}
	var thinErr error
	for _, res := range report.Results {
		if res.Company.Ticker == "THIN" {
			thinErr = res.Err
		}
	}
	if !errors.Is(thinErr, marketdata.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for THIN, got %v", thinErr)
	}
	if _, err := st.GetByName(context.Background(), "Thin Corp."); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("skipped company must not be stored, got %v", err)
	}
	if _, err := st.GetByName(context.Background(), "Apple Inc."); err != nil {
		t.Errorf("remaining companies must still refresh: %v", err)
	}
}

func TestRefresh_FetchFailureDoesNotAbortCycle(t *testing.T) {
	roster := []model.CompanyRef{
		{Name: "Ghost Inc.", Ticker: "GONE"},
		{Name: "Apple Inc.", Ticker: "AAPL"},
	}
	good := &marketdata.MockFetcher{
		Data: map[string]*model.CompanyData{
			"AAPL": companyData(flatCloses(200, 100), "Technology"),
		},
	}
	fetcher := &switchFetcher{
		failTicker: "GONE",
		failErr:    marketdata.ErrSymbolNotFound,
		inner:      good,
	}
	st := store.NewMemoryStore()
	p := newTestPipeline(fetcher, nil, st, roster)

	report := p.Refresh(context.Background())
	if report.Updated() != 1 || report.Failed() != 1 {
		t.Fatalf("expected 1 updated / 1 failed, got %d / %d", report.Updated(), report.Failed())
	}
}

// switchFetcher fails one ticker and delegates the rest.
type switchFetcher struct {
	failTicker string
	failErr    error
	inner      marketdata.Fetcher
}

func (s *switchFetcher) Name() string { return "switch" }

func (s *switchFetcher) CompanyData(ctx context.Context, ticker string, days int) (*model.CompanyData, error) {
	if ticker == s.failTicker {
		return nil, s.failErr
	}
	return s.inner.CompanyData(ctx, ticker, days)
}

func TestRefresh_UpsertIdempotent(t *testing.T) {
	roster := []model.CompanyRef{{Name: "Apple Inc.", Ticker: "AAPL"}}
	fetcher := &marketdata.MockFetcher{
		Data: map[string]*model.CompanyData{
			"AAPL": companyData(flatCloses(200, 100), "Technology"),
		},
	}
	st := store.NewMemoryStore()
	p := newTestPipeline(fetcher, nil, st, roster)

	p.Refresh(context.Background())
	first, err := st.GetByName(context.Background(), "Apple Inc.")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}

	p.Refresh(context.Background())
	second, err := st.GetByName(context.Background(), "Apple Inc.")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}

	refs, _ := st.List(context.Background())
	if len(refs) != 1 {
		t.Fatalf("expected exactly one record after re-running, got %d", len(refs))
	}
	// Momentum-only path must reproduce bit-identical score and factor text.
	if first.Score != second.Score {
		t.Errorf("score not reproducible: %.10f vs %.10f", first.Score, second.Score)
	}
	for i := range first.ScoreFactors {
		if first.ScoreFactors[i].Text != second.ScoreFactors[i].Text {
			t.Errorf("factor %d text differs across identical runs", i)
		}
	}
}

func TestRefresh_EndToEndSpike(t *testing.T) {
	closes := flatCloses(500, 100)
	for i := len(closes) - 5; i < len(closes); i++ {
		closes[i] = 110
	}
	roster := []model.CompanyRef{{Name: "Spike Corp.", Ticker: "SPK"}}
	fetcher := &marketdata.MockFetcher{
		Data: map[string]*model.CompanyData{
			"SPK": companyData(closes, "Technology"),
		},
	}
	st := store.NewMemoryStore()
	p := newTestPipeline(fetcher, nil, st, roster)

	report := p.Refresh(context.Background())
	if report.Failed() != 0 {
		t.Fatalf("expected no failures, got %d", report.Failed())
	}

	rec, err := st.GetByName(context.Background(), "Spike Corp.")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.Score <= 70 {
		t.Errorf("expected momentum above neutral after a price spike, got %.2f", rec.Score)
	}
	if len(rec.CreditTrend) < 2 {
		t.Fatalf("expected trend points, got %d", len(rec.CreditTrend))
	}
	first := rec.CreditTrend[0].Score
	last := rec.CreditTrend[len(rec.CreditTrend)-1].Score
	if last <= first {
		t.Errorf("trend should rise after spike: first=%.2f last=%.2f", first, last)
	}
	if !rec.ScoreFactors[0].Positive {
		t.Error("momentum factor should be positive when price is above the average")
	}
	for _, b := range rec.Sentiment {
		if b.Positive+b.Negative != 100 {
			t.Errorf("sentiment bucket %q: positive+negative != 100", b.Category)
		}
	}
}
