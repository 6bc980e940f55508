package pipeline

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"CreditSentinel/internal/marketdata"
	"CreditSentinel/internal/model"
	"CreditSentinel/internal/news"
	"CreditSentinel/internal/scoring"
	"CreditSentinel/internal/store"
)

const (
	lookbackDays    = 730 // two years of daily history
	sentimentDays   = 30
	minObservations = 50

	headlineLimit = 10

	momentumWeight = 0.7
	newsWeight     = 0.3
)

// Result is the outcome of refreshing one company.
type Result struct {
	Company model.CompanyRef
	Err     error
}

// Report collects per-company results for one refresh cycle.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

// Updated counts companies refreshed successfully.
func (r *Report) Updated() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts companies skipped this cycle.
func (r *Report) Failed() int {
	return len(r.Results) - r.Updated()
}

// Pipeline derives and persists one ScoreRecord per tracked company.
type Pipeline struct {
	fetcher   marketdata.Fetcher
	headlines news.Provider // nil when no news credential is configured
	store     store.Store
	companies []model.CompanyRef
	rng       *rand.Rand
}

// New creates a Pipeline. headlines may be nil, which permanently disables
// the news-sentiment blend. rng must be non-nil; seed it for deterministic
// synthetic sentiment.
func New(fetcher marketdata.Fetcher, headlines news.Provider, st store.Store, companies []model.CompanyRef, rng *rand.Rand) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		headlines: headlines,
		store:     st,
		companies: companies,
		rng:       rng,
	}
}

// Refresh runs one full scoring cycle over the roster. Per-company failures
// are captured in the report and never abort the cycle.
func (p *Pipeline) Refresh(ctx context.Context) *Report {
	report := &Report{StartedAt: time.Now()}
	for _, company := range p.companies {
		err := p.refreshCompany(ctx, company)
		report.Results = append(report.Results, Result{Company: company, Err: err})
	}
	report.FinishedAt = time.Now()
	return report
}

func (p *Pipeline) refreshCompany(ctx context.Context, company model.CompanyRef) error {
	data, err := p.fetcher.CompanyData(ctx, company.Ticker, lookbackDays)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", company.Ticker, err)
	}

	series := data.Series
	if err := series.Validate(); err != nil {
		return fmt.Errorf("series %s: %w", company.Ticker, err)
	}
	if len(series.Bars) < minObservations {
		return fmt.Errorf("%s: %d observations: %w",
			company.Ticker, len(series.Bars), marketdata.ErrInsufficientData)
	}

	closes := series.Closes()
	ma50, err := scoring.SMA(closes, minObservations)
	if err != nil {
		return fmt.Errorf("ma50 %s: %w", company.Ticker, err)
	}
	latestClose := closes[len(closes)-1]
	momentum := scoring.MomentumScore(latestClose, ma50)

	newsScore, newsOK := p.newsSentiment(ctx, company.Name)
	score := momentum
	if newsOK {
		score = momentum*momentumWeight + newsScore*newsWeight
	}
	score = scoring.Clamp(score, 0, 100)

	recent := series.Bars
	if len(recent) > sentimentDays {
		recent = recent[len(recent)-sentimentDays:]
	}

	rec := &model.ScoreRecord{
		Name:         company.Name,
		Ticker:       company.Ticker,
		Sector:       sectorOrNA(data.Meta.Sector),
		MarketCap:    data.Meta.MarketCap,
		LastUpdated:  time.Now().UTC(),
		Score:        score,
		ScoreFactors: buildFactors(latestClose, ma50, score, newsScore, newsOK, data.Meta.Sector),
		Sentiment:    scoring.GenerateSentiment(recent, p.rng),
		CreditTrend:  scoring.BuildTrend(series.Bars),
		Metrics: map[string]string{
			"revenue":          scoring.FormatNumber(data.Meta.Revenue, true),
			"debt_to_equity":   scoring.FormatRatio(data.Meta.DebtToEquity),
			"profit_margin":    scoring.FormatPercent(data.Meta.ProfitMargin),
			"return_on_equity": scoring.FormatPercent(data.Meta.ReturnOnEquity),
		},
	}

	if err := p.store.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("store %s: %w", company.Ticker, err)
	}
	return nil
}

// newsSentiment returns the aggregated headline sentiment, or ok=false when
// news signal is unavailable for any reason. Unavailability is logged, never
// propagated.
func (p *Pipeline) newsSentiment(ctx context.Context, name string) (float64, bool) {
	if p.headlines == nil {
		return 0, false
	}
	headlines, err := p.headlines.TopHeadlines(ctx, name, headlineLimit)
	if err != nil {
		log.Printf("[WARN] news fetch for %s: %v", name, err)
		return 0, false
	}
	if len(headlines) == 0 {
		log.Printf("[WARN] no news articles found for %s", name)
		return 0, false
	}
	return scoring.NewsSentiment(headlines), true
}

func sectorOrNA(sector string) string {
	if sector == "" {
		return "N/A"
	}
	return sector
}
