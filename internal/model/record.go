package model

import "time"

// ScoreFactor is one human-readable explanation behind a score. Order in the
// list reflects narrative priority.
type ScoreFactor struct {
	Text     string `json:"text"`
	Positive bool   `json:"positive"`
}

// SentimentBucket is a per-category positive/negative split. Positive and
// Negative always sum to 100.
type SentimentBucket struct {
	Category string `json:"category"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
}

// TrendPoint is one month of the historical score trend.
type TrendPoint struct {
	Month string  `json:"month"`
	Score float64 `json:"score"`
}

// ScoreRecord is the persisted per-company snapshot, replaced wholesale on
// every refresh cycle.
type ScoreRecord struct {
	Name         string            `json:"name"`
	Ticker       string            `json:"ticker"`
	Sector       string            `json:"sector"`
	MarketCap    *float64          `json:"marketCap"`
	LastUpdated  time.Time         `json:"lastUpdated"`
	Score        float64           `json:"score"`
	ScoreFactors []ScoreFactor     `json:"scoreFactors"`
	Sentiment    []SentimentBucket `json:"sentiment"`
	CreditTrend  []TrendPoint      `json:"creditTrend"`
	Metrics      map[string]string `json:"metrics"`
}

// Ref returns the identity pair for this record.
func (r *ScoreRecord) Ref() CompanyRef {
	return CompanyRef{Name: r.Name, Ticker: r.Ticker}
}
