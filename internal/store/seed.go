package store

import (
	"time"

	"CreditSentinel/internal/model"
)

// SeedRecords returns static placeholder snapshots used to (re)initialize the
// store before the first refresh cycle has run.
func SeedRecords() []*model.ScoreRecord {
	now := time.Now().UTC()
	return []*model.ScoreRecord{
		{
			Name:        "Apple Inc.",
			Ticker:      "AAPL",
			Sector:      "Technology",
			LastUpdated: now,
			Score:       78,
			CreditTrend: []model.TrendPoint{
				{Month: "Jan", Score: 72}, {Month: "Feb", Score: 74},
				{Month: "Mar", Score: 71}, {Month: "Apr", Score: 76},
				{Month: "May", Score: 78}, {Month: "Jun", Score: 78},
			},
			Sentiment: []model.SentimentBucket{
				{Category: "News", Positive: 85, Negative: 15},
				{Category: "Social Media", Positive: 72, Negative: 28},
				{Category: "Reports", Positive: 90, Negative: 10},
			},
			ScoreFactors: []model.ScoreFactor{
				{Text: "Excellent payment history with 99.2% on-time payments", Positive: true},
				{Text: "Strong revenue growth of 15% year-over-year", Positive: true},
				{Text: "Market volatility affecting tech sector confidence", Positive: false},
				{Text: "High cash reserves providing financial stability", Positive: true},
			},
			Metrics: map[string]string{
				"revenue": "N/A", "debt_to_equity": "N/A",
				"profit_margin": "N/A", "return_on_equity": "N/A",
			},
		},
		{
			Name:        "Microsoft Corp.",
			Ticker:      "MSFT",
			Sector:      "Technology",
			LastUpdated: now,
			Score:       85,
			CreditTrend: []model.TrendPoint{
				{Month: "Jan", Score: 80}, {Month: "Feb", Score: 82},
				{Month: "Mar", Score: 83}, {Month: "Apr", Score: 84},
				{Month: "May", Score: 85}, {Month: "Jun", Score: 85},
			},
			Sentiment: []model.SentimentBucket{
				{Category: "News", Positive: 88, Negative: 12},
				{Category: "Social Media", Positive: 80, Negative: 20},
				{Category: "Reports", Positive: 92, Negative: 8},
			},
			ScoreFactors: []model.ScoreFactor{
				{Text: "Consistent cloud revenue growth across segments", Positive: true},
				{Text: "Diversified product portfolio reducing market risk", Positive: true},
				{Text: "Strong enterprise contract renewals", Positive: true},
			},
			Metrics: map[string]string{
				"revenue": "N/A", "debt_to_equity": "N/A",
				"profit_margin": "N/A", "return_on_equity": "N/A",
			},
		},
	}
}
