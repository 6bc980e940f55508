package scoring

import (
	"math/rand"
	"strings"

	"CreditSentinel/internal/model"
)

// Keyword lists for headline polarity. Matching is exact-token only.
var positiveWords = map[string]bool{
	"positive": true, "up": true, "growth": true, "gain": true,
	"strong": true, "bullish": true, "increase": true, "rise": true,
	"success": true, "boost": true, "soar": true, "rally": true,
}

var negativeWords = map[string]bool{
	"negative": true, "down": true, "loss": true, "decline": true,
	"weak": true, "bearish": true, "decrease": true, "drop": true,
	"fall": true, "struggle": true, "plunge": true, "volatile": true,
}

// ScoreText counts positive versus negative keywords in the text. Empty text
// scores zero.
func ScoreText(text string) int {
	score := 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if positiveWords[word] {
			score++
		} else if negativeWords[word] {
			score--
		}
	}
	return score
}

// NewsSentiment maps each headline's raw keyword score (assumed range -10..10)
// onto 0-100 and averages across headlines, so the article count does not
// bias the magnitude. Callers must pass at least one headline.
func NewsSentiment(headlines []string) float64 {
	total := 0.0
	for _, h := range headlines {
		raw := float64(ScoreText(h))
		total += 50 + (raw/10)*50
	}
	return total / float64(len(headlines))
}

// sentimentCategories are proxy labels for the synthetic breakdown.
var sentimentCategories = []string{"News", "Social Media", "Reports"}

// GenerateSentiment derives per-category positive/negative splits from the
// recent price trend. The baseline follows the percent change over the given
// window, strong-trend bands taking precedence over mild ones; each category
// then gets independent jitter from rng so the buckets vary without changing
// the underlying signal. An empty series yields nil.
func GenerateSentiment(bars []model.Bar, rng *rand.Rand) []model.SentimentBucket {
	if len(bars) == 0 {
		return nil
	}
	start := bars[0].Close
	end := bars[len(bars)-1].Close
	percentChange := (end - start) / start * 100

	basePositive := 75 // neutral baseline
	switch {
	case percentChange > 5:
		basePositive = 90
	case percentChange < -5:
		basePositive = 50
	case percentChange > 0:
		basePositive = 80
	case percentChange < 0:
		basePositive = 65
	}

	buckets := make([]model.SentimentBucket, 0, len(sentimentCategories))
	for _, category := range sentimentCategories {
		positive := basePositive + rng.Intn(21) - 10
		if positive < 0 {
			positive = 0
		}
		if positive > 100 {
			positive = 100
		}
		buckets = append(buckets, model.SentimentBucket{
			Category: category,
			Positive: positive,
			Negative: 100 - positive,
		})
	}
	return buckets
}
