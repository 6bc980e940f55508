package pipeline

import (
	"fmt"

	"CreditSentinel/internal/model"
)

// buildFactors assembles the score-factor narrative in fixed priority order:
// momentum direction, score tier, news sentiment (when available), sector
// stability.
func buildFactors(close, ma50, score, newsScore float64, newsOK bool, sector string) []model.ScoreFactor {
	var factors []model.ScoreFactor

	if close > ma50 {
		factors = append(factors, model.ScoreFactor{
			Text:     "Recent stock price is trending above the 50-day moving average, a sign of positive momentum.",
			Positive: true,
		})
	} else {
		factors = append(factors, model.ScoreFactor{
			Text:     "Stock price is trading below the 50-day moving average, indicating a potential bearish trend.",
			Positive: false,
		})
	}

	switch {
	case score >= 85:
		factors = append(factors, model.ScoreFactor{
			Text:     "Exceptional performance has led to a high credit intelligence score.",
			Positive: true,
		})
	case score >= 75:
		factors = append(factors, model.ScoreFactor{
			Text:     "Solid performance metrics contribute to a good overall score.",
			Positive: true,
		})
	default:
		factors = append(factors, model.ScoreFactor{
			Text:     "Recent market volatility has negatively impacted the score.",
			Positive: false,
		})
	}

	if newsOK {
		switch {
		case newsScore > 70:
			factors = append(factors, model.ScoreFactor{
				Text:     "Positive news sentiment from recent articles has boosted the score.",
				Positive: true,
			})
		case newsScore < 50:
			factors = append(factors, model.ScoreFactor{
				Text:     "Negative news sentiment from recent articles has impacted the score.",
				Positive: false,
			})
		default:
			factors = append(factors, model.ScoreFactor{
				Text:     "Neutral news sentiment from recent articles contributed to the score.",
				Positive: true,
			})
		}
	}

	if sector == "" {
		sector = "N/A"
	}
	factors = append(factors, model.ScoreFactor{
		Text:     fmt.Sprintf("The company's position in the %s sector provides stability.", sector),
		Positive: true,
	})

	return factors
}
