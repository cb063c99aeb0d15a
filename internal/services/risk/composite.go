package risk

import (
	"math"
	"time"

	"RiskPulse/internal/domain/models"
)

// Fixed component weights. Sub-scores are already bounded in their own
// ranges; weighting happens exactly once, here.
const (
	weatherWeight = 0.4
	stockWeight   = 0.3
	trafficWeight = 0.3
)

// Composite blends the three sub-scores into a RiskAssessment. The
// composite equals the sum of the three weighted components; each is
// rounded to 2 decimals for display. A nil weather observation scores 0,
// not the score of a zero-value signal.
func Composite(weather *models.WeatherSignal, changePercents []float64, incidentCount int, p Profile) models.RiskAssessment {
	var wc float64
	var factors []string
	if weather != nil {
		wc = WeatherScoreFor(*weather, p) * weatherWeight
		factors = WeatherRiskFactors(*weather)
	}
	sc := StockScore(changePercents) * stockWeight
	tc := TrafficScore(incidentCount) * trafficWeight

	score := wc + sc + tc

	return models.RiskAssessment{
		Timestamp:        time.Now(),
		CompositeScore:   round2(score),
		WeatherComponent: round2(wc),
		StockComponent:   round2(sc),
		TrafficComponent: round2(tc),
		WeatherFactors:   factors,
		Level:            ClassifyLevel(score),
		Recommendations:  Recommendations(score),
	}
}

// ClassifyLevel maps a composite score to its ordinal level via inclusive
// lower bounds. Total over all reals; out-of-range scores still classify.
func ClassifyLevel(score float64) models.RiskLevel {
	switch {
	case score >= 7:
		return models.LevelCritical
	case score >= 5:
		return models.LevelHigh
	case score >= 3:
		return models.LevelModerate
	case score >= 1:
		return models.LevelLow
	default:
		return models.LevelMinimal
	}
}

// Recommendations returns the fixed, ordered action list for the score's
// tier.
func Recommendations(score float64) []string {
	switch {
	case score >= 7:
		return []string{
			"Deploy additional claims adjusters",
			"Activate emergency response protocols",
			"Notify high-risk policyholders",
			"Increase call center capacity",
		}
	case score >= 5:
		return []string{
			"Monitor weather conditions closely",
			"Pre-position claims resources",
			"Review high-risk policies",
		}
	case score >= 3:
		return []string{
			"Standard monitoring procedures",
			"Review daily risk assessment",
		}
	default:
		return []string{"Normal operations"}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
