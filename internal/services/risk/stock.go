package risk

import "RiskPulse/internal/domain/models"

// StockScore computes the market sub-score from per-symbol percentage
// changes: max(0, (-avg/10)*3). A positive average yields zero risk. The
// result is intentionally not clamped at 3; a severe sell-off drives the
// sub-score past its nominal ceiling.
func StockScore(changePercents []float64) float64 {
	if len(changePercents) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range changePercents {
		sum += c
	}
	avg := sum / float64(len(changePercents))

	r := (-avg / 10) * 3
	if r < 0 {
		return 0
	}
	return r
}

// StockRiskRating buckets a single symbol's absolute percentage change.
func StockRiskRating(changePercent float64) models.Severity {
	abs := changePercent
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs > 5:
		return models.SeverityHigh
	case abs > 2:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
