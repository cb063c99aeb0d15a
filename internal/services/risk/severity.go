package risk

import (
	"strings"

	"RiskPulse/internal/domain/models"
)

// Keyword sets checked in precedence order; first match wins.
var (
	highKeywords   = []string{"accident", "collision", "crash"}
	mediumKeywords = []string{"construction", "travaux", "maintenance"}
	lowKeywords    = []string{"traffic", "congestion", "embouteillage"}
)

// ClassifySeverity buckets a free-text incident type via case-insensitive
// substring matching. Unmatched types default to Medium.
func ClassifySeverity(incidentType string) models.Severity {
	t := strings.ToLower(incidentType)

	if containsAny(t, highKeywords) {
		return models.SeverityHigh
	}
	if containsAny(t, mediumKeywords) {
		return models.SeverityMedium
	}
	if containsAny(t, lowKeywords) {
		return models.SeverityLow
	}
	return models.SeverityMedium
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
