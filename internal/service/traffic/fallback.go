package traffic

import (
	"fmt"
	"time"

	"RiskPulse/internal/domain/models"
)

type fallbackIncident struct {
	location     string
	incidentType string
	severity     models.Severity
	description  string
}

// Static incident set served when the open-data feed is unavailable.
var fallbackIncidents = []fallbackIncident{
	{"Highway 40 - Decarie Interchange", "Vehicle Collision", models.SeverityHigh, "Multi-vehicle collision, lane closure"},
	{"Rue Sainte-Catherine - Downtown", "Traffic Congestion", models.SeverityMedium, "Heavy traffic due to construction"},
	{"Jacques-Cartier Bridge", "Maintenance Work", models.SeverityLow, "Scheduled maintenance, reduced lanes"},
	{"Highway 15 - Champlain Bridge approach", "Accident", models.SeverityHigh, "Vehicle breakdown, right lane blocked"},
	{"Boulevard Saint-Laurent", "Construction", models.SeverityMedium, "Road work, traffic diverted"},
}

// FallbackIncidents returns the static incident set stamped with now.
func FallbackIncidents(now time.Time) []models.TrafficIncident {
	out := make([]models.TrafficIncident, 0, len(fallbackIncidents))
	for i, f := range fallbackIncidents {
		out = append(out, models.TrafficIncident{
			ID:           fmt.Sprintf("MTL_%s_%03d", now.Format("20060102"), i+1),
			Location:     f.location,
			IncidentType: f.incidentType,
			Severity:     f.severity,
			Description:  f.description,
			DateReported: now.Format("2006-01-02"),
			Status:       "Active",
			ObservedAt:   now,
		})
	}
	return out
}
