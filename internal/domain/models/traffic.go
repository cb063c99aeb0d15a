package models

import "time"

// Severity is an ordinal bucket shared by incident classification and
// per-symbol stock risk ratings.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// TrafficIncident is one active incident from the open-data feed (or the
// static fallback set when the feed is unavailable).
type TrafficIncident struct {
	ID           string    `json:"incident_id"`
	Location     string    `json:"location"`
	IncidentType string    `json:"incident_type"`
	Severity     Severity  `json:"severity"`
	Description  string    `json:"description"`
	DateReported string    `json:"date_reported"`
	Status       string    `json:"status"`
	ObservedAt   time.Time `json:"observed_at"`
}
