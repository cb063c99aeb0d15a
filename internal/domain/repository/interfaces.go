package repository

import (
	"context"

	"RiskPulse/internal/domain/models"
)

// WeatherSource fetches weather observations for the configured districts.
type WeatherSource interface {
	Current(ctx context.Context) ([]models.WeatherSignal, error)
	Forecast(ctx context.Context) ([]models.WeatherForecastPoint, error)
}

// QuoteSource fetches one quote per tracked symbol.
type QuoteSource interface {
	Quotes(ctx context.Context) ([]models.StockQuote, error)
}

// IncidentSource fetches active traffic incidents (falling back to a static
// set when the upstream feed is unavailable).
type IncidentSource interface {
	Incidents(ctx context.Context) ([]models.TrafficIncident, error)
}

// AssessmentStore persists assessment history and serves it back to the API.
type AssessmentStore interface {
	Store(ctx context.Context, a models.RiskAssessment) error
	Latest(ctx context.Context, limit int) ([]models.RiskAssessment, error)
	Health(ctx context.Context) error
	Close() error
}

// Publisher publishes assessments to a message broker.
type Publisher interface {
	Publish(ctx context.Context, a models.RiskAssessment) error
	Close() error
}

// Exporter writes a cycle's data to flat files for the reporting tool.
type Exporter interface {
	Export(ctx context.Context, r *models.CollectionResult) error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordCycle(status string)
	RecordLatency(stage string, seconds float64)
	RecordError(kind string)
	RecordCompositeScore(score float64)
	RecordIncidentCount(n int)
}
