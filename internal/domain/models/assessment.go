package models

import "time"

// RiskLevel is the ordinal bucket derived from the composite score.
type RiskLevel string

const (
	LevelMinimal  RiskLevel = "MINIMAL"
	LevelLow      RiskLevel = "LOW"
	LevelModerate RiskLevel = "MODERATE"
	LevelHigh     RiskLevel = "HIGH"
	LevelCritical RiskLevel = "CRITICAL"
)

// RiskAssessment is the composite result of one scoring call.
// Built fresh each cycle and never mutated afterwards.
type RiskAssessment struct {
	Timestamp        time.Time `json:"timestamp"`
	CompositeScore   float64   `json:"composite_score"` // weighted sum, rounded to 2 decimals
	WeatherComponent float64   `json:"weather_component"`
	StockComponent   float64   `json:"stock_component"`
	TrafficComponent float64   `json:"traffic_component"`
	WeatherFactors   []string  `json:"weather_factors,omitempty"` // named conditions driving the weather score
	Level            RiskLevel `json:"risk_level"`
	Recommendations  []string  `json:"recommendations"`
}

// CollectionResult bundles everything one collection cycle produced.
type CollectionResult struct {
	Timestamp  time.Time              `json:"timestamp"`
	Weather    []WeatherSignal        `json:"weather,omitempty"`
	Forecast   []WeatherForecastPoint `json:"forecast,omitempty"`
	Quotes     []StockQuote           `json:"stocks,omitempty"`
	Incidents  []TrafficIncident      `json:"traffic_incidents,omitempty"`
	Assessment RiskAssessment         `json:"risk_assessment"`
}
