package models

import "time"

// WeatherSignal is one weather observation for a district, already mapped
// from the provider payload. Absent wind is materialized as 0 m/s and
// absent visibility as 10000 m at the source boundary.
type WeatherSignal struct {
	District    string    `json:"district"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Temperature float64   `json:"temperature"` // °C
	FeelsLike   float64   `json:"feels_like"`
	Condition   string    `json:"condition"` // provider main group: Clear, Rain, Snow, ...
	Description string    `json:"description"`
	WindSpeed   float64   `json:"wind_speed"` // m/s
	WindDeg     float64   `json:"wind_deg"`
	Visibility  int       `json:"visibility"` // meters
	Humidity    int       `json:"humidity"`   // percent
	Pressure    int       `json:"pressure"`   // hPa
	Cloudiness  int       `json:"cloudiness"` // percent
	ObservedAt  time.Time `json:"observed_at"`
}

// WeatherForecastPoint is one entry of the 5-day forecast for a district.
type WeatherForecastPoint struct {
	District         string    `json:"district"`
	ForecastTime     time.Time `json:"forecast_time"`
	Temperature      float64   `json:"temperature"`
	Condition        string    `json:"condition"`
	Description      string    `json:"description"`
	WindSpeed        float64   `json:"wind_speed"`
	Visibility       int       `json:"visibility"`
	Humidity         int       `json:"humidity"`
	Pressure         int       `json:"pressure"`
	PrecipitationPct float64   `json:"precipitation_pct"` // probability of precipitation, 0-100
	RiskScore        float64   `json:"risk_score"`
}
