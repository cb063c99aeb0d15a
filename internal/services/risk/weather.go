package risk

import (
	"math"
	"strings"

	"RiskPulse/internal/domain/models"
)

// Profile selects which weather scoring table is applied.
// Baseline is canonical; Detailed is the enhanced opt-in variant.
type Profile string

const (
	ProfileBaseline Profile = "baseline"
	ProfileDetailed Profile = "detailed"
)

// ParseProfile maps a config string to a Profile, defaulting to baseline.
func ParseProfile(s string) Profile {
	if strings.EqualFold(s, string(ProfileDetailed)) {
		return ProfileDetailed
	}
	return ProfileBaseline
}

var baselineConditionRisk = map[string]float64{
	"thunderstorm": 4.0,
	"drizzle":      1.5,
	"rain":         2.5,
	"snow":         3.0,
	"mist":         1.0,
	"fog":          2.0,
	"hail":         4.5,
	"tornado":      5.0,
}

var detailedConditionRisk = map[string]float64{
	"thunderstorm": 4.5,
	"drizzle":      1.5,
	"rain":         2.5,
	"snow":         3.5,
	"mist":         1.5,
	"smoke":        2.0,
	"haze":         1.5,
	"dust":         2.5,
	"fog":          3.0,
	"sand":         2.5,
	"ash":          4.0,
	"squall":       4.0,
	"tornado":      5.0,
	"clear":        0.0,
	"clouds":       0.5,
}

// WeatherScore computes the baseline weather sub-score in [0, 10].
// Additive point system over temperature, condition, wind and visibility,
// capped at 10.
func WeatherScore(s models.WeatherSignal) float64 {
	score := 0.0

	t := s.Temperature
	switch {
	case t < -20 || t > 35:
		score += 3.0
	case t < -10 || t > 30:
		score += 2.0
	case t < 0 || t > 25:
		score += 1.0
	}

	// unknown condition contributes 0 in the baseline table
	score += baselineConditionRisk[strings.ToLower(s.Condition)]

	switch {
	case s.WindSpeed > 15:
		score += 2.0
	case s.WindSpeed > 10:
		score += 1.0
	}

	switch {
	case s.Visibility < 1000:
		score += 2.0
	case s.Visibility < 5000:
		score += 1.0
	}

	return math.Min(score, 10.0)
}

// DetailedWeatherScore computes the enhanced weather sub-score in [0, 10]:
// wider temperature bands, a larger condition table (unknown contributes
// 1.0), an extra wind tier, an extra visibility tier, and humidity and
// pressure extremes.
func DetailedWeatherScore(s models.WeatherSignal) float64 {
	score := 0.0

	t := s.Temperature
	switch {
	case t < -30 || t > 40:
		score += 4.0
	case t < -20 || t > 35:
		score += 3.0
	case t < -10 || t > 30:
		score += 2.0
	case t < 0 || t > 25:
		score += 1.0
	}

	if v, ok := detailedConditionRisk[strings.ToLower(s.Condition)]; ok {
		score += v
	} else {
		score += 1.0
	}

	switch {
	case s.WindSpeed > 25:
		score += 3.0
	case s.WindSpeed > 15:
		score += 2.0
	case s.WindSpeed > 10:
		score += 1.0
	}

	switch {
	case s.Visibility < 500:
		score += 3.0
	case s.Visibility < 1000:
		score += 2.0
	case s.Visibility < 5000:
		score += 1.0
	}

	if s.Humidity > 90 || s.Humidity < 20 {
		score += 1.0
	}

	switch {
	case s.Pressure < 980:
		score += 2.0
	case s.Pressure < 1000, s.Pressure > 1030:
		score += 1.0
	}

	return math.Min(score, 10.0)
}

// WeatherScoreFor applies the table selected by profile.
func WeatherScoreFor(s models.WeatherSignal, p Profile) float64 {
	if p == ProfileDetailed {
		return DetailedWeatherScore(s)
	}
	return WeatherScore(s)
}

// WeatherRiskFactors names the specific conditions driving the score.
// Advisory strings only; not part of the numeric sub-score.
func WeatherRiskFactors(s models.WeatherSignal) []string {
	var factors []string
	cond := strings.ToLower(s.Condition)

	if s.Temperature < -15 {
		factors = append(factors, "Extreme Cold")
	}
	if s.Temperature > 32 {
		factors = append(factors, "Extreme Heat")
	}
	if cond == "thunderstorm" || cond == "tornado" {
		factors = append(factors, "Severe Weather")
	}
	if cond == "rain" || cond == "drizzle" {
		factors = append(factors, "Wet Roads")
	}
	if cond == "snow" {
		factors = append(factors, "Snow/Ice Conditions")
	}
	if s.WindSpeed > 15 {
		factors = append(factors, "High Winds")
	}
	if s.Visibility < 5000 {
		factors = append(factors, "Poor Visibility")
	}
	if s.Humidity > 85 {
		factors = append(factors, "High Humidity")
	}
	return factors
}
