package risk

import (
	"testing"

	"RiskPulse/internal/domain/models"
)

func TestStockScorePositiveAverage(t *testing.T) {
	if got := StockScore([]float64{5.0}); got != 0 {
		t.Fatalf("positive average must yield 0, got %v", got)
	}
	if got := StockScore([]float64{2.0, -1.0}); got != 0 {
		t.Fatalf("net positive average must yield 0, got %v", got)
	}
}

func TestStockScoreNegativeAverage(t *testing.T) {
	if got := StockScore([]float64{-10.0}); got != 3.0 {
		t.Fatalf("avg -10: want 3.0, got %v", got)
	}
	// no upper clamp: a severe sell-off exceeds the nominal ceiling
	if got := StockScore([]float64{-20.0}); got != 6.0 {
		t.Fatalf("avg -20: want 6.0 (unclamped), got %v", got)
	}
}

func TestStockScoreEmpty(t *testing.T) {
	if got := StockScore(nil); got != 0 {
		t.Fatalf("empty input must yield 0, got %v", got)
	}
}

func TestStockRiskRating(t *testing.T) {
	cases := []struct {
		change float64
		want   models.Severity
	}{
		{6.0, models.SeverityHigh},
		{-5.5, models.SeverityHigh},
		{3.0, models.SeverityMedium},
		{-2.1, models.SeverityMedium},
		{1.9, models.SeverityLow},
		{0, models.SeverityLow},
	}
	for _, c := range cases {
		if got := StockRiskRating(c.change); got != c.want {
			t.Fatalf("change %v: want %v, got %v", c.change, c.want, got)
		}
	}
}

func TestTrafficScore(t *testing.T) {
	if got := TrafficScore(0); got != 0 {
		t.Fatalf("0 incidents: want 0, got %v", got)
	}
	if got := TrafficScore(4); got != 2.0 {
		t.Fatalf("4 incidents: want 2.0, got %v", got)
	}
	if got := TrafficScore(10); got != 3.0 {
		t.Fatalf("10 incidents: want 3.0 (clamped), got %v", got)
	}
}

func TestCompositeAllMaxed(t *testing.T) {
	// weather 10, stock 3, traffic 3 -> 10*0.4 + 3*0.3 + 3*0.3 = 5.8 -> HIGH
	w := models.WeatherSignal{
		Temperature: -40,
		Condition:   "tornado",
		WindSpeed:   30,
		Visibility:  100,
	}
	a := Composite(&w, []float64{-10.0}, 10, ProfileBaseline)
	if a.CompositeScore != 5.8 {
		t.Fatalf("composite: want 5.8, got %v", a.CompositeScore)
	}
	if a.Level != models.LevelHigh {
		t.Fatalf("level: want HIGH, got %v", a.Level)
	}
	if a.WeatherComponent != 4.0 || a.StockComponent != 0.9 || a.TrafficComponent != 0.9 {
		t.Fatalf("unexpected components: %v %v %v", a.WeatherComponent, a.StockComponent, a.TrafficComponent)
	}
	if len(a.WeatherFactors) == 0 {
		t.Fatal("severe weather should name risk factors")
	}
}

func TestCompositeIsSumOfComponents(t *testing.T) {
	w := models.WeatherSignal{Temperature: -5, Condition: "Snow", WindSpeed: 12, Visibility: 4000}
	a := Composite(&w, []float64{-4.0, -2.0}, 3, ProfileBaseline)
	sum := a.WeatherComponent + a.StockComponent + a.TrafficComponent
	if diff := a.CompositeScore - sum; diff > 0.011 || diff < -0.011 {
		t.Fatalf("composite %v should equal component sum %v", a.CompositeScore, sum)
	}
}

func TestCompositeNilWeather(t *testing.T) {
	a := Composite(nil, []float64{-10.0}, 4, ProfileBaseline)
	if a.WeatherComponent != 0 {
		t.Fatalf("nil weather: want component 0, got %v", a.WeatherComponent)
	}
	if a.CompositeScore != 1.5 {
		t.Fatalf("composite: want 1.5, got %v", a.CompositeScore)
	}
}

func TestClassifyLevelBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  models.RiskLevel
	}{
		{7.0, models.LevelCritical},
		{6.99, models.LevelHigh},
		{5.0, models.LevelHigh},
		{4.99, models.LevelModerate},
		{3.0, models.LevelModerate},
		{2.99, models.LevelLow},
		{1.0, models.LevelLow},
		{0.5, models.LevelMinimal},
		{-1.0, models.LevelMinimal}, // total over all reals
		{12.0, models.LevelCritical},
	}
	for _, c := range cases {
		if got := ClassifyLevel(c.score); got != c.want {
			t.Fatalf("score %v: want %v, got %v", c.score, c.want, got)
		}
	}
}

func TestRecommendationsTiers(t *testing.T) {
	if got := Recommendations(8); len(got) != 4 || got[0] != "Deploy additional claims adjusters" {
		t.Fatalf("critical tier: got %v", got)
	}
	if got := Recommendations(5.5); len(got) != 3 || got[0] != "Monitor weather conditions closely" {
		t.Fatalf("high tier: got %v", got)
	}
	if got := Recommendations(3.2); len(got) != 2 {
		t.Fatalf("moderate tier: got %v", got)
	}
	if got := Recommendations(0.2); len(got) != 1 || got[0] != "Normal operations" {
		t.Fatalf("minimal tier: got %v", got)
	}
}
