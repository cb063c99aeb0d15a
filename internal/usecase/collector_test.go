package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"RiskPulse/internal/domain/models"
	"RiskPulse/pkg/logger"
)

type fakeWeather struct {
	signals []models.WeatherSignal
	err     error
}

func (f *fakeWeather) Current(context.Context) ([]models.WeatherSignal, error) {
	return f.signals, f.err
}

func (f *fakeWeather) Forecast(context.Context) ([]models.WeatherForecastPoint, error) {
	return nil, nil
}

type fakeQuotes struct {
	quotes []models.StockQuote
	err    error
}

func (f *fakeQuotes) Quotes(context.Context) ([]models.StockQuote, error) {
	return f.quotes, f.err
}

type fakeIncidents struct {
	incidents []models.TrafficIncident
	err       error
}

func (f *fakeIncidents) Incidents(context.Context) ([]models.TrafficIncident, error) {
	return f.incidents, f.err
}

type fakeExporter struct {
	mu   sync.Mutex
	got  []*models.CollectionResult
	fail error
}

func (f *fakeExporter) Export(_ context.Context, r *models.CollectionResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.got = append(f.got, r)
	return nil
}

type fakePublisher struct {
	published []models.RiskAssessment
	fail      error
}

func (f *fakePublisher) Publish(_ context.Context, a models.RiskAssessment) error {
	if f.fail != nil {
		return f.fail
	}
	f.published = append(f.published, a)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeStore struct {
	stored []models.RiskAssessment
}

func (f *fakeStore) Store(_ context.Context, a models.RiskAssessment) error {
	f.stored = append(f.stored, a)
	return nil
}

func (f *fakeStore) Latest(context.Context, int) ([]models.RiskAssessment, error) {
	return f.stored, nil
}

func (f *fakeStore) Health(context.Context) error { return nil }
func (f *fakeStore) Close() error                 { return nil }

type fakeMetrics struct {
	mu     sync.Mutex
	cycles map[string]int
	errs   map[string]int
	score  float64
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{cycles: map[string]int{}, errs: map[string]int{}}
}

func (m *fakeMetrics) RecordCycle(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycles[status]++
}

func (m *fakeMetrics) RecordLatency(string, float64) {}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[kind]++
}

func (m *fakeMetrics) RecordCompositeScore(score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
}

func (m *fakeMetrics) RecordIncidentCount(int) {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func snowSignal() models.WeatherSignal {
	return models.WeatherSignal{
		District:    "Downtown",
		Temperature: -15,
		Condition:   "Snow",
		WindSpeed:   12,
		Visibility:  4000,
		ObservedAt:  time.Now(),
	}
}

func TestCollectFullCycle(t *testing.T) {
	exp := &fakeExporter{}
	metrics := newFakeMetrics()
	proc := NewProcessor(exp, nil, nil, metrics, "file")
	c := NewCollector(
		&fakeWeather{signals: []models.WeatherSignal{snowSignal()}},
		&fakeQuotes{quotes: []models.StockQuote{{Symbol: "IFC.TO", ChangePercent: -3.0}}},
		&fakeIncidents{incidents: make([]models.TrafficIncident, 4)},
		proc, metrics, testLogger(t), "baseline",
	)

	res, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	// weather: snow 3.0 + temp<-10 +2 + wind>10 +1 + vis<5000 +1 = 7.0
	// composite: 7.0*0.4 + 0.9*0.3 + 2.0*0.3 = 3.67 -> MODERATE
	if res.Assessment.CompositeScore != 3.67 {
		t.Fatalf("composite: want 3.67, got %v", res.Assessment.CompositeScore)
	}
	if res.Assessment.Level != models.LevelModerate {
		t.Fatalf("level: want MODERATE, got %v", res.Assessment.Level)
	}
	if len(exp.got) != 1 {
		t.Fatalf("exporter should receive one result, got %d", len(exp.got))
	}
	if metrics.cycles["ok"] != 1 {
		t.Fatalf("cycle status: %v", metrics.cycles)
	}
	if metrics.score != 3.67 {
		t.Fatalf("score gauge: got %v", metrics.score)
	}
}

func TestCollectFailedSourcesScoreAsAbsent(t *testing.T) {
	exp := &fakeExporter{}
	metrics := newFakeMetrics()
	proc := NewProcessor(exp, nil, nil, metrics, "file")
	c := NewCollector(
		&fakeWeather{err: errors.New("upstream down")},
		&fakeQuotes{err: errors.New("throttled")},
		&fakeIncidents{incidents: make([]models.TrafficIncident, 2)},
		proc, metrics, testLogger(t), "baseline",
	)

	res, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect should survive source failures: %v", err)
	}
	if res.Assessment.WeatherComponent != 0 || res.Assessment.StockComponent != 0 {
		t.Fatalf("failed sources must score 0, got %+v", res.Assessment)
	}
	// traffic only: 1.0*0.3
	if res.Assessment.CompositeScore != 0.3 {
		t.Fatalf("composite: want 0.3, got %v", res.Assessment.CompositeScore)
	}
	if metrics.errs["weather"] != 1 || metrics.errs["stocks"] != 1 {
		t.Fatalf("source errors not recorded: %v", metrics.errs)
	}
}

func TestCollectExportFailureFailsCycle(t *testing.T) {
	exp := &fakeExporter{fail: errors.New("disk full")}
	metrics := newFakeMetrics()
	proc := NewProcessor(exp, nil, nil, metrics, "file")
	c := NewCollector(
		&fakeWeather{signals: []models.WeatherSignal{snowSignal()}},
		&fakeQuotes{}, &fakeIncidents{},
		proc, metrics, testLogger(t), "baseline",
	)

	if _, err := c.Collect(context.Background()); err == nil {
		t.Fatalf("expected export failure to surface")
	}
	if metrics.cycles["error"] != 1 {
		t.Fatalf("cycle status: %v", metrics.cycles)
	}
}

func TestProcessorRoutesKafka(t *testing.T) {
	exp := &fakeExporter{}
	pub := &fakePublisher{}
	p := NewProcessor(exp, pub, nil, newFakeMetrics(), "kafka")

	res := &models.CollectionResult{
		Timestamp:  time.Now(),
		Assessment: models.RiskAssessment{CompositeScore: 2.5, Level: models.LevelLow},
	}
	if err := p.Process(context.Background(), res); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(pub.published) != 1 || len(exp.got) != 1 {
		t.Fatalf("kafka backend must publish and still export: pub=%d exp=%d", len(pub.published), len(exp.got))
	}
}

func TestProcessorRoutesClickhouse(t *testing.T) {
	exp := &fakeExporter{}
	store := &fakeStore{}
	p := NewProcessor(exp, nil, store, newFakeMetrics(), "clickhouse")

	res := &models.CollectionResult{
		Timestamp:  time.Now(),
		Assessment: models.RiskAssessment{CompositeScore: 6.1, Level: models.LevelHigh},
	}
	if err := p.Process(context.Background(), res); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(store.stored) != 1 {
		t.Fatalf("clickhouse backend must store the assessment")
	}
}

func TestProcessorUnknownBackend(t *testing.T) {
	p := NewProcessor(&fakeExporter{}, nil, nil, newFakeMetrics(), "postgres")
	res := &models.CollectionResult{Timestamp: time.Now()}
	if err := p.Process(context.Background(), res); err == nil {
		t.Fatalf("expected unknown backend error")
	}
}
