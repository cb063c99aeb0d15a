package repository

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"RiskPulse/internal/domain/models"
	"RiskPulse/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func sampleResult() *models.CollectionResult {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return &models.CollectionResult{
		Timestamp: ts,
		Weather: []models.WeatherSignal{{
			District: "Downtown", Temperature: -12.5, Condition: "Snow",
			WindSpeed: 11, Visibility: 4000, Humidity: 80, Pressure: 1008,
			ObservedAt: ts,
		}},
		Quotes: []models.StockQuote{{
			Symbol: "IFC.TO", CompanyName: "Intact Financial Corporation",
			Price: 97.5, Change: -2.5, ChangePercent: -2.5, Volume: 125000,
			RiskRating: models.SeverityMedium,
		}},
		Incidents: []models.TrafficIncident{{
			ID: "MTL_20260314_001", Location: "Highway 40",
			IncidentType: "Accident", Severity: models.SeverityHigh,
			Description: "Multi-vehicle collision", Status: "Active",
		}},
		Assessment: models.RiskAssessment{
			Timestamp:        ts,
			CompositeScore:   3.67,
			WeatherComponent: 2.8,
			StockComponent:   0.27,
			TrafficComponent: 0.6,
			Level:            models.LevelModerate,
			Recommendations:  []string{"Standard monitoring procedures", "Review daily risk assessment"},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestExportWritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	exp, err := NewFileExporter(dir, true, testLogger(t))
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}

	res := sampleResult()
	if err := exp.Export(context.Background(), res); err != nil {
		t.Fatalf("export: %v", err)
	}

	stamp := "20260314_093000"
	for _, name := range []string{
		"weather_data_" + stamp + ".csv",
		"stock_data_" + stamp + ".csv",
		"traffic_data_" + stamp + ".csv",
		"risk_assessment_" + stamp + ".csv",
		"riskpulse_combined_" + stamp + ".csv",
		"riskpulse_latest.csv",
		"riskpulse_" + stamp + ".json",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing export file %s: %v", name, err)
		}
	}
}

func TestExportAssessmentContent(t *testing.T) {
	dir := t.TempDir()
	exp, err := NewFileExporter(dir, false, testLogger(t))
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}
	res := sampleResult()
	if err := exp.Export(context.Background(), res); err != nil {
		t.Fatalf("export: %v", err)
	}

	rows := readCSV(t, filepath.Join(dir, "risk_assessment_20260314_093000.csv"))
	if len(rows) != 2 {
		t.Fatalf("want header + 1 row, got %d rows", len(rows))
	}
	row := rows[1]
	if row[1] != "3.67" {
		t.Fatalf("composite column: got %q", row[1])
	}
	if row[5] != "MODERATE" {
		t.Fatalf("level column: got %q", row[5])
	}
	if row[6] != "Standard monitoring procedures; Review daily risk assessment" {
		t.Fatalf("recommendations column: got %q", row[6])
	}
}

func TestExportLatestTracksNewestCycle(t *testing.T) {
	dir := t.TempDir()
	exp, err := NewFileExporter(dir, false, testLogger(t))
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}

	first := sampleResult()
	if err := exp.Export(context.Background(), first); err != nil {
		t.Fatalf("first export: %v", err)
	}

	second := sampleResult()
	second.Timestamp = second.Timestamp.Add(time.Hour)
	second.Assessment.CompositeScore = 5.1
	if err := exp.Export(context.Background(), second); err != nil {
		t.Fatalf("second export: %v", err)
	}

	rows := readCSV(t, filepath.Join(dir, "riskpulse_latest.csv"))
	if rows[1][1] != "5.1" {
		t.Fatalf("latest should hold newest composite, got %q", rows[1][1])
	}
	if rows[1][9] != "20260314_103000" {
		t.Fatalf("latest stamp: got %q", rows[1][9])
	}
}

func TestExportSkipsEmptySources(t *testing.T) {
	dir := t.TempDir()
	exp, err := NewFileExporter(dir, false, testLogger(t))
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}
	res := sampleResult()
	res.Weather = nil
	res.Quotes = nil
	if err := exp.Export(context.Background(), res); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "weather_data_20260314_093000.csv")); !os.IsNotExist(err) {
		t.Fatalf("empty weather should not produce a file")
	}
	if _, err := os.Stat(filepath.Join(dir, "riskpulse_latest.csv")); err != nil {
		t.Fatalf("combined file must always be written: %v", err)
	}
}

func TestExportJSONDocument(t *testing.T) {
	dir := t.TempDir()
	exp, err := NewFileExporter(dir, true, testLogger(t))
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}
	res := sampleResult()
	if err := exp.Export(context.Background(), res); err != nil {
		t.Fatalf("export: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "riskpulse_20260314_093000.json"))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var got models.CollectionResult
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Assessment.CompositeScore != 3.67 {
		t.Fatalf("json composite: got %v", got.Assessment.CompositeScore)
	}
	if len(got.Incidents) != 1 {
		t.Fatalf("json incidents: got %d", len(got.Incidents))
	}
}
