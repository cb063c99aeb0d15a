package traffic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"RiskPulse/internal/domain/models"
	"RiskPulse/pkg/config"
)

const sampleCSV = `TYPE_INCIDENT,LOCATATION,DESCRIPTION,DATE
Vehicle Collision,Highway 40,Multi-vehicle collision,2025-03-01
Travaux routiers,Rue Sherbrooke,Lane closed for road work,2025-03-01
Congestion,Pont Jacques-Cartier,Heavy traffic,2025-03-02
`

func TestParseCSV(t *testing.T) {
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	got, err := ParseCSV([]byte(sampleCSV), 20, now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 incidents, got %d", len(got))
	}
	if got[0].Severity != models.SeverityHigh {
		t.Fatalf("collision should classify High, got %v", got[0].Severity)
	}
	if got[1].Severity != models.SeverityMedium {
		t.Fatalf("travaux should classify Medium, got %v", got[1].Severity)
	}
	if got[2].Severity != models.SeverityLow {
		t.Fatalf("congestion should classify Low, got %v", got[2].Severity)
	}
	if got[0].Location != "Highway 40" {
		t.Fatalf("misspelled LOCATATION header should still map, got %q", got[0].Location)
	}
	if got[0].ID != "MTL_20250302_000" {
		t.Fatalf("unexpected incident id %q", got[0].ID)
	}
}

func TestParseCSVMaxRows(t *testing.T) {
	got, err := ParseCSV([]byte(sampleCSV), 2, time.Now())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 incidents, got %d", len(got))
	}
}

func TestParseCSVEmptyFields(t *testing.T) {
	csv := "TYPE_INCIDENT,LOCATION,DESCRIPTION,DATE\n,,,\n"
	got, err := ParseCSV([]byte(csv), 20, time.Now())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 incident, got %d", len(got))
	}
	if got[0].IncidentType != "Traffic Incident" || got[0].Location != "Unknown" {
		t.Fatalf("empty fields should get defaults, got %+v", got[0])
	}
	if got[0].Severity != models.SeverityMedium {
		t.Fatalf("default type should classify Medium, got %v", got[0].Severity)
	}
}

func TestFallbackIncidentIDs(t *testing.T) {
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	got := FallbackIncidents(now)
	if len(got) != 5 {
		t.Fatalf("fallback set should have 5 incidents, got %d", len(got))
	}
	if got[0].ID != "MTL_20250302_001" {
		t.Fatalf("fallback ids start at 001, got %q", got[0].ID)
	}
	if got[4].ID != "MTL_20250302_005" {
		t.Fatalf("fallback ids end at 005, got %q", got[4].ID)
	}
}

func TestIncidentsFromServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Traffic.CSVURL = srv.URL
	src := New(cfg, nil)

	got, err := src.Incidents(context.Background())
	if err != nil {
		t.Fatalf("incidents: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 incidents, got %d", len(got))
	}
}

func TestIncidentsFallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Traffic.CSVURL = srv.URL
	src := New(cfg, nil)

	got, err := src.Incidents(context.Background())
	if err != nil {
		t.Fatalf("incidents: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("fallback set should have 5 incidents, got %d", len(got))
	}
	if got[0].Status != "Active" {
		t.Fatalf("fallback incidents should be Active, got %q", got[0].Status)
	}
}
