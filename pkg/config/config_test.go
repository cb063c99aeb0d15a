package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `environment: test
server:
  port: 9090
  read_timeout: 5s
backend:
  type: file
export:
  dir: /tmp/exports
collector:
  interval: 30m
  profile: detailed
openweather:
  api_key: key-a
  districts:
    - name: Downtown
      lat: 45.5017
      lon: -73.5673
alphavantage:
  api_key: key-b
  symbols: [IFC.TO, MFC.TO]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Collector.Interval != 30*time.Minute {
		t.Fatalf("expected 30m interval, got %v", cfg.Collector.Interval)
	}
	if cfg.Collector.Profile != "detailed" {
		t.Fatalf("expected detailed profile, got %q", cfg.Collector.Profile)
	}
	if len(cfg.OpenWeather.Districts) != 1 || cfg.OpenWeather.Districts[0].Name != "Downtown" {
		t.Fatalf("unexpected districts: %+v", cfg.OpenWeather.Districts)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	body := `environment: test
backend:
  type: postgres
export:
  dir: /tmp/exports
openweather:
  districts:
    - name: Downtown
      lat: 45.5
      lon: -73.5
alphavantage:
  symbols: [IFC.TO]
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("expected error for unknown backend type")
	}
}

func TestLoadRejectsEmptyDistricts(t *testing.T) {
	body := `environment: test
backend:
  type: file
export:
  dir: /tmp/exports
alphavantage:
  symbols: [IFC.TO]
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("expected error for empty districts")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "env-key")
	t.Setenv("SYMBOLS", "SLF.TO,POW.TO,GWO.TO")
	t.Setenv("SERVER_PORT", "8181")

	cfg, err := LoadWithEnv(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenWeather.APIKey != "env-key" {
		t.Fatalf("expected env override for api key, got %q", cfg.OpenWeather.APIKey)
	}
	if len(cfg.AlphaVantage.Symbols) != 3 {
		t.Fatalf("expected 3 symbols from env, got %v", cfg.AlphaVantage.Symbols)
	}
	if cfg.Server.Port != 8181 {
		t.Fatalf("expected port override 8181, got %d", cfg.Server.Port)
	}
}
