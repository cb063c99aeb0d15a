package alphavantage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"RiskPulse/internal/domain/models"
	"RiskPulse/pkg/cache"
	"RiskPulse/pkg/config"
)

func quoteBody(symbol, price, change, changePct string) string {
	return fmt.Sprintf(`{"Global Quote": {
		"01. symbol": %q,
		"02. open": "100.00", "03. high": "102.00", "04. low": "99.00",
		"05. price": %q, "06. volume": "125000",
		"07. latest trading day": "2026-08-28",
		"08. previous close": "100.00",
		"09. change": %q, "10. change percent": %q
	}}`, symbol, price, change, changePct)
}

func testConfig(url string, symbols []string) *config.Config {
	cfg := &config.Config{}
	cfg.AlphaVantage.APIKey = "demo"
	cfg.AlphaVantage.BaseURL = url
	cfg.AlphaVantage.Symbols = symbols
	cfg.AlphaVantage.CallDelay = time.Millisecond
	cfg.AlphaVantage.QuoteTTL = time.Minute
	return cfg
}

func TestQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("function") != "GLOBAL_QUOTE" {
			http.Error(w, "function", http.StatusBadRequest)
			return
		}
		symbol := r.URL.Query().Get("symbol")
		_, _ = w.Write([]byte(quoteBody(symbol, "97.50", "-2.50", "-2.5000%")))
	}))
	defer srv.Close()

	src := New(testConfig(srv.URL, []string{"IFC.TO", "MFC.TO"}), nil)
	got, err := src.Quotes(context.Background())
	if err != nil {
		t.Fatalf("quotes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(got))
	}
	q := got[0]
	if q.Symbol != "IFC.TO" || q.CompanyName != "Intact Financial Corporation" {
		t.Fatalf("unexpected quote %+v", q)
	}
	if q.Price != 97.50 {
		t.Fatalf("price: got %v", q.Price)
	}
	if q.ChangePercent != -2.5 {
		t.Fatalf("change percent should drop the %% suffix, got %v", q.ChangePercent)
	}
	if q.Volatility != 2.5 {
		t.Fatalf("volatility: got %v", q.Volatility)
	}
	if q.RiskRating != models.SeverityMedium {
		t.Fatalf("risk rating: got %v", q.RiskRating)
	}
}

func TestQuotesSkipsEmptyResponse(t *testing.T) {
	// throttled symbols come back as an empty object
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") == "FFH.TO" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_, _ = w.Write([]byte(quoteBody(r.URL.Query().Get("symbol"), "50.00", "0.50", "1.0000%")))
	}))
	defer srv.Close()

	src := New(testConfig(srv.URL, []string{"FFH.TO", "SLF.TO"}), nil)
	got, err := src.Quotes(context.Background())
	if err != nil {
		t.Fatalf("quotes: %v", err)
	}
	if len(got) != 1 || got[0].Symbol != "SLF.TO" {
		t.Fatalf("expected only SLF.TO, got %+v", got)
	}
}

func TestQuotesErrorWhenAllSymbolsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	src := New(testConfig(srv.URL, []string{"IFC.TO"}), nil)
	if _, err := src.Quotes(context.Background()); err == nil {
		t.Fatalf("expected error when every symbol fails")
	}
}

func TestQuotesUnknownSymbolFallsBackToTicker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(quoteBody("XYZ.TO", "10.00", "0.00", "0.0000%")))
	}))
	defer srv.Close()

	src := New(testConfig(srv.URL, []string{"XYZ.TO"}), nil)
	got, err := src.Quotes(context.Background())
	if err != nil {
		t.Fatalf("quotes: %v", err)
	}
	if got[0].CompanyName != "XYZ.TO" {
		t.Fatalf("unknown symbol should use the ticker as name, got %q", got[0].CompanyName)
	}
}

func TestQuotesCacheHitSkipsRequest(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		_, _ = w.Write([]byte(quoteBody(r.URL.Query().Get("symbol"), "80.00", "4.80", "6.0000%")))
	}))
	defer srv.Close()

	mem := cache.NewMemoryCache()
	src := New(testConfig(srv.URL, []string{"IAG.TO"}), mem)

	first, err := src.Quotes(context.Background())
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := src.Quotes(context.Background())
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Fatalf("expected one upstream call, got %d", n)
	}
	if first[0].Price != second[0].Price {
		t.Fatalf("cached quote mismatch: %v vs %v", first[0].Price, second[0].Price)
	}
	if second[0].RiskRating != models.SeverityHigh {
		t.Fatalf("risk rating: got %v", second[0].RiskRating)
	}
}
