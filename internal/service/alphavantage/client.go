package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"RiskPulse/internal/domain/models"
	drepo "RiskPulse/internal/domain/repository"
	"RiskPulse/internal/services/risk"
	"RiskPulse/pkg/cache"
	"RiskPulse/pkg/config"
	xhttp "RiskPulse/pkg/http"
)

// Tracked Canadian insurance and financial companies.
var companyNames = map[string]string{
	"IFC.TO": "Intact Financial Corporation",
	"FFH.TO": "Fairfax Financial Holdings",
	"MFC.TO": "Manulife Financial Corp",
	"SLF.TO": "Sun Life Financial Inc",
	"POW.TO": "Power Corporation of Canada",
	"GWO.TO": "Great-West Lifeco Inc",
	"IAG.TO": "iA Financial Corporation",
	"HCG.TO": "Home Capital Group Inc",
}

// Client implements a QuoteSource backed by the Alpha Vantage GLOBAL_QUOTE
// endpoint. Calls are paced with a fixed sleep per symbol (free tier allows
// 5 requests per minute) and one attempt each; a quote cache in front keeps
// repeated cycles inside the TTL from burning quota.
type Client struct {
	apiKey    string
	baseURL   string
	symbols   []string
	callDelay time.Duration
	quoteTTL  time.Duration
	http      *xhttp.Client
	cache     cache.Service
}

// New creates a new Alpha Vantage QuoteSource. The cache may be nil.
func New(cfg *config.Config, quoteCache cache.Service) drepo.QuoteSource {
	timeout := cfg.AlphaVantage.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	baseURL := cfg.AlphaVantage.BaseURL
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co/query"
	}
	delay := cfg.AlphaVantage.CallDelay
	if delay <= 0 {
		delay = 12 * time.Second
	}
	return &Client{
		apiKey:    cfg.AlphaVantage.APIKey,
		baseURL:   baseURL,
		symbols:   cfg.AlphaVantage.Symbols,
		callDelay: delay,
		quoteTTL:  cfg.AlphaVantage.QuoteTTL,
		http:      xhttp.NewClient(xhttp.WithTimeout(timeout)),
		cache:     quoteCache,
	}
}

type avGlobalQuote struct {
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

type avQuoteResponse struct {
	GlobalQuote *avGlobalQuote `json:"Global Quote"`
}

// Quotes fetches one quote per tracked symbol, sleeping between calls. A
// symbol without data is skipped (the provider returns an empty object when
// throttled); the call only errors when every symbol fails.
func (c *Client) Quotes(ctx context.Context) ([]models.StockQuote, error) {
	out := make([]models.StockQuote, 0, len(c.symbols))
	var lastErr error

	for i, symbol := range c.symbols {
		if i > 0 {
			select {
			case <-time.After(c.callDelay):
			case <-ctx.Done():
				return out, ctx.Err()
			}
		}

		q, err := c.quote(ctx, symbol)
		if err != nil {
			lastErr = err
			continue
		}
		out = append(out, q)
	}

	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

func (c *Client) quote(ctx context.Context, symbol string) (models.StockQuote, error) {
	if q, ok := c.cached(ctx, symbol); ok {
		return q, nil
	}

	var resp avQuoteResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
		QueryParams: map[string][]string{
			"function": {"GLOBAL_QUOTE"},
			"symbol":   {symbol},
			"apikey":   {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return models.StockQuote{}, fmt.Errorf("alphavantage quote %s: %w", symbol, err)
	}
	if resp.GlobalQuote == nil || resp.GlobalQuote.Price == "" {
		return models.StockQuote{}, fmt.Errorf("alphavantage quote %s: no data", symbol)
	}

	q, err := toQuote(symbol, *resp.GlobalQuote)
	if err != nil {
		return models.StockQuote{}, fmt.Errorf("alphavantage quote %s: %w", symbol, err)
	}

	c.store(ctx, q)
	return q, nil
}

func (c *Client) cached(ctx context.Context, symbol string) (models.StockQuote, bool) {
	if c.cache == nil || c.quoteTTL <= 0 {
		return models.StockQuote{}, false
	}
	var raw string
	if err := c.cache.Get(ctx, cache.GenerateKey("quote", symbol), &raw); err != nil {
		return models.StockQuote{}, false
	}
	var q models.StockQuote
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return models.StockQuote{}, false
	}
	return q, true
}

func (c *Client) store(ctx context.Context, q models.StockQuote) {
	if c.cache == nil || c.quoteTTL <= 0 {
		return
	}
	b, err := json.Marshal(q)
	if err != nil {
		return
	}
	_ = c.cache.Set(ctx, cache.GenerateKey("quote", q.Symbol), string(b), c.quoteTTL)
}

func toQuote(symbol string, g avGlobalQuote) (models.StockQuote, error) {
	price, err := strconv.ParseFloat(g.Price, 64)
	if err != nil {
		return models.StockQuote{}, fmt.Errorf("parse price: %w", err)
	}
	open, _ := strconv.ParseFloat(g.Open, 64)
	high, _ := strconv.ParseFloat(g.High, 64)
	low, _ := strconv.ParseFloat(g.Low, 64)
	prevClose, _ := strconv.ParseFloat(g.PreviousClose, 64)
	change, _ := strconv.ParseFloat(g.Change, 64)
	volume, _ := strconv.ParseInt(g.Volume, 10, 64)

	// provider sends "1.2345%" here
	changePct, err := strconv.ParseFloat(strings.TrimSuffix(g.ChangePercent, "%"), 64)
	if err != nil {
		return models.StockQuote{}, fmt.Errorf("parse change percent: %w", err)
	}

	var volatility float64
	if prevClose != 0 {
		volatility = change / prevClose
		if volatility < 0 {
			volatility = -volatility
		}
		volatility *= 100
	}

	name := companyNames[symbol]
	if name == "" {
		name = symbol
	}

	return models.StockQuote{
		Symbol:           symbol,
		CompanyName:      name,
		Open:             open,
		High:             high,
		Low:              low,
		Price:            price,
		Volume:           volume,
		LatestTradingDay: g.LatestTradingDay,
		PreviousClose:    prevClose,
		Change:           change,
		ChangePercent:    changePct,
		Volatility:       volatility,
		RiskRating:       risk.StockRiskRating(changePct),
		FetchedAt:        time.Now(),
	}, nil
}

var _ drepo.QuoteSource = (*Client)(nil)
