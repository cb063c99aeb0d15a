package usecase

import (
	"context"
	"sync"
	"time"

	"RiskPulse/internal/domain/models"
	drepo "RiskPulse/internal/domain/repository"
	"RiskPulse/internal/services/risk"
	"RiskPulse/pkg/logger"
)

const historyCap = 500

// Collector runs one collection cycle: pull from every upstream source,
// score the composite risk, and hand the result to the processor. A failed
// source is logged and scored as absent rather than failing the cycle.
type Collector struct {
	weather   drepo.WeatherSource
	quotes    drepo.QuoteSource
	incidents drepo.IncidentSource
	proc      *Processor
	metrics   drepo.Metrics
	log       *logger.Logger
	profile   risk.Profile

	mu      sync.RWMutex
	last    *models.CollectionResult
	history []models.RiskAssessment
}

// NewCollector creates a new Collector instance.
func NewCollector(
	weather drepo.WeatherSource,
	quotes drepo.QuoteSource,
	incidents drepo.IncidentSource,
	proc *Processor,
	metrics drepo.Metrics,
	log *logger.Logger,
	profile string,
) *Collector {
	return &Collector{
		weather:   weather,
		quotes:    quotes,
		incidents: incidents,
		proc:      proc,
		metrics:   metrics,
		log:       log,
		profile:   risk.ParseProfile(profile),
	}
}

// Collect executes a full cycle and returns the scored result. The three
// sources are fetched concurrently; the stock source paces itself.
func (c *Collector) Collect(ctx context.Context) (*models.CollectionResult, error) {
	start := time.Now()
	res := &models.CollectionResult{Timestamp: start.UTC()}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		res.Weather = c.fetchWeather(ctx)
		res.Forecast = c.fetchForecast(ctx)
	}()
	go func() {
		defer wg.Done()
		res.Quotes = c.fetchQuotes(ctx)
	}()
	go func() {
		defer wg.Done()
		res.Incidents = c.fetchIncidents(ctx)
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		c.metrics.RecordCycle("cancelled")
		return nil, err
	}

	res.Assessment = c.assess(res)
	c.remember(res)

	c.metrics.RecordCompositeScore(res.Assessment.CompositeScore)
	c.metrics.RecordIncidentCount(len(res.Incidents))

	if err := c.proc.Process(ctx, res); err != nil {
		c.metrics.RecordCycle("error")
		return res, err
	}

	c.metrics.RecordCycle("ok")
	c.log.Info("collection cycle complete",
		logger.Float64("composite_score", res.Assessment.CompositeScore),
		logger.String("risk_level", string(res.Assessment.Level)),
		logger.Int("weather_signals", len(res.Weather)),
		logger.Int("quotes", len(res.Quotes)),
		logger.Int("incidents", len(res.Incidents)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

func (c *Collector) fetchWeather(ctx context.Context) []models.WeatherSignal {
	start := time.Now()
	signals, err := c.weather.Current(ctx)
	c.metrics.RecordLatency("weather", time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordError("weather")
		c.log.Warn("weather fetch failed", logger.Error(err))
		return nil
	}
	return signals
}

func (c *Collector) fetchForecast(ctx context.Context) []models.WeatherForecastPoint {
	points, err := c.weather.Forecast(ctx)
	if err != nil {
		c.metrics.RecordError("forecast")
		c.log.Warn("forecast fetch failed", logger.Error(err))
		return nil
	}
	return points
}

func (c *Collector) fetchQuotes(ctx context.Context) []models.StockQuote {
	start := time.Now()
	quotes, err := c.quotes.Quotes(ctx)
	c.metrics.RecordLatency("stocks", time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordError("stocks")
		c.log.Warn("quote fetch failed", logger.Error(err))
		return nil
	}
	return quotes
}

func (c *Collector) fetchIncidents(ctx context.Context) []models.TrafficIncident {
	start := time.Now()
	incidents, err := c.incidents.Incidents(ctx)
	c.metrics.RecordLatency("traffic", time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordError("traffic")
		c.log.Warn("incident fetch failed", logger.Error(err))
		return nil
	}
	return incidents
}

func (c *Collector) assess(res *models.CollectionResult) models.RiskAssessment {
	var weather *models.WeatherSignal
	if len(res.Weather) > 0 {
		weather = &res.Weather[0]
	}
	changes := make([]float64, 0, len(res.Quotes))
	for _, q := range res.Quotes {
		changes = append(changes, q.ChangePercent)
	}
	a := risk.Composite(weather, changes, len(res.Incidents), c.profile)
	a.Timestamp = res.Timestamp
	return a
}

func (c *Collector) remember(res *models.CollectionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = res
	c.history = append(c.history, res.Assessment)
	if len(c.history) > historyCap {
		c.history = c.history[len(c.history)-historyCap:]
	}
}

// Last returns the most recent cycle's result, or nil before the first
// cycle completes.
func (c *Collector) Last() *models.CollectionResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// History returns up to limit recent assessments, newest first.
func (c *Collector) History(limit int) []models.RiskAssessment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := len(c.history)
	if limit > n {
		limit = n
	}
	out := make([]models.RiskAssessment, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, c.history[i])
	}
	return out
}

// Close releases processor resources.
func (c *Collector) Close() { c.proc.Close() }
