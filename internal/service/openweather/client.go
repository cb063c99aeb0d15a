package openweather

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"RiskPulse/internal/domain/models"
	drepo "RiskPulse/internal/domain/repository"
	"RiskPulse/internal/services/risk"
	"RiskPulse/pkg/config"
	xhttp "RiskPulse/pkg/http"
)

// Client implements a WeatherSource backed by the OpenWeatherMap REST API.
type Client struct {
	apiKey    string
	baseURL   string
	districts []config.District
	forecast  bool
	profile   risk.Profile
	http      *xhttp.Client
}

// New creates a new OpenWeatherMap WeatherSource.
func New(cfg *config.Config) drepo.WeatherSource {
	timeout := cfg.OpenWeather.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := cfg.OpenWeather.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	return &Client{
		apiKey:    cfg.OpenWeather.APIKey,
		baseURL:   baseURL,
		districts: cfg.OpenWeather.Districts,
		forecast:  cfg.OpenWeather.Forecast,
		profile:   risk.ParseProfile(cfg.Collector.Profile),
		http:      xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type owMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
	Pressure  int     `json:"pressure"`
}

type owWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type owWind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type owClouds struct {
	All int `json:"all"`
}

type owCurrentResponse struct {
	Main       owMain      `json:"main"`
	Weather    []owWeather `json:"weather"`
	Wind       *owWind     `json:"wind"`
	Clouds     owClouds    `json:"clouds"`
	Visibility *int        `json:"visibility"`
	Dt         int64       `json:"dt"`
}

type owForecastEntry struct {
	Dt         int64       `json:"dt"`
	Main       owMain      `json:"main"`
	Weather    []owWeather `json:"weather"`
	Wind       *owWind     `json:"wind"`
	Visibility *int        `json:"visibility"`
	Pop        float64     `json:"pop"`
}

type owForecastResponse struct {
	List []owForecastEntry `json:"list"`
}

// Current fetches one observation per configured district.
// A failed district is skipped; the call only errors when every district fails.
func (c *Client) Current(ctx context.Context) ([]models.WeatherSignal, error) {
	out := make([]models.WeatherSignal, 0, len(c.districts))
	var lastErr error

	for _, d := range c.districts {
		var resp owCurrentResponse
		if err := c.get(ctx, "/weather", d, &resp); err != nil {
			lastErr = fmt.Errorf("district %s: %w", d.Name, err)
			continue
		}
		out = append(out, c.toSignal(d, resp))
	}

	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

// Forecast fetches the 5-day forecast per district when enabled.
func (c *Client) Forecast(ctx context.Context) ([]models.WeatherForecastPoint, error) {
	if !c.forecast {
		return nil, nil
	}

	var out []models.WeatherForecastPoint
	var lastErr error

	for _, d := range c.districts {
		var resp owForecastResponse
		if err := c.get(ctx, "/forecast", d, &resp); err != nil {
			lastErr = fmt.Errorf("district %s: %w", d.Name, err)
			continue
		}
		// 4 entries per day, next 5 days
		entries := resp.List
		if len(entries) > 20 {
			entries = entries[:20]
		}
		for _, e := range entries {
			out = append(out, c.toForecastPoint(d, e))
		}
	}

	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, d config.District, dest interface{}) error {
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + path,
		QueryParams: map[string][]string{
			"lat":   {strconv.FormatFloat(d.Lat, 'f', 4, 64)},
			"lon":   {strconv.FormatFloat(d.Lon, 'f', 4, 64)},
			"appid": {c.apiKey},
			"units": {"metric"},
		},
	}, dest)
	if err != nil {
		return fmt.Errorf("openweather get %s: %w", path, err)
	}
	return nil
}

func (c *Client) toSignal(d config.District, r owCurrentResponse) models.WeatherSignal {
	s := models.WeatherSignal{
		District:    d.Name,
		Latitude:    d.Lat,
		Longitude:   d.Lon,
		Temperature: r.Main.Temp,
		FeelsLike:   r.Main.FeelsLike,
		Humidity:    r.Main.Humidity,
		Pressure:    r.Main.Pressure,
		Cloudiness:  r.Clouds.All,
		Visibility:  10000, // not reported means unrestricted
		ObservedAt:  time.Unix(r.Dt, 0),
	}
	if len(r.Weather) > 0 {
		s.Condition = r.Weather[0].Main
		s.Description = r.Weather[0].Description
	}
	if r.Wind != nil {
		s.WindSpeed = r.Wind.Speed
		s.WindDeg = r.Wind.Deg
	}
	if r.Visibility != nil {
		s.Visibility = *r.Visibility
	}
	return s
}

func (c *Client) toForecastPoint(d config.District, e owForecastEntry) models.WeatherForecastPoint {
	p := models.WeatherForecastPoint{
		District:         d.Name,
		ForecastTime:     time.Unix(e.Dt, 0),
		Temperature:      e.Main.Temp,
		Humidity:         e.Main.Humidity,
		Pressure:         e.Main.Pressure,
		Visibility:       10000,
		PrecipitationPct: e.Pop * 100,
	}
	if len(e.Weather) > 0 {
		p.Condition = e.Weather[0].Main
		p.Description = e.Weather[0].Description
	}
	if e.Wind != nil {
		p.WindSpeed = e.Wind.Speed
	}
	if e.Visibility != nil {
		p.Visibility = *e.Visibility
	}
	p.RiskScore = risk.WeatherScoreFor(models.WeatherSignal{
		Temperature: p.Temperature,
		Condition:   p.Condition,
		WindSpeed:   p.WindSpeed,
		Visibility:  p.Visibility,
		Humidity:    p.Humidity,
		Pressure:    p.Pressure,
	}, c.profile)
	return p
}

var _ drepo.WeatherSource = (*Client)(nil)
