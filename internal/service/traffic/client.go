package traffic

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"RiskPulse/internal/domain/models"
	drepo "RiskPulse/internal/domain/repository"
	"RiskPulse/internal/services/risk"
	"RiskPulse/pkg/config"
	xhttp "RiskPulse/pkg/http"
	applogger "RiskPulse/pkg/logger"
	"RiskPulse/pkg/util"
)

// Client implements an IncidentSource backed by the Montréal open-data
// incident CSV. When the download or parse fails it serves the static
// fallback set so a cycle always has traffic input.
type Client struct {
	csvURL  string
	maxRows int
	http    *xhttp.Client
	l       *applogger.Logger
}

// New creates a new open-data IncidentSource.
func New(cfg *config.Config, l *applogger.Logger) drepo.IncidentSource {
	timeout := cfg.Traffic.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxRows := cfg.Traffic.MaxRows
	if maxRows <= 0 {
		maxRows = 20
	}
	return &Client{
		csvURL:  cfg.Traffic.CSVURL,
		maxRows: maxRows,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		l:       l,
	}
}

// Incidents downloads and parses the incident CSV, keeping the most recent
// rows. Any failure falls back to the static dataset rather than erroring.
func (c *Client) Incidents(ctx context.Context) ([]models.TrafficIncident, error) {
	if c.csvURL == "" {
		return FallbackIncidents(time.Now()), nil
	}

	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.csvURL,
	}, &body)
	if err != nil {
		if c.l != nil {
			c.l.Warn("traffic csv download failed, using fallback", applogger.Error(err))
		}
		return FallbackIncidents(time.Now()), nil
	}

	incidents, err := ParseCSV(body, c.maxRows, time.Now())
	if err != nil {
		if c.l != nil {
			c.l.Warn("traffic csv parse failed, using fallback", applogger.Error(err))
		}
		return FallbackIncidents(time.Now()), nil
	}
	return incidents, nil
}

// ParseCSV maps incident CSV rows to TrafficIncident records. Column names
// follow the open-data portal export; the dataset historically ships a
// misspelled LOCATATION header, so both spellings are accepted.
func ParseCSV(data []byte, maxRows int, now time.Time) ([]models.TrafficIncident, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToUpper(strings.TrimSpace(col))] = i
	}

	field := func(row []string, names ...string) string {
		for _, n := range names {
			if i, ok := idx[n]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	out := make([]models.TrafficIncident, 0, maxRows)
	for len(out) < maxRows {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// skip malformed rows
			continue
		}

		// severity is classified on the raw field; the display fallback
		// below must not influence it
		incidentType := field(row, "TYPE_INCIDENT")
		severity := risk.ClassifySeverity(incidentType)
		if incidentType == "" {
			incidentType = "Traffic Incident"
		}
		location := field(row, "LOCATION", "LOCATATION")
		if location == "" {
			location = "Unknown"
		}
		description := field(row, "DESCRIPTION")
		if description == "" {
			description = "Traffic incident reported"
		}
		date := field(row, "DATE")
		if date == "" {
			date = now.Format("2006-01-02")
		}

		out = append(out, models.TrafficIncident{
			ID:           fmt.Sprintf("MTL_%s_%03d", now.Format("20060102"), len(out)),
			Location:     location,
			IncidentType: incidentType,
			Severity:     severity,
			Description:  description,
			DateReported: date,
			Status:       "Active",
			ObservedAt:   util.ParseTimeDefault(date, now),
		})
	}

	return out, nil
}

var _ drepo.IncidentSource = (*Client)(nil)
