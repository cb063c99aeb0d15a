package repository

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"RiskPulse/internal/domain/models"
	"RiskPulse/internal/domain/repository"
	"RiskPulse/pkg/logger"
)

const exportStamp = "20060102_150405"

// FileExporter writes each cycle's data as CSV files for the reporting
// dashboard: one file per source, a combined row, and a stable
// riskpulse_latest.csv that always holds the newest cycle. A full JSON
// document is written alongside when enabled.
type FileExporter struct {
	dir      string
	withJSON bool
	log      *logger.Logger
}

// NewFileExporter creates the flat-file exporter and its directory tree.
func NewFileExporter(dir string, withJSON bool, log *logger.Logger) (*FileExporter, error) {
	if dir == "" {
		dir = "data/exports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &FileExporter{dir: dir, withJSON: withJSON, log: log}, nil
}

// Export writes one cycle's files. Empty sources are skipped; the
// assessment and combined files are always written.
func (e *FileExporter) Export(ctx context.Context, r *models.CollectionResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stamp := r.Timestamp.Format(exportStamp)

	if len(r.Weather) > 0 {
		if err := e.writeCSV(fmt.Sprintf("weather_data_%s.csv", stamp), weatherHeader, weatherRows(r.Weather)); err != nil {
			return err
		}
	}
	if len(r.Quotes) > 0 {
		if err := e.writeCSV(fmt.Sprintf("stock_data_%s.csv", stamp), stockHeader, stockRows(r.Quotes)); err != nil {
			return err
		}
	}
	if len(r.Incidents) > 0 {
		if err := e.writeCSV(fmt.Sprintf("traffic_data_%s.csv", stamp), trafficHeader, trafficRows(r.Incidents)); err != nil {
			return err
		}
	}

	assessRows := [][]string{assessmentRow(r.Assessment)}
	if err := e.writeCSV(fmt.Sprintf("risk_assessment_%s.csv", stamp), assessmentHeader, assessRows); err != nil {
		return err
	}

	combined := [][]string{combinedRow(r, stamp)}
	if err := e.writeCSV(fmt.Sprintf("riskpulse_combined_%s.csv", stamp), combinedHeader, combined); err != nil {
		return err
	}
	if err := e.writeCSV("riskpulse_latest.csv", combinedHeader, combined); err != nil {
		return err
	}

	if e.withJSON {
		if err := e.writeJSON(fmt.Sprintf("riskpulse_%s.json", stamp), r); err != nil {
			return err
		}
	}

	e.log.Info("cycle exported",
		logger.String("dir", e.dir),
		logger.String("stamp", stamp),
	)
	return nil
}

func (e *FileExporter) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(e.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s rows: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return f.Close()
}

func (e *FileExporter) writeJSON(name string, r *models.CollectionResult) error {
	path := filepath.Join(e.dir, name)
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

var weatherHeader = []string{
	"district", "temperature", "feels_like", "condition", "description",
	"wind_speed", "visibility", "humidity", "pressure", "cloudiness", "observed_at",
}

func weatherRows(signals []models.WeatherSignal) [][]string {
	rows := make([][]string, 0, len(signals))
	for _, s := range signals {
		rows = append(rows, []string{
			s.District,
			ftoa(s.Temperature),
			ftoa(s.FeelsLike),
			s.Condition,
			s.Description,
			ftoa(s.WindSpeed),
			strconv.Itoa(s.Visibility),
			strconv.Itoa(s.Humidity),
			strconv.Itoa(s.Pressure),
			strconv.Itoa(s.Cloudiness),
			s.ObservedAt.Format(time.RFC3339),
		})
	}
	return rows
}

var stockHeader = []string{
	"symbol", "company_name", "price", "change", "change_percent",
	"volume", "previous_close", "latest_trading_day", "volatility", "risk_rating",
}

func stockRows(quotes []models.StockQuote) [][]string {
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, []string{
			q.Symbol,
			q.CompanyName,
			ftoa(q.Price),
			ftoa(q.Change),
			ftoa(q.ChangePercent),
			strconv.FormatInt(q.Volume, 10),
			ftoa(q.PreviousClose),
			q.LatestTradingDay,
			ftoa(q.Volatility),
			string(q.RiskRating),
		})
	}
	return rows
}

var trafficHeader = []string{
	"incident_id", "location", "incident_type", "severity", "description",
	"date_reported", "status",
}

func trafficRows(incidents []models.TrafficIncident) [][]string {
	rows := make([][]string, 0, len(incidents))
	for _, in := range incidents {
		rows = append(rows, []string{
			in.ID,
			in.Location,
			in.IncidentType,
			string(in.Severity),
			in.Description,
			in.DateReported,
			in.Status,
		})
	}
	return rows
}

var assessmentHeader = []string{
	"timestamp", "composite_score", "weather_component", "stock_component",
	"traffic_component", "risk_level", "recommendations",
}

func assessmentRow(a models.RiskAssessment) []string {
	return []string{
		a.Timestamp.Format(time.RFC3339),
		ftoa(a.CompositeScore),
		ftoa(a.WeatherComponent),
		ftoa(a.StockComponent),
		ftoa(a.TrafficComponent),
		string(a.Level),
		strings.Join(a.Recommendations, "; "),
	}
}

var combinedHeader = append(append([]string{}, assessmentHeader...),
	"stock_data_count", "traffic_incidents_count", "data_collection_timestamp")

func combinedRow(r *models.CollectionResult, stamp string) []string {
	return append(assessmentRow(r.Assessment),
		strconv.Itoa(len(r.Quotes)),
		strconv.Itoa(len(r.Incidents)),
		stamp,
	)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var _ repository.Exporter = (*FileExporter)(nil)
