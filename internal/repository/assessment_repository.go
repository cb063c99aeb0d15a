package repository

import (
	"context"
	"database/sql"
	"fmt"

	"RiskPulse/internal/domain/models"
	"RiskPulse/internal/domain/repository"
	pkgkafka "RiskPulse/pkg/kafka"
)

// ClickHouseStore implements AssessmentStore for ClickHouse.
type ClickHouseStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseStore creates ClickHouse assessment storage.
func NewClickHouseStore(db *sql.DB, table string) repository.AssessmentStore {
	return &ClickHouseStore{db: db, table: table}
}

// Schema returns the DDL for the assessment history table.
func Schema(table string) []string {
	return []string{fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		ts DateTime64(3),
		composite_score Float64,
		weather_component Float64,
		stock_component Float64,
		traffic_component Float64,
		level LowCardinality(String),
		recommendations Array(String)
	) ENGINE = MergeTree() ORDER BY ts`, table)}
}

func (s *ClickHouseStore) Store(ctx context.Context, a models.RiskAssessment) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, composite_score, weather_component, stock_component, traffic_component, level, recommendations) VALUES (?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		a.Timestamp,
		a.CompositeScore,
		a.WeatherComponent,
		a.StockComponent,
		a.TrafficComponent,
		string(a.Level),
		a.Recommendations,
	)
	return err
}

func (s *ClickHouseStore) Latest(ctx context.Context, limit int) ([]models.RiskAssessment, error) {
	q := fmt.Sprintf("SELECT ts, composite_score, weather_component, stock_component, traffic_component, level, recommendations FROM %s ORDER BY ts DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RiskAssessment
	for rows.Next() {
		var a models.RiskAssessment
		var level string
		if err := rows.Scan(&a.Timestamp, &a.CompositeScore, &a.WeatherComponent, &a.StockComponent, &a.TrafficComponent, &level, &a.Recommendations); err != nil {
			return nil, err
		}
		a.Level = models.RiskLevel(level)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *ClickHouseStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseStore) Close() error {
	return nil // Managed by pkg
}

// KafkaPublisher implements Publisher for Kafka. Messages are keyed by risk
// level so a partition-per-level consumer sees ordered history.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, a models.RiskAssessment) error {
	return p.producer.Publish(ctx, p.topic, []byte(a.Level), map[string]interface{}{
		"timestamp":         a.Timestamp,
		"composite_score":   a.CompositeScore,
		"weather_component": a.WeatherComponent,
		"stock_component":   a.StockComponent,
		"traffic_component": a.TrafficComponent,
		"level":             a.Level,
		"recommendations":   a.Recommendations,
	})
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
