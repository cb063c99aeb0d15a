package di

import (
	"context"
	"fmt"
	"time"

	"RiskPulse/internal/domain/repository"
	"RiskPulse/internal/handler/api"
	internalrepo "RiskPulse/internal/repository"
	"RiskPulse/internal/service/alphavantage"
	"RiskPulse/internal/service/openweather"
	"RiskPulse/internal/service/traffic"
	"RiskPulse/internal/usecase"
	"RiskPulse/pkg/cache"
	pkgch "RiskPulse/pkg/clickhouse"
	"RiskPulse/pkg/config"
	pkgkafka "RiskPulse/pkg/kafka"
	"RiskPulse/pkg/logger"
	"RiskPulse/pkg/metrics"
	"RiskPulse/pkg/server"
)

// ProvideLogger creates the application logger. Aggregated-log shipping to
// Kafka is attached later, once a producer exists.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	return logger.New(&logger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideQuoteCache builds the quote cache: in-memory by default, layered
// over Redis when enabled.
func ProvideQuoteCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	redis, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redis), nil
}

// ProvideClickHouseClient creates a ClickHouse client and initializes the
// schema. Returns nil unless the clickhouse backend is selected.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Backend.Type != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := append([]string{"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database},
		internalrepo.Schema(cfg.ClickHouse.Database+".assessments")...)
	if err := client.InitSchema(ctx, stmts); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer. Returns nil unless the
// kafka backend or log shipping needs one.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" && cfg.Logging.CollectTopic == "" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAssessmentStore creates the ClickHouse history store, nil for
// other backends.
func ProvideAssessmentStore(chClient *pkgch.Client, cfg *config.Config) repository.AssessmentStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseStore(chClient.DB(), cfg.ClickHouse.Database+".assessments")
}

// ProvideAssessmentPublisher creates the Kafka publisher, nil for other
// backends.
func ProvideAssessmentPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil || cfg.Backend.Type != "kafka" {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideExporter creates the flat-file exporter.
func ProvideExporter(cfg *config.Config, log *logger.Logger) (repository.Exporter, error) {
	return internalrepo.NewFileExporter(cfg.Export.Dir, cfg.Export.JSON, log)
}

// ProvideWeatherSource creates the OpenWeatherMap source.
func ProvideWeatherSource(cfg *config.Config) repository.WeatherSource {
	return openweather.New(cfg)
}

// ProvideQuoteSource creates the Alpha Vantage source.
func ProvideQuoteSource(cfg *config.Config, quoteCache cache.Service) repository.QuoteSource {
	return alphavantage.New(cfg, quoteCache)
}

// ProvideIncidentSource creates the traffic incident source.
func ProvideIncidentSource(cfg *config.Config, log *logger.Logger) repository.IncidentSource {
	return traffic.New(cfg, log)
}

// ProvideProcessor creates the sink router.
func ProvideProcessor(
	exporter repository.Exporter,
	pub repository.Publisher,
	store repository.AssessmentStore,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.Processor {
	return usecase.NewProcessor(exporter, pub, store, m, cfg.Backend.Type)
}

// ProvideCollector creates the collection cycle use case.
func ProvideCollector(
	weather repository.WeatherSource,
	quotes repository.QuoteSource,
	incidents repository.IncidentSource,
	proc *usecase.Processor,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Collector {
	return usecase.NewCollector(weather, quotes, incidents, proc, m, log, cfg.Collector.Profile)
}

// ProvideHandler creates the HTTP API handler.
func ProvideHandler(log *logger.Logger, collector *usecase.Collector, store repository.AssessmentStore) *api.AssessmentEchoHandler {
	return api.NewAssessmentEchoHandler(log, collector, store)
}

// ProvideApp creates the application server. Aggregated-log shipping is
// attached here when a topic and producer are both available.
func ProvideApp(
	cfg *config.Config,
	collector *usecase.Collector,
	handler *api.AssessmentEchoHandler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	log *logger.Logger,
) *server.App {
	if cfg.Logging.CollectTopic != "" && producer != nil {
		interval := cfg.Logging.CollectEvery
		if interval <= 0 {
			interval = 30 * time.Second
		}
		log.AddCollector(&logger.CollectionConfig{
			TimeInterval:   interval,
			CountThreshold: 100,
			Topic:          cfg.Logging.CollectTopic,
			Publisher:      internalrepo.NewLogPublisher(producer),
		})
	}
	return server.New(cfg, collector, handler, chClient, log)
}
