package usecase

import (
	"context"
	"fmt"
	"time"

	"RiskPulse/internal/domain/models"
	drepo "RiskPulse/internal/domain/repository"
)

// Processor routes a scored collection result to the configured backend.
// The flat-file exporter always runs; kafka and clickhouse are additive
// sinks selected by backend.
type Processor struct {
	exporter drepo.Exporter
	pub      drepo.Publisher
	store    drepo.AssessmentStore
	metrics  drepo.Metrics
	backend  string
}

// NewProcessor creates a new Processor instance.
func NewProcessor(
	exporter drepo.Exporter,
	pub drepo.Publisher,
	store drepo.AssessmentStore,
	metrics drepo.Metrics,
	backend string,
) *Processor {
	return &Processor{
		exporter: exporter,
		pub:      pub,
		store:    store,
		metrics:  metrics,
		backend:  backend,
	}
}

// Process writes one cycle's result to the export directory and the
// selected backend.
func (p *Processor) Process(ctx context.Context, res *models.CollectionResult) error {
	if res == nil {
		return fmt.Errorf("collection result is nil")
	}

	start := time.Now()

	if err := p.exporter.Export(ctx, res); err != nil {
		p.metrics.RecordError("export")
		return fmt.Errorf("export result: %w", err)
	}

	var err error
	switch p.backend {
	case "file":
		// exporter already ran
	case "kafka":
		err = p.pub.Publish(ctx, res.Assessment)
	case "clickhouse":
		err = p.store.Store(ctx, res.Assessment)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process result: %w", err)
	}

	p.metrics.RecordLatency("process", time.Since(start).Seconds())
	return nil
}

// Close closes underlying sinks if available.
func (p *Processor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
