package router

import (
	"context"
	"errors"
	"fmt"

	"flighthours-service/internal/domain/entity"
	"flighthours-service/internal/domain/repository"
	"flighthours-service/pkg/logger"
	"flighthours-service/pkg/metrics"
)

// SinkRouter fans an output out to every registered report sink
type SinkRouter struct {
	sinks   []repository.ReportRepository
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewSinkRouter creates a new sink router
func NewSinkRouter(metrics *metrics.Metrics, logger logger.Logger) *SinkRouter {
	return &SinkRouter{
		sinks:   make([]repository.ReportRepository, 0),
		metrics: metrics,
		logger:  logger,
	}
}

// Register registers a report sink
func (r *SinkRouter) Register(sink repository.ReportRepository) {
	r.sinks = append(r.sinks, sink)
	r.logger.Info("Registered report sink", "sink", sink.Name())
}

// Sinks returns the registered sink names in registration order
func (r *SinkRouter) Sinks() []string {
	names := make([]string, 0, len(r.sinks))
	for _, sink := range r.sinks {
		names = append(names, sink.Name())
	}
	return names
}

// Publish saves the output to every sink. A failing sink does not stop the
// others; all failures are joined into the returned error.
func (r *SinkRouter) Publish(ctx context.Context, output *entity.Output) error {
	var errs []error
	for _, sink := range r.sinks {
		if err := sink.Save(ctx, output); err != nil {
			r.metrics.PersistenceErrors.WithLabelValues(sink.Name()).Inc()
			r.logger.Error("Report sink failed", "sink", sink.Name(), "error", err)
			errs = append(errs, fmt.Errorf("sink %s: %w", sink.Name(), err))
			continue
		}
		r.logger.Info("Reports saved", "sink", sink.Name(), "crew", len(output.Specialists))
	}
	return errors.Join(errs...)
}
