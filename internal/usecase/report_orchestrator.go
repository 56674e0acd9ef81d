package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flighthours-service/internal/domain/entity"
	"flighthours-service/internal/domain/repository"
	"flighthours-service/pkg/logger"
	"flighthours-service/pkg/metrics"

	"github.com/google/uuid"
)

// RunResult is the outcome of one orchestrated run
type RunResult struct {
	RunID       string
	Output      *entity.Output
	Diagnostics entity.Diagnostics
	Duration    time.Duration
}

// ReportOrchestrator loads a roster, computes reports and publishes them
type ReportOrchestrator struct {
	rosterRepo repository.RosterRepository
	runRepo    repository.RunRepository
	processor  *FlightTimeProcessor
	publisher  ReportPublisher
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewReportOrchestrator creates a new orchestrator. runRepo may be nil.
func NewReportOrchestrator(
	rosterRepo repository.RosterRepository,
	runRepo repository.RunRepository,
	processor *FlightTimeProcessor,
	publisher ReportPublisher,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *ReportOrchestrator {
	return &ReportOrchestrator{
		rosterRepo: rosterRepo,
		runRepo:    runRepo,
		processor:  processor,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Run executes one load-compute-publish cycle. A load failure returns no
// result. A publish failure returns the computed result together with the
// error, so callers keep the in-memory reports.
func (o *ReportOrchestrator) Run(ctx context.Context) (*RunResult, error) {
	startedAt := time.Now()
	runID := uuid.NewString()
	log := o.logger.With("runID", runID)
	log.Info("Starting report run")

	roster, err := o.rosterRepo.Load(ctx)
	if err != nil {
		o.metrics.PersistenceErrors.WithLabelValues("roster").Inc()
		o.recordRun(ctx, log, &entity.ProcessingRun{
			RunID:       runID,
			StartedAt:   startedAt,
			FinishedAt:  time.Now(),
			Status:      entity.RunStatusFailed,
			ErrorDetail: err.Error(),
		})
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	output, diagnostics := o.processor.Process(roster)
	result := &RunResult{
		RunID:       runID,
		Output:      output,
		Diagnostics: diagnostics,
	}

	publishErr := o.publisher.Publish(ctx, output)
	if publishErr != nil {
		log.Error("Failed to publish reports", "error", publishErr)
	}

	result.Duration = time.Since(startedAt)
	o.metrics.RunDuration.Observe(result.Duration.Seconds())

	run := &entity.ProcessingRun{
		RunID:       runID,
		StartedAt:   startedAt,
		FinishedAt:  time.Now(),
		Status:      entity.RunStatusCompleted,
		CrewCount:   len(output.Specialists),
		FlightCount: len(roster.Flights),
		ReportCount: countReports(output),
		Diagnostics: diagnostics.Messages(),
	}
	if publishErr != nil {
		run.Status = entity.RunStatusFailed
		run.ErrorDetail = publishErr.Error()
	}
	o.recordRun(ctx, log, run)

	log.Info("Report run finished",
		"crew", run.CrewCount,
		"reports", run.ReportCount,
		"rejected", len(diagnostics),
		"duration", result.Duration)

	if publishErr != nil {
		return result, fmt.Errorf("failed to publish reports: %w", publishErr)
	}
	return result, nil
}

func (o *ReportOrchestrator) recordRun(ctx context.Context, log logger.Logger, run *entity.ProcessingRun) {
	if o.runRepo == nil {
		return
	}
	if err := o.runRepo.Record(ctx, run); err != nil {
		o.metrics.PersistenceErrors.WithLabelValues("runs").Inc()
		log.Error("Failed to record processing run", "error", err)
	}
}

func countReports(output *entity.Output) int {
	n := 0
	for _, member := range output.Specialists {
		n += len(member.Reports)
	}
	return n
}

// IsPersistenceError reports whether err came from a storage adapter
func IsPersistenceError(err error) bool {
	return errors.Is(err, repository.ErrPersistence)
}
