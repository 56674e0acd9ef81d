package usecase

import (
	"context"

	"flighthours-service/internal/domain/entity"
	"flighthours-service/internal/domain/repository"
)

// ReportPublisher delivers a computed output to every configured sink
type ReportPublisher interface {
	// Register adds a sink
	Register(sink repository.ReportRepository)

	// Publish saves the output to every sink and joins their errors
	Publish(ctx context.Context, output *entity.Output) error
}
