package repository

import (
	"context"

	"flighthours-service/internal/domain/entity"
)

// RunRepository records processing runs
type RunRepository interface {
	Record(ctx context.Context, run *entity.ProcessingRun) error
}
