package repository

import (
	"context"

	"flighthours-service/internal/domain/entity"
)

// ReportRepository persists the computed month reports
type ReportRepository interface {
	// Name identifies the sink in logs and metrics
	Name() string

	// Save replaces any previously stored reports with the given output
	Save(ctx context.Context, output *entity.Output) error
}

// MonthReportRepository reads back stored month reports of one crew member
type MonthReportRepository interface {
	ReportRepository

	// FindByCrewID returns nil without error when nothing is stored for
	// the crew member
	FindByCrewID(ctx context.Context, crewID int64) ([]entity.MonthReport, error)
}
