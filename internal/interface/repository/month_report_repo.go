package repository

import (
	"context"
	"fmt"
	"time"

	"flighthours-service/internal/domain/entity"
	"flighthours-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormMonthReportRepository implements the MonthReportRepository interface
type GormMonthReportRepository struct {
	db *gorm.DB
}

// MonthReports GORM model for database mapping
type MonthReports struct {
	gorm.Model
	CrewID              int64     `gorm:"column:crew_id;uniqueIndex:idx_crew_month"`
	FullName            string    `gorm:"column:full_name"`
	Month               time.Time `gorm:"column:month;uniqueIndex:idx_crew_month"`
	TotalFlightHours    int64     `gorm:"column:total_flight_hours"`
	TotalFlightsInMonth int64     `gorm:"column:total_flights_in_month"`
	ExceedsMonthlyLimit bool      `gorm:"column:exceeds_monthly_limit"`
	ExceedsWeeklyLimit  bool      `gorm:"column:exceeds_weekly_limit"`
	ExceedsDailyLimit   bool      `gorm:"column:exceeds_daily_limit"`
}

// TableName overrides the default table name
func (MonthReports) TableName() string {
	return "crew_month_reports"
}

// NewGormMonthReportRepository creates a new GORM month report repository
// and migrates its table
func NewGormMonthReportRepository(db *gorm.DB) (repository.MonthReportRepository, error) {
	if err := db.AutoMigrate(&MonthReports{}); err != nil {
		return nil, fmt.Errorf("failed to migrate month reports: %w", err)
	}
	return &GormMonthReportRepository{
		db: db,
	}, nil
}

// Name identifies the sink
func (r *GormMonthReportRepository) Name() string {
	return "sql"
}

// Save replaces the whole table content with the output in one transaction
func (r *GormMonthReportRepository) Save(ctx context.Context, output *entity.Output) error {
	var rows []MonthReports
	for _, member := range output.Specialists {
		for _, report := range member.Reports {
			rows = append(rows, MonthReports{
				CrewID:              member.ID,
				FullName:            member.FullName,
				Month:               report.Month,
				TotalFlightHours:    report.TotalFlightHours,
				TotalFlightsInMonth: report.TotalFlightsInMonth,
				ExceedsMonthlyLimit: report.ExceedsMonthlyLimit,
				ExceedsWeeklyLimit:  report.ExceedsWeeklyLimit,
				ExceedsDailyLimit:   report.ExceedsDailyLimit,
			})
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&MonthReports{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 500).Error
	})
	if err != nil {
		return repository.NewIOError("save", MonthReports{}.TableName(), err)
	}
	return nil
}

// FindByCrewID returns a crew member's reports ordered by month, or nil when
// no row is stored for the crew member
func (r *GormMonthReportRepository) FindByCrewID(ctx context.Context, crewID int64) ([]entity.MonthReport, error) {
	var rows []MonthReports
	result := r.db.WithContext(ctx).
		Where("crew_id = ?", crewID).
		Order("month asc").
		Find(&rows)
	if result.Error != nil {
		return nil, repository.NewIOError("load", MonthReports{}.TableName(), result.Error)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Convert GORM models to domain entities
	reports := make([]entity.MonthReport, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, entity.MonthReport{
			Month:               row.Month.UTC(),
			TotalFlightHours:    row.TotalFlightHours,
			TotalFlightsInMonth: row.TotalFlightsInMonth,
			ExceedsMonthlyLimit: row.ExceedsMonthlyLimit,
			ExceedsWeeklyLimit:  row.ExceedsWeeklyLimit,
			ExceedsDailyLimit:   row.ExceedsDailyLimit,
		})
	}
	return reports, nil
}
