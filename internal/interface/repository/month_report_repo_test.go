package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"flighthours-service/internal/domain/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteRepo(t *testing.T) *GormMonthReportRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "reports.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	repo, err := NewGormMonthReportRepository(db)
	if err != nil {
		t.Fatalf("NewGormMonthReportRepository: %v", err)
	}
	return repo.(*GormMonthReportRepository)
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestGormMonthReportRepositorySaveAndFind(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	output := &entity.Output{Specialists: []entity.CrewMember{{
		ID:       7,
		FullName: "Anna Petrova",
		Reports: []entity.MonthReport{
			{Month: month(2025, time.February), TotalFlightHours: 12, TotalFlightsInMonth: 0, ExceedsWeeklyLimit: true},
			{Month: month(2025, time.January), TotalFlightHours: 47, TotalFlightsInMonth: 1, ExceedsWeeklyLimit: true, ExceedsDailyLimit: true},
		},
	}}}
	if err := repo.Save(ctx, output); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reports, err := repo.FindByCrewID(ctx, 7)
	if err != nil {
		t.Fatalf("FindByCrewID: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if !reports[0].Month.Equal(month(2025, time.January)) || reports[0].TotalFlightHours != 47 || !reports[0].ExceedsDailyLimit {
		t.Fatalf("unexpected first report %+v", reports[0])
	}
	if !reports[1].Month.Equal(month(2025, time.February)) || reports[1].TotalFlightsInMonth != 0 {
		t.Fatalf("unexpected second report %+v", reports[1])
	}
}

func TestGormMonthReportRepositorySaveReplaces(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	first := &entity.Output{Specialists: []entity.CrewMember{{
		ID:      1,
		Reports: []entity.MonthReport{{Month: month(2023, time.October), TotalFlightHours: 2, TotalFlightsInMonth: 1}},
	}}}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	// Saving the same output twice must not violate the unique index.
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	if err := repo.Save(ctx, &entity.Output{}); err != nil {
		t.Fatalf("empty Save: %v", err)
	}
	reports, err := repo.FindByCrewID(ctx, 1)
	if err != nil {
		t.Fatalf("FindByCrewID: %v", err)
	}
	if reports != nil {
		t.Fatalf("expected nil for a crew member with no stored rows, got %+v", reports)
	}
}
