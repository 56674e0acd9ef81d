// internal/domain/entity/month_report.go
package entity

import (
	"time"
)

// MonthReport holds flown hours and limit flags for one calendar month.
type MonthReport struct {
	Month               time.Time // first day of the month, 00:00 UTC
	TotalFlightHours    int64
	TotalFlightsInMonth int64
	ExceedsMonthlyLimit bool
	ExceedsWeeklyLimit  bool
	ExceedsDailyLimit   bool
}

// AnyLimitExceeded reports whether at least one of the three flags is set.
func (r MonthReport) AnyLimitExceeded() bool {
	return r.ExceedsMonthlyLimit || r.ExceedsWeeklyLimit || r.ExceedsDailyLimit
}
