package usecase

import (
	"sort"
	"time"

	"flighthours-service/internal/domain/entity"
	"flighthours-service/pkg/utils"
)

// Flight-time limits in whole hours. A bucket strictly above the limit sets the flag.
const (
	DailyLimitHours   = 8
	WeeklyLimitHours  = 36
	MonthlyLimitHours = 80
)

// HourBuckets maps the start of a calendar unit (day, ISO week, month) to
// accumulated whole hours.
type HourBuckets map[time.Time]int64

// HourBucket is one entry of HourBuckets
type HourBucket struct {
	Start time.Time
	Hours int64
}

// Sorted returns the buckets ordered by start ascending
func (b HourBuckets) Sorted() []HourBucket {
	out := make([]HourBucket, 0, len(b))
	for start, hours := range b {
		out = append(out, HourBucket{Start: start, Hours: hours})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// Total sums every bucket
func (b HourBuckets) Total() int64 {
	var total int64
	for _, hours := range b {
		total += hours
	}
	return total
}

// SplitInterval distributes a departure/arrival interval over every calendar
// day it touches. Each day segment is truncated to whole hours on its own.
// The caller guarantees departure < arrival.
func SplitInterval(departure, arrival time.Time) HourBuckets {
	days := make(HourBuckets)
	splitInto(days, departure, arrival)
	return days
}

func splitInto(days HourBuckets, departure, arrival time.Time) {
	current := departure
	for current.Before(arrival) {
		day := utils.DayStart(current)
		if utils.SameDay(current, arrival) {
			days[day] += utils.WholeHours(arrival.Sub(current))
			return
		}

		nextDay := utils.NextDayStart(current)
		days[day] += utils.WholeHours(nextDay.Sub(current))
		current = nextDay
	}
}

// HoursPerDay splits every flight and merges the per-day results
func HoursPerDay(flights []entity.Flight) HourBuckets {
	days := make(HourBuckets)
	for _, f := range flights {
		splitInto(days, f.DepartureTime, f.ArrivalTime)
	}
	return days
}

// HoursPerWeek rolls day buckets up into ISO weeks keyed by their Monday
func HoursPerWeek(days HourBuckets) HourBuckets {
	weeks := make(HourBuckets)
	for day, hours := range days {
		weeks[utils.WeekStart(day)] += hours
	}
	return weeks
}

// HoursPerMonth rolls day buckets up into calendar months keyed by their first day
func HoursPerMonth(days HourBuckets) HourBuckets {
	months := make(HourBuckets)
	for day, hours := range days {
		months[utils.MonthStart(day)] += hours
	}
	return months
}

// FlightsPerMonth counts flights by the month of their departure only. A
// flight whose hours spill into the next month is still counted once, in
// the month it departed.
func FlightsPerMonth(flights []entity.Flight) map[time.Time]int64 {
	counts := make(map[time.Time]int64)
	for _, f := range flights {
		counts[utils.MonthStart(f.DepartureTime)]++
	}
	return counts
}

// WeekWithinMonth reports whether the ISO week starting at weekStart is
// evaluated for month: either the week contains the first day of the month
// or its Monday lies inside the month. A week straddling two months
// therefore counts for both.
func WeekWithinMonth(weekStart, month time.Time) bool {
	return utils.SameISOWeek(weekStart, month) || utils.SameMonth(weekStart, month)
}

// Aggregates bundles the intermediate buckets of one crew member
type Aggregates struct {
	Days         HourBuckets
	Weeks        HourBuckets
	Months       HourBuckets
	FlightCounts map[time.Time]int64
}

// Aggregate computes every bucket for a crew member's flights
func Aggregate(flights []entity.Flight) Aggregates {
	days := HoursPerDay(flights)
	return Aggregates{
		Days:         days,
		Weeks:        HoursPerWeek(days),
		Months:       HoursPerMonth(days),
		FlightCounts: FlightsPerMonth(flights),
	}
}

// BuildMonthReports derives one report per month present in the month
// buckets, ordered by month ascending.
func BuildMonthReports(agg Aggregates) []entity.MonthReport {
	months := agg.Months.Sorted()
	weeks := agg.Weeks.Sorted()
	days := agg.Days.Sorted()

	reports := make([]entity.MonthReport, 0, len(months))
	for _, m := range months {
		report := entity.MonthReport{
			Month:               m.Start,
			TotalFlightHours:    m.Hours,
			TotalFlightsInMonth: agg.FlightCounts[m.Start],
			ExceedsMonthlyLimit: m.Hours > MonthlyLimitHours,
		}

		for _, w := range weeks {
			if w.Hours > WeeklyLimitHours && WeekWithinMonth(w.Start, m.Start) {
				report.ExceedsWeeklyLimit = true
				break
			}
		}

		for _, d := range days {
			if d.Hours > DailyLimitHours && utils.SameMonth(d.Start, m.Start) {
				report.ExceedsDailyLimit = true
				break
			}
		}

		reports = append(reports, report)
	}
	return reports
}

// CalculateFlightTime runs the whole aggregation for one crew member
func CalculateFlightTime(flights []entity.Flight) []entity.MonthReport {
	return BuildMonthReports(Aggregate(flights))
}
