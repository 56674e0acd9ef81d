package usecase

import (
	"testing"
	"time"

	"flighthours-service/internal/domain/entity"
)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func day(y int, m time.Month, d int) time.Time {
	return at(y, m, d, 0, 0)
}

func flight(id int64, dep, arr time.Time) entity.Flight {
	return entity.Flight{
		ID:                   id,
		AircraftType:         "Boeing 737",
		AircraftRegistration: "ABC123",
		DepartureTime:        dep,
		ArrivalTime:          arr,
		DepartureAirport:     "SVO",
		ArrivalAirport:       "LED",
		CrewIDs:              []int64{1},
	}
}

func TestSplitInterval(t *testing.T) {
	cases := []struct {
		name string
		dep  time.Time
		arr  time.Time
		want HourBuckets
	}{
		{
			name: "same day",
			dep:  at(2023, 10, 1, 10, 0),
			arr:  at(2023, 10, 1, 12, 0),
			want: HourBuckets{day(2023, 10, 1): 2},
		},
		{
			name: "across month boundary",
			dep:  at(2025, 1, 30, 1, 0),
			arr:  at(2025, 2, 1, 12, 0),
			want: HourBuckets{day(2025, 1, 30): 23, day(2025, 1, 31): 24, day(2025, 2, 1): 12},
		},
		{
			name: "ends exactly at midnight",
			dep:  at(2025, 3, 10, 22, 0),
			arr:  day(2025, 3, 11),
			want: HourBuckets{day(2025, 3, 10): 2},
		},
		{
			name: "truncated per day segment",
			dep:  at(2025, 3, 10, 22, 30),
			arr:  at(2025, 3, 11, 1, 45),
			want: HourBuckets{day(2025, 3, 10): 1, day(2025, 3, 11): 1},
		},
		{
			name: "shorter than an hour",
			dep:  at(2025, 3, 10, 10, 0),
			arr:  at(2025, 3, 10, 10, 59),
			want: HourBuckets{day(2025, 3, 10): 0},
		},
		{
			name: "across year boundary",
			dep:  at(2024, 12, 31, 20, 0),
			arr:  at(2025, 1, 1, 3, 0),
			want: HourBuckets{day(2024, 12, 31): 4, day(2025, 1, 1): 3},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SplitInterval(c.dep, c.arr)
			if len(got) != len(c.want) {
				t.Fatalf("got %d buckets %v, want %v", len(got), got, c.want)
			}
			for d, hours := range c.want {
				if got[d] != hours {
					t.Errorf("%s: got %d hours, want %d", d.Format("2006-01-02"), got[d], hours)
				}
			}
		})
	}
}

func TestSplitIntervalPartitionsHours(t *testing.T) {
	dep := at(2025, 1, 5, 1, 0)
	arr := at(2025, 1, 7, 12, 0)
	days := SplitInterval(dep, arr)

	if days.Total() != 59 {
		t.Fatalf("day total = %d, want 59", days.Total())
	}
	if weeks := HoursPerWeek(days); weeks.Total() != days.Total() {
		t.Fatalf("week total %d differs from day total %d", weeks.Total(), days.Total())
	}
	if months := HoursPerMonth(days); months.Total() != days.Total() {
		t.Fatalf("month total %d differs from day total %d", months.Total(), days.Total())
	}
}

func TestHoursPerWeekAndMonth(t *testing.T) {
	days := HourBuckets{
		day(2025, 1, 30): 23,
		day(2025, 1, 31): 24,
		day(2025, 2, 1):  12,
		day(2025, 2, 3):  5,
	}

	weeks := HoursPerWeek(days).Sorted()
	if len(weeks) != 2 {
		t.Fatalf("got %d weeks, want 2", len(weeks))
	}
	if !weeks[0].Start.Equal(day(2025, 1, 27)) || weeks[0].Hours != 59 {
		t.Fatalf("first week = %+v", weeks[0])
	}
	if !weeks[1].Start.Equal(day(2025, 2, 3)) || weeks[1].Hours != 5 {
		t.Fatalf("second week = %+v", weeks[1])
	}

	months := HoursPerMonth(days).Sorted()
	if len(months) != 2 || months[0].Hours != 47 || months[1].Hours != 17 {
		t.Fatalf("months = %+v", months)
	}
	if !months[0].Start.Equal(day(2025, 1, 1)) || !months[1].Start.Equal(day(2025, 2, 1)) {
		t.Fatalf("month keys = %+v", months)
	}
}

func TestFlightsPerMonthUsesDepartureMonth(t *testing.T) {
	flights := []entity.Flight{
		flight(1, at(2025, 1, 31, 20, 0), at(2025, 2, 1, 5, 0)),
		flight(2, at(2025, 1, 10, 8, 0), at(2025, 1, 10, 9, 0)),
	}
	counts := FlightsPerMonth(flights)
	if counts[day(2025, 1, 1)] != 2 {
		t.Fatalf("January count = %d, want 2", counts[day(2025, 1, 1)])
	}
	if _, ok := counts[day(2025, 2, 1)]; ok {
		t.Fatalf("February must not be counted")
	}

	reports := CalculateFlightTime(flights)
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[1].TotalFlightHours != 5 || reports[1].TotalFlightsInMonth != 0 {
		t.Fatalf("February report = %+v", reports[1])
	}
}

func TestWeekWithinMonth(t *testing.T) {
	march := day(2025, 3, 1) // Saturday
	april := day(2025, 4, 1) // Tuesday

	cases := []struct {
		week  time.Time
		month time.Time
		want  bool
	}{
		{day(2025, 2, 24), march, true},  // contains March 1
		{day(2025, 3, 3), march, true},   // Monday inside March
		{day(2025, 3, 31), march, true},  // Monday inside March, spills into April
		{day(2025, 3, 31), april, true},  // contains April 1
		{day(2025, 2, 17), march, false}, // entirely in February
		{day(2025, 4, 7), march, false},
		{day(2024, 2, 26), march, false}, // same week number, previous year
	}
	for _, c := range cases {
		if got := WeekWithinMonth(c.week, c.month); got != c.want {
			t.Errorf("WeekWithinMonth(%s, %s) = %v, want %v",
				c.week.Format("2006-01-02"), c.month.Format("2006-01"), got, c.want)
		}
	}
}

func TestBuildMonthReportsSingleShortFlight(t *testing.T) {
	reports := CalculateFlightTime([]entity.Flight{
		flight(1, at(2023, 10, 1, 10, 0), at(2023, 10, 1, 12, 0)),
	})
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	r := reports[0]
	if !r.Month.Equal(day(2023, 10, 1)) || r.TotalFlightHours != 2 || r.TotalFlightsInMonth != 1 {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.AnyLimitExceeded() {
		t.Fatalf("no limit should be exceeded: %+v", r)
	}
}

func TestBuildMonthReportsLimits(t *testing.T) {
	cases := []struct {
		name    string
		dep     time.Time
		arr     time.Time
		hours   int64
		daily   bool
		weekly  bool
		monthly bool
	}{
		{"daily", at(2023, 10, 1, 10, 0), at(2023, 10, 1, 19, 0), 9, true, false, false},
		{"exactly daily limit", at(2023, 10, 1, 10, 0), at(2023, 10, 1, 18, 0), 8, false, false, false},
		{"weekly", at(2025, 2, 4, 12, 0), at(2025, 2, 7, 12, 0), 72, true, true, false},
		{"monthly", at(2025, 2, 4, 12, 0), at(2025, 2, 15, 12, 0), 264, true, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			reports := CalculateFlightTime([]entity.Flight{flight(1, c.dep, c.arr)})
			if len(reports) != 1 {
				t.Fatalf("got %d reports, want 1", len(reports))
			}
			r := reports[0]
			if r.TotalFlightHours != c.hours {
				t.Errorf("hours = %d, want %d", r.TotalFlightHours, c.hours)
			}
			if r.ExceedsDailyLimit != c.daily || r.ExceedsWeeklyLimit != c.weekly || r.ExceedsMonthlyLimit != c.monthly {
				t.Errorf("flags daily=%v weekly=%v monthly=%v, want %v %v %v",
					r.ExceedsDailyLimit, r.ExceedsWeeklyLimit, r.ExceedsMonthlyLimit, c.daily, c.weekly, c.monthly)
			}
		})
	}
}

func TestBuildMonthReportsAcrossMonthBoundary(t *testing.T) {
	reports := CalculateFlightTime([]entity.Flight{
		flight(1, at(2025, 1, 30, 1, 0), at(2025, 2, 1, 12, 0)),
	})
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}

	jan, feb := reports[0], reports[1]
	if !jan.Month.Equal(day(2025, 1, 1)) || jan.TotalFlightHours != 47 || jan.TotalFlightsInMonth != 1 {
		t.Fatalf("January = %+v", jan)
	}
	// The week of Monday Jan 27 holds 59 hours across both months.
	if !jan.ExceedsWeeklyLimit {
		t.Fatalf("January weekly limit should be exceeded")
	}
	if !feb.Month.Equal(day(2025, 2, 1)) || feb.TotalFlightHours != 12 || feb.TotalFlightsInMonth != 0 {
		t.Fatalf("February = %+v", feb)
	}
	if !feb.ExceedsWeeklyLimit {
		t.Fatalf("February shares the week of Jan 27 and should be flagged")
	}
}

func TestBuildMonthReportsWeekStraddlingIntoMonth(t *testing.T) {
	reports := CalculateFlightTime([]entity.Flight{
		flight(1, day(2025, 2, 24), day(2025, 2, 26)),
		flight(2, at(2025, 3, 1, 10, 0), at(2025, 3, 1, 11, 0)),
		flight(3, at(2025, 3, 10, 10, 0), at(2025, 3, 10, 11, 0)),
	})
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	march := reports[1]
	if march.TotalFlightHours != 2 || march.TotalFlightsInMonth != 2 {
		t.Fatalf("March = %+v", march)
	}
	if !march.ExceedsWeeklyLimit {
		t.Fatalf("the week of Feb 24 contains March 1 and should flag March")
	}
	if march.ExceedsDailyLimit {
		t.Fatalf("February days must not flag March")
	}
}

func TestBuildMonthReportsWeekOutsideMonthIgnored(t *testing.T) {
	reports := CalculateFlightTime([]entity.Flight{
		flight(1, day(2025, 2, 17), day(2025, 2, 19)),
		flight(2, at(2025, 3, 10, 10, 0), at(2025, 3, 10, 11, 0)),
	})
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if !reports[0].ExceedsWeeklyLimit {
		t.Fatalf("February should be flagged")
	}
	if reports[1].ExceedsWeeklyLimit {
		t.Fatalf("March has no heavy week")
	}
}

func TestBuildMonthReportsDailyLimitMatchesYear(t *testing.T) {
	reports := CalculateFlightTime([]entity.Flight{
		flight(1, at(2024, 1, 10, 8, 0), at(2024, 1, 10, 18, 0)),
		flight(2, at(2025, 1, 10, 8, 0), at(2025, 1, 10, 10, 0)),
	})
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if !reports[0].ExceedsDailyLimit {
		t.Fatalf("January 2024 should exceed the daily limit")
	}
	if reports[1].ExceedsDailyLimit {
		t.Fatalf("January 2025 must not inherit January 2024's long day")
	}
}

func TestBuildMonthReportsMultipleFlights(t *testing.T) {
	reports := CalculateFlightTime([]entity.Flight{
		flight(1, at(2025, 1, 5, 1, 0), at(2025, 1, 7, 12, 0)),
		flight(2, at(2025, 1, 10, 10, 0), at(2025, 1, 12, 3, 0)),
		flight(3, at(2025, 1, 25, 15, 0), at(2025, 1, 29, 10, 0)),
	})
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	r := reports[0]
	if r.TotalFlightHours != 191 || r.TotalFlightsInMonth != 3 {
		t.Fatalf("got %d hours / %d flights, want 191 / 3", r.TotalFlightHours, r.TotalFlightsInMonth)
	}
	if !r.ExceedsMonthlyLimit || !r.ExceedsWeeklyLimit || !r.ExceedsDailyLimit {
		t.Fatalf("all limits should be exceeded: %+v", r)
	}
}

func TestCalculateFlightTimeNoFlights(t *testing.T) {
	reports := CalculateFlightTime(nil)
	if reports == nil || len(reports) != 0 {
		t.Fatalf("expected an empty, non-nil report list, got %#v", reports)
	}
}
