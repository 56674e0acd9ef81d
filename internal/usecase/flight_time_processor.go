package usecase

import (
	"flighthours-service/internal/domain/entity"
	"flighthours-service/pkg/logger"
	"flighthours-service/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// FlightTimeProcessor turns a raw roster into month reports per crew member.
// It holds no per-run state, so Process may be called any number of times.
type FlightTimeProcessor struct {
	validator *RecordValidator
	metrics   *metrics.Metrics
	logger    logger.Logger
	workers   int
}

// NewFlightTimeProcessor creates a new processor. workers bounds how many
// crew members are aggregated in parallel.
func NewFlightTimeProcessor(
	validator *RecordValidator,
	metrics *metrics.Metrics,
	logger logger.Logger,
	workers int,
) *FlightTimeProcessor {
	if workers < 1 {
		workers = 1
	}
	return &FlightTimeProcessor{
		validator: validator,
		metrics:   metrics,
		logger:    logger,
		workers:   workers,
	}
}

// Process validates the roster, links flights to crew and computes every
// crew member's month reports. Invalid records end up in the returned
// diagnostics and are otherwise ignored.
func (fp *FlightTimeProcessor) Process(roster *entity.Roster) (*entity.Output, entity.Diagnostics) {
	fp.logger.Info("Starting flight time processing")

	validated := fp.validator.ValidateRoster(roster)
	for _, verr := range validated.Diagnostics {
		fp.logger.Warn("Record rejected",
			"record", verr.RecordType,
			"kind", string(verr.Kind),
			"message", verr.Message)
		fp.metrics.ValidationFailures.WithLabelValues(verr.RecordType, string(verr.Kind)).Inc()
	}
	fp.logger.Info("Validation finished",
		"validCrew", len(validated.Crew),
		"validFlights", len(validated.Flights),
		"rejectedCrew", validated.Diagnostics.Count(entity.RecordCrew),
		"rejectedFlights", validated.Diagnostics.Count(entity.RecordFlight))

	assignment := LinkCrewFlights(validated.Crew, validated.Flights)
	fp.logger.Debug("Linked flights to crew", "links", assignment.LinkedFlightCount())
	fp.metrics.FlightsProcessed.Add(float64(len(validated.Flights)))

	output := &entity.Output{Specialists: make([]entity.CrewMember, len(assignment.Crew))}

	var g errgroup.Group
	g.SetLimit(fp.workers)
	for i, member := range assignment.Crew {
		flights := assignment.FlightsOf(member.ID)
		g.Go(func() error {
			member.Reports = fp.calculate(member.ID, flights)
			output.Specialists[i] = member
			return nil
		})
	}
	// Workers always return nil, Wait only joins them
	g.Wait()

	for _, member := range output.Specialists {
		fp.record(member.Reports)
	}
	fp.metrics.CrewProcessed.Add(float64(len(output.Specialists)))

	fp.logger.Info("Flight time processing finished", "crew", len(output.Specialists))
	return output, validated.Diagnostics
}

func (fp *FlightTimeProcessor) calculate(crewID int64, flights []entity.Flight) []entity.MonthReport {
	agg := Aggregate(flights)
	fp.logger.Debug("Aggregated flight hours",
		"crewID", crewID,
		"flights", len(flights),
		"days", agg.Days.Sorted(),
		"weeks", agg.Weeks.Sorted(),
		"months", agg.Months.Sorted(),
		"flightCounts", agg.FlightCounts)

	reports := BuildMonthReports(agg)
	for _, r := range reports {
		fp.logger.Debug("Month report",
			"crewID", crewID,
			"month", r.Month.Format("2006-01"),
			"hours", r.TotalFlightHours,
			"flights", r.TotalFlightsInMonth,
			"monthly", r.ExceedsMonthlyLimit,
			"weekly", r.ExceedsWeeklyLimit,
			"daily", r.ExceedsDailyLimit)
		if r.AnyLimitExceeded() {
			fp.logger.Info("Flight time limit exceeded",
				"crewID", crewID,
				"month", r.Month.Format("2006-01"),
				"monthly", r.ExceedsMonthlyLimit,
				"weekly", r.ExceedsWeeklyLimit,
				"daily", r.ExceedsDailyLimit)
		}
	}
	return reports
}

func (fp *FlightTimeProcessor) record(reports []entity.MonthReport) {
	fp.metrics.MonthReports.Add(float64(len(reports)))
	for _, r := range reports {
		if r.ExceedsDailyLimit {
			fp.metrics.LimitsExceeded.WithLabelValues("daily").Inc()
		}
		if r.ExceedsWeeklyLimit {
			fp.metrics.LimitsExceeded.WithLabelValues("weekly").Inc()
		}
		if r.ExceedsMonthlyLimit {
			fp.metrics.LimitsExceeded.WithLabelValues("monthly").Inc()
		}
	}
}
