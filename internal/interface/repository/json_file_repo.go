package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flighthours-service/internal/domain/entity"
	"flighthours-service/internal/domain/repository"
	"flighthours-service/pkg/logger"
	"flighthours-service/pkg/utils"
)

// JSONFileRepository reads the roster from and writes reports to JSON files
type JSONFileRepository struct {
	inputPath  string
	outputPath string
	parser     *utils.TimestampParser
	locale     string
	logger     logger.Logger
}

// NewJSONFileRepository creates a new file based roster and report repository
func NewJSONFileRepository(inputPath, outputPath string, parser *utils.TimestampParser, locale string, logger logger.Logger) *JSONFileRepository {
	return &JSONFileRepository{
		inputPath:  inputPath,
		outputPath: outputPath,
		parser:     parser,
		locale:     locale,
		logger:     logger,
	}
}

// Wire format of the input file
type inputDocument struct {
	Pilots  []pilotDocument  `json:"pilots"`
	Flights []flightDocument `json:"flights"`
}

type pilotDocument struct {
	IDPilot  *int64  `json:"idPilot"`
	FullName *string `json:"fullName"`
}

type flightDocument struct {
	ID               *int64   `json:"id"`
	AircraftType     *string  `json:"aircraftType"`
	AircraftNumber   *string  `json:"aircraftNumber"`
	DepartureTime    *string  `json:"departureTime"`
	ArrivalTime      *string  `json:"arrivalTime"`
	DepartureAirport *string  `json:"departureAirport"`
	ArrivalAirport   *string  `json:"arrivalAirport"`
	IDPilots         []*int64 `json:"idPilots"`
}

// Wire format of the output file
type outputDocument struct {
	Specialists []specialistDocument `json:"specialists"`
}

type specialistDocument struct {
	IDPilot       int64               `json:"idPilot"`
	FullName      string              `json:"fullName,omitempty"`
	TimeMonthList []timeMonthDocument `json:"timeMonthList"`
}

type timeMonthDocument struct {
	Date                string `json:"date"`
	TotalFlightHours    int64  `json:"totalFlightHours"`
	TotalFlightsInMonth int64  `json:"totalFlightsInMonth"`
	ExceedsMonthlyLimit bool   `json:"exceedsMonthlyLimit"`
	ExceedsWeeklyLimit  bool   `json:"exceedsWeeklyLimit"`
	ExceedsDailyLimit   bool   `json:"exceedsDailyLimit"`
}

// Name identifies the sink
func (r *JSONFileRepository) Name() string {
	return "file"
}

// Load reads and decodes the input file
func (r *JSONFileRepository) Load(ctx context.Context) (*entity.Roster, error) {
	data, err := os.ReadFile(r.inputPath)
	if err != nil {
		return nil, repository.NewIOError("load", r.inputPath, err)
	}

	var doc inputDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, repository.NewIOError("decode", r.inputPath, err)
	}

	roster := &entity.Roster{
		Crew:    make([]entity.CrewRecord, 0, len(doc.Pilots)),
		Flights: make([]entity.FlightRecord, 0, len(doc.Flights)),
	}
	for _, p := range doc.Pilots {
		roster.Crew = append(roster.Crew, entity.CrewRecord{ID: p.IDPilot, FullName: p.FullName})
	}
	for _, f := range doc.Flights {
		roster.Flights = append(roster.Flights, r.toFlightRecord(f))
	}

	r.logger.Info("Roster loaded from file",
		"path", r.inputPath,
		"crew", len(roster.Crew),
		"flights", len(roster.Flights))
	return roster, nil
}

func (r *JSONFileRepository) toFlightRecord(f flightDocument) entity.FlightRecord {
	rec := entity.FlightRecord{
		ID:                   f.ID,
		AircraftType:         f.AircraftType,
		AircraftRegistration: f.AircraftNumber,
		DepartureAirport:     f.DepartureAirport,
		ArrivalAirport:       f.ArrivalAirport,
		CrewIDs:              f.IDPilots,
	}
	rec.DepartureTime, rec.DepartureRaw = r.parseTimestamp(f.DepartureTime)
	rec.ArrivalTime, rec.ArrivalRaw = r.parseTimestamp(f.ArrivalTime)
	return rec
}

func (r *JSONFileRepository) parseTimestamp(value *string) (*time.Time, string) {
	if value == nil || *value == "" {
		return nil, ""
	}
	t, err := r.parser.Parse(*value)
	if err != nil {
		r.logger.Warn("Unparseable timestamp", "value", *value, "error", err)
		return nil, *value
	}
	return &t, *value
}

// MarshalOutput renders an output in the output file wire format
func MarshalOutput(output *entity.Output, locale string) ([]byte, error) {
	doc := outputDocument{Specialists: make([]specialistDocument, 0, len(output.Specialists))}
	for _, member := range output.Specialists {
		months := make([]timeMonthDocument, 0, len(member.Reports))
		for _, report := range member.Reports {
			months = append(months, timeMonthDocument{
				Date:                utils.FormatYearMonth(report.Month, locale),
				TotalFlightHours:    report.TotalFlightHours,
				TotalFlightsInMonth: report.TotalFlightsInMonth,
				ExceedsMonthlyLimit: report.ExceedsMonthlyLimit,
				ExceedsWeeklyLimit:  report.ExceedsWeeklyLimit,
				ExceedsDailyLimit:   report.ExceedsDailyLimit,
			})
		}
		doc.Specialists = append(doc.Specialists, specialistDocument{
			IDPilot:       member.ID,
			FullName:      member.FullName,
			TimeMonthList: months,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Save writes the output file. The file is written next to its final path
// and renamed into place, so a failed write leaves the previous file intact.
func (r *JSONFileRepository) Save(ctx context.Context, output *entity.Output) error {
	data, err := MarshalOutput(output, r.locale)
	if err != nil {
		return repository.NewIOError("encode", r.outputPath, err)
	}

	if dir := filepath.Dir(r.outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return repository.NewIOError("save", r.outputPath, err)
		}
	}

	tmp := r.outputPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return repository.NewIOError("save", r.outputPath, err)
	}
	if err := os.Rename(tmp, r.outputPath); err != nil {
		os.Remove(tmp)
		return repository.NewIOError("save", r.outputPath, err)
	}

	r.logger.Info("Reports written to file", "path", r.outputPath, "crew", len(output.Specialists))
	return nil
}

// LoadOutput reads a previously written output file
func (r *JSONFileRepository) LoadOutput(ctx context.Context) (*entity.Output, error) {
	data, err := os.ReadFile(r.outputPath)
	if err != nil {
		return nil, repository.NewIOError("load", r.outputPath, err)
	}

	output, err := UnmarshalOutput(data, r.locale)
	if err != nil {
		return nil, repository.NewIOError("decode", r.outputPath, err)
	}
	return output, nil
}

// UnmarshalOutput parses data in the output file wire format
func UnmarshalOutput(data []byte, locale string) (*entity.Output, error) {
	var doc outputDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	output := &entity.Output{Specialists: make([]entity.CrewMember, 0, len(doc.Specialists))}
	for _, s := range doc.Specialists {
		member := entity.CrewMember{
			ID:       s.IDPilot,
			FullName: s.FullName,
			Reports:  make([]entity.MonthReport, 0, len(s.TimeMonthList)),
		}
		for _, m := range s.TimeMonthList {
			month, err := utils.ParseYearMonth(m.Date, locale)
			if err != nil {
				return nil, fmt.Errorf("crew %d: %w", s.IDPilot, err)
			}
			member.Reports = append(member.Reports, entity.MonthReport{
				Month:               month,
				TotalFlightHours:    m.TotalFlightHours,
				TotalFlightsInMonth: m.TotalFlightsInMonth,
				ExceedsMonthlyLimit: m.ExceedsMonthlyLimit,
				ExceedsWeeklyLimit:  m.ExceedsWeeklyLimit,
				ExceedsDailyLimit:   m.ExceedsDailyLimit,
			})
		}
		output.Specialists = append(output.Specialists, member)
	}
	return output, nil
}
