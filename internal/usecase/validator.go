package usecase

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"flighthours-service/internal/domain/entity"
	"flighthours-service/pkg/utils"
)

const maxFullNameLength = 100

var fullNamePattern = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ\s]+$`)

// RecordValidator checks raw roster records. It reports the first failing
// rule of a record and never panics on missing fields.
type RecordValidator struct{}

// NewRecordValidator creates a validator
func NewRecordValidator() *RecordValidator {
	return &RecordValidator{}
}

func crewError(id *int64, kind entity.ValidationKind, msg string) *entity.ValidationError {
	return &entity.ValidationError{RecordType: entity.RecordCrew, RecordID: id, Kind: kind, Message: msg}
}

func flightError(id *int64, kind entity.ValidationKind, msg string) *entity.ValidationError {
	return &entity.ValidationError{RecordType: entity.RecordFlight, RecordID: id, Kind: kind, Message: msg}
}

// ValidateCrew converts a crew record into a CrewMember
func (v *RecordValidator) ValidateCrew(rec entity.CrewRecord) (entity.CrewMember, *entity.ValidationError) {
	if rec.ID == nil {
		return entity.CrewMember{}, crewError(nil, entity.KindMissingID, "crew identifier must not be null")
	}
	if *rec.ID <= 0 {
		return entity.CrewMember{}, crewError(rec.ID, entity.KindNonPositiveID, "crew identifier must be a positive number")
	}
	if rec.FullName == nil {
		return entity.CrewMember{}, crewError(rec.ID, entity.KindMissingName, "full name must not be null")
	}

	name := *rec.FullName
	if strings.TrimSpace(name) == "" {
		return entity.CrewMember{}, crewError(rec.ID, entity.KindEmptyName, "full name must not be empty")
	}
	if !fullNamePattern.MatchString(name) {
		return entity.CrewMember{}, crewError(rec.ID, entity.KindMalformedName, "full name may contain only letters and spaces")
	}
	if len(strings.Fields(name)) < 2 {
		return entity.CrewMember{}, crewError(rec.ID, entity.KindTooFewWords, "full name must contain at least two words")
	}
	if utf8.RuneCountInString(name) > maxFullNameLength {
		return entity.CrewMember{}, crewError(rec.ID, entity.KindNameTooLong, "full name must not be longer than 100 characters")
	}

	return entity.CrewMember{ID: *rec.ID, FullName: name}, nil
}

// ValidateFlight converts a flight record into a Flight. Timestamps are
// reduced to their wall-clock value in UTC.
func (v *RecordValidator) ValidateFlight(rec entity.FlightRecord) (entity.Flight, *entity.ValidationError) {
	if rec.ID == nil {
		return entity.Flight{}, flightError(nil, entity.KindMissingID, "flight identifier must not be null")
	}
	if isBlank(rec.AircraftType) {
		return entity.Flight{}, flightError(rec.ID, entity.KindMissingAircraftType, "aircraft type must not be empty")
	}
	if isBlank(rec.AircraftRegistration) {
		return entity.Flight{}, flightError(rec.ID, entity.KindMissingAircraftRegistration, "aircraft registration must not be empty")
	}
	if (rec.DepartureTime == nil && rec.DepartureRaw != "") || (rec.ArrivalTime == nil && rec.ArrivalRaw != "") {
		return entity.Flight{}, flightError(rec.ID, entity.KindInvalidTimestamp, "departure / arrival time could not be parsed")
	}
	if rec.DepartureTime == nil || rec.ArrivalTime == nil {
		return entity.Flight{}, flightError(rec.ID, entity.KindMissingTimestamp, "departure / arrival time must not be null")
	}

	start := naive(*rec.DepartureTime)
	end := naive(*rec.ArrivalTime)
	if end.Before(start) {
		return entity.Flight{}, flightError(rec.ID, entity.KindArrivalBeforeDeparture, "arrival time must not be before departure time")
	}
	if utils.DayStart(start).After(utils.DayStart(end)) {
		return entity.Flight{}, flightError(rec.ID, entity.KindDepartureDayAfterArrivalDay, "departure day must not be after arrival day")
	}
	if !start.Before(end) {
		return entity.Flight{}, flightError(rec.ID, entity.KindNonPositiveDuration, "departure time must be earlier than arrival time")
	}

	if isBlank(rec.DepartureAirport) {
		return entity.Flight{}, flightError(rec.ID, entity.KindMissingDepartureAirport, "departure airport must not be empty")
	}
	if isBlank(rec.ArrivalAirport) {
		return entity.Flight{}, flightError(rec.ID, entity.KindMissingArrivalAirport, "arrival airport must not be empty")
	}
	if len(rec.CrewIDs) == 0 {
		return entity.Flight{}, flightError(rec.ID, entity.KindEmptyCrewList, "crew list must not be empty")
	}

	crewIDs := make([]int64, 0, len(rec.CrewIDs))
	seen := make(map[int64]bool, len(rec.CrewIDs))
	for _, id := range rec.CrewIDs {
		if id == nil || *id <= 0 {
			return entity.Flight{}, flightError(rec.ID, entity.KindNonPositiveCrewID, "crew identifiers must be positive and not null")
		}
		if seen[*id] {
			continue
		}
		seen[*id] = true
		crewIDs = append(crewIDs, *id)
	}

	return entity.Flight{
		ID:                   *rec.ID,
		AircraftType:         *rec.AircraftType,
		AircraftRegistration: *rec.AircraftRegistration,
		DepartureTime:        start,
		ArrivalTime:          end,
		DepartureAirport:     *rec.DepartureAirport,
		ArrivalAirport:       *rec.ArrivalAirport,
		CrewIDs:              crewIDs,
	}, nil
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}

// naive keeps the wall clock of t and drops its zone
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ValidatedRoster holds the records that passed validation, in input order
type ValidatedRoster struct {
	Crew        []entity.CrewMember
	Flights     []entity.Flight
	Diagnostics entity.Diagnostics
}

// ValidateRoster validates every record of the roster. Rejected records are
// dropped and reported in Diagnostics. Later records repeating an accepted
// identifier are rejected as duplicates.
func (v *RecordValidator) ValidateRoster(roster *entity.Roster) ValidatedRoster {
	var out ValidatedRoster
	if roster == nil {
		return out
	}

	crewIDs := make(map[int64]bool, len(roster.Crew))
	for _, rec := range roster.Crew {
		member, verr := v.ValidateCrew(rec)
		if verr == nil && crewIDs[member.ID] {
			verr = crewError(rec.ID, entity.KindDuplicateID, "crew identifier is already used by another crew member")
		}
		if verr != nil {
			out.Diagnostics = append(out.Diagnostics, verr)
			continue
		}
		crewIDs[member.ID] = true
		out.Crew = append(out.Crew, member)
	}

	flightIDs := make(map[int64]bool, len(roster.Flights))
	for _, rec := range roster.Flights {
		flight, verr := v.ValidateFlight(rec)
		if verr == nil && flightIDs[flight.ID] {
			verr = flightError(rec.ID, entity.KindDuplicateID, "flight identifier is already used by another flight")
		}
		if verr != nil {
			out.Diagnostics = append(out.Diagnostics, verr)
			continue
		}
		flightIDs[flight.ID] = true
		out.Flights = append(out.Flights, flight)
	}

	return out
}
