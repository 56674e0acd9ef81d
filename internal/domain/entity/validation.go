// internal/domain/entity/validation.go
package entity

import (
	"fmt"
)

// ValidationKind enumerates why a record was rejected.
type ValidationKind string

const (
	KindMissingID                   ValidationKind = "missing_id"
	KindNonPositiveID               ValidationKind = "non_positive_id"
	KindDuplicateID                 ValidationKind = "duplicate_id"
	KindMissingName                 ValidationKind = "missing_name"
	KindEmptyName                   ValidationKind = "empty_name"
	KindMalformedName               ValidationKind = "malformed_name"
	KindTooFewWords                 ValidationKind = "too_few_words"
	KindNameTooLong                 ValidationKind = "name_too_long"
	KindMissingAircraftType         ValidationKind = "missing_aircraft_type"
	KindMissingAircraftRegistration ValidationKind = "missing_aircraft_registration"
	KindMissingTimestamp            ValidationKind = "missing_timestamp"
	KindInvalidTimestamp            ValidationKind = "invalid_timestamp"
	KindArrivalBeforeDeparture      ValidationKind = "arrival_before_departure"
	KindDepartureDayAfterArrivalDay ValidationKind = "departure_day_after_arrival_day"
	KindNonPositiveDuration         ValidationKind = "non_positive_duration"
	KindMissingDepartureAirport     ValidationKind = "missing_departure_airport"
	KindMissingArrivalAirport       ValidationKind = "missing_arrival_airport"
	KindEmptyCrewList               ValidationKind = "empty_crew_list"
	KindNonPositiveCrewID           ValidationKind = "non_positive_crew_id"
)

// Record types used in validation errors and metrics labels.
const (
	RecordCrew   = "crew"
	RecordFlight = "flight"
)

// ValidationError describes a rejected input record.
type ValidationError struct {
	RecordType string
	RecordID   *int64
	Kind       ValidationKind
	Message    string
}

func (e *ValidationError) Error() string {
	id := "null"
	if e.RecordID != nil {
		id = fmt.Sprintf("%d", *e.RecordID)
	}
	return fmt.Sprintf("%s %s rejected (%s): %s", e.RecordType, id, e.Kind, e.Message)
}

// Diagnostics is the ordered list of rejections collected during a run.
type Diagnostics []*ValidationError

// Messages renders every diagnostic as a human readable line.
func (d Diagnostics) Messages() []string {
	out := make([]string, 0, len(d))
	for _, e := range d {
		out = append(out, e.Error())
	}
	return out
}

// Count returns the number of diagnostics for a record type.
func (d Diagnostics) Count(recordType string) int {
	n := 0
	for _, e := range d {
		if e.RecordType == recordType {
			n++
		}
	}
	return n
}
