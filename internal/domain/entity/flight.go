// internal/domain/entity/flight.go
package entity

import (
	"time"
)

// Flight is a validated flight interval. Timestamps are naive wall-clock
// values and are always stored with the UTC location.
type Flight struct {
	ID                   int64
	AircraftType         string
	AircraftRegistration string
	DepartureTime        time.Time
	ArrivalTime          time.Time
	DepartureAirport     string
	ArrivalAirport       string
	CrewIDs              []int64
}

// FlightRecord is a flight entry as read from a roster source, before validation.
type FlightRecord struct {
	ID                   *int64
	AircraftType         *string
	AircraftRegistration *string
	DepartureTime        *time.Time
	ArrivalTime          *time.Time
	DepartureAirport     *string
	ArrivalAirport       *string
	CrewIDs              []*int64

	// Raw timestamps as they appeared in the source. A non-empty raw value
	// with a nil parsed time means the value could not be parsed.
	DepartureRaw string
	ArrivalRaw   string
}
