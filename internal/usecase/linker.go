package usecase

import (
	"flighthours-service/internal/domain/entity"
)

// Assignment associates every valid crew member with the flights they flew.
// It is built per run and never shared between runs.
type Assignment struct {
	Crew          []entity.CrewMember
	FlightsByCrew map[int64][]entity.Flight
}

// FlightsOf returns the flights linked to a crew member in input order
func (a Assignment) FlightsOf(crewID int64) []entity.Flight {
	return a.FlightsByCrew[crewID]
}

// LinkCrewFlights assigns each flight to every known crew member listed on
// it. Unknown crew identifiers are skipped.
func LinkCrewFlights(crew []entity.CrewMember, flights []entity.Flight) Assignment {
	known := make(map[int64]bool, len(crew))
	for _, member := range crew {
		known[member.ID] = true
	}

	byCrew := make(map[int64][]entity.Flight, len(crew))
	for _, flight := range flights {
		for _, crewID := range flight.CrewIDs {
			if !known[crewID] {
				continue
			}
			byCrew[crewID] = append(byCrew[crewID], flight)
		}
	}

	return Assignment{Crew: crew, FlightsByCrew: byCrew}
}

// LinkedFlightCount returns how many flight-to-crew links were made
func (a Assignment) LinkedFlightCount() int {
	n := 0
	for _, flights := range a.FlightsByCrew {
		n += len(flights)
	}
	return n
}
