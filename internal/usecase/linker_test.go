package usecase

import (
	"testing"

	"flighthours-service/internal/domain/entity"
)

func TestLinkCrewFlights(t *testing.T) {
	crew := []entity.CrewMember{{ID: 1, FullName: "Ivan Ivanov"}, {ID: 2, FullName: "Petr Petrov"}}

	shared := flight(10, at(2025, 1, 1, 8, 0), at(2025, 1, 1, 10, 0))
	shared.CrewIDs = []int64{1, 2, 99}
	solo := flight(11, at(2025, 1, 2, 8, 0), at(2025, 1, 2, 10, 0))
	solo.CrewIDs = []int64{1}
	unknown := flight(12, at(2025, 1, 3, 8, 0), at(2025, 1, 3, 10, 0))
	unknown.CrewIDs = []int64{42}

	a := LinkCrewFlights(crew, []entity.Flight{shared, solo, unknown})

	if got := a.FlightsOf(1); len(got) != 2 || got[0].ID != 10 || got[1].ID != 11 {
		t.Fatalf("crew 1 flights = %+v", got)
	}
	if got := a.FlightsOf(2); len(got) != 1 || got[0].ID != 10 {
		t.Fatalf("crew 2 flights = %+v", got)
	}
	if got := a.FlightsOf(99); got != nil {
		t.Fatalf("unknown crew should have no flights, got %+v", got)
	}
	if a.LinkedFlightCount() != 3 {
		t.Fatalf("linked = %d, want 3", a.LinkedFlightCount())
	}
	if len(a.Crew) != 2 {
		t.Fatalf("crew order lost: %+v", a.Crew)
	}
}

func TestLinkCrewFlightsIsFreshPerCall(t *testing.T) {
	crew := []entity.CrewMember{{ID: 1}}
	flights := []entity.Flight{flight(1, at(2025, 1, 1, 8, 0), at(2025, 1, 1, 10, 0))}

	first := LinkCrewFlights(crew, flights)
	second := LinkCrewFlights(crew, flights)
	if len(first.FlightsOf(1)) != 1 || len(second.FlightsOf(1)) != 1 {
		t.Fatalf("links accumulated across calls: %d / %d", len(first.FlightsOf(1)), len(second.FlightsOf(1)))
	}
}
