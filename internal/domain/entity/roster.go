// internal/domain/entity/roster.go
package entity

// Roster is the raw input of one processing run.
type Roster struct {
	Crew    []CrewRecord
	Flights []FlightRecord
}

// Output is the result of one processing run: every valid crew member, in
// input order, with their month reports.
type Output struct {
	Specialists []CrewMember
}

// FindCrew returns the crew member with the given identifier.
func (o *Output) FindCrew(id int64) (*CrewMember, bool) {
	for i := range o.Specialists {
		if o.Specialists[i].ID == id {
			return &o.Specialists[i], true
		}
	}
	return nil, false
}
