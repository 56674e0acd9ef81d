// internal/domain/entity/crew.go
package entity

// CrewMember is a validated pilot. Reports is filled once per processing run.
type CrewMember struct {
	ID       int64
	FullName string
	Reports  []MonthReport
}

// CrewRecord is a crew entry as read from a roster source, before validation.
// Nil fields were absent or null in the source.
type CrewRecord struct {
	ID       *int64
	FullName *string
}
