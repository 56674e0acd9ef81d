// internal/domain/entity/processing_run.go
package entity

import (
	"time"
)

// Processing run status
const (
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

// ProcessingRun summarises one load-compute-publish cycle.
type ProcessingRun struct {
	RunID       string    `bson:"runId"`
	StartedAt   time.Time `bson:"startedAt"`
	FinishedAt  time.Time `bson:"finishedAt"`
	Status      string    `bson:"status"`
	CrewCount   int       `bson:"crewCount"`
	FlightCount int       `bson:"flightCount"`
	ReportCount int       `bson:"reportCount"`
	Diagnostics []string  `bson:"diagnostics"`
	ErrorDetail string    `bson:"errorDetail,omitempty"`
}
