package repository

import (
	"context"

	"flighthours-service/internal/domain/entity"
)

// RosterRepository loads the crew and flight records of one processing run
type RosterRepository interface {
	Load(ctx context.Context) (*entity.Roster, error)
}
