package scoring

import (
	"context"

	"github.com/gridcall/api/models"
)

// Run is the complete output of scoring one race, persisted atomically.
type Run struct {
	RaceID      int
	Outcome     *models.RaceOutcome
	Predictions []models.Prediction // points_earned and scored already set
	Summary     *models.ScoringSummary
}

// Store is the persistence boundary the orchestrator writes through.
type Store interface {
	// Race loads a race by id, returning *NotFoundError when absent.
	Race(ctx context.Context, raceID int) (*models.Race, error)

	// Predictions returns every prediction submitted for a race.
	Predictions(ctx context.Context, raceID int) ([]models.Prediction, error)

	// SaveRun commits a scoring run in a single transaction: outcome,
	// prediction updates, summary and the race's processed flag are written
	// together or not at all. Must return ErrAlreadyScored (and write
	// nothing) if the race's processed flag is already set.
	SaveRun(ctx context.Context, run *Run) error
}
