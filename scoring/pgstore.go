package scoring

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/gridcall/api/models"
)

// PGStore is the bun-backed Store implementation.
type PGStore struct {
	db *bun.DB
}

// NewPGStore wraps a bun connection as a Store.
func NewPGStore(db *bun.DB) *PGStore {
	return &PGStore{db: db}
}

// Race loads a race by primary key.
func (s *PGStore) Race(ctx context.Context, raceID int) (*models.Race, error) {
	race := &models.Race{}
	err := s.db.NewSelect().Model(race).
		Where("rc.race_id = ?", raceID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Kind: "race", ID: raceID}
	}
	if err != nil {
		return nil, err
	}
	return race, nil
}

// Predictions returns all predictions for a race in submission order.
func (s *PGStore) Predictions(ctx context.Context, raceID int) ([]models.Prediction, error) {
	var preds []models.Prediction
	err := s.db.NewSelect().Model(&preds).
		Where("p.race_id = ?", raceID).
		Order("p.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return preds, nil
}

// SaveRun writes the outcome, scored predictions, summary and processed flag
// in one transaction. The race row is locked and its processed flag
// re-checked under the lock, so concurrent scoring attempts cannot both
// commit; the unique constraint on race_outcomes.race_id backstops that.
func (s *PGStore) SaveRun(ctx context.Context, run *Run) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		race := &models.Race{}
		err := tx.NewSelect().Model(race).
			Where("rc.race_id = ?", run.RaceID).
			For("UPDATE").
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{Kind: "race", ID: run.RaceID}
		}
		if err != nil {
			return err
		}
		if race.ResultsProcessed {
			return ErrAlreadyScored
		}

		if _, err := tx.NewInsert().Model(run.Outcome).Exec(ctx); err != nil {
			return err
		}

		now := time.Now().UTC()
		for i := range run.Predictions {
			p := &run.Predictions[i]
			_, err := tx.NewUpdate().Model(p).
				Set("points_earned = ?", p.PointsEarned).
				Set("scored = ?", true).
				Set("updated_at = ?", now).
				Where("id = ?", p.ID).
				Exec(ctx)
			if err != nil {
				return err
			}
		}

		if _, err := tx.NewInsert().Model(run.Summary).Exec(ctx); err != nil {
			return err
		}

		_, err = tx.NewUpdate().Model((*models.Race)(nil)).
			Set("completed = ?", true).
			Set("results_processed = ?", true).
			Where("race_id = ?", run.RaceID).
			Exec(ctx)
		return err
	})
}
