// Package scoring contains the prediction scorer and the orchestrator that
// takes a race from not-ready through derivation to scored, exactly once.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gridcall/api/derive"
	"github.com/gridcall/api/f1data"
	"github.com/gridcall/api/gate"
	"github.com/gridcall/api/metrics"
	"github.com/gridcall/api/models"
)

// Service orchestrates scoring: eligibility gate, result derivation, and
// per-prediction scoring, committed through the Store in one transaction.
type Service struct {
	store    Store
	gate     *gate.Gate
	provider f1data.Provider
	log      *zap.Logger
}

// NewService wires the orchestrator.
func NewService(store Store, g *gate.Gate, provider f1data.Provider, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, gate: g, provider: provider, log: log}
}

// ScoreRace scores every prediction for a race and marks it processed.
//
// Failure modes map to the package error taxonomy: *NotFoundError for an
// unknown race, *NotReadyError while the gate is closed, ErrAlreadyScored on
// re-entry, and *DataUnavailableError when derivation inputs are unusable.
// Nothing is written unless the whole run commits, so any failed attempt
// leaves the race retryable.
func (s *Service) ScoreRace(ctx context.Context, raceID int) (*models.ScoringSummary, error) {
	race, err := s.store.Race(ctx, raceID)
	if err != nil {
		return nil, err
	}

	ref := f1data.RaceRef{Year: race.Year, Round: race.Round, Start: race.RaceDate}
	if !s.gate.ReadyToScore(ctx, ref) {
		report := s.gate.Status(ctx, ref)
		metrics.ScoringFailed("not_ready")
		return nil, &NotReadyError{Status: report.StatusMessage}
	}

	if race.ResultsProcessed {
		metrics.ScoringFailed("already_scored")
		return nil, fmt.Errorf("race %d: %w", raceID, ErrAlreadyScored)
	}

	s.log.Info("scoring race",
		zap.Int("raceID", raceID),
		zap.Int("year", race.Year),
		zap.Int("round", race.Round))

	outcome, err := s.deriveOutcome(ctx, ref)
	if err != nil {
		metrics.ScoringFailed("data_unavailable")
		return nil, err
	}

	preds, err := s.store.Predictions(ctx, raceID)
	if err != nil {
		return nil, err
	}

	summary := &models.ScoringSummary{
		RaceID:   raceID,
		ScoredAt: time.Now().UTC(),
	}
	for i := range preds {
		pts := Points(&preds[i], outcome)
		preds[i].PointsEarned = pts
		preds[i].Scored = true
		summary.PredictionsScored++
		summary.TotalPoints += pts

		s.log.Debug("scored prediction",
			zap.Int("predictionID", preds[i].ID),
			zap.Float64("points", pts))
	}

	run := &Run{
		RaceID:      raceID,
		Outcome:     outcomeModel(raceID, outcome),
		Predictions: preds,
		Summary:     summary,
	}
	if err := s.store.SaveRun(ctx, run); err != nil {
		if errors.Is(err, ErrAlreadyScored) {
			metrics.ScoringFailed("already_scored")
		} else {
			metrics.ScoringFailed("storage")
		}
		return nil, err
	}

	metrics.RaceScored(summary.PredictionsScored, summary.TotalPoints)
	s.log.Info("scoring complete",
		zap.Int("raceID", raceID),
		zap.Int("predictions", summary.PredictionsScored),
		zap.Float64("totalPoints", summary.TotalPoints))

	return summary, nil
}

// Status returns the detailed eligibility report for a race.
func (s *Service) Status(ctx context.Context, raceID int) (gate.Report, error) {
	race, err := s.store.Race(ctx, raceID)
	if err != nil {
		return gate.Report{}, err
	}
	ref := f1data.RaceRef{Year: race.Year, Round: race.Round, Start: race.RaceDate}
	return s.gate.Status(ctx, ref), nil
}

// deriveOutcome fetches the weekend's sessions and standings and runs the
// deriver. Every failure surfaces as *DataUnavailableError.
func (s *Service) deriveOutcome(ctx context.Context, ref f1data.RaceRef) (*derive.Outcome, error) {
	quali, err := s.provider.QualifyingResults(ctx, ref.Year, ref.Round)
	if err != nil {
		return nil, &DataUnavailableError{Err: fmt.Errorf("qualifying results: %w", err)}
	}
	raceRows, err := s.provider.RaceResults(ctx, ref.Year, ref.Round)
	if err != nil {
		return nil, &DataUnavailableError{Err: fmt.Errorf("race results: %w", err)}
	}
	standings, err := f1data.ConstructorStandings(ctx, s.provider, ref.Year, ref.Round)
	if err != nil {
		return nil, &DataUnavailableError{Err: fmt.Errorf("constructor standings: %w", err)}
	}

	outcome, err := derive.Derive(quali, raceRows, standings)
	if err != nil {
		return nil, &DataUnavailableError{Err: err}
	}
	return outcome, nil
}

func outcomeModel(raceID int, out *derive.Outcome) *models.RaceOutcome {
	return &models.RaceOutcome{
		RaceID:                raceID,
		PoleDriver:            out.Pole,
		PodiumP1:              out.Podium[0],
		PodiumP2:              out.Podium[1],
		PodiumP3:              out.Podium[2],
		ChaserDriver:          out.Chaser,
		ChaserPositionsGained: out.ChaserGained,
		BreakoutDrivers:       out.BreakoutDrivers,
		BreakoutTeams:         out.BreakoutTeams,
		BustDrivers:           out.BustDrivers,
		BustTeams:             out.BustTeams,
		ProcessedAt:           time.Now().UTC(),
	}
}
