package f1data

import "context"

// Provider yields classification data for a given season and round.
// Implementations must distinguish "not yet available" from success by
// returning an error or an empty result set; callers treat both as not-ready.
type Provider interface {
	QualifyingResults(ctx context.Context, year, round int) ([]SessionRow, error)
	RaceResults(ctx context.Context, year, round int) ([]SessionRow, error)
	HasLapData(ctx context.Context, year, round int) (bool, error)
}

// Complete reports whether the provider has full, scoreable data for a race:
// a non-empty race classification with at least one classified position, and
// per-lap timing (needed to trust the grid/finish delta).
func Complete(ctx context.Context, p Provider, year, round int) (bool, error) {
	rows, err := p.RaceResults(ctx, year, round)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}

	anyClassified := false
	for _, r := range rows {
		if r.Classified() {
			anyClassified = true
			break
		}
	}
	if !anyClassified {
		return false, nil
	}

	return p.HasLapData(ctx, year, round)
}
