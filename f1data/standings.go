package f1data

import (
	"context"
	"sort"
)

// ConstructorStandings computes the constructor championship table as of the
// given round by summing race points across rounds 1..round. Rounds that fail
// to load are skipped rather than failing the whole aggregation, matching the
// tolerance needed early in a season when some feeds lag.
func ConstructorStandings(ctx context.Context, p Provider, year, round int) ([]ConstructorStanding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	totals := map[string]float64{}
	for r := 1; r <= round; r++ {
		rows, err := p.RaceResults(ctx, year, r)
		if err != nil {
			continue
		}
		for _, row := range rows {
			if row.Team == "" || row.Points == nil {
				continue
			}
			totals[row.Team] += *row.Points
		}
	}

	standings := make([]ConstructorStanding, 0, len(totals))
	for team, pts := range totals {
		standings = append(standings, ConstructorStanding{Team: team, Points: pts})
	}

	// Points descending, team name as the deterministic tiebreak.
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].Team < standings[j].Team
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings, nil
}
