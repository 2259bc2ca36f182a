// Package derive turns raw session classification data for one race weekend
// into the derived outcome predictions are scored against: pole, podium,
// chaser, per-driver performance scores and the breakout/bust cohorts.
//
// Everything here is a pure function of its inputs; fetching and persistence
// are the caller's concern.
package derive

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gridcall/api/f1data"
)

// ErrIncompleteData reports that the supplied session data cannot support a
// full derivation (empty sessions, no classified finishers, missing podium).
var ErrIncompleteData = errors.New("incomplete session data")

// cohortMinDrivers is the classified-driver count below which breakout/bust
// cohorts are not derived at all.
const cohortMinDrivers = 10

// Outcome is the full derived result set for one race.
type Outcome struct {
	Pole         string
	Podium       [3]string // P1, P2, P3
	Chaser       string
	ChaserGained int

	BreakoutDrivers []string // best performer first
	BustDrivers     []string // worst performer first
	BreakoutTeams   []string
	BustTeams       []string

	// Scores holds every classified driver's performance breakdown,
	// ranked best-first.
	Scores []PerformanceScore
}

// Derive computes the race outcome from qualifying and race classifications
// plus the constructor standings as of this round.
func Derive(quali, race []f1data.SessionRow, standings []f1data.ConstructorStanding) (*Outcome, error) {
	if len(quali) == 0 {
		return nil, fmt.Errorf("%w: no qualifying results", ErrIncompleteData)
	}
	if len(race) == 0 {
		return nil, fmt.Errorf("%w: no race results", ErrIncompleteData)
	}
	if len(standings) == 0 {
		return nil, fmt.Errorf("%w: no constructor standings", ErrIncompleteData)
	}

	race = normalizeGrid(race, quali)

	out := &Outcome{}

	pole, err := poleSitter(quali)
	if err != nil {
		return nil, err
	}
	out.Pole = pole

	podium, err := podiumFinishers(race)
	if err != nil {
		return nil, err
	}
	out.Podium = podium

	chaser, gained, err := topChaser(race)
	if err != nil {
		return nil, err
	}
	out.Chaser = chaser
	out.ChaserGained = gained

	scores := performanceScores(race, quali, standings)
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: no classified drivers to score", ErrIncompleteData)
	}
	out.Scores = scores

	out.BreakoutDrivers, out.BustDrivers = driverCohorts(scores)
	out.BreakoutTeams, out.BustTeams = teamCohorts(scores)

	return out, nil
}

// poleSitter returns the driver at the top of the qualifying classification.
func poleSitter(quali []f1data.SessionRow) (string, error) {
	ordered := sortedByPosition(quali)
	if len(ordered) == 0 || !ordered[0].Classified() {
		return "", fmt.Errorf("%w: no classified qualifier", ErrIncompleteData)
	}
	return ordered[0].Driver, nil
}

// podiumFinishers returns the drivers classified P1-P3.
func podiumFinishers(race []f1data.SessionRow) ([3]string, error) {
	var podium [3]string
	for _, row := range race {
		if !row.Classified() {
			continue
		}
		if p := *row.Position; p >= 1 && p <= 3 {
			podium[p-1] = row.Driver
		}
	}
	for i, d := range podium {
		if d == "" {
			return podium, fmt.Errorf("%w: no driver classified P%d", ErrIncompleteData, i+1)
		}
	}
	return podium, nil
}

// topChaser returns the driver with the greatest grid-to-finish gain.
// Ties resolve to the earlier row in the provider's classification order.
func topChaser(race []f1data.SessionRow) (string, int, error) {
	type gain struct {
		driver string
		gained int
	}

	gains := make([]gain, 0, len(race))
	for _, row := range race {
		if row.Position == nil || row.GridPosition == nil {
			continue
		}
		gains = append(gains, gain{driver: row.Driver, gained: *row.GridPosition - *row.Position})
	}
	if len(gains) == 0 {
		return "", 0, fmt.Errorf("%w: no rows with both grid and finish positions", ErrIncompleteData)
	}

	sort.SliceStable(gains, func(i, j int) bool { return gains[i].gained > gains[j].gained })
	return gains[0].driver, gains[0].gained, nil
}

// sortedByPosition returns a copy of rows ordered by classified position,
// unclassified rows last in their original order.
func sortedByPosition(rows []f1data.SessionRow) []f1data.SessionRow {
	out := make([]f1data.SessionRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Position, out[j].Position
		if pi == nil {
			return false
		}
		if pj == nil {
			return true
		}
		return *pi < *pj
	})
	return out
}
