// Package f1data defines the session-data contract the scoring core consumes
// and an HTTP client for an Ergast-compatible F1 results API.
package f1data

import "time"

// RaceRef identifies one race: season year, round number and scheduled UTC start.
type RaceRef struct {
	Year  int
	Round int
	Start time.Time
}

// SessionRow is one competitor's result in a single session. Position, grid
// and points are pointers because not every competitor classifies and the
// upstream feed omits fields freely.
type SessionRow struct {
	DriverNumber int
	Driver       string // three-letter abbreviation, e.g. "VER"
	FullName     string
	Team         string
	Position     *int // classified position; nil for DNF/DSQ/DNS
	GridPosition *int // 0 denotes a pit-lane start
	Points       *float64
	Status       string

	// Qualifying-only lap times.
	Q1, Q2, Q3 *time.Duration
}

// Classified reports whether the row carries a valid finishing position.
func (r SessionRow) Classified() bool {
	return r.Position != nil
}

// ConstructorStanding is a team's cumulative points and rank as of a round.
// Rank 1 is the championship leader.
type ConstructorStanding struct {
	Team   string
	Points float64
	Rank   int
}
