// Package gate decides whether a race's official result is trustworthy enough
// to score: a fixed post-race grace deadline must have passed AND the upstream
// data source must report complete results.
package gate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gridcall/api/f1data"
)

// Human-readable gate states surfaced to callers.
const (
	StatusReady          = "Ready to score"
	StatusWaitingMonday  = "Waiting for Monday deadline"
	StatusWaitingForData = "Past Monday deadline, waiting for data"
	StatusUnknown        = "Unknown status"
)

// ProbeFunc checks whether the upstream source has complete data for a race.
// Any error is treated as "not available", never as fatal.
type ProbeFunc func(ctx context.Context, year, round int) (bool, error)

// Gate evaluates scoring readiness. Now is injectable for tests and defaults
// to time.Now.
type Gate struct {
	Probe ProbeFunc
	Now   func() time.Time

	log *zap.Logger
}

// New creates a Gate using the given completeness probe.
func New(probe ProbeFunc, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{Probe: probe, Now: time.Now, log: log}
}

// MondayDeadline returns the first Monday 00:00 UTC strictly after the race
// date. A race run on a Monday waits the full week for late penalty and
// disqualification decisions.
func MondayDeadline(raceDate time.Time) time.Time {
	utc := raceDate.UTC()

	days := (int(time.Monday) - int(utc.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}

	monday := utc.AddDate(0, 0, days)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// PastDeadline reports whether the grace deadline for ref has passed.
func (g *Gate) PastDeadline(ref f1data.RaceRef) bool {
	return !g.Now().UTC().Before(MondayDeadline(ref.Start))
}

// DataAvailable reports whether the upstream source has complete data for
// ref. Probe failures are absorbed and reported as unavailable.
func (g *Gate) DataAvailable(ctx context.Context, ref f1data.RaceRef) bool {
	ok, err := g.Probe(ctx, ref.Year, ref.Round)
	if err != nil {
		g.log.Debug("data availability probe failed",
			zap.Int("year", ref.Year),
			zap.Int("round", ref.Round),
			zap.Error(err))
		return false
	}
	return ok
}

// ReadyToScore reports whether both gate preconditions hold. It never
// returns an error.
func (g *Gate) ReadyToScore(ctx context.Context, ref f1data.RaceRef) bool {
	if !g.PastDeadline(ref) {
		return false
	}
	return g.DataAvailable(ctx, ref)
}

// Report is the detailed gate status for admin and debugging surfaces.
type Report struct {
	Year               int       `json:"year"`
	Round              int       `json:"round"`
	RaceDate           time.Time `json:"raceDate"`
	CurrentTime        time.Time `json:"currentTime"`
	MondayDeadline     time.Time `json:"mondayDeadline"`
	HoursSinceRace     int       `json:"hoursSinceRace"`
	PastMondayDeadline bool      `json:"pastMondayDeadline"`
	TimeUntilMonday    string    `json:"timeUntilMonday"`
	DataAvailable      bool      `json:"dataAvailable"`
	ReadyToScore       bool      `json:"readyToScore"`
	StatusMessage      string    `json:"statusMessage"`
}

// Status evaluates both preconditions and returns the full report.
func (g *Gate) Status(ctx context.Context, ref f1data.RaceRef) Report {
	now := g.Now().UTC()
	deadline := MondayDeadline(ref.Start)
	pastMonday := !now.Before(deadline)
	available := g.DataAvailable(ctx, ref)
	ready := pastMonday && available

	until := "Past deadline"
	if !pastMonday {
		remaining := deadline.Sub(now)
		until = fmt.Sprintf("%dh %dm", int(remaining.Hours()), int(remaining.Minutes())%60)
	}

	return Report{
		Year:               ref.Year,
		Round:              ref.Round,
		RaceDate:           ref.Start.UTC(),
		CurrentTime:        now,
		MondayDeadline:     deadline,
		HoursSinceRace:     int(now.Sub(ref.Start.UTC()).Hours()),
		PastMondayDeadline: pastMonday,
		TimeUntilMonday:    until,
		DataAvailable:      available,
		ReadyToScore:       ready,
		StatusMessage:      statusMessage(pastMonday, available, ready),
	}
}

func statusMessage(pastMonday, available, ready bool) string {
	switch {
	case ready:
		return StatusReady
	case !pastMonday:
		return StatusWaitingMonday
	case !available:
		return StatusWaitingForData
	}
	return StatusUnknown
}
