package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcall/api/f1data"
	"github.com/gridcall/api/gate"
	"github.com/gridcall/api/models"
)

type fakeStore struct {
	race    *models.Race
	raceErr error
	preds   []models.Prediction
	saveErr error

	saved *Run
}

func (f *fakeStore) Race(ctx context.Context, raceID int) (*models.Race, error) {
	if f.raceErr != nil {
		return nil, f.raceErr
	}
	return f.race, nil
}

func (f *fakeStore) Predictions(ctx context.Context, raceID int) ([]models.Prediction, error) {
	return f.preds, nil
}

func (f *fakeStore) SaveRun(ctx context.Context, run *Run) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = run
	return nil
}

type fakeProvider struct {
	quali, race []f1data.SessionRow
	qualiErr    error
	raceErr     error
}

func (f *fakeProvider) QualifyingResults(ctx context.Context, year, round int) ([]f1data.SessionRow, error) {
	return f.quali, f.qualiErr
}

func (f *fakeProvider) RaceResults(ctx context.Context, year, round int) ([]f1data.SessionRow, error) {
	if f.raceErr != nil {
		return nil, f.raceErr
	}
	return f.race, nil
}

func (f *fakeProvider) HasLapData(ctx context.Context, year, round int) (bool, error) {
	return true, nil
}

func sessionRow(num int, driver, team string, pos, grid int, points float64) f1data.SessionRow {
	p, g := pos, grid
	return f1data.SessionRow{
		DriverNumber: num,
		Driver:       driver,
		Team:         team,
		Position:     &p,
		GridPosition: &g,
		Points:       &points,
		Status:       "Finished",
	}
}

// sixDriverWeekend is a minimal complete weekend: three two-car teams, SAI
// gaining two places for the chaser.
func sixDriverWeekend() (quali, race []f1data.SessionRow) {
	quali = []f1data.SessionRow{
		sessionRow(1, "VER", "Red Bull", 1, 0, 0),
		sessionRow(11, "PER", "Red Bull", 2, 0, 0),
		sessionRow(16, "LEC", "Ferrari", 3, 0, 0),
		sessionRow(63, "RUS", "Mercedes", 4, 0, 0),
		sessionRow(44, "HAM", "Mercedes", 5, 0, 0),
		sessionRow(55, "SAI", "Ferrari", 6, 0, 0),
	}
	race = []f1data.SessionRow{
		sessionRow(1, "VER", "Red Bull", 1, 1, 25),
		sessionRow(11, "PER", "Red Bull", 2, 2, 18),
		sessionRow(16, "LEC", "Ferrari", 3, 3, 15),
		sessionRow(55, "SAI", "Ferrari", 4, 6, 12),
		sessionRow(44, "HAM", "Mercedes", 5, 5, 10),
		sessionRow(63, "RUS", "Mercedes", 6, 4, 8),
	}
	return quali, race
}

func openGate() *gate.Gate {
	g := gate.New(func(context.Context, int, int) (bool, error) { return true, nil }, nil)
	g.Now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }
	return g
}

func closedGate() *gate.Gate {
	g := gate.New(func(context.Context, int, int) (bool, error) { return true, nil }, nil)
	g.Now = func() time.Time { return time.Date(2024, 5, 5, 18, 0, 0, 0, time.UTC) }
	return g
}

func testRace() *models.Race {
	return &models.Race{
		RaceID:   6,
		Year:     2024,
		Round:    6,
		Location: "Miami",
		RaceDate: time.Date(2024, 5, 5, 14, 0, 0, 0, time.UTC),
	}
}

func TestScoreRaceHappyPath(t *testing.T) {
	quali, raceRows := sixDriverWeekend()
	store := &fakeStore{
		race: testRace(),
		preds: []models.Prediction{
			{
				ID: 1, UserID: 1, RaceID: 6,
				PoleDriver: "VER", PodiumP1: "VER", PodiumP2: "PER", PodiumP3: "LEC",
				ChaserDriver: "SAI",
				BreakoutKind: models.PickDriver, BreakoutName: "SAI",
				BustKind: models.PickDriver, BustName: "RUS",
			},
			{
				ID: 2, UserID: 2, RaceID: 6,
				PoleDriver: "HAM", PodiumP1: "HAM", PodiumP2: "RUS", PodiumP3: "SAI",
				ChaserDriver: "RUS",
				BreakoutKind: models.PickDriver, BreakoutName: "HAM",
				BustKind: models.PickDriver, BustName: "VER",
			},
		},
	}
	provider := &fakeProvider{quali: quali, race: raceRows}
	svc := NewService(store, openGate(), provider, nil)

	summary, err := svc.ScoreRace(context.Background(), 6)
	require.NoError(t, err)

	// Pole 1 + perfect podium 6 + chaser 1 for the first user; the cohorts
	// are empty with only six classified drivers, so picks pay nothing.
	assert.Equal(t, 2, summary.PredictionsScored)
	assert.InDelta(t, 8.0, summary.TotalPoints, 1e-9)

	require.NotNil(t, store.saved)
	assert.Equal(t, 6, store.saved.RaceID)
	assert.Equal(t, "VER", store.saved.Outcome.PoleDriver)
	assert.Equal(t, "SAI", store.saved.Outcome.ChaserDriver)
	assert.Equal(t, 2, store.saved.Outcome.ChaserPositionsGained)

	require.Len(t, store.saved.Predictions, 2)
	for _, p := range store.saved.Predictions {
		assert.True(t, p.Scored)
	}
	assert.InDelta(t, 8.0, store.saved.Predictions[0].PointsEarned, 1e-9)
	assert.Zero(t, store.saved.Predictions[1].PointsEarned)
}

func TestScoreRaceUnknownRace(t *testing.T) {
	store := &fakeStore{raceErr: &NotFoundError{Kind: "race", ID: 99}}
	svc := NewService(store, openGate(), &fakeProvider{}, nil)

	_, err := svc.ScoreRace(context.Background(), 99)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 99, nf.ID)
}

func TestScoreRaceGateClosed(t *testing.T) {
	store := &fakeStore{race: testRace()}
	svc := NewService(store, closedGate(), &fakeProvider{}, nil)

	_, err := svc.ScoreRace(context.Background(), 6)
	var nr *NotReadyError
	require.ErrorAs(t, err, &nr)
	assert.Equal(t, gate.StatusWaitingMonday, nr.Status)
	assert.Nil(t, store.saved)
}

func TestScoreRaceAlreadyProcessed(t *testing.T) {
	race := testRace()
	race.ResultsProcessed = true
	store := &fakeStore{race: race}
	svc := NewService(store, openGate(), &fakeProvider{}, nil)

	_, err := svc.ScoreRace(context.Background(), 6)
	assert.ErrorIs(t, err, ErrAlreadyScored)
	assert.Nil(t, store.saved)
}

func TestScoreRaceProviderFailure(t *testing.T) {
	store := &fakeStore{race: testRace()}
	provider := &fakeProvider{qualiErr: errors.New("upstream 503")}
	svc := NewService(store, openGate(), provider, nil)

	_, err := svc.ScoreRace(context.Background(), 6)
	var du *DataUnavailableError
	require.ErrorAs(t, err, &du)
	assert.Nil(t, store.saved)
}

func TestScoreRaceLosesSaveRace(t *testing.T) {
	// A concurrent scorer committed first; SaveRun reports it and nothing of
	// this attempt survives.
	quali, raceRows := sixDriverWeekend()
	store := &fakeStore{race: testRace(), saveErr: ErrAlreadyScored}
	svc := NewService(store, openGate(), &fakeProvider{quali: quali, race: raceRows}, nil)

	_, err := svc.ScoreRace(context.Background(), 6)
	assert.ErrorIs(t, err, ErrAlreadyScored)
	assert.Nil(t, store.saved)
}

func TestStatusReportsGateState(t *testing.T) {
	store := &fakeStore{race: testRace()}
	svc := NewService(store, closedGate(), &fakeProvider{}, nil)

	report, err := svc.Status(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 6, report.Round)
	assert.False(t, report.ReadyToScore)
	assert.Equal(t, gate.StatusWaitingMonday, report.StatusMessage)
}
