package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcall/api/f1data"
)

func TestNormalizeGridPitLaneStarters(t *testing.T) {
	// An 18-slot grid with two pit-lane starters. They get slots 19 and 20,
	// lowest driver number first.
	race := []f1data.SessionRow{
		raceRow(1, "VER", "Red Bull", 1, 1),
		raceRow(44, "HAM", "Mercedes", 2, 0),
		raceRow(16, "LEC", "Ferrari", 3, 18),
		raceRow(14, "ALO", "Aston Martin", 4, 0),
	}

	rows := normalizeGrid(race, nil)
	require.Len(t, rows, 4)

	byDriver := map[string]f1data.SessionRow{}
	for _, r := range rows {
		byDriver[r.Driver] = r
	}
	assert.Equal(t, 19, *byDriver["ALO"].GridPosition)
	assert.Equal(t, 20, *byDriver["HAM"].GridPosition)
	assert.Equal(t, 18, *byDriver["LEC"].GridPosition)

	// The caller's slice is untouched.
	assert.Equal(t, 0, *race[1].GridPosition)
}

func TestNormalizeGridBackfillsFromQualifying(t *testing.T) {
	race := []f1data.SessionRow{
		raceRow(1, "VER", "Red Bull", 1, -1),
		raceRow(16, "LEC", "Ferrari", 2, 2),
	}
	quali := []f1data.SessionRow{
		qualiRow(1, "VER", "Red Bull", 3),
		qualiRow(16, "LEC", "Ferrari", 2),
	}

	rows := normalizeGrid(race, quali)
	require.NotNil(t, rows[0].GridPosition)
	assert.Equal(t, 3, *rows[0].GridPosition)
}

func TestNormalizeGridNoRealSlots(t *testing.T) {
	// Every known grid value is 0: there is no slot to reassign after.
	race := []f1data.SessionRow{
		raceRow(1, "VER", "Red Bull", 1, 0),
		raceRow(16, "LEC", "Ferrari", 2, 0),
	}

	rows := normalizeGrid(race, nil)
	assert.Equal(t, 0, *rows[0].GridPosition)
	assert.Equal(t, 0, *rows[1].GridPosition)
}

func TestDeriveChaserUsesNormalizedGrid(t *testing.T) {
	quali, race, standings := twentyDriverWeekend()

	// ZHO starts from the pit lane and finishes P12. After normalization the
	// grid slot becomes 20, an eight-place gain beating everyone else.
	race[19].GridPosition = intp(0)
	race[19].Position = intp(12)
	race[11].Position = intp(20)

	out, err := Derive(quali, race, standings)
	require.NoError(t, err)

	assert.Equal(t, "ZHO", out.Chaser)
	assert.Equal(t, 8, out.ChaserGained)
}
