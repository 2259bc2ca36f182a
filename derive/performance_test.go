package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcall/api/f1data"
)

func TestExpectationBonus(t *testing.T) {
	// Leading team, pole: expected P2, beat it by one, multiplier 1.0.
	assert.InDelta(t, 1.0, expectationBonus(1, 1), 1e-9)

	// Fifth-ranked team qualifying P3: expected P10, beat it by seven,
	// multiplier 1.0 + 4*0.0667.
	assert.InDelta(t, 7*(1.0+4*0.0667), expectationBonus(5, 3), 1e-9)

	// Falling short of expectation goes negative.
	assert.Less(t, expectationBonus(1, 8), 0.0)
}

func TestPerformanceSubScores(t *testing.T) {
	quali := []f1data.SessionRow{
		qualiRow(1, "VER", "Red Bull", 1),
		qualiRow(11, "PER", "Red Bull", 2),
	}
	race := []f1data.SessionRow{
		raceRow(1, "VER", "Red Bull", 1, 1),
		raceRow(11, "PER", "Red Bull", 2, 2),
	}
	standings := []f1data.ConstructorStanding{{Team: "Red Bull", Points: 100, Rank: 1}}

	scores := performanceScores(race, quali, standings)
	require.Len(t, scores, 2)

	ver, per := scores[0], scores[1]
	require.Equal(t, "VER", ver.Driver)

	// Quali: base 45 for pole, +1 expectation bonus (rank 1, expected P2).
	assert.InDelta(t, 46.0, ver.Quali, 1e-9)
	// Race: (21-1)*2.5 = 50, +1 expectation bonus.
	assert.InDelta(t, 51.0, ver.Race, 1e-9)
	// No positions gained or lost.
	assert.InDelta(t, 0.0, ver.Positions, 1e-9)
	// Quicker in quali (+3), ahead in the race (+5), equal gains (+0).
	assert.InDelta(t, 8.0, ver.Teammate, 1e-9)
	assert.InDelta(t, ver.Quali+ver.Race+ver.Positions+ver.Teammate, ver.Total, 1e-9)

	assert.InDelta(t, -8.0, per.Teammate, 1e-9)
}

func TestQualiScoreTapersBelowTen(t *testing.T) {
	quali := []f1data.SessionRow{qualiRow(23, "ALB", "Williams", 11)}
	race := []f1data.SessionRow{raceRow(23, "ALB", "Williams", 11, 11)}
	standings := []f1data.ConstructorStanding{{Team: "Williams", Points: 10, Rank: 7}}

	scores := performanceScores(race, quali, standings)
	require.Len(t, scores, 1)

	// P11 base is 20 - 1*1.8 = 18.2; expected P14 beaten by three,
	// multiplier 1.0 + 6*0.0667.
	wantQuali := 18.2 + 3*(1.0+6*0.0667)
	assert.InDelta(t, wantQuali, scores[0].Quali, 1e-9)
}

func TestMissingQualifierScoresZeroQuali(t *testing.T) {
	quali := []f1data.SessionRow{qualiRow(4, "NOR", "McLaren", 1)}
	race := []f1data.SessionRow{
		raceRow(4, "NOR", "McLaren", 1, 1),
		raceRow(81, "PIA", "McLaren", 2, 2), // absent from qualifying
	}
	standings := []f1data.ConstructorStanding{{Team: "McLaren", Points: 120, Rank: 1}}

	scores := performanceScores(race, quali, standings)
	require.Len(t, scores, 2)

	for _, s := range scores {
		if s.Driver == "PIA" {
			assert.Zero(t, s.Quali)
		}
	}
}

func TestUnknownTeamDefaultsToMidfieldRank(t *testing.T) {
	quali := []f1data.SessionRow{qualiRow(30, "LAW", "RB", 10)}
	race := []f1data.SessionRow{raceRow(30, "LAW", "RB", 10, 10)}
	standings := []f1data.ConstructorStanding{{Team: "Ferrari", Points: 99, Rank: 1}}

	scores := performanceScores(race, quali, standings)
	require.Len(t, scores, 1)
	assert.Equal(t, defaultTeamRank, scores[0].TeamRank)
}

func TestPositionsGainedAsymmetry(t *testing.T) {
	standings := []f1data.ConstructorStanding{{Team: "Haas", Points: 5, Rank: 9}}

	gainer := performanceScores(
		[]f1data.SessionRow{raceRow(27, "HUL", "Haas", 8, 12)},
		[]f1data.SessionRow{qualiRow(27, "HUL", "Haas", 12)},
		standings,
	)
	loser := performanceScores(
		[]f1data.SessionRow{raceRow(27, "HUL", "Haas", 12, 8)},
		[]f1data.SessionRow{qualiRow(27, "HUL", "Haas", 8)},
		standings,
	)
	require.Len(t, gainer, 1)
	require.Len(t, loser, 1)

	assert.InDelta(t, 4*3.5, gainer[0].Positions, 1e-9)
	assert.InDelta(t, -4*2.5, loser[0].Positions, 1e-9)
}

func TestRaceBattleCountsGainDifference(t *testing.T) {
	quali := []f1data.SessionRow{
		qualiRow(16, "LEC", "Ferrari", 3),
		qualiRow(55, "SAI", "Ferrari", 4),
	}
	// SAI charges from P10 to P5 and beats LEC who slipped P3 -> P6.
	race := []f1data.SessionRow{
		raceRow(16, "LEC", "Ferrari", 6, 3),
		raceRow(55, "SAI", "Ferrari", 5, 10),
	}
	standings := []f1data.ConstructorStanding{{Team: "Ferrari", Points: 80, Rank: 2}}

	scores := performanceScores(race, quali, standings)
	require.Len(t, scores, 2)

	for _, s := range scores {
		switch s.Driver {
		case "SAI":
			// -3 quali battle, +5 race battle, +8 gain difference (5 vs -3).
			assert.InDelta(t, -3+5+8, s.Teammate, 1e-9)
		case "LEC":
			assert.InDelta(t, 3-5, s.Teammate, 1e-9)
		}
	}
}

func TestUnclassifiedTeammateRanksBehind(t *testing.T) {
	quali := []f1data.SessionRow{
		qualiRow(63, "RUS", "Mercedes", 5),
		qualiRow(44, "HAM", "Mercedes", 6),
	}
	race := []f1data.SessionRow{
		raceRow(63, "RUS", "Mercedes", -1, 5), // DNF
		raceRow(44, "HAM", "Mercedes", 7, 6),
	}
	standings := []f1data.ConstructorStanding{{Team: "Mercedes", Points: 70, Rank: 3}}

	scores := performanceScores(race, quali, standings)
	// RUS has no finish position, so only HAM is scored.
	require.Len(t, scores, 1)
	require.Equal(t, "HAM", scores[0].Driver)

	// Lost quali battle, won the race battle by finishing; gain diff
	// unavailable because RUS never classified.
	assert.InDelta(t, -3+5, scores[0].Teammate, 1e-9)
}
