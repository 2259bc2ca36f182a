package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPrediction() *Prediction {
	return &Prediction{
		UserID:       1,
		RaceID:       6,
		PoleDriver:   "VER",
		PodiumP1:     "VER",
		PodiumP2:     "NOR",
		PodiumP3:     "LEC",
		ChaserDriver: "HAM",
		BreakoutKind: PickDriver,
		BreakoutName: "ALO",
		BustKind:     PickTeam,
		BustName:     "Williams",
	}
}

func TestPredictionValidate(t *testing.T) {
	require.NoError(t, validPrediction().Validate())

	p := validPrediction()
	p.PodiumP2 = ""
	assert.Error(t, p.Validate())

	p = validPrediction()
	p.BreakoutKind = "constructor"
	assert.Error(t, p.Validate())

	p = validPrediction()
	p.BustName = ""
	assert.Error(t, p.Validate())

	p = validPrediction()
	p.FullSendCategory = "fastest_lap"
	assert.Error(t, p.Validate())

	p = validPrediction()
	p.FullSendCategory = CategoryBust
	assert.NoError(t, p.Validate())

	// No full send at all is allowed.
	p = validPrediction()
	p.FullSendCategory = ""
	assert.NoError(t, p.Validate())
}

func TestPicks(t *testing.T) {
	p := validPrediction()
	assert.Equal(t, Pick{Kind: PickDriver, Name: "ALO"}, p.BreakoutPick())
	assert.Equal(t, Pick{Kind: PickTeam, Name: "Williams"}, p.BustPick())
}
