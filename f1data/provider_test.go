package f1data

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteRequiresResultsAndLaps(t *testing.T) {
	rows := []SessionRow{scoredRow("VER", "Red Bull", 1, 25)}

	ok, err := Complete(context.Background(), &stubProvider{
		rounds:  map[int][]SessionRow{6: rows},
		lapData: true,
	}, 2024, 6)
	require.NoError(t, err)
	assert.True(t, ok)

	// Results without lap data are not scoreable yet.
	ok, err = Complete(context.Background(), &stubProvider{
		rounds: map[int][]SessionRow{6: rows},
	}, 2024, 6)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompleteEmptyResults(t *testing.T) {
	ok, err := Complete(context.Background(), &stubProvider{
		rounds:  map[int][]SessionRow{6: {}},
		lapData: true,
	}, 2024, 6)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompleteNoClassifiedFinishers(t *testing.T) {
	// A provisional feed may list entrants before anyone has a position.
	rows := []SessionRow{
		{Driver: "VER", Team: "Red Bull", Status: "Retired"},
		{Driver: "LEC", Team: "Ferrari", Status: "Retired"},
	}

	ok, err := Complete(context.Background(), &stubProvider{
		rounds:  map[int][]SessionRow{6: rows},
		lapData: true,
	}, 2024, 6)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompletePropagatesFetchError(t *testing.T) {
	_, err := Complete(context.Background(), &stubProvider{}, 2024, 6)
	assert.Error(t, err)
}

func TestCompleteLapFetchError(t *testing.T) {
	rows := []SessionRow{scoredRow("VER", "Red Bull", 1, 25)}

	ok, err := Complete(context.Background(), &stubProvider{
		rounds: map[int][]SessionRow{6: rows},
		lapErr: errors.New("timeout"),
	}, 2024, 6)
	assert.Error(t, err)
	assert.False(t, ok)
}
