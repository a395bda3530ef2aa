package quota

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
)

func TestDroopThreshold(t *testing.T) {
	tests := []struct {
		name       string
		totalVotes int64
		numWinners int
		expected   int64
	}{
		{"single winner", 100, 1, 51},
		{"two seats", 100, 2, 34},
		{"three seats", 1000, 3, 251},
		{"indivisible total", 101, 1, 51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Threshold(Droop, counting.Int64(), tt.totalVotes, tt.numWinners)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDroopThresholdFloorsFractions(t *testing.T) {
	// Floats still floor before adding one, so Droop stays integral.
	got, err := Threshold(Droop, counting.Float64(), 101, 1)
	require.NoError(t, err)
	assert.InDelta(t, 51.0, got, 1e-12)
}

func TestHagenbachThreshold(t *testing.T) {
	got, err := Threshold(Hagenbach, counting.Float64(), 100, 3)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got, 1e-12)

	d, err := Threshold(Hagenbach, counting.Decimal(), decimal.NewFromInt(100), 1)
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(50)))
}

func TestHagenbachRequiresFractionalCounts(t *testing.T) {
	_, err := Threshold(Hagenbach, counting.Int64(), 100, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, tallystick.ErrUnsupportedCountType)
}

func TestHareThreshold(t *testing.T) {
	got, err := Threshold(Hare, counting.Int64(), 100, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(50), got)
}

func TestThresholdRejectsInvalidSeatCounts(t *testing.T) {
	// A Hare quota over zero seats would divide by zero; every formula
	// rejects the seat count before touching the arithmetic.
	for _, q := range []Quota{Droop, Hagenbach, Hare} {
		t.Run(string(q), func(t *testing.T) {
			_, err := Threshold(q, counting.Int64(), 100, 0)
			assert.Error(t, err)

			_, err = Threshold(q, counting.Float64(), 100, -1)
			assert.Error(t, err)
		})
	}
}

func TestUnknownQuota(t *testing.T) {
	_, err := Threshold(Quota("imperiali"), counting.Int64(), 100, 1)
	assert.Error(t, err)
}
