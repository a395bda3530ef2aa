package borda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/ranking"
)

func TestBordaPoints(t *testing.T) {
	arith := counting.Int64()

	tests := []struct {
		name          string
		variant       Variant
		position      int
		numCandidates int
		numMarked     int
		expected      int64
	}{
		{"borda first of four", Borda, 0, 4, 4, 3},
		{"borda last of four", Borda, 3, 4, 4, 0},
		{"classic first of four", ClassicBorda, 0, 4, 4, 4},
		{"classic last of four", ClassicBorda, 3, 4, 4, 1},
		{"modified uses marked count", ModifiedBorda, 0, 4, 2, 1},
		{"modified classic uses marked count", ModifiedClassicBorda, 1, 4, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := points(arith, tt.variant, tt.position, tt.numCandidates, tt.numMarked)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDowdallPoints(t *testing.T) {
	arith := counting.Float64()

	// Dowdall: num-candidates / (position + 1).
	assert.InDelta(t, 4.0, points(arith, Dowdall, 0, 4, 4), 1e-12)
	assert.InDelta(t, 2.0, points(arith, Dowdall, 1, 4, 4), 1e-12)
	assert.InDelta(t, 4.0/3.0, points(arith, Dowdall, 2, 4, 4), 1e-12)
}

func TestDowdallRequiresFractionalCounts(t *testing.T) {
	_, err := New[string](counting.Int64(), 1, Dowdall)
	require.Error(t, err)
	assert.ErrorIs(t, err, tallystick.ErrUnsupportedCountType)

	_, err = New[string](counting.Float64(), 1, Dowdall)
	assert.NoError(t, err)
}

func TestBordaTennessee(t *testing.T) {
	// Positional count over the classic Tennessee capital election.
	tally := NewDefault[string](1)
	require.NoError(t, tally.AddWeighted([]string{"Memphis", "Nashville", "Chattanooga", "Knoxville"}, 42))
	require.NoError(t, tally.AddWeighted([]string{"Nashville", "Chattanooga", "Knoxville", "Memphis"}, 26))
	require.NoError(t, tally.AddWeighted([]string{"Chattanooga", "Knoxville", "Nashville", "Memphis"}, 15))
	require.NoError(t, tally.AddWeighted([]string{"Knoxville", "Chattanooga", "Nashville", "Memphis"}, 17))

	// Borda points (3,2,1,0 per position):
	//   Memphis:     42*3           = 126
	//   Nashville:   42*2 + 26*3 + 15*1 + 17*1 = 194
	//   Chattanooga: 42*1 + 26*2 + 15*3 + 17*2 = 173
	//   Knoxville:   26*1 + 15*2 + 17*3 = 107
	ranked := tally.Ranked()
	assert.Equal(t, []ranking.RankedCandidate[string]{
		{Candidate: "Nashville", Rank: 0},
		{Candidate: "Chattanooga", Rank: 1},
		{Candidate: "Memphis", Rank: 2},
		{Candidate: "Knoxville", Rank: 3},
	}, ranked)

	winners := tally.Winners()
	assert.Equal(t, []string{"Nashville"}, winners.All())
}

func TestBordaRejectsDuplicates(t *testing.T) {
	tally := NewDefault[string](1)
	err := tally.Add([]string{"Alice", "Bob", "Alice"})
	assert.ErrorIs(t, err, tallystick.ErrDuplicateCandidate)
	assert.Empty(t, tally.Candidates())
}

func TestBordaUnknownVariant(t *testing.T) {
	_, err := New[string](counting.Int64(), 1, Variant("nope"))
	assert.Error(t, err)
}
