package condorcet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/pairwise"
	"github.com/phayes/tallystick/ranking"
)

func TestCondorcetBasic(t *testing.T) {
	tally := NewDefault[string](1)
	require.NoError(t, tally.Add([]string{"Alice", "Bob", "Cir"}))
	require.NoError(t, tally.Add([]string{"Alice", "Bob", "Cir"}))
	require.NoError(t, tally.Add([]string{"Bob", "Alice", "Cir"}))

	ranked := tally.Ranked()
	assert.Equal(t, []ranking.RankedCandidate[string]{
		{Candidate: "Alice", Rank: 0},
		{Candidate: "Bob", Rank: 1},
		{Candidate: "Cir", Rank: 2},
	}, ranked)

	winners := tally.Winners()
	assert.Equal(t, []string{"Alice"}, winners.All())
	assert.False(t, winners.IsOverflowing())
}

func TestCondorcetVotingParadox(t *testing.T) {
	// A > B > C, B > C > A, C > A > B: every candidate beats one other
	// and loses to another, so all three form one Smith set at rank 0.
	tally := NewDefault[string](1)
	require.NoError(t, tally.Add([]string{"A", "B", "C"}))
	require.NoError(t, tally.Add([]string{"B", "C", "A"}))
	require.NoError(t, tally.Add([]string{"C", "A", "B"}))

	for _, rc := range tally.Ranked() {
		assert.Equal(t, 0, rc.Rank)
	}

	winners := tally.Winners()
	assert.True(t, winners.IsOverflowing())
	assert.ElementsMatch(t, []string{"A", "B", "C"}, winners.Overflow())
	assert.Len(t, winners.All(), 3)
}

func TestCondorcetTennessee(t *testing.T) {
	tally := NewDefault[string](1)
	require.NoError(t, tally.AddWeighted([]string{"Memphis", "Nashville", "Chattanooga", "Knoxville"}, 42))
	require.NoError(t, tally.AddWeighted([]string{"Nashville", "Chattanooga", "Knoxville", "Memphis"}, 26))
	require.NoError(t, tally.AddWeighted([]string{"Chattanooga", "Knoxville", "Nashville", "Memphis"}, 15))
	require.NoError(t, tally.AddWeighted([]string{"Knoxville", "Chattanooga", "Nashville", "Memphis"}, 17))

	assert.Equal(t, []ranking.RankedCandidate[string]{
		{Candidate: "Nashville", Rank: 0},
		{Candidate: "Chattanooga", Rank: 1},
		{Candidate: "Knoxville", Rank: 2},
		{Candidate: "Memphis", Rank: 3},
	}, tally.Ranked())

	// Spot-check pairwise totals. First-seen ids: Memphis=0, Nashville=1,
	// Chattanooga=2, Knoxville=3.
	acc := tally.Pairwise()
	assert.Equal(t, int64(58), acc.Count(1, 0)) // Nashville over Memphis
	assert.Equal(t, int64(42), acc.Count(0, 1)) // Memphis over Nashville
	assert.Equal(t, int64(68), acc.Count(1, 2)) // Nashville over Chattanooga
	assert.Equal(t, int64(32), acc.Count(2, 1))
	assert.Equal(t, int64(83), acc.Count(2, 3)) // Chattanooga over Knoxville
	assert.Equal(t, int64(17), acc.Count(3, 2))
}

func TestCondorcetBuildGraph(t *testing.T) {
	tally := NewDefault[string](1)
	require.NoError(t, tally.AddWeighted([]string{"Alice", "Bob"}, 3))
	require.NoError(t, tally.AddWeighted([]string{"Bob", "Alice"}, 2))

	g := tally.BuildGraph()
	assert.Equal(t, []string{"Alice", "Bob"}, g.Nodes)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, Edge[string, int64]{
		From:       "Bob",
		To:         "Alice",
		Support:    3,
		Opposition: 2,
	}, g.Edges[0])
}

func TestCondorcetTieProducesBothEdges(t *testing.T) {
	tally := NewDefault[string](1)
	require.NoError(t, tally.Add([]string{"Alice", "Bob"}))
	require.NoError(t, tally.Add([]string{"Bob", "Alice"}))

	g := tally.BuildGraph()
	require.Len(t, g.Edges, 2)
	for _, e := range g.Edges {
		assert.Equal(t, int64(1), e.Support)
		assert.Equal(t, int64(1), e.Opposition)
	}

	// Tied candidates form one component at rank 0.
	for _, rc := range tally.Ranked() {
		assert.Equal(t, 0, rc.Rank)
	}
}

func TestCondorcetRejectsDuplicatesAtomically(t *testing.T) {
	tally := NewDefault[string](1)
	require.NoError(t, tally.Add([]string{"Alice", "Bob"}))
	before := tally.Totals()

	err := tally.Add([]string{"Bob", "Alice", "Bob"})
	assert.ErrorIs(t, err, tallystick.ErrDuplicateCandidate)
	assert.Equal(t, before, tally.Totals())
}

func TestCondorcetClosedCandidateSet(t *testing.T) {
	tally := WithCandidates(counting.Int64(), 1, []string{"Alice", "Bob", "Carol"})
	err := tally.Add([]string{"Mallory"})
	assert.ErrorIs(t, err, tallystick.ErrUnknownCandidate)

	// Truncated ballots rank omitted candidates below all marked ones.
	require.NoError(t, tally.Add([]string{"Alice"}))
	require.NoError(t, tally.Add([]string{"Alice", "Bob"}))

	assert.Equal(t, []ranking.RankedCandidate[string]{
		{Candidate: "Alice", Rank: 0},
		{Candidate: "Bob", Rank: 1},
		{Candidate: "Carol", Rank: 2},
	}, tally.Ranked())
}

func TestCondorcetRankedBallotsWithTies(t *testing.T) {
	tally := NewDefault[string](1)
	require.NoError(t, tally.AddRanked([]tallystick.Mark[string]{
		{Candidate: "Alice", Rank: 0},
		{Candidate: "Bob", Rank: 1},
		{Candidate: "Carol", Rank: 1},
	}))
	require.NoError(t, tally.AddRanked([]tallystick.Mark[string]{
		{Candidate: "Alice", Rank: 0},
		{Candidate: "Carol", Rank: 1},
	}))

	ranked := tally.Ranked()
	require.Len(t, ranked, 3)
	assert.Equal(t, ranking.RankedCandidate[string]{Candidate: "Alice", Rank: 0}, ranked[0])
}

func TestCondorcetRepeatedReadsAreStable(t *testing.T) {
	tally := NewDefault[string](2)
	require.NoError(t, tally.Add([]string{"Alice", "Bob", "Cir"}))
	require.NoError(t, tally.Add([]string{"Alice", "Cir", "Bob"}))

	first := tally.Ranked()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, tally.Ranked())
	}

	winners := tally.Winners()
	assert.Equal(t, winners.All(), tally.Winners().All())

	// Adding more ballots is reflected by the next read.
	require.NoError(t, tally.AddWeighted([]string{"Bob", "Alice", "Cir"}, 5))
	assert.NotEqual(t, first, tally.Ranked())
}

func TestCondorcetTotals(t *testing.T) {
	tally := NewDefault[string](1)
	require.NoError(t, tally.Add([]string{"Alice", "Bob"}))

	totals := tally.Totals()
	require.Len(t, totals, 1)
	assert.Equal(t, pairwise.Total[string, int64]{
		Candidate: "Alice",
		Opponent:  "Bob",
		Votes:     1,
	}, totals[0])
}
