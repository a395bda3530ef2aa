package irv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/ranking"
)

func TestIRVTennessee(t *testing.T) {
	// See: https://en.wikipedia.org/wiki/Instant-runoff_voting
	tally := NewDefault[string]()
	require.NoError(t, tally.AddWeighted([]string{"Memphis", "Nashville", "Chattanooga", "Knoxville"}, 42))
	require.NoError(t, tally.AddWeighted([]string{"Nashville", "Chattanooga", "Knoxville", "Memphis"}, 26))
	require.NoError(t, tally.AddWeighted([]string{"Chattanooga", "Knoxville", "Nashville", "Memphis"}, 15))
	require.NoError(t, tally.AddWeighted([]string{"Knoxville", "Chattanooga", "Nashville", "Memphis"}, 17))

	// Rounds: Chattanooga out first (15), its ballots move to Knoxville;
	// Nashville out next (26); Memphis loses the final head-to-head 42
	// against 58.
	assert.Equal(t, []ranking.RankedCandidate[string]{
		{Candidate: "Knoxville", Rank: 0},
		{Candidate: "Memphis", Rank: 1},
		{Candidate: "Nashville", Rank: 2},
		{Candidate: "Chattanooga", Rank: 3},
	}, tally.Ranked())

	winners := tally.Winners()
	assert.Equal(t, []string{"Knoxville"}, winners.All())
	assert.False(t, winners.IsOverflowing())
}

func TestIRVMajorityFirstRound(t *testing.T) {
	tally := NewDefault[string]()
	require.NoError(t, tally.AddWeighted([]string{"Alice", "Bob"}, 3))
	require.NoError(t, tally.AddWeighted([]string{"Bob", "Alice"}, 1))

	assert.Equal(t, []string{"Alice"}, tally.Winners().All())
}

func TestIRVAllTied(t *testing.T) {
	tally := NewDefault[string]()
	require.NoError(t, tally.Add([]string{"Alice", "Bob"}))
	require.NoError(t, tally.Add([]string{"Bob", "Alice"}))

	for _, rc := range tally.Ranked() {
		assert.Equal(t, 0, rc.Rank)
	}

	winners := tally.Winners()
	assert.True(t, winners.IsOverflowing())
	assert.Len(t, winners.All(), 2)
}

func TestIRVExhaustedBallots(t *testing.T) {
	// Truncated ballots drop out once their preferences are exhausted.
	tally := NewDefault[string]()
	require.NoError(t, tally.AddWeighted([]string{"Alice"}, 4))
	require.NoError(t, tally.AddWeighted([]string{"Bob", "Carol"}, 3))
	require.NoError(t, tally.AddWeighted([]string{"Carol"}, 2))

	// Carol out first (2); Bob's ballots stay with Bob; Bob out next.
	assert.Equal(t, []ranking.RankedCandidate[string]{
		{Candidate: "Alice", Rank: 0},
		{Candidate: "Bob", Rank: 1},
		{Candidate: "Carol", Rank: 2},
	}, tally.Ranked())
}

func TestIRVPreRegisteredCandidateWithoutVotes(t *testing.T) {
	tally := WithCandidates(counting.Int64(), []string{"Alice", "Bob", "Zed"})
	require.NoError(t, tally.Add([]string{"Alice", "Bob"}))
	require.NoError(t, tally.Add([]string{"Alice"}))

	// Bob and Zed both poll zero in the first round and exit together.
	assert.Equal(t, []ranking.RankedCandidate[string]{
		{Candidate: "Alice", Rank: 0},
		{Candidate: "Bob", Rank: 1},
		{Candidate: "Zed", Rank: 1},
	}, tally.Ranked())
}

func TestIRVRejectsDuplicates(t *testing.T) {
	tally := NewDefault[string]()
	err := tally.Add([]string{"Alice", "Bob", "Alice"})
	assert.ErrorIs(t, err, tallystick.ErrDuplicateCandidate)
	assert.Empty(t, tally.Candidates())
	assert.Zero(t, tally.TotalVotes())
}

func TestIRVEmptyTally(t *testing.T) {
	tally := NewDefault[string]()
	assert.Empty(t, tally.Ranked())
	assert.True(t, tally.Winners().IsEmpty())
}
