package ballotio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected WeightedVote[int64]
	}{
		{
			name: "unranked",
			line: "Alice > Bob > Carol",
			expected: WeightedVote[int64]{
				Vote: ParsedVote{
					Marks: []tallystick.Mark[string]{
						{Candidate: "Alice", Rank: 0},
						{Candidate: "Bob", Rank: 1},
						{Candidate: "Carol", Rank: 2},
					},
				},
				Weight: 1,
			},
		},
		{
			name: "ranked with tie",
			line: "Alice > Bob = Carol",
			expected: WeightedVote[int64]{
				Vote: ParsedVote{
					Marks: []tallystick.Mark[string]{
						{Candidate: "Alice", Rank: 0},
						{Candidate: "Bob", Rank: 1},
						{Candidate: "Carol", Rank: 1},
					},
					Ranked: true,
				},
				Weight: 1,
			},
		},
		{
			name: "weighted",
			line: "Alice > Bob * 3",
			expected: WeightedVote[int64]{
				Vote: ParsedVote{
					Marks: []tallystick.Mark[string]{
						{Candidate: "Alice", Rank: 0},
						{Candidate: "Bob", Rank: 1},
					},
				},
				Weight: 3,
			},
		},
		{
			name: "single candidate",
			line: "  Alice  ",
			expected: WeightedVote[int64]{
				Vote: ParsedVote{
					Marks: []tallystick.Mark[string]{{Candidate: "Alice", Rank: 0}},
				},
				Weight: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line, counting.Int64())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseLineFractionalWeight(t *testing.T) {
	got, err := ParseLine("Alice > Bob * 2.5", counting.Float64())
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got.Weight, 1e-12)
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"malformed weight", "Alice > Bob * two"},
		{"two weight separators", "Alice * 2 * 3"},
		{"dangling separator", "Alice > Bob >"},
		{"empty candidate", "Alice > > Bob"},
		{"empty tie member", "Alice = "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line, counting.Int64())
			require.Error(t, err)

			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestReadVotes(t *testing.T) {
	input := `
		Alice > Bob > Carol
		Bob > Alice * 2

		Carol
	`
	votes, err := ReadVotes(strings.NewReader(input), counting.Int64())
	require.NoError(t, err)
	require.Len(t, votes, 3)

	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, votes[0].Vote.Selections())
	assert.Equal(t, int64(2), votes[1].Weight)
	assert.Equal(t, []string{"Carol"}, votes[2].Vote.Selections())
}

func TestReadVotesReportsLineNumber(t *testing.T) {
	input := "Alice > Bob\nBob * nope\n"
	_, err := ReadVotes(strings.NewReader(input), counting.Int64())
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, "nope", perr.Fragment)
}

func TestNormalizer(t *testing.T) {
	n := NewNormalizer(false)

	// Combining acute accent composes into the precomposed form.
	assert.Equal(t, "José", n.Normalize("José"))
	assert.Equal(t, "Alice", n.Normalize("Alice"))

	folded := NewNormalizer(true)
	assert.Equal(t, folded.Normalize("ALICE"), folded.Normalize("alice"))
}

func TestNormalizeVote(t *testing.T) {
	n := NewNormalizer(true)
	vote, err := ParseLine("ALICE > Bob", counting.Int64())
	require.NoError(t, err)

	normalized := n.NormalizeVote(vote.Vote)
	assert.Equal(t, []string{"alice", "bob"}, normalized.Selections())
}

func TestSuggestCandidate(t *testing.T) {
	candidates := []string{"Alice", "Bob", "Carol"}

	got, ok := SuggestCandidate("Alise", candidates)
	require.True(t, ok)
	assert.Equal(t, "Alice", got)

	got, ok = SuggestCandidate("Carl", candidates)
	require.True(t, ok)
	assert.Equal(t, "Carol", got)

	_, ok = SuggestCandidate("Zorblax the Destroyer", candidates)
	assert.False(t, ok)
}

func TestLoadElection(t *testing.T) {
	manifest := `
name: Capital of Tennessee
method: condorcet
num_winners: 1
candidates:
  - Memphis
  - Nashville
  - Chattanooga
  - Knoxville
ballots:
  - Memphis > Nashville > Chattanooga > Knoxville * 42
  - Nashville > Chattanooga > Knoxville > Memphis * 26
  - Chattanooga > Knoxville > Nashville > Memphis * 15
  - Knoxville > Chattanooga > Nashville > Memphis * 17
`
	e, err := LoadElection(strings.NewReader(manifest))
	require.NoError(t, err)
	assert.Equal(t, "condorcet", e.Method)
	assert.Equal(t, 1, e.NumWinners)
	assert.Len(t, e.Candidates, 4)
	assert.Len(t, e.Ballots, 4)
}

func TestLoadElectionRejectsInvalidManifests(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"unknown method", "name: x\nmethod: acclamation\ncandidates: [a]"},
		{"no candidates", "name: x\nmethod: plurality"},
		{"duplicate candidates", "name: x\nmethod: plurality\ncandidates: [a, a]"},
		{"bad quota", "name: x\nmethod: stv\nquota: imperiali\ncandidates: [a]"},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadElection(strings.NewReader(tt.manifest))
			assert.Error(t, err)
		})
	}
}
