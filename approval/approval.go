// Package approval implements approval voting, where each ballot approves
// of any number of candidates and the most approved candidates win.
package approval

import (
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/plurality"
	"github.com/phayes/tallystick/ranking"
)

// Tally accumulates approval ballots. Each ballot is a set of approved
// candidates; every approved candidate receives the ballot's full weight.
type Tally[T comparable, C any] struct {
	plurality *plurality.Tally[T, C]
}

// New creates an approval tally for the given number of winners.
func New[T comparable, C any](arith counting.Arithmetic[C], numWinners int) *Tally[T, C] {
	return &Tally[T, C]{plurality: plurality.New[T](arith, numWinners)}
}

// WithCapacity creates an approval tally sized for the expected number of
// candidates.
func WithCapacity[T comparable, C any](arith counting.Arithmetic[C], numWinners, expectedCandidates int) *Tally[T, C] {
	return &Tally[T, C]{plurality: plurality.WithCapacity[T](arith, numWinners, expectedCandidates)}
}

// NewDefault creates an approval tally counting with int64.
func NewDefault[T comparable](numWinners int) *Tally[T, int64] {
	return New[T](counting.Int64(), numWinners)
}

// Add records a ballot approving of the given candidates with a weight of
// one.
func (t *Tally[T, C]) Add(selection []T) {
	for _, candidate := range selection {
		t.plurality.Add(candidate)
	}
}

// AddWeighted records a ballot approving of the given candidates with the
// given weight.
func (t *Tally[T, C]) AddWeighted(selection []T, weight C) {
	for _, candidate := range selection {
		t.plurality.AddWeighted(candidate, weight)
	}
}

// Candidates returns all candidates seen by this tally in first-seen order.
func (t *Tally[T, C]) Candidates() []T { return t.plurality.Candidates() }

// Totals returns each candidate's weighted approval count, sorted by
// descending count.
func (t *Tally[T, C]) Totals() []ranking.CandidateCount[T, C] { return t.plurality.Totals() }

// Ranked returns a full ranked list of all candidates. Candidates with the
// same approval count are tied.
func (t *Tally[T, C]) Ranked() []ranking.RankedCandidate[T] { return t.plurality.Ranked() }

// Winners returns the ranked winners. In approval voting the winning
// candidates are the ones most approved by all voters.
func (t *Tally[T, C]) Winners() ranking.RankedWinners[T] { return t.plurality.Winners() }
