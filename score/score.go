// Package score implements score (range) voting, where each ballot assigns
// a numeric score to any number of candidates and the candidates with the
// highest total score win.
package score

import (
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/plurality"
	"github.com/phayes/tallystick/ranking"
)

// Scored is a single (candidate, score) entry of a score ballot.
type Scored[T comparable, C any] struct {
	Candidate T
	Score     C
}

// Tally accumulates score ballots. C serves as both the score and the
// count type.
type Tally[T comparable, C any] struct {
	arith     counting.Arithmetic[C]
	plurality *plurality.Tally[T, C]
}

// New creates a score tally for the given number of winners.
func New[T comparable, C any](arith counting.Arithmetic[C], numWinners int) *Tally[T, C] {
	return &Tally[T, C]{
		arith:     arith,
		plurality: plurality.New[T](arith, numWinners),
	}
}

// WithCapacity creates a score tally sized for the expected number of
// candidates.
func WithCapacity[T comparable, C any](arith counting.Arithmetic[C], numWinners, expectedCandidates int) *Tally[T, C] {
	return &Tally[T, C]{
		arith:     arith,
		plurality: plurality.WithCapacity[T](arith, numWinners, expectedCandidates),
	}
}

// NewDefault creates a score tally counting with int64.
func NewDefault[T comparable](numWinners int) *Tally[T, int64] {
	return New[T](counting.Int64(), numWinners)
}

// Add records a ballot scoring the given candidates.
func (t *Tally[T, C]) Add(selection []Scored[T, C]) {
	for _, s := range selection {
		t.plurality.AddWeighted(s.Candidate, s.Score)
	}
}

// AddWeighted records a ballot scoring the given candidates, multiplying
// every score by the ballot weight.
func (t *Tally[T, C]) AddWeighted(selection []Scored[T, C], weight C) {
	for _, s := range selection {
		t.plurality.AddWeighted(s.Candidate, t.arith.Mul(weight, s.Score))
	}
}

// Candidates returns all candidates seen by this tally in first-seen order.
func (t *Tally[T, C]) Candidates() []T { return t.plurality.Candidates() }

// Totals returns each candidate's total score, sorted descending.
func (t *Tally[T, C]) Totals() []ranking.CandidateCount[T, C] { return t.plurality.Totals() }

// Ranked returns a full ranked list of all candidates. Candidates with the
// same total score are tied.
func (t *Tally[T, C]) Ranked() []ranking.RankedCandidate[T] { return t.plurality.Ranked() }

// Winners returns the ranked winners. In score voting the winning
// candidates are the ones with the highest total score.
func (t *Tally[T, C]) Winners() ranking.RankedWinners[T] { return t.plurality.Winners() }
