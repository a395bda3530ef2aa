// Package plurality implements plurality voting, where each ballot selects
// a single candidate and the candidates with the most votes win.
//
// The plurality tally is also the counting core reused by the approval,
// score, and Borda methods, and by the Schulze method's final reduction:
// they all accumulate a weighted total per candidate and reduce it into a
// tie-aware ranking.
package plurality

import (
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/internal/intern"
	"github.com/phayes/tallystick/ranking"
)

// Tally accumulates weighted single-candidate votes.
// T is the candidate type; C is the count type selected by the
// counting.Arithmetic passed at construction.
type Tally[T comparable, C any] struct {
	arith      counting.Arithmetic[C]
	candidates *intern.Interner[T]
	totals     []C
	numWinners int
}

// New creates a plurality tally for the given number of winners.
// If there is a tie spanning the last seat, Winners may return more than
// numWinners candidates; see ranking.RankedWinners.
func New[T comparable, C any](arith counting.Arithmetic[C], numWinners int) *Tally[T, C] {
	return &Tally[T, C]{
		arith:      arith,
		candidates: intern.New[T](),
		numWinners: numWinners,
	}
}

// WithCapacity creates a plurality tally sized for the expected number of
// candidates.
func WithCapacity[T comparable, C any](arith counting.Arithmetic[C], numWinners, expectedCandidates int) *Tally[T, C] {
	return &Tally[T, C]{
		arith:      arith,
		candidates: intern.WithCapacity[T](expectedCandidates),
		totals:     make([]C, 0, expectedCandidates),
		numWinners: numWinners,
	}
}

// NewDefault creates a plurality tally counting with int64.
func NewDefault[T comparable](numWinners int) *Tally[T, int64] {
	return New[T](counting.Int64(), numWinners)
}

// Add records a vote for a single candidate with a weight of one.
func (t *Tally[T, C]) Add(selection T) {
	t.AddWeighted(selection, t.arith.One())
}

// AddWeighted records a vote for a single candidate with the given weight.
func (t *Tally[T, C]) AddWeighted(selection T, weight C) {
	id := t.candidates.Intern(selection)
	if id == len(t.totals) {
		t.totals = append(t.totals, weight)
		return
	}
	t.totals[id] = t.arith.Add(t.totals[id], weight)
}

// Candidates returns all candidates seen by this tally in first-seen order.
func (t *Tally[T, C]) Candidates() []T {
	return t.candidates.Candidates()
}

// Totals returns each candidate's accumulated total, sorted by descending
// total.
func (t *Tally[T, C]) Totals() []ranking.CandidateCount[T, C] {
	return t.Counted().IntoVec()
}

// Ranked returns a full ranked list of all candidates. Candidates with the
// same total are tied; the highest ranked candidate has rank 0.
func (t *Tally[T, C]) Ranked() []ranking.RankedCandidate[T] {
	return t.Counted().Ranked()
}

// Winners returns the ranked winners. The number of winners can exceed the
// requested number when the least-significantly ranked winners are tied.
func (t *Tally[T, C]) Winners() ranking.RankedWinners[T] {
	return t.Counted().IntoRanked(t.numWinners)
}

// Counted exposes the raw counted totals for reduction. It is used by the
// methods that layer on top of the plurality counter.
func (t *Tally[T, C]) Counted() *ranking.Counted[T, C] {
	counted := ranking.NewCounted[T, C](t.arith.Cmp)
	for id, candidate := range t.candidates.Candidates() {
		counted.Push(candidate, t.totals[id])
	}
	return counted
}

// NumWinners returns the requested number of winners.
func (t *Tally[T, C]) NumWinners() int { return t.numWinners }
