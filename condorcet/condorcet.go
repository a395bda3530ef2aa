// Package condorcet implements Condorcet-method voting. Ballots are
// preferential orderings; the tally accumulates pairwise preference counts
// and ranks candidates by decomposing the pairwise preference graph into
// strongly connected components (Smith sets).
//
// A candidate who pairwise-beats every other candidate is the unique
// Condorcet winner and occupies rank 0 alone. When preferences cycle, the
// candidates in the cycle form one component and tie at the same rank;
// a full voting paradox ties every candidate at rank 0. This is the
// intended reading of non-transitive preferences, not a defect.
package condorcet

import (
	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/internal/graph"
	"github.com/phayes/tallystick/pairwise"
	"github.com/phayes/tallystick/ranking"
)

// Tally accumulates preferential ballots for a Condorcet election.
type Tally[T comparable, C any] struct {
	arith      counting.Arithmetic[C]
	acc        *pairwise.Accumulator[T, C]
	numWinners int
}

// New creates a Condorcet tally for the given number of winners. If there
// is a tie, Winners may include more than numWinners candidates; see
// ranking.RankedWinners.
func New[T comparable, C any](arith counting.Arithmetic[C], numWinners int) *Tally[T, C] {
	return &Tally[T, C]{
		arith:      arith,
		acc:        pairwise.New[T](arith),
		numWinners: numWinners,
	}
}

// WithCapacity creates a Condorcet tally sized for the expected number of
// candidates.
func WithCapacity[T comparable, C any](arith counting.Arithmetic[C], numWinners, expectedCandidates int) *Tally[T, C] {
	return &Tally[T, C]{
		arith:      arith,
		acc:        pairwise.WithCapacity[T](arith, expectedCandidates),
		numWinners: numWinners,
	}
}

// WithCandidates creates a Condorcet tally closed over the given candidate
// set. Ballots referencing other candidates are rejected, and candidates
// omitted from a ballot are implicitly ranked below all marked candidates.
func WithCandidates[T comparable, C any](arith counting.Arithmetic[C], numWinners int, candidates []T) *Tally[T, C] {
	return &Tally[T, C]{
		arith:      arith,
		acc:        pairwise.WithCandidates(arith, candidates),
		numWinners: numWinners,
	}
}

// NewDefault creates a Condorcet tally counting with int64.
func NewDefault[T comparable](numWinners int) *Tally[T, int64] {
	return New[T](counting.Int64(), numWinners)
}

// Add records a preferential ballot with a weight of one. Every earlier
// candidate is preferred to every later one.
func (t *Tally[T, C]) Add(selection []T) error {
	return t.AddWeighted(selection, t.arith.One())
}

// AddWeighted records a preferential ballot with the given weight.
func (t *Tally[T, C]) AddWeighted(selection []T, weight C) error {
	return t.acc.RecordTransitive(selection, weight)
}

// AddRanked records a ranked ballot with a weight of one. Candidates
// marked with equal ranks are tied.
func (t *Tally[T, C]) AddRanked(marks []tallystick.Mark[T]) error {
	return t.AddRankedWeighted(marks, t.arith.One())
}

// AddRankedWeighted records a ranked ballot with the given weight.
func (t *Tally[T, C]) AddRankedWeighted(marks []tallystick.Mark[T], weight C) error {
	return t.acc.RecordRanked(marks, weight)
}

// Candidates returns all candidates seen by this tally in first-seen
// order.
func (t *Tally[T, C]) Candidates() []T {
	return t.acc.Candidates()
}

// Totals returns the raw pairwise preference counts.
func (t *Tally[T, C]) Totals() []pairwise.Total[T, C] {
	return t.acc.Totals()
}

// NumWinners returns the requested number of winners.
func (t *Tally[T, C]) NumWinners() int { return t.numWinners }

// Pairwise exposes the underlying pairwise accumulator. The Schulze method
// layers its strongest-path computation over the same accumulator.
func (t *Tally[T, C]) Pairwise() *pairwise.Accumulator[T, C] {
	return t.acc
}

// Ranked computes a full ranking of all candidates. The preference graph
// is decomposed into strongly connected components; each component is a
// group of mutually unbeaten candidates sharing one rank, assigned in
// descending dominance order.
//
// Ranked is a pure read of the current accumulator state: it can be called
// any number of times and always reflects the latest totals.
func (t *Tally[T, C]) Ranked() []ranking.RankedCandidate[T] {
	components := t.buildDirected().StronglyConnected()

	ranked := make([]ranking.RankedCandidate[T], 0, t.acc.NumCandidates())
	for rank, component := range components {
		for _, id := range component {
			ranked = append(ranked, ranking.RankedCandidate[T]{
				Candidate: t.acc.Candidate(id),
				Rank:      rank,
			})
		}
	}
	return ranked
}

// Winners returns the ranked winners. All members of the rank group that
// crosses the requested winner count are included, even if that overflows
// the request; ties are never split arbitrarily.
func (t *Tally[T, C]) Winners() ranking.RankedWinners[T] {
	return ranking.FromRanked(t.Ranked(), t.numWinners)
}

// buildDirected constructs the internal id-graph consumed by Tarjan's
// algorithm. Edges point from the beaten candidate to the beater, so
// components are emitted from most to least dominant.
func (t *Tally[T, C]) buildDirected() *graph.Directed {
	g := graph.New(t.acc.NumCandidates())
	for _, p := range t.acc.Pairs() {
		support := t.acc.Count(p.A, p.B)
		opposition := t.acc.Count(p.B, p.A)
		// An exact tie emits edges in both directions: once here and
		// once when the pair is revisited from the other order.
		if t.arith.Cmp(support, opposition) >= 0 {
			g.AddEdge(p.B, p.A)
		}
	}
	return g
}
