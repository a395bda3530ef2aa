// Package pairwise accumulates weighted pairwise preference counts from
// ranked ballots. It is the shared counting core of the Condorcet and
// Schulze methods: each ballot contributes, for every pair of candidates
// (a, b) with a strictly preferred to b, the ballot's weight to the
// count of "a preferred to b" comparisons.
package pairwise

import (
	"fmt"
	"sort"

	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/internal/intern"
)

// Pair is an ordered pair of interned candidate ids. The count stored
// under a Pair is the total weight of ballots preferring candidate A to
// candidate B.
type Pair struct {
	A, B int
}

// Total is a pairwise count materialized with candidate values: the total
// weight of ballots in which Candidate was strictly preferred to Opponent.
type Total[T comparable, C any] struct {
	Candidate T
	Opponent  T
	Votes     C
}

// Accumulator maintains the running pairwise count table. Candidates are
// interned to dense ids the first time they are seen; counts are only ever
// incremented (there is no vote retraction). The zero self-pair (i, i) is
// never stored, and absent entries are implicitly zero.
type Accumulator[T comparable, C any] struct {
	arith      counting.Arithmetic[C]
	candidates *intern.Interner[T]
	counts     map[Pair]C

	// closed marks an accumulator constructed with an explicit candidate
	// list; ballots naming other candidates are rejected, and candidates
	// omitted from a ballot are implicitly ranked below all marked ones.
	closed bool
}

// New returns an empty open accumulator: new candidates are registered as
// they appear on ballots.
func New[T comparable, C any](arith counting.Arithmetic[C]) *Accumulator[T, C] {
	return &Accumulator[T, C]{
		arith:      arith,
		candidates: intern.New[T](),
		counts:     make(map[Pair]C),
	}
}

// WithCapacity returns an empty open accumulator sized for the expected
// number of candidates.
func WithCapacity[T comparable, C any](arith counting.Arithmetic[C], expectedCandidates int) *Accumulator[T, C] {
	return &Accumulator[T, C]{
		arith:      arith,
		candidates: intern.WithCapacity[T](expectedCandidates),
		counts:     make(map[Pair]C, expectedCandidates*expectedCandidates),
	}
}

// WithCandidates returns an accumulator closed over the given candidate
// set. Ballots referencing any other candidate are rejected with
// tallystick.ErrUnknownCandidate.
func WithCandidates[T comparable, C any](arith counting.Arithmetic[C], candidates []T) *Accumulator[T, C] {
	acc := WithCapacity[T](arith, len(candidates))
	for _, candidate := range candidates {
		acc.candidates.Intern(candidate)
	}
	acc.closed = true
	return acc
}

// RecordTransitive records a simple preferential ordering: every earlier
// candidate is preferred to every later one. Validation happens before any
// count is touched, so a rejected ballot leaves the table unchanged.
func (acc *Accumulator[T, C]) RecordTransitive(selection []T, weight C) error {
	if len(selection) == 0 {
		return nil
	}
	if err := tallystick.CheckDuplicates(selection); err != nil {
		return err
	}
	return acc.record(tallystick.Marks(selection), weight)
}

// RecordRanked records a ranked ballot with explicit (candidate, rank)
// marks. Candidates marked with the same rank are tied and generate no
// pairwise count between themselves.
func (acc *Accumulator[T, C]) RecordRanked(marks []tallystick.Mark[T], weight C) error {
	if len(marks) == 0 {
		return nil
	}
	if err := tallystick.CheckDuplicateMarks(marks); err != nil {
		return err
	}
	return acc.record(marks, weight)
}

func (acc *Accumulator[T, C]) record(marks []tallystick.Mark[T], weight C) error {
	if acc.closed {
		for _, mark := range marks {
			if _, ok := acc.candidates.Lookup(mark.Candidate); !ok {
				return fmt.Errorf("%w: %v", tallystick.ErrUnknownCandidate, mark.Candidate)
			}
		}
	}

	ids := make([]int, len(marks))
	for i, mark := range marks {
		ids[i] = acc.candidates.Intern(mark.Candidate)
	}

	for i, mark := range marks {
		for j := i + 1; j < len(marks); j++ {
			other := marks[j]
			switch {
			case mark.Rank < other.Rank:
				acc.increment(ids[i], ids[j], weight)
			case mark.Rank > other.Rank:
				acc.increment(ids[j], ids[i], weight)
			}
		}
	}

	// With a closed candidate set, candidates omitted from the ballot are
	// implicitly ranked below every marked candidate and tied with each
	// other.
	if acc.closed && len(marks) < acc.candidates.Len() {
		marked := make(map[int]struct{}, len(ids))
		for _, id := range ids {
			marked[id] = struct{}{}
		}
		for omitted := 0; omitted < acc.candidates.Len(); omitted++ {
			if _, ok := marked[omitted]; ok {
				continue
			}
			for _, id := range ids {
				acc.increment(id, omitted, weight)
			}
		}
	}

	return nil
}

func (acc *Accumulator[T, C]) increment(winner, loser int, weight C) {
	p := Pair{A: winner, B: loser}
	if current, ok := acc.counts[p]; ok {
		acc.counts[p] = acc.arith.Add(current, weight)
		return
	}
	acc.counts[p] = weight
}

// Count returns the accumulated weight of ballots preferring candidate i
// to candidate j, or zero if the pair was never counted.
func (acc *Accumulator[T, C]) Count(i, j int) C {
	if c, ok := acc.counts[Pair{A: i, B: j}]; ok {
		return c
	}
	return acc.arith.Zero()
}

// Pairs returns every ordered pair present in the count table, sorted by
// candidate id. Iterating Pairs instead of the underlying map keeps every
// derived computation deterministic.
func (acc *Accumulator[T, C]) Pairs() []Pair {
	pairs := make([]Pair, 0, len(acc.counts))
	for p := range acc.counts {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}

// Totals materializes the full count table with candidate values, ordered
// by candidate id pairs.
func (acc *Accumulator[T, C]) Totals() []Total[T, C] {
	totals := make([]Total[T, C], 0, len(acc.counts))
	for _, p := range acc.Pairs() {
		totals = append(totals, Total[T, C]{
			Candidate: acc.candidates.Value(p.A),
			Opponent:  acc.candidates.Value(p.B),
			Votes:     acc.counts[p],
		})
	}
	return totals
}

// Candidates returns all registered candidates in first-seen order. The
// index of a candidate in this slice is its interned id.
func (acc *Accumulator[T, C]) Candidates() []T {
	return acc.candidates.Candidates()
}

// NumCandidates returns the number of registered candidates.
func (acc *Accumulator[T, C]) NumCandidates() int {
	return acc.candidates.Len()
}

// Candidate returns the candidate value for an interned id.
func (acc *Accumulator[T, C]) Candidate(id int) T {
	return acc.candidates.Value(id)
}

// Closed reports whether the accumulator validates ballots against a
// pre-registered candidate set.
func (acc *Accumulator[T, C]) Closed() bool { return acc.closed }
