// Package borda implements the Borda count and its common variants, where
// each ballot is a preferential ordering and candidates earn points by
// position.
package borda

import (
	"fmt"

	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/internal/intern"
	"github.com/phayes/tallystick/plurality"
	"github.com/phayes/tallystick/ranking"
)

// Variant selects how positional points are awarded.
type Variant string

const (
	// Borda awards num-candidates - position - 1 points, so the least
	// preferred candidate earns zero.
	Borda Variant = "borda"

	// ClassicBorda awards num-candidates - position points, starting
	// at one.
	ClassicBorda Variant = "classic"

	// Dowdall awards num-candidates / (position + 1) points. Because the
	// points are usually non-integral, Dowdall requires a fractional
	// count kind.
	Dowdall Variant = "dowdall"

	// ModifiedBorda awards points from the number of candidates marked on
	// the ballot rather than the number standing.
	ModifiedBorda Variant = "modified"

	// ModifiedClassicBorda is ClassicBorda computed from the number of
	// candidates marked on the ballot.
	ModifiedClassicBorda Variant = "modified-classic"
)

// points computes the points awarded to the candidate at the given ballot
// position under the variant.
func points[C any](arith counting.Arithmetic[C], variant Variant, position, numCandidates, numMarked int) C {
	fromInt := func(n int) C {
		total := arith.Zero()
		one := arith.One()
		for i := 0; i < n; i++ {
			total = arith.Add(total, one)
		}
		return total
	}

	switch variant {
	case ClassicBorda:
		return fromInt(numCandidates - position)
	case Dowdall:
		return arith.Div(fromInt(numCandidates), fromInt(position+1))
	case ModifiedBorda:
		return fromInt(numMarked - position - 1)
	case ModifiedClassicBorda:
		return fromInt(numMarked - position)
	default:
		return fromInt(numCandidates - position - 1)
	}
}

// Tally accumulates preferential ballots and scores them positionally.
// Ballots are stored unscored until a result is requested, because the
// points a position is worth can change as new candidates appear.
type Tally[T comparable, C any] struct {
	arith      counting.Arithmetic[C]
	variant    Variant
	ballots    []weightedBallot[T, C]
	candidates *intern.Interner[T]
	numWinners int
}

type weightedBallot[T comparable, C any] struct {
	selection []T
	weight    C
}

// New creates a Borda tally for the given number of winners and variant.
// Selecting Dowdall with a non-fractional count kind returns
// tallystick.ErrUnsupportedCountType.
func New[T comparable, C any](arith counting.Arithmetic[C], numWinners int, variant Variant) (*Tally[T, C], error) {
	switch variant {
	case Borda, ClassicBorda, Dowdall, ModifiedBorda, ModifiedClassicBorda:
	default:
		return nil, fmt.Errorf("borda: unknown variant %q", variant)
	}
	if variant == Dowdall && !arith.Fractional() {
		return nil, fmt.Errorf("borda: dowdall points: %w", tallystick.ErrUnsupportedCountType)
	}
	return &Tally[T, C]{
		arith:      arith,
		variant:    variant,
		candidates: intern.New[T](),
		numWinners: numWinners,
	}, nil
}

// NewDefault creates a standard Borda tally counting with int64.
func NewDefault[T comparable](numWinners int) *Tally[T, int64] {
	t, err := New[T](counting.Int64(), numWinners, Borda)
	if err != nil {
		// Borda with int64 is always a valid configuration.
		panic(err)
	}
	return t
}

// Add records a preferential ballot with a weight of one.
func (t *Tally[T, C]) Add(selection []T) error {
	return t.AddWeighted(selection, t.arith.One())
}

// AddWeighted records a preferential ballot with the given weight.
// A ballot listing the same candidate twice is rejected with
// tallystick.ErrDuplicateCandidate and leaves the tally unchanged.
func (t *Tally[T, C]) AddWeighted(selection []T, weight C) error {
	if err := tallystick.CheckDuplicates(selection); err != nil {
		return err
	}
	for _, candidate := range selection {
		t.candidates.Intern(candidate)
	}
	ballot := weightedBallot[T, C]{selection: make([]T, len(selection)), weight: weight}
	copy(ballot.selection, selection)
	t.ballots = append(t.ballots, ballot)
	return nil
}

// Candidates returns all candidates seen by this tally in first-seen order.
func (t *Tally[T, C]) Candidates() []T { return t.candidates.Candidates() }

// Winners scores every stored ballot positionally and returns the ranked
// winners.
func (t *Tally[T, C]) Winners() ranking.RankedWinners[T] {
	return t.counted().IntoRanked(t.numWinners)
}

// Ranked returns a full positional ranking of all candidates.
func (t *Tally[T, C]) Ranked() []ranking.RankedCandidate[T] {
	return t.counted().Ranked()
}

func (t *Tally[T, C]) counted() *ranking.Counted[T, C] {
	scored := plurality.WithCapacity[T](t.arith, t.numWinners, t.candidates.Len())
	// Seed every candidate with zero so that candidates earning no points
	// still appear in the result, in first-seen order.
	for _, candidate := range t.candidates.Candidates() {
		scored.AddWeighted(candidate, t.arith.Zero())
	}
	numCandidates := t.candidates.Len()
	for _, ballot := range t.ballots {
		numMarked := len(ballot.selection)
		for position, candidate := range ballot.selection {
			p := points(t.arith, t.variant, position, numCandidates, numMarked)
			scored.AddWeighted(candidate, t.arith.Mul(ballot.weight, p))
		}
	}
	return scored.Counted()
}
