// Package schulze implements the Schulze voting method. Ballots are
// accumulated exactly as in a Condorcet tally; the ranking is derived from
// the strongest paths between candidates in the pairwise preference graph,
// computed with a widest-path closure.
//
// See https://en.wikipedia.org/wiki/Schulze_method.
package schulze

import (
	"fmt"

	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/condorcet"
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/pairwise"
	"github.com/phayes/tallystick/ranking"
)

// Variant selects how the strength of a pairwise link is measured.
// Winning is recommended; use it if unsure.
type Variant string

const (
	// Winning measures a link by its support: the weight of ballots
	// preferring the winner.
	Winning Variant = "winning"

	// Margin measures a link by the difference between its support and
	// its opposition.
	Margin Variant = "margin"

	// Ratio measures a link by the ratio of its support to its
	// opposition. Requires a fractional count type.
	Ratio Variant = "ratio"

	// Losing measures a link by its opposition. Not recommended.
	Losing Variant = "losing"
)

// Path is the strongest-path strength from Candidate to Opponent: the
// maximum over all paths of the minimum link strength along the path.
type Path[T comparable, C any] struct {
	Candidate T
	Opponent  T
	Strength  C
}

// Tally accumulates preferential ballots for a Schulze election.
type Tally[T comparable, C any] struct {
	arith   counting.Arithmetic[C]
	variant Variant
	inner   *condorcet.Tally[T, C]
}

// New creates a Schulze tally for the given number of winners. Selecting
// the Ratio variant with a non-fractional count type fails with
// tallystick.ErrUnsupportedCountType; ratio strengths are frequently
// non-integral and truncating them would corrupt the ranking.
func New[T comparable, C any](arith counting.Arithmetic[C], numWinners int, variant Variant) (*Tally[T, C], error) {
	if err := checkVariant(arith, variant); err != nil {
		return nil, err
	}
	return &Tally[T, C]{
		arith:   arith,
		variant: variant,
		inner:   condorcet.New[T](arith, numWinners),
	}, nil
}

// WithCapacity creates a Schulze tally sized for the expected number of
// candidates.
func WithCapacity[T comparable, C any](arith counting.Arithmetic[C], numWinners int, variant Variant, expectedCandidates int) (*Tally[T, C], error) {
	if err := checkVariant(arith, variant); err != nil {
		return nil, err
	}
	return &Tally[T, C]{
		arith:   arith,
		variant: variant,
		inner:   condorcet.WithCapacity[T](arith, numWinners, expectedCandidates),
	}, nil
}

// WithCandidates creates a Schulze tally closed over the given candidate
// set.
func WithCandidates[T comparable, C any](arith counting.Arithmetic[C], numWinners int, variant Variant, candidates []T) (*Tally[T, C], error) {
	if err := checkVariant(arith, variant); err != nil {
		return nil, err
	}
	return &Tally[T, C]{
		arith:   arith,
		variant: variant,
		inner:   condorcet.WithCandidates(arith, numWinners, candidates),
	}, nil
}

// NewDefault creates a Schulze tally counting with int64.
func NewDefault[T comparable](numWinners int, variant Variant) (*Tally[T, int64], error) {
	return New[T](counting.Int64(), numWinners, variant)
}

func checkVariant[C any](arith counting.Arithmetic[C], variant Variant) error {
	switch variant {
	case Winning, Margin, Losing:
		return nil
	case Ratio:
		if !arith.Fractional() {
			return fmt.Errorf("%w: ratio link strengths require a fractional count type", tallystick.ErrUnsupportedCountType)
		}
		return nil
	default:
		return fmt.Errorf("unknown schulze variant %q", variant)
	}
}

// Add records a preferential ballot with a weight of one.
func (t *Tally[T, C]) Add(selection []T) error {
	return t.inner.Add(selection)
}

// AddWeighted records a preferential ballot with the given weight.
func (t *Tally[T, C]) AddWeighted(selection []T, weight C) error {
	return t.inner.AddWeighted(selection, weight)
}

// AddRanked records a ranked ballot with a weight of one. Candidates
// marked with equal ranks are tied.
func (t *Tally[T, C]) AddRanked(marks []tallystick.Mark[T]) error {
	return t.inner.AddRanked(marks)
}

// AddRankedWeighted records a ranked ballot with the given weight.
func (t *Tally[T, C]) AddRankedWeighted(marks []tallystick.Mark[T], weight C) error {
	return t.inner.AddRankedWeighted(marks, weight)
}

// Candidates returns all candidates seen by this tally in first-seen
// order.
func (t *Tally[T, C]) Candidates() []T {
	return t.inner.Candidates()
}

// Totals returns the raw pairwise preference counts.
func (t *Tally[T, C]) Totals() []pairwise.Total[T, C] {
	return t.inner.Totals()
}

// NumWinners returns the requested number of winners.
func (t *Tally[T, C]) NumWinners() int { return t.inner.NumWinners() }

// BuildGraph derives the pairwise preference graph from the current
// totals.
func (t *Tally[T, C]) BuildGraph() condorcet.Graph[T, C] {
	return t.inner.BuildGraph()
}

// strength computes the direct link strength for an ordered candidate
// pair. A link only has strength when its support strictly exceeds its
// opposition.
//
// For the Ratio variant a link with zero opposition saturates to the
// count type's maximum value rather than infinity. Saturated links are
// therefore mutually tied at maximum strength; this approximation is
// deliberate.
func (t *Tally[T, C]) strength(support, opposition C) C {
	if t.arith.Cmp(support, opposition) <= 0 {
		return t.arith.Zero()
	}
	switch t.variant {
	case Margin:
		return t.arith.Sub(support, opposition)
	case Ratio:
		if t.arith.Cmp(opposition, t.arith.Zero()) == 0 {
			return t.arith.MaxValue()
		}
		return t.arith.Div(support, opposition)
	case Losing:
		return opposition
	default:
		return support
	}
}

// pathMatrix computes the strongest-path table over all candidate pairs.
// Initialization fills in direct link strengths; the widest-path
// relaxation p[j][k] = max(p[j][k], min(p[j][i], p[i][k])) then closes
// the table in a single pass over all triples, in Floyd-Warshall order.
func (t *Tally[T, C]) pathMatrix() [][]C {
	acc := t.inner.Pairwise()
	n := acc.NumCandidates()

	p := make([][]C, n)
	for i := range p {
		p[i] = make([]C, n)
		for j := range p[i] {
			if i == j {
				p[i][j] = t.arith.Zero()
				continue
			}
			p[i][j] = t.strength(acc.Count(i, j), acc.Count(j, i))
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			for k := 0; k < n; k++ {
				if k == i || k == j {
					continue
				}
				bottleneck := p[j][i]
				if t.arith.Cmp(p[i][k], bottleneck) < 0 {
					bottleneck = p[i][k]
				}
				if t.arith.Cmp(bottleneck, p[j][k]) > 0 {
					p[j][k] = bottleneck
				}
			}
		}
	}

	return p
}

// StrongestPaths returns the strongest-path strength for every ordered
// pair of distinct candidates, ordered by candidate id pairs.
func (t *Tally[T, C]) StrongestPaths() []Path[T, C] {
	acc := t.inner.Pairwise()
	p := t.pathMatrix()
	n := acc.NumCandidates()

	paths := make([]Path[T, C], 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			paths = append(paths, Path[T, C]{
				Candidate: acc.Candidate(i),
				Opponent:  acc.Candidate(j),
				Strength:  p[i][j],
			})
		}
	}
	return paths
}

// counted reduces the strongest-path table to a plurality-style count:
// each candidate accrues one nominal vote per opponent it dominates,
// where i dominates j when p[i][j] >= p[j][i]. A perfect mutual tie
// credits both candidates.
func (t *Tally[T, C]) counted() *ranking.Counted[T, C] {
	acc := t.inner.Pairwise()
	p := t.pathMatrix()
	n := acc.NumCandidates()

	counted := ranking.NewCounted[T, C](t.arith.Cmp)
	for i := 0; i < n; i++ {
		total := t.arith.Zero()
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if t.arith.Cmp(p[i][j], p[j][i]) >= 0 {
				total = t.arith.Add(total, t.arith.One())
			}
		}
		counted.Push(acc.Candidate(i), total)
	}
	return counted
}

// Ranked computes a full ranking of all candidates by strongest-path
// dominance. Like the Condorcet ranking it is a pure read of the current
// totals and may be called repeatedly.
func (t *Tally[T, C]) Ranked() []ranking.RankedCandidate[T] {
	return t.counted().Ranked()
}

// Winners returns the ranked winners. The number of winners may exceed
// the requested count if a tie crosses the final seat.
func (t *Tally[T, C]) Winners() ranking.RankedWinners[T] {
	return t.counted().IntoRanked(t.inner.NumWinners())
}
