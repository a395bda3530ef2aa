// Package stv implements single transferable vote counting. Ballots are
// preferential orderings; candidates reaching the quota threshold are
// elected and their surplus votes transfer, at reduced weight, to each
// ballot's next surviving preference. When no candidate reaches the
// threshold the weakest candidate is eliminated and its votes transfer at
// full weight.
//
// Surpluses are redistributed with the weighted inclusive Gregory method:
// every ballot in an elected candidate's pile transfers, scaled by
// surplus / total. With an integer count type the scaling factor
// truncates; use a fractional count kind for exact transfers.
//
// See https://en.wikipedia.org/wiki/Single_transferable_vote.
package stv

import (
	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/internal/intern"
	"github.com/phayes/tallystick/quota"
	"github.com/phayes/tallystick/ranking"
)

type ballot[T comparable, C any] struct {
	weight    C
	selection []T
}

// Tally accumulates preferential ballots for a single-transferable-vote
// election.
type Tally[T comparable, C any] struct {
	arith      counting.Arithmetic[C]
	q          quota.Quota
	numWinners int
	candidates *intern.Interner[T]
	ballots    []ballot[T, C]
	totalVotes C
}

// New creates an STV tally for the given number of seats, which must be
// at least one. Selecting the Hagenbach-Bischoff quota with a
// non-fractional count type fails with tallystick.ErrUnsupportedCountType.
func New[T comparable, C any](arith counting.Arithmetic[C], q quota.Quota, numWinners int) (*Tally[T, C], error) {
	// Surfaces an incompatible quota, an unknown quota, or an invalid
	// seat count now rather than at the first count.
	if _, err := quota.Threshold(q, arith, arith.Zero(), numWinners); err != nil {
		return nil, err
	}
	return &Tally[T, C]{
		arith:      arith,
		q:          q,
		numWinners: numWinners,
		candidates: intern.New[T](),
		totalVotes: arith.Zero(),
	}, nil
}

// NewDefault creates an STV tally using the Droop quota and float64
// counts, so surplus transfers stay fractional. numWinners must be at
// least one; NewDefault panics otherwise.
func NewDefault[T comparable](numWinners int) *Tally[T, float64] {
	t, err := New[T](counting.Float64(), quota.Droop, numWinners)
	if err != nil {
		// Droop works with every count kind, so only a bad seat count
		// can land here.
		panic(err)
	}
	return t
}

// Add records a preferential ballot with a weight of one.
func (t *Tally[T, C]) Add(selection []T) error {
	return t.AddWeighted(selection, t.arith.One())
}

// AddWeighted records a preferential ballot with the given weight. The
// ballot is validated before any state changes.
func (t *Tally[T, C]) AddWeighted(selection []T, weight C) error {
	if len(selection) == 0 {
		return nil
	}
	if err := tallystick.CheckDuplicates(selection); err != nil {
		return err
	}
	for _, candidate := range selection {
		t.candidates.Intern(candidate)
	}
	sel := make([]T, len(selection))
	copy(sel, selection)
	t.ballots = append(t.ballots, ballot[T, C]{weight: weight, selection: sel})
	t.totalVotes = t.arith.Add(t.totalVotes, weight)
	return nil
}

// Candidates returns all candidates seen by this tally in first-seen
// order.
func (t *Tally[T, C]) Candidates() []T {
	return t.candidates.Candidates()
}

// TotalVotes returns the total weight of all recorded ballots.
func (t *Tally[T, C]) TotalVotes() C {
	return t.totalVotes
}

// NumWinners returns the number of seats to fill.
func (t *Tally[T, C]) NumWinners() int { return t.numWinners }

// Threshold returns the quota threshold for the current ballots.
func (t *Tally[T, C]) Threshold() C {
	threshold, err := quota.Threshold(t.q, t.arith, t.totalVotes, t.numWinners)
	if err != nil {
		// The quota was validated at construction.
		panic(err)
	}
	return threshold
}

type pile[T comparable, C any] struct {
	weight    C
	remaining []T
}

// Winners runs the full STV count and returns the elected candidates.
// Candidates elected in the same round share a rank. Counting replays
// from the recorded ballots on every call; the tally is never mutated.
//
// Rounds proceed as follows: any candidate whose pile reaches the
// threshold is elected and its surplus transferred; otherwise the
// candidates tied for the fewest votes are eliminated and their piles
// transferred whole. A ballot always moves to its first preference that
// is neither elected nor eliminated, skipping decided candidates with a
// single pass over its remaining preferences. Once the surviving
// candidates no longer outnumber the open seats they are all elected.
func (t *Tally[T, C]) Winners() ranking.RankedWinners[T] {
	zero := t.arith.Zero()
	threshold := t.Threshold()
	candidates := t.candidates.Candidates()

	piles := make(map[T][]pile[T, C], len(candidates))
	for _, b := range t.ballots {
		next := b.selection[0]
		piles[next] = append(piles[next], pile[T, C]{weight: b.weight, remaining: b.selection[1:]})
	}

	elected := make(map[T]struct{}, t.numWinners)
	eliminated := make(map[T]struct{})
	var rankedWinners []ranking.RankedCandidate[T]
	rank := 0

	// transferTo moves a ballot to its next undecided preference.
	transferTo := func(p pile[T, C]) {
		for len(p.remaining) > 0 {
			next := p.remaining[0]
			p.remaining = p.remaining[1:]
			_, isElected := elected[next]
			_, isEliminated := eliminated[next]
			if !isElected && !isEliminated {
				piles[next] = append(piles[next], p)
				return
			}
		}
	}

	for {
		seatsLeft := t.numWinners - len(rankedWinners)
		if seatsLeft <= 0 {
			break
		}

		var active []T
		for _, c := range candidates {
			_, isElected := elected[c]
			_, isEliminated := eliminated[c]
			if !isElected && !isEliminated {
				active = append(active, c)
			}
		}
		if len(active) == 0 {
			break
		}

		// With no more candidates than open seats the count is decided.
		if len(active) <= seatsLeft {
			for _, c := range active {
				elected[c] = struct{}{}
				rankedWinners = append(rankedWinners, ranking.RankedCandidate[T]{Candidate: c, Rank: rank})
			}
			break
		}

		counts := make(map[T]C, len(active))
		for _, c := range active {
			total := zero
			for _, p := range piles[c] {
				total = t.arith.Add(total, p.weight)
			}
			counts[c] = total
		}

		var winners []T
		for _, c := range active {
			if t.arith.Cmp(counts[c], threshold) >= 0 {
				winners = append(winners, c)
			}
		}

		if len(winners) > 0 {
			// Elect the whole batch, then transfer each surplus.
			for _, w := range winners {
				elected[w] = struct{}{}
				rankedWinners = append(rankedWinners, ranking.RankedCandidate[T]{Candidate: w, Rank: rank})
			}
			rank++
			for _, w := range winners {
				votes := piles[w]
				delete(piles, w)

				surplus := t.arith.Sub(counts[w], threshold)
				if t.arith.Cmp(surplus, zero) <= 0 {
					continue
				}
				ratio := t.arith.Div(surplus, counts[w])
				for _, p := range votes {
					p.weight = t.arith.Mul(p.weight, ratio)
					if t.arith.Cmp(p.weight, zero) > 0 {
						transferTo(p)
					}
				}
			}
			continue
		}

		// No winner this round: eliminate every candidate tied for the
		// fewest votes and transfer their ballots whole.
		minCount := counts[active[0]]
		for _, c := range active[1:] {
			if t.arith.Cmp(counts[c], minCount) < 0 {
				minCount = counts[c]
			}
		}

		var losers []T
		for _, c := range active {
			if t.arith.Cmp(counts[c], minCount) == 0 {
				losers = append(losers, c)
			}
		}
		if len(losers) == len(active) {
			// Unresolvable tie among all survivors.
			break
		}

		for _, loser := range losers {
			eliminated[loser] = struct{}{}
		}
		for _, loser := range losers {
			votes := piles[loser]
			delete(piles, loser)
			for _, p := range votes {
				transferTo(p)
			}
		}
	}

	return ranking.FromRanked(rankedWinners, t.numWinners)
}
