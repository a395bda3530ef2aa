// Package irv implements instant-runoff voting, sometimes called ranked
// choice voting. Ballots are preferential orderings; counting proceeds in
// rounds, each round assigning every ballot to its highest-ranked
// surviving candidate and eliminating the candidate(s) with the fewest
// votes, until one candidate remains.
//
// See https://en.wikipedia.org/wiki/Instant-runoff_voting.
package irv

import (
	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/internal/votetree"
	"github.com/phayes/tallystick/ranking"
)

// Tally accumulates preferential ballots for an instant-runoff election.
type Tally[T comparable, C any] struct {
	arith counting.Arithmetic[C]
	tree  *votetree.Tree[T, C]
}

// New creates an instant-runoff tally.
func New[T comparable, C any](arith counting.Arithmetic[C]) *Tally[T, C] {
	return &Tally[T, C]{
		arith: arith,
		tree:  votetree.New[T](arith),
	}
}

// WithCandidates creates an instant-runoff tally with a pre-registered
// candidate list. Candidates with no first-preference votes still appear
// in the ranking.
func WithCandidates[T comparable, C any](arith counting.Arithmetic[C], candidates []T) *Tally[T, C] {
	return &Tally[T, C]{
		arith: arith,
		tree:  votetree.WithCandidates(arith, candidates),
	}
}

// NewDefault creates an instant-runoff tally counting with int64.
func NewDefault[T comparable]() *Tally[T, int64] {
	return New[T](counting.Int64())
}

// Add records a preferential ballot with a weight of one.
func (t *Tally[T, C]) Add(selection []T) error {
	return t.AddWeighted(selection, t.arith.One())
}

// AddWeighted records a preferential ballot with the given weight. The
// ballot is validated before any count changes; a rejected ballot leaves
// the tally untouched.
func (t *Tally[T, C]) AddWeighted(selection []T, weight C) error {
	if len(selection) == 0 {
		return nil
	}
	if err := tallystick.CheckDuplicates(selection); err != nil {
		return err
	}
	t.tree.Add(selection, weight)
	return nil
}

// Candidates returns all candidates seen by this tally in first-seen (or
// pre-registered) order.
func (t *Tally[T, C]) Candidates() []T {
	return t.tree.Candidates()
}

// TotalVotes returns the total weight of all recorded ballots.
func (t *Tally[T, C]) TotalVotes() C {
	return t.tree.TotalVotes()
}

// Ranked runs the elimination rounds and returns the full ranking: the
// last candidate standing at rank 0, the first eliminated at the highest
// rank. Candidates eliminated in the same round share a rank, and a round
// where every surviving candidate is tied ends the count with all of them
// sharing the best rank.
//
// Ranked replays the rounds from the current ballots each time it is
// called; it never mutates the tally.
func (t *Tally[T, C]) Ranked() []ranking.RankedCandidate[T] {
	candidates := t.tree.Candidates()
	eliminated := make(map[T]struct{}, len(candidates))

	// Rounds are recorded inside out: eliminationOrder[r] holds the
	// candidates dropped in round r, so earlier rounds mean worse ranks.
	var eliminationOrder [][]T

	for {
		_, scores := t.tree.AssignVotes(eliminated)

		// Candidates with no direct votes this round still count, at
		// zero. Without this a candidate could survive a round it
		// should have been eliminated in.
		for _, c := range candidates {
			if _, out := eliminated[c]; out {
				continue
			}
			if _, ok := scores[c]; !ok {
				scores[c] = t.arith.Zero()
			}
		}

		if len(scores) == 0 {
			break
		}

		remaining := make([]T, 0, len(scores))
		for _, c := range candidates {
			if _, out := eliminated[c]; !out {
				remaining = append(remaining, c)
			}
		}

		allTied := true
		for _, c := range remaining[1:] {
			if t.arith.Cmp(scores[c], scores[remaining[0]]) != 0 {
				allTied = false
				break
			}
		}
		if allTied {
			eliminationOrder = append(eliminationOrder, remaining)
			break
		}

		minScore := scores[remaining[0]]
		for _, c := range remaining[1:] {
			if t.arith.Cmp(scores[c], minScore) < 0 {
				minScore = scores[c]
			}
		}

		var losers []T
		for _, c := range remaining {
			if t.arith.Cmp(scores[c], minScore) == 0 {
				losers = append(losers, c)
			}
		}

		for _, loser := range losers {
			eliminated[loser] = struct{}{}
		}
		eliminationOrder = append(eliminationOrder, losers)
	}

	ranked := make([]ranking.RankedCandidate[T], 0, len(candidates))
	for round := len(eliminationOrder) - 1; round >= 0; round-- {
		rank := len(eliminationOrder) - 1 - round
		for _, c := range eliminationOrder[round] {
			ranked = append(ranked, ranking.RankedCandidate[T]{Candidate: c, Rank: rank})
		}
	}
	return ranked
}

// Winners returns the winner of the instant runoff. More than one
// candidate is returned only when the final surviving round is tied.
func (t *Tally[T, C]) Winners() ranking.RankedWinners[T] {
	return ranking.FromRanked(t.Ranked(), 1)
}
