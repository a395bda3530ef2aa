// Package ranking holds the result types shared by every voting method:
// ranked candidates, the tie-aware winners collection, and the counted-total
// reduction that converts raw per-candidate totals into ranks.
package ranking

import "sort"

// RankedCandidate is a candidate in an election, ranked ascending starting
// from zero. A ranked candidate with a lower rank beats one with a higher
// rank; candidates with the same rank are tied.
type RankedCandidate[T comparable] struct {
	Candidate T
	Rank      int
}

// RankedWinners is a ranked list of winning candidates, sorted by ascending
// rank. Winners with the same rank are tied.
//
// The actual number of winners can exceed the requested number when the
// least-significantly ranked winners are tied: tie groups are never split
// arbitrarily. Use IsOverflowing and Overflow to detect and inspect this.
type RankedWinners[T comparable] struct {
	winners    []RankedCandidate[T]
	numWinners int
}

// FromRanked builds a RankedWinners from a ranked list grouped by ascending
// rank. Winners are included rank group by rank group; once the included
// count meets or exceeds numWinners no further rank groups are added, but
// the group in progress is always completed. A numWinners of 0 means
// unbounded: the full ranking is returned.
func FromRanked[T comparable](ranked []RankedCandidate[T], numWinners int) RankedWinners[T] {
	w := RankedWinners[T]{numWinners: numWinners}

	prevRank := 0
	for _, rc := range ranked {
		if numWinners != 0 && len(w.winners) >= numWinners && rc.Rank != prevRank {
			break
		}
		w.winners = append(w.winners, rc)
		prevRank = rc.Rank
	}

	sort.SliceStable(w.winners, func(i, j int) bool {
		return w.winners[i].Rank < w.winners[j].Rank
	})

	return w
}

// Len returns the number of included winners.
func (w RankedWinners[T]) Len() int { return len(w.winners) }

// IsEmpty reports whether there are no winners.
func (w RankedWinners[T]) IsEmpty() bool { return len(w.winners) == 0 }

// NumWinners returns the originally requested number of winners.
func (w RankedWinners[T]) NumWinners() int { return w.numWinners }

// Winners returns the ranked winners in ascending rank order.
func (w RankedWinners[T]) Winners() []RankedCandidate[T] {
	out := make([]RankedCandidate[T], len(w.winners))
	copy(out, w.winners)
	return out
}

// All returns the winning candidates without ranks, in rank order.
func (w RankedWinners[T]) All() []T {
	all := make([]T, 0, len(w.winners))
	for _, rc := range w.winners {
		all = append(all, rc.Candidate)
	}
	return all
}

// Contains reports whether the candidate is among the winners.
func (w RankedWinners[T]) Contains(candidate T) bool {
	for _, rc := range w.winners {
		if rc.Candidate == candidate {
			return true
		}
	}
	return false
}

// Rank returns the rank of the given winner. The boolean is false when the
// candidate is not among the winners.
func (w RankedWinners[T]) Rank(candidate T) (int, bool) {
	for _, rc := range w.winners {
		if rc.Candidate == candidate {
			return rc.Rank, true
		}
	}
	return 0, false
}

// Unranked filters the given candidates down to the ones that did not win,
// preserving their order. Useful for reporting the also-rans of an election
// alongside the winners.
func (w RankedWinners[T]) Unranked(candidates []T) []T {
	var out []T
	for _, c := range candidates {
		if !w.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// IsOverflowing reports whether the actual number of winners exceeds the
// requested number. Only a tie among the least-significantly ranked winners
// can overflow: in an election for three seats, a tie for first does not
// overflow, but a tie between the 3rd and 4th place candidates does.
func (w RankedWinners[T]) IsOverflowing() bool {
	return w.numWinners != 0 && len(w.winners) > w.numWinners
}

// Overflow returns all tied least-significantly ranked winners when the
// winner list is overflowing, or nil otherwise. Callers filling a fixed
// number of seats should check this to resolve the tie themselves.
func (w RankedWinners[T]) Overflow() []T {
	if !w.IsOverflowing() {
		return nil
	}
	overflowRank := w.winners[len(w.winners)-1].Rank
	var overflow []T
	for _, rc := range w.winners {
		if rc.Rank == overflowRank {
			overflow = append(overflow, rc.Candidate)
		}
	}
	return overflow
}
