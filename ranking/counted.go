package ranking

import "sort"

// CandidateCount is a candidate paired with its accumulated total.
type CandidateCount[T comparable, C any] struct {
	Candidate T
	Count     C
}

// Counted is an accumulating list of (candidate, total) pairs that reduces
// into a tie-aware ranking. Candidates with equal totals receive equal
// ranks. The comparison function orders count values and is supplied by the
// tally's count kind.
type Counted[T comparable, C any] struct {
	items []CandidateCount[T, C]
	cmp   func(a, b C) int
}

// NewCounted returns an empty Counted using cmp to order count values.
func NewCounted[T comparable, C any](cmp func(a, b C) int) *Counted[T, C] {
	return &Counted[T, C]{cmp: cmp}
}

// Push appends a candidate with its total. Each candidate must be pushed
// at most once.
func (c *Counted[T, C]) Push(candidate T, count C) {
	c.items = append(c.items, CandidateCount[T, C]{Candidate: candidate, Count: count})
}

// Len returns the number of counted candidates.
func (c *Counted[T, C]) Len() int { return len(c.items) }

// sort orders candidates by descending count. The sort is stable so that
// candidates with equal counts keep their push order.
func (c *Counted[T, C]) sort() {
	sort.SliceStable(c.items, func(i, j int) bool {
		return c.cmp(c.items[i].Count, c.items[j].Count) > 0
	})
}

// IntoVec returns the counted candidates sorted by descending count.
func (c *Counted[T, C]) IntoVec() []CandidateCount[T, C] {
	c.sort()
	out := make([]CandidateCount[T, C], len(c.items))
	copy(out, c.items)
	return out
}

// IntoRanked reduces the counted totals into winners. Candidates are sorted
// by descending count; the rank increments each time the count strictly
// decreases, so equal counts tie. Once numWinners candidates are included
// no new rank group is started, but a group in progress is completed.
// A numWinners of 0 applies no limit.
func (c *Counted[T, C]) IntoRanked(numWinners int) RankedWinners[T] {
	if len(c.items) == 0 {
		return RankedWinners[T]{numWinners: numWinners}
	}

	c.sort()

	w := RankedWinners[T]{numWinners: numWinners}
	rank := 0
	prev := c.items[0].Count
	for _, item := range c.items {
		if c.cmp(item.Count, prev) != 0 {
			if numWinners != 0 && len(w.winners) >= numWinners {
				return w
			}
			rank++
		}
		w.winners = append(w.winners, RankedCandidate[T]{Candidate: item.Candidate, Rank: rank})
		prev = item.Count
	}

	return w
}

// Ranked reduces the counted totals into a full ranked list with no
// winner limit.
func (c *Counted[T, C]) Ranked() []RankedCandidate[T] {
	return c.IntoRanked(0).winners
}
