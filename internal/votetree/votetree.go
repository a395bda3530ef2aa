// Package votetree stores transferable preferential votes as a prefix
// tree. Ballots sharing a leading preference sequence share a path, so a
// round of vote assignment or surplus transfer walks the tree instead of
// every individual ballot.
//
// The structure follows the wybr VoteTree design
// (https://gitlab.com/mbq/wybr). All tree traversals are iterative with
// explicit work stacks; tree depth equals ballot length and must not be
// bounded by the goroutine stack.
package votetree

import (
	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/internal/intern"
)

type node[T comparable, C any] struct {
	// count is the total weight of ballots whose prefix ends at or
	// passes through this node.
	count    C
	children map[T]*node[T, C]
}

// Tree accumulates weighted preferential ballots.
type Tree[T comparable, C any] struct {
	arith      counting.Arithmetic[C]
	candidates *intern.Interner[T]
	root       *node[T, C]
}

// New returns an empty vote tree.
func New[T comparable, C any](arith counting.Arithmetic[C]) *Tree[T, C] {
	return &Tree[T, C]{
		arith:      arith,
		candidates: intern.New[T](),
		root:       &node[T, C]{count: arith.Zero()},
	}
}

// WithCandidates returns an empty vote tree with a pre-registered
// candidate list. Registration fixes the candidate order reported by
// Candidates; it does not reject ballots naming other candidates.
func WithCandidates[T comparable, C any](arith counting.Arithmetic[C], candidates []T) *Tree[T, C] {
	t := New[T](arith)
	for _, candidate := range candidates {
		t.candidates.Intern(candidate)
	}
	return t
}

// Add records a ballot with the given weight. Every node along the
// ballot's path accrues the weight, the root included, so a node's count
// is always the total weight of ballots passing through it. Returns the
// count of the node the ballot ends at.
func (t *Tree[T, C]) Add(vote []T, weight C) C {
	cur := t.root
	cur.count = t.arith.Add(cur.count, weight)
	for _, candidate := range vote {
		t.candidates.Intern(candidate)
		child, ok := cur.children[candidate]
		if !ok {
			child = &node[T, C]{count: t.arith.Zero()}
			if cur.children == nil {
				cur.children = make(map[T]*node[T, C])
			}
			cur.children[candidate] = child
		}
		child.count = t.arith.Add(child.count, weight)
		cur = child
	}
	return cur.count
}

// Candidates returns every candidate seen by the tree in first-seen (or
// pre-registered) order.
func (t *Tree[T, C]) Candidates() []T {
	return t.candidates.Candidates()
}

// TotalVotes returns the total weight of all recorded ballots.
func (t *Tree[T, C]) TotalVotes() C {
	return t.root.count
}

// AssignVotes assigns each ballot's weight to its first non-eliminated
// preference. Ballots whose preferences are exhausted contribute to the
// returned excess instead of any score.
func (t *Tree[T, C]) AssignVotes(eliminated map[T]struct{}) (excess C, scores map[T]C) {
	scores = make(map[T]C, t.candidates.Len())
	assigned := t.arith.Zero()

	stack := []*node[T, C]{t.root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for candidate, child := range cur.children {
			if _, out := eliminated[candidate]; !out {
				if prev, ok := scores[candidate]; ok {
					scores[candidate] = t.arith.Add(prev, child.count)
				} else {
					scores[candidate] = child.count
				}
				assigned = t.arith.Add(assigned, child.count)
				continue
			}
			// An eliminated candidate passes its ballots down to
			// their next preference.
			stack = append(stack, child)
		}
	}

	return t.arith.Sub(t.root.count, assigned), scores
}

// TransferVotes distributes each ballot across its preferences according
// to per-candidate retention weights, scaled against base. A candidate
// with weight w retains, per the transfer method, w/base (meek) or
// min(vote, w) (warren) of the vote arriving at it; the remainder flows
// to later preferences. Scores are scaled by base; the returned excess is
// the scaled weight no candidate retained.
func (t *Tree[T, C]) TransferVotes(weights map[T]C, base C, transfer tallystick.Transfer) (excess C, scores map[T]C) {
	type frame struct {
		n    *node[T, C]
		vote C
	}

	zero := t.arith.Zero()
	scores = make(map[T]C, t.candidates.Len())
	assigned := zero

	stack := []frame{{n: t.root, vote: base}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for candidate, child := range cur.n.children {
			weight, ok := weights[candidate]
			if !ok {
				weight = zero
			}

			var given C
			switch transfer {
			case tallystick.TransferWarren:
				given = cur.vote
				if t.arith.Cmp(weight, given) < 0 {
					given = weight
				}
			default: // meek
				given = t.arith.Div(t.arith.Mul(cur.vote, weight), base)
			}

			if t.arith.Cmp(given, zero) > 0 {
				credit := t.arith.Mul(child.count, given)
				if prev, ok := scores[candidate]; ok {
					scores[candidate] = t.arith.Add(prev, credit)
				} else {
					scores[candidate] = credit
				}
				assigned = t.arith.Add(assigned, credit)
			}
			if t.arith.Cmp(given, cur.vote) < 0 {
				stack = append(stack, frame{n: child, vote: t.arith.Sub(cur.vote, given)})
			}
		}
	}

	total := t.arith.Mul(t.root.count, base)
	return t.arith.Sub(total, assigned), scores
}
