package condorcet

// Graph is the pairwise preference graph derived from a tally's current
// totals. It is a disposable view built on demand; mutating the tally and
// rebuilding always reflects the latest counts.
//
// For every unordered pair of candidates that received at least one
// comparison, either exactly one edge exists (one candidate beats the
// other) or two opposing edges exist with equal weights (an exact tie).
type Graph[T comparable, C any] struct {
	// Nodes lists every candidate in the tally, in first-seen order.
	Nodes []T

	// Edges point from the beaten candidate to the beater.
	Edges []Edge[T, C]
}

// Edge records that To does not lose to From, together with the vote
// counts on both sides of the comparison.
type Edge[T comparable, C any] struct {
	// From is the beaten (or tied) candidate.
	From T

	// To is the dominant candidate.
	To T

	// Support is the weight of ballots preferring To over From.
	Support C

	// Opposition is the weight of ballots preferring From over To.
	Opposition C
}

// BuildGraph derives the preference graph from the tally's current
// pairwise totals. It is a pure, repeatable read: the tally is not
// mutated, and each call reflects the totals at the time of the call.
func (t *Tally[T, C]) BuildGraph() Graph[T, C] {
	g := Graph[T, C]{Nodes: t.acc.Candidates()}

	for _, p := range t.acc.Pairs() {
		support := t.acc.Count(p.A, p.B)
		opposition := t.acc.Count(p.B, p.A)
		if t.arith.Cmp(support, opposition) >= 0 {
			g.Edges = append(g.Edges, Edge[T, C]{
				From:       t.acc.Candidate(p.B),
				To:         t.acc.Candidate(p.A),
				Support:    support,
				Opposition: opposition,
			})
		}
	}

	return g
}
