// Package graph provides a small directed graph over dense integer node ids
// and Tarjan's strongly-connected-components algorithm, used to discover
// Smith sets in a pairwise preference graph.
package graph

// Directed is a directed graph whose nodes are the integers 0..n-1.
type Directed struct {
	adj [][]int
}

// New returns a directed graph with n nodes and no edges.
func New(n int) *Directed {
	return &Directed{adj: make([][]int, n)}
}

// Len returns the number of nodes.
func (g *Directed) Len() int { return len(g.adj) }

// AddEdge adds the directed edge from -> to. Adding edges in a
// deterministic order keeps the traversal, and therefore the component
// emission order, deterministic.
func (g *Directed) AddEdge(from, to int) {
	g.adj[from] = append(g.adj[from], to)
}

// StronglyConnected returns the strongly connected components of the graph
// using Tarjan's algorithm. Components are emitted in reverse topological
// order of the condensation: every component appears before any component
// that has an edge into it. With edges pointing from beaten candidate to
// beater, this emits the most dominant component first.
func (g *Directed) StronglyConnected() [][]int {
	acct := sccAcct{
		nextIndex: 1,
		index:     make([]int, g.Len()),
		onStack:   make([]bool, g.Len()),
	}
	for v := range g.adj {
		if acct.index[v] == 0 {
			g.stronglyConnected(&acct, v)
		}
	}
	return acct.scc
}

func (g *Directed) stronglyConnected(acct *sccAcct, v int) int {
	index := acct.visit(v)
	minIdx := index

	for _, target := range g.adj[v] {
		if acct.index[target] == 0 {
			// Recurse on successors not yet visited.
			minIdx = min(minIdx, g.stronglyConnected(acct, target))
		} else if acct.onStack[target] {
			minIdx = min(minIdx, acct.index[target])
		}
	}

	// This vertex is the root of a component; pop the whole component
	// off the stack.
	if index == minIdx {
		var scc []int
		for {
			v2 := acct.pop()
			scc = append(scc, v2)
			if v2 == v {
				break
			}
		}
		acct.scc = append(acct.scc, scc)
	}

	return minIdx
}

// sccAcct carries the accounting state for Tarjan's algorithm.
// Indexes start at 1 so the zero value marks an unvisited node.
type sccAcct struct {
	nextIndex int
	index     []int
	onStack   []bool
	stack     []int
	scc       [][]int
}

func (s *sccAcct) visit(v int) int {
	idx := s.nextIndex
	s.index[v] = idx
	s.nextIndex++
	s.stack = append(s.stack, v)
	s.onStack[v] = true
	return idx
}

func (s *sccAcct) pop() int {
	n := len(s.stack)
	v := s.stack[n-1]
	s.stack = s.stack[:n-1]
	s.onStack[v] = false
	return v
}
