// Package testutils generates synthetic elections for benchmarks and
// manual testing of the counting methods.
package testutils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/phayes/tallystick/ballotio"
)

// candidateNames seed the generated rosters. Elections larger than the
// list fall back to numbered names.
var candidateNames = []string{
	"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi",
	"Ivan", "Judy", "Mallory", "Niaj", "Olivia", "Peggy", "Rupert", "Sybil",
}

// GenerateElection builds a random preferential election: numBallots
// ballots in text notation over a roster of numCandidates, with weights
// between 1 and maxWeight. The same seed always produces the same
// election.
func GenerateElection(numCandidates, numBallots int, maxWeight int, seed int64) *ballotio.Election {
	rng := rand.New(rand.NewSource(seed))

	candidates := make([]string, numCandidates)
	for i := range candidates {
		if i < len(candidateNames) {
			candidates[i] = candidateNames[i]
		} else {
			candidates[i] = fmt.Sprintf("Candidate %d", i+1)
		}
	}

	ballots := make([]string, numBallots)
	for i := range ballots {
		ballots[i] = randomBallot(rng, candidates, maxWeight)
	}

	return &ballotio.Election{
		Name:       fmt.Sprintf("synthetic election (%d candidates, %d ballots)", numCandidates, numBallots),
		Method:     "condorcet",
		NumWinners: 1,
		Candidates: candidates,
		Ballots:    ballots,
	}
}

// randomBallot renders a ballot ranking a random prefix of a shuffled
// roster, occasionally weighted.
func randomBallot(rng *rand.Rand, candidates []string, maxWeight int) string {
	order := make([]string, len(candidates))
	copy(order, candidates)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	// Most voters rank only part of the field.
	marked := 1 + rng.Intn(len(order))
	line := strings.Join(order[:marked], " > ")

	if maxWeight > 1 && rng.Intn(4) == 0 {
		line = fmt.Sprintf("%s * %d", line, 1+rng.Intn(maxWeight))
	}
	return line
}
