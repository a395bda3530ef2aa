// Package tallystick provides a collection of election-tallying methods:
// plurality, approval, score, Borda, Condorcet, Schulze, instant-runoff,
// and single transferable vote.
//
// Each voting method lives in its own package and exposes the same basic
// shape: construct a tally, feed it ballots with Add or AddWeighted, then
// ask for Ranked or Winners. Tallies are generic over the candidate type T
// (any comparable type) and the vote count type C, which is selected at
// construction time by passing a counting.Arithmetic implementation.
// See the counting package for the supported count kinds.
//
// This package holds the types shared by every method: ballot marks, the
// vote-transfer variants, and the common error taxonomy.
package tallystick

// Mark is a single (candidate, rank) entry of a ranked ballot.
// Ranks ascend from zero, so a lower rank is more preferred.
// Two marks with the same rank express a tie between their candidates.
type Mark[T comparable] struct {
	Candidate T
	Rank      int
}

// Marks converts a preferential ordering into ranked marks, assigning
// rank 0 to the first candidate, rank 1 to the second, and so on.
func Marks[T comparable](selection []T) []Mark[T] {
	marks := make([]Mark[T], len(selection))
	for i, candidate := range selection {
		marks[i] = Mark[T]{Candidate: candidate, Rank: i}
	}
	return marks
}

// Transfer selects how surplus votes are redistributed by transferable-vote
// methods (see the stv package).
type Transfer string

const (
	// TransferMeek scales every transferred ballot by the elected
	// candidate's retention factor.
	TransferMeek Transfer = "meek"

	// TransferWarren caps each transferred ballot at the elected
	// candidate's retained weight.
	TransferWarren Transfer = "warren"
)
