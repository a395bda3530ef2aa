package tallystick

import "fmt"

// CheckDuplicates verifies that a preferential ballot does not list the
// same candidate more than once, returning ErrDuplicateCandidate if it
// does. Tallies call this before mutating any state so rejected ballots
// are never partially recorded.
func CheckDuplicates[T comparable](vote []T) error {
	seen := make(map[T]struct{}, len(vote))
	for _, candidate := range vote {
		if _, ok := seen[candidate]; ok {
			return fmt.Errorf("%w: %v", ErrDuplicateCandidate, candidate)
		}
		seen[candidate] = struct{}{}
	}
	return nil
}

// CheckDuplicateMarks verifies that a ranked ballot does not mark the same
// candidate more than once, returning ErrDuplicateCandidate if it does.
func CheckDuplicateMarks[T comparable](vote []Mark[T]) error {
	seen := make(map[T]struct{}, len(vote))
	for _, mark := range vote {
		if _, ok := seen[mark.Candidate]; ok {
			return fmt.Errorf("%w: %v", ErrDuplicateCandidate, mark.Candidate)
		}
		seen[mark.Candidate] = struct{}{}
	}
	return nil
}
