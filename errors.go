package tallystick

import "errors"

// Common errors returned by tallies when accepting ballots or when an
// incompatible configuration is selected. Validation errors are returned
// before any tally state is mutated, so a rejected ballot is never
// partially recorded.
var (
	// ErrDuplicateCandidate indicates that a ballot lists the same
	// candidate more than once.
	ErrDuplicateCandidate = errors.New("vote contains duplicate candidates")

	// ErrUnknownCandidate indicates that a ballot references a candidate
	// outside the tally's closed, pre-registered candidate set.
	ErrUnknownCandidate = errors.New("vote contains unknown candidate")

	// ErrUnsupportedCountType indicates that a configuration requiring
	// fractional arithmetic was selected with an integer count kind.
	// This is detected at construction time rather than producing
	// silently truncated results.
	ErrUnsupportedCountType = errors.New("configuration requires a fractional count type")
)
