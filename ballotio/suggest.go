package ballotio

import "github.com/agnivade/levenshtein"

// maxSuggestDistance bounds how different a suggestion may be from the
// unknown name. Beyond this the names are unrelated and a suggestion
// would mislead.
const maxSuggestDistance = 3

// SuggestCandidate returns the registered candidate closest to an unknown
// name by Levenshtein distance, for "did you mean" diagnostics on
// tallystick.ErrUnknownCandidate. The boolean is false when no candidate
// is close enough. Ties go to the earlier candidate.
func SuggestCandidate(unknown string, candidates []string) (string, bool) {
	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range candidates {
		if d := levenshtein.ComputeDistance(unknown, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best, bestDistance <= maxSuggestDistance
}
