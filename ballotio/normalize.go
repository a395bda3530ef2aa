package ballotio

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalizer canonicalizes candidate names read from text so that
// visually identical names compare equal. Names are NFC-normalized;
// case folding is optional.
type Normalizer struct {
	fold   bool
	folder cases.Caser
}

// NewNormalizer returns a Normalizer. With caseFold set, names that
// differ only in letter case normalize to the same string.
func NewNormalizer(caseFold bool) *Normalizer {
	return &Normalizer{fold: caseFold, folder: cases.Fold()}
}

// Normalize returns the canonical form of a candidate name.
func (n *Normalizer) Normalize(name string) string {
	name = norm.NFC.String(name)
	if n.fold {
		name = n.folder.String(name)
	}
	return name
}

// NormalizeVote normalizes every candidate name of a parsed vote in
// place.
func (n *Normalizer) NormalizeVote(vote ParsedVote) ParsedVote {
	for i := range vote.Marks {
		vote.Marks[i].Candidate = n.Normalize(vote.Marks[i].Candidate)
	}
	return vote
}
