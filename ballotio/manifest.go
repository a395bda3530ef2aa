package ballotio

import (
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Election is a self-contained election manifest: the candidate roster,
// the counting method and its configuration, and the ballots in text
// notation.
type Election struct {
	// Name identifies the election in reports.
	Name string `yaml:"name" validate:"required"`

	// Method selects the counting method.
	Method string `yaml:"method" validate:"required,oneof=plurality approval score borda condorcet schulze irv stv"`

	// NumWinners is the number of seats to fill. Zero means an unbounded
	// ranking where the method supports it.
	NumWinners int `yaml:"num_winners" validate:"min=0"`

	// Variant configures method-specific behavior: a schulze strength
	// variant or a borda point formula.
	Variant string `yaml:"variant,omitempty"`

	// Quota selects the STV threshold formula. Defaults to droop.
	Quota string `yaml:"quota,omitempty" validate:"omitempty,oneof=droop hagenbach hare"`

	// Counting selects the count kind: int, float, or decimal.
	Counting string `yaml:"counting,omitempty" validate:"omitempty,oneof=int float decimal"`

	// Candidates is the closed candidate roster. Ballots naming other
	// candidates are rejected.
	Candidates []string `yaml:"candidates" validate:"required,min=1,unique"`

	// Ballots holds one ballot per entry, in the text notation accepted
	// by ReadVotes.
	Ballots []string `yaml:"ballots"`
}

// LoadElection decodes and validates a YAML election manifest.
func LoadElection(r io.Reader) (*Election, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading election manifest: %w", err)
	}

	var e Election
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parsing election manifest: %w", err)
	}
	if err := validate.Struct(&e); err != nil {
		return nil, fmt.Errorf("invalid election manifest: %w", err)
	}
	return &e, nil
}
