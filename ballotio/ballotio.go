// Package ballotio reads ballots and election definitions from text.
//
// The ballot notation is line oriented. Each line is one ballot: candidates
// separated by '>' in descending preference, '=' marking ties, and an
// optional '*' suffix giving the ballot weight.
//
//	Alice > Bob > Carol
//	Alice > Bob = Carol * 2.5
//
// Election manifests bundle candidates, method configuration, and ballots
// into a single YAML document; see Election.
package ballotio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
)

// ParseError reports a malformed ballot line: a bad weight or bad
// ranked-vote syntax. Line is 1-based; Fragment is the offending piece of
// the line.
type ParseError struct {
	Line     int
	Fragment string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("ballot line %d: %q: %v", e.Line, e.Fragment, e.Err)
	}
	return fmt.Sprintf("ballot %q: %v", e.Fragment, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParsedVote is one parsed ballot. Marks are in notation order with ranks
// ascending from zero; Ranked is true when the ballot used '=' ties, in
// which case the marks are not a plain preferential ordering.
type ParsedVote struct {
	Marks  []tallystick.Mark[string]
	Ranked bool
}

// Selections returns the candidates in preference order, dropping ranks.
// Only meaningful for unranked votes; tied candidates come out in
// notation order.
func (v ParsedVote) Selections() []string {
	selections := make([]string, len(v.Marks))
	for i, m := range v.Marks {
		selections[i] = m.Candidate
	}
	return selections
}

// WeightedVote is a parsed ballot with its weight. Ballots without an
// explicit '*' weight get the count kind's one.
type WeightedVote[C any] struct {
	Vote   ParsedVote
	Weight C
}

// ReadVotes parses every non-blank line of r as a ballot. Weights are
// parsed with the given count kind. The first malformed line aborts the
// read with a *ParseError.
func ReadVotes[C any](r io.Reader, arith counting.Arithmetic[C]) ([]WeightedVote[C], error) {
	var votes []WeightedVote[C]

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		vote, err := ParseLine(text, arith)
		if err != nil {
			if perr, ok := err.(*ParseError); ok {
				perr.Line = line
			}
			return nil, err
		}
		votes = append(votes, vote)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ballots: %w", err)
	}

	return votes, nil
}

// ParseLine parses a single ballot line.
func ParseLine[C any](line string, arith counting.Arithmetic[C]) (WeightedVote[C], error) {
	var empty WeightedVote[C]

	parts := strings.Split(line, "*")
	if len(parts) > 2 {
		return empty, &ParseError{Fragment: line, Err: fmt.Errorf("more than one weight separator")}
	}

	weight := arith.One()
	if len(parts) == 2 {
		raw := strings.TrimSpace(parts[1])
		parsed, err := arith.Parse(raw)
		if err != nil {
			return empty, &ParseError{Fragment: raw, Err: fmt.Errorf("malformed weight: %w", err)}
		}
		weight = parsed
	}

	vote, err := parseVote(parts[0])
	if err != nil {
		return empty, err
	}

	return WeightedVote[C]{Vote: vote, Weight: weight}, nil
}

func parseVote(notation string) (ParsedVote, error) {
	vote := ParsedVote{}
	rank := 0

	push := func(fragment string) error {
		candidate := strings.TrimSpace(fragment)
		if candidate == "" {
			return &ParseError{Fragment: notation, Err: fmt.Errorf("empty candidate name")}
		}
		vote.Marks = append(vote.Marks, tallystick.Mark[string]{Candidate: candidate, Rank: rank})
		return nil
	}

	var buf strings.Builder
	for _, c := range strings.TrimSpace(notation) {
		switch c {
		case '>':
			if err := push(buf.String()); err != nil {
				return ParsedVote{}, err
			}
			buf.Reset()
			rank++
		case '=':
			if err := push(buf.String()); err != nil {
				return ParsedVote{}, err
			}
			buf.Reset()
			vote.Ranked = true
		default:
			buf.WriteRune(c)
		}
	}
	if strings.TrimSpace(buf.String()) != "" {
		if err := push(buf.String()); err != nil {
			return ParsedVote{}, err
		}
	} else if len(vote.Marks) > 0 {
		// The line ended with a dangling '>' or '='.
		return ParsedVote{}, &ParseError{Fragment: notation, Err: fmt.Errorf("empty candidate name")}
	}

	return vote, nil
}
