// Package quota computes the vote thresholds used by transferable-vote
// elections. A quota relates the number of votes a candidate needs to win
// a seat to the total number of votes cast.
package quota

import (
	"fmt"

	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/counting"
)

// Quota selects the threshold formula.
type Quota string

const (
	// Droop is floor(total-votes / (num-winners + 1)) + 1. In
	// single-winner elections it is often known as "fifty percent plus
	// one". The Droop threshold is always an integer.
	Droop Quota = "droop"

	// Hagenbach is total-votes / (num-winners + 1), also known as the
	// Newland-Britton or exact Droop quota. The threshold often contains
	// a fraction, so it requires a fractional count type. Best used when
	// surplus votes are redistributed fractionally.
	Hagenbach Quota = "hagenbach"

	// Hare is total-votes / num-winners. Generally not recommended;
	// included for completeness.
	Hare Quota = "hare"
)

// Threshold computes the number of votes needed to win a seat.
//
// totalVotes must be the number of votes counted in the tally, excluding
// any rejected ballots; for weighted tallies it is the sum of all weights.
// Selecting Hagenbach with a non-fractional count type fails with
// tallystick.ErrUnsupportedCountType. numWinners must be at least one; a
// Hare quota over zero seats has no defined value.
func Threshold[C any](q Quota, arith counting.Arithmetic[C], totalVotes C, numWinners int) (C, error) {
	if numWinners < 1 {
		return arith.Zero(), fmt.Errorf("number of winners must be at least one, got %d", numWinners)
	}
	winners := fromInt(arith, numWinners)
	switch q {
	case Droop:
		seats := arith.Add(winners, arith.One())
		return arith.Add(arith.Floor(arith.Div(totalVotes, seats)), arith.One()), nil
	case Hagenbach:
		if !arith.Fractional() {
			return arith.Zero(), fmt.Errorf("%w: the hagenbach-bischoff quota requires a fractional count type", tallystick.ErrUnsupportedCountType)
		}
		return arith.Div(totalVotes, arith.Add(winners, arith.One())), nil
	case Hare:
		return arith.Div(totalVotes, winners), nil
	default:
		return arith.Zero(), fmt.Errorf("unknown quota %q", q)
	}
}

func fromInt[C any](arith counting.Arithmetic[C], n int) C {
	v := arith.Zero()
	for i := 0; i < n; i++ {
		v = arith.Add(v, arith.One())
	}
	return v
}
