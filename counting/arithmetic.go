// Package counting defines the numeric kinds used to count votes.
//
// Every tally is generic over a count type C and is handed an Arithmetic[C]
// at construction time. Dispatching arithmetic through an explicit interface
// lets a single tally implementation count with integers, floats, or exact
// decimals, and lets fraction-requiring configurations (Schulze ratio
// strengths, the Hagenbach-Bischoff quota, Dowdall points) detect an
// incompatible integer kind up front instead of silently truncating.
package counting

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Arithmetic provides the numeric operations a tally needs over the count
// type C. Implementations must be stateless; the same instance is shared by
// every operation of a tally for its whole lifetime.
type Arithmetic[C any] interface {
	// Zero returns the additive identity.
	Zero() C

	// One returns the multiplicative identity, used as the default
	// ballot weight.
	One() C

	// Add returns a + b.
	Add(a, b C) C

	// Sub returns a - b.
	Sub(a, b C) C

	// Mul returns a * b.
	Mul(a, b C) C

	// Div returns a / b. Division by zero is the caller's responsibility;
	// callers that can encounter a zero divisor must check first.
	Div(a, b C) C

	// Cmp compares a and b, returning -1, 0, or +1.
	Cmp(a, b C) int

	// Floor rounds a down to the nearest integer value.
	// For integer kinds this is the identity.
	Floor(a C) C

	// MaxValue returns the largest representable count. It is used as a
	// saturating stand-in for infinity, e.g. for ratio link strengths
	// with zero opposition.
	MaxValue() C

	// Fractional reports whether C can represent non-integral values.
	Fractional() bool

	// Parse converts a decimal string into a count, used when reading
	// ballot weights from text.
	Parse(s string) (C, error)
}

// Int64 returns the integer count kind. It is the recommended kind for
// tallies with whole-numbered ballot weights.
func Int64() Arithmetic[int64] { return int64Arith{} }

// Float64 returns the floating-point count kind. It supports fractional
// ballot weights at the cost of the usual float rounding behavior.
func Float64() Arithmetic[float64] { return float64Arith{} }

// Decimal returns the exact fractional count kind backed by
// shopspring/decimal. Use it when fractional weights must tally exactly,
// such as fractional surplus transfers.
func Decimal() Arithmetic[decimal.Decimal] { return decimalArith{} }

type int64Arith struct{}

func (int64Arith) Zero() int64          { return 0 }
func (int64Arith) One() int64           { return 1 }
func (int64Arith) Add(a, b int64) int64 { return a + b }
func (int64Arith) Sub(a, b int64) int64 { return a - b }
func (int64Arith) Mul(a, b int64) int64 { return a * b }
func (int64Arith) Div(a, b int64) int64 { return a / b }
func (int64Arith) Floor(a int64) int64  { return a }
func (int64Arith) MaxValue() int64      { return math.MaxInt64 }
func (int64Arith) Fractional() bool     { return false }

func (int64Arith) Parse(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func (int64Arith) Cmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

type float64Arith struct{}

func (float64Arith) Zero() float64            { return 0 }
func (float64Arith) One() float64             { return 1 }
func (float64Arith) Add(a, b float64) float64 { return a + b }
func (float64Arith) Sub(a, b float64) float64 { return a - b }
func (float64Arith) Mul(a, b float64) float64 { return a * b }
func (float64Arith) Div(a, b float64) float64 { return a / b }
func (float64Arith) Floor(a float64) float64  { return math.Floor(a) }
func (float64Arith) MaxValue() float64        { return math.MaxFloat64 }
func (float64Arith) Fractional() bool         { return true }

func (float64Arith) Parse(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func (float64Arith) Cmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

type decimalArith struct{}

// decimalMax saturates ratio strengths with zero opposition. Decimals have
// no intrinsic maximum, so the largest int64 coefficient stands in for one.
var decimalMax = decimal.NewFromInt(math.MaxInt64)

func (decimalArith) Zero() decimal.Decimal                    { return decimal.Zero }
func (decimalArith) One() decimal.Decimal                     { return decimal.NewFromInt(1) }
func (decimalArith) Add(a, b decimal.Decimal) decimal.Decimal { return a.Add(b) }
func (decimalArith) Sub(a, b decimal.Decimal) decimal.Decimal { return a.Sub(b) }
func (decimalArith) Mul(a, b decimal.Decimal) decimal.Decimal { return a.Mul(b) }
func (decimalArith) Div(a, b decimal.Decimal) decimal.Decimal { return a.Div(b) }
func (decimalArith) Floor(a decimal.Decimal) decimal.Decimal  { return a.Floor() }
func (decimalArith) MaxValue() decimal.Decimal                { return decimalMax }
func (decimalArith) Fractional() bool                         { return true }
func (decimalArith) Cmp(a, b decimal.Decimal) int             { return a.Cmp(b) }

func (decimalArith) Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
