// Package assertion implements the numeric predicate algebra applied to
// scalar metrics: GreaterThan, GreaterThanOrEqual, LessThan,
// LessThanOrEqual, Equals, and Between.
package assertion

import (
	"fmt"
	"math"

	"github.com/pgEdge/dqcheck/internal/dqerr"
)

// Kind discriminates the Assertion variant.
type Kind int

const (
	GreaterThan Kind = iota
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
	Equals
	Between
)

// epsilon is the tolerance used when comparing Equals against floating
// point metrics; exact equality on computed ratios is rarely meaningful.
const epsilon = 1e-9

// Assertion is an immutable numeric predicate. Construct with the package
// level constructors, never the zero value.
type Assertion struct {
	kind   Kind
	x      float64
	lo, hi float64
}

// NewGreaterThan returns an Assertion satisfied by metrics strictly greater than x.
func NewGreaterThan(x float64) Assertion { return Assertion{kind: GreaterThan, x: x} }

// NewGreaterThanOrEqual returns an Assertion satisfied by metrics >= x.
func NewGreaterThanOrEqual(x float64) Assertion { return Assertion{kind: GreaterThanOrEqual, x: x} }

// NewLessThan returns an Assertion satisfied by metrics strictly less than x.
func NewLessThan(x float64) Assertion { return Assertion{kind: LessThan, x: x} }

// NewLessThanOrEqual returns an Assertion satisfied by metrics <= x.
func NewLessThanOrEqual(x float64) Assertion { return Assertion{kind: LessThanOrEqual, x: x} }

// NewEquals returns an Assertion satisfied by metrics within epsilon of x.
func NewEquals(x float64) Assertion { return Assertion{kind: Equals, x: x} }

// NewBetween returns an Assertion satisfied by metrics in [lo, hi]. It
// returns a ConfigurationError if lo > hi.
func NewBetween(lo, hi float64) (Assertion, error) {
	if lo > hi {
		return Assertion{}, dqerr.Configf("NewBetween", "lo (%v) must be <= hi (%v)", lo, hi)
	}
	return Assertion{kind: Between, lo: lo, hi: hi}, nil
}

// MustBetween panics if lo > hi; convenience wrapper over NewBetween for
// call sites that already guarantee the invariant (e.g. literal constants).
func MustBetween(lo, hi float64) Assertion {
	a, err := NewBetween(lo, hi)
	if err != nil {
		panic(err)
	}
	return a
}

// Kind reports which variant this Assertion is.
func (a Assertion) Kind() Kind { return a.kind }

// Threshold returns the scalar threshold for the non-Between variants.
func (a Assertion) Threshold() float64 { return a.x }

// Bounds returns (lo, hi) for the Between variant.
func (a Assertion) Bounds() (float64, float64) { return a.lo, a.hi }

// Evaluate applies the assertion's predicate to x. NaN inputs always yield
// false here — the caller (constraint layer) is responsible for turning a
// NaN metric into a Skipped result before ever reaching Evaluate, per spec
// section 4.2: NaN is never "success".
func (a Assertion) Evaluate(x float64) bool {
	if math.IsNaN(x) {
		return false
	}
	switch a.kind {
	case GreaterThan:
		return x > a.x
	case GreaterThanOrEqual:
		return x >= a.x
	case LessThan:
		return x < a.x
	case LessThanOrEqual:
		return x <= a.x
	case Equals:
		return math.Abs(x-a.x) <= epsilon
	case Between:
		return x >= a.lo && x <= a.hi
	default:
		return false
	}
}

// Description returns a human phrase such as "is greater than 0.5".
func (a Assertion) Description() string {
	switch a.kind {
	case GreaterThan:
		return fmt.Sprintf("is greater than %v", a.x)
	case GreaterThanOrEqual:
		return fmt.Sprintf("is greater than or equal to %v", a.x)
	case LessThan:
		return fmt.Sprintf("is less than %v", a.x)
	case LessThanOrEqual:
		return fmt.Sprintf("is less than or equal to %v", a.x)
	case Equals:
		return fmt.Sprintf("equals %v", a.x)
	case Between:
		return fmt.Sprintf("is between %v and %v (inclusive)", a.lo, a.hi)
	default:
		return "is invalid"
	}
}

// String implements fmt.Stringer.
func (a Assertion) String() string { return a.Description() }
