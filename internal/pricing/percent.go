// Package pricing derives the full cost/price breakdown for one inventory
// item from its raw cost inputs. It is pure: no I/O, no clock, no state.
package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidPercent marks a percent string that is non-numeric after the
// trailing '%' is stripped. A malformed margin must abort the computation —
// silently coercing to zero would price the item at cost.
var ErrInvalidPercent = errors.New("invalid percent format")

// Percent is a percent value carried in its original string form ("40%").
// The raw form is what gets persisted; arithmetic goes through Fraction.
type Percent string

// Fraction returns the percent as a decimal fraction: "40%" -> 0.40.
// An empty or all-whitespace value is 0. Anything non-numeric after
// stripping one trailing '%' is ErrInvalidPercent.
func (p Percent) Fraction() (decimal.Decimal, error) {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPercent, string(p))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPercent, string(p))
	}
	return d.Div(decimal.NewFromInt(100)), nil
}

// Valid reports whether the value would parse.
func (p Percent) Valid() bool {
	_, err := p.Fraction()
	return err == nil
}

func (p Percent) String() string { return string(p) }
