// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package money implements a fixed-scale decimal amount type for wagers and
// balances. Binary floating point is never used for money: Decimal carries
// an int64 mantissa scaled by 10^Scale and only implements the handful of
// operations the betting core actually needs (add, sub, multiply by a
// rational payout factor, compare, parse, format).
package money

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/zintix-labs/duckdice-bot/errs"
)

// Scale is the number of fractional digits every Decimal carries.
const Scale = 8

var pow10 = int64(100000000) // 10^Scale

// Decimal is a non-negative-by-convention fixed-scale amount.
// The zero value is 0.00000000 and is ready to use.
type Decimal struct {
	mantissa int64 // value * 10^Scale
}

// Zero is the additive identity.
var Zero = Decimal{}

// FromInt builds a Decimal from a whole-unit integer amount.
func FromInt(units int64) Decimal {
	return Decimal{mantissa: units * pow10}
}

// Parse converts a textual decimal amount (as returned by the dice API, or
// typed by a user) into a Decimal losslessly. At most Scale fractional
// digits are accepted; extra digits are rejected rather than silently
// truncated, since silent truncation of a wager is exactly the kind of bug
// this type exists to prevent.
func Parse(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, errs.NewWarn("empty decimal")
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) {
		return Zero, errs.Warnf("invalid decimal: %q", s)
	}
	if hasFrac {
		if !isDigits(fracPart) {
			return Zero, errs.Warnf("invalid decimal: %q", s)
		}
		if len(fracPart) > Scale {
			return Zero, errs.Warnf("decimal %q has more than %d fractional digits", s, Scale)
		}
		fracPart = fracPart + strings.Repeat("0", Scale-len(fracPart))
	} else {
		fracPart = strings.Repeat("0", Scale)
	}

	whole, err := strconv.ParseInt(intPart, 10, 63)
	if err != nil {
		return Zero, errs.Wrap(err, "invalid decimal integer part")
	}
	frac, err := strconv.ParseInt(fracPart, 10, 63)
	if err != nil {
		return Zero, errs.Wrap(err, "invalid decimal fractional part")
	}

	m := whole*pow10 + frac
	if neg {
		m = -m
	}
	return Decimal{mantissa: m}, nil
}

// MustParse is Parse but panics on error; reserved for literals in tests and
// statically-known constants (e.g. catalog metadata defaults).
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String renders the Decimal losslessly, always with Scale fractional
// digits, suitable for sending to the dice API (which speaks decimals as
// text, never binary floats).
func (d Decimal) String() string {
	neg := d.mantissa < 0
	m := d.mantissa
	if neg {
		m = -m
	}
	whole := m / pow10
	frac := m % pow10
	s := fmt.Sprintf("%d.%08d", whole, frac)
	if neg {
		s = "-" + s
	}
	return s
}

// Add returns d + o.
func (d Decimal) Add(o Decimal) Decimal { return Decimal{mantissa: d.mantissa + o.mantissa} }

// Sub returns d - o.
func (d Decimal) Sub(o Decimal) Decimal { return Decimal{mantissa: d.mantissa - o.mantissa} }

// Neg returns -d.
func (d Decimal) Neg() Decimal { return Decimal{mantissa: -d.mantissa} }

// Cmp returns -1, 0, or 1 as d is less than, equal to, or greater than o.
func (d Decimal) Cmp(o Decimal) int {
	switch {
	case d.mantissa < o.mantissa:
		return -1
	case d.mantissa > o.mantissa:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether d is exactly zero.
func (d Decimal) IsZero() bool { return d.mantissa == 0 }

// Sign returns -1, 0 or 1.
func (d Decimal) Sign() int {
	switch {
	case d.mantissa < 0:
		return -1
	case d.mantissa > 0:
		return 1
	default:
		return 0
	}
}

// Float64 converts to a float64 for statistics/reporting only. Never use the
// result to feed back into money arithmetic — that would reintroduce the
// binary-floating-point error this type exists to avoid.
func (d Decimal) Float64() float64 {
	return float64(d.mantissa) / float64(pow10)
}

// MulRat multiplies d by a rational number num/den exactly (using a
// big.Int intermediate so no precision is lost), rounding the result down
// towards zero to Scale fractional digits. This is how payout multipliers
// (e.g. (100/chance)*(1-houseEdge)) are applied to a stake.
func (d Decimal) MulRat(num, den int64) Decimal {
	if den == 0 {
		return Zero
	}
	m := big.NewInt(d.mantissa)
	m.Mul(m, big.NewInt(num))
	m.Quo(m, big.NewInt(den))
	return Decimal{mantissa: m.Int64()}
}

// MulFloat multiplies d by a float64 factor (e.g. a Kelly fraction derived
// from chance), rounding down to Scale fractional digits. Reserved for
// strategies whose math is inherently approximate (Kelly fraction, RNG
// hot/cold modulation) — never used for the win/loss settlement path, which
// always goes through MulRat with exact integer ratios.
func (d Decimal) MulFloat(factor float64) Decimal {
	scaled := big.NewFloat(float64(d.mantissa) * factor)
	i, _ := scaled.Int(nil)
	return Decimal{mantissa: i.Int64()}
}

// RoundDownTo truncates d to the given number of fractional digits
// (currency precision), rounding towards zero.
func (d Decimal) RoundDownTo(precision int) Decimal {
	if precision >= Scale {
		return d
	}
	factor := int64(1)
	for range Scale - precision {
		factor *= 10
	}
	neg := d.mantissa < 0
	m := d.mantissa
	if neg {
		m = -m
	}
	m = (m / factor) * factor
	if neg {
		m = -m
	}
	return Decimal{mantissa: m}
}

// Min returns the smaller of a and b.
func Min(a, b Decimal) Decimal {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Decimal) Decimal {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// MarshalJSON renders the Decimal as a JSON string (never a JSON number,
// which would round-trip through a float64 in most decoders).
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a JSON string into a Decimal.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
