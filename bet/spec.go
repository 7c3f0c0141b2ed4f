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

// Package bet holds the data model shared by every layer of the betting
// core: a strategy's proposal (Spec), the API's outcome (Result), and the
// mutable per-tick state (Context) the engine hands to a strategy.
package bet

import (
	"time"

	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/money"
)

// Side is which half of the roll distribution a dice bet wins on.
type Side uint8

const (
	SideHigh Side = iota
	SideLow
)

func (s Side) String() string {
	if s == SideLow {
		return "low"
	}
	return "high"
}

// ParseSide inverts String; any value other than "low" is treated as
// "high" (the journal/index both only ever write what String produces).
func ParseSide(s string) Side {
	if s == "low" {
		return SideLow
	}
	return SideHigh
}

// RangeMode controls whether a range bet wins when the roll falls inside or
// outside the configured half-open [Low, High) interval.
type RangeMode uint8

const (
	RangeIn RangeMode = iota
	RangeOut
)

// Spec is a strategy's proposal for the next bet. A Spec is either "dice"
// form (Chance + Side set) or "range" form (Low/High/Mode set); never both.
type Spec struct {
	Amount   money.Decimal
	Chance   float64 // percent, (0, 99]
	Side     Side
	IsRange  bool
	Low      int
	High     int
	Mode     RangeMode
	Currency money.Currency // optional override; empty means "use session default"
	Skip     bool           // strategy has no proposal this tick
}

// Validate checks the dice/range exclusivity invariant and chance bounds.
func (s Spec) Validate() error {
	if s.Skip {
		return nil
	}
	if s.IsRange {
		if s.Low < 0 || s.High > 9999 || s.Low >= s.High {
			return errs.Warnf("invalid range bounds [%d,%d]", s.Low, s.High)
		}
		return nil
	}
	if s.Chance <= 0 || s.Chance > 99 {
		return errs.Warnf("chance out of (0,99]: %v", s.Chance)
	}
	return nil
}

// PayoutMultiplier is the fair (house-edge-free) multiplier the stake is
// multiplied by on a win: 100/chance for dice bets, or the range-width
// derived multiplier for range bets.
func (s Spec) PayoutMultiplier() float64 {
	if s.IsRange {
		width := float64(s.High - s.Low)
		if width <= 0 {
			return 0
		}
		switch s.Mode {
		case RangeIn:
			return 10000.0 / width
		default: // RangeOut
			return 10000.0 / (10000.0 - width)
		}
	}
	if s.Chance <= 0 {
		return 0
	}
	return 100.0 / s.Chance
}

// Result is the outcome of one executed bet.
type Result struct {
	BetID        string
	Timestamp    time.Time
	Spec         Spec
	Roll         float64 // 0.000-99.999 for dice, integer-valued for range
	Won          bool
	Profit       money.Decimal // signed: payout-stake on win, -stake on loss
	BalanceAfter money.Decimal

	// Fairness fields, optional.
	ServerSeedHash string
	ServerSeed     string // revealed only after rotation
	ClientSeed     string
	Nonce          int64
}

// WinPredicate reports whether roll satisfies the Spec's win condition,
// independent of any particular API's own judgement — used both by the
// simulator (to decide Won) and by the verifier (to cross-check a live
// result).
func (s Spec) WinPredicate(roll float64) bool {
	if s.IsRange {
		r := int(roll)
		inside := r >= s.Low && r < s.High
		if s.Mode == RangeIn {
			return inside
		}
		return !inside
	}
	switch s.Side {
	case SideHigh:
		return roll > 100-s.Chance
	default:
		return roll < s.Chance
	}
}
