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

// Package validator adjusts a strategy-proposed bet.Spec to respect
// balance, minimum-stake and minimum-profit invariants before it reaches
// the dice API. Adjustment follows a fixed precedence — shrink chance
// first, then grow stake: solve the equation that keeps the original
// request mostly intact, and only fall back when that solve lands outside
// its valid domain.
package validator

import (
	"strconv"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/money"
)

// Adjustment describes one change the validator made to a proposed Spec,
// reported on the side-channel so the caller (engine tick, CLI) can surface
// it to the user. Adjustments are never silent: a quiet stake change
// would mislead the user about what they actually risked.
type Adjustment struct {
	Field    string // "amount" or "chance"
	Reason   string
	Previous string
	Next     string
}

// Config carries the per-currency/session constants the validator's rules
// are evaluated against.
type Config struct {
	MinBet        money.Decimal
	MinProfit     money.Decimal
	HouseEdge     float64 // e.g. 0.03
	Precision     int     // currency decimal precision, <= money.Scale
	ChanceCeiling float64 // upper bound a shrunk chance may not exceed
}

// Result is what Validate returns: either an adjusted Spec (Accepted true)
// or a rejection reason.
type Result struct {
	Spec        bet.Spec
	Accepted    bool
	Adjustments []Adjustment
	Reject      *errs.KE
}

// Validate runs the four ordered rules (floor stake, cap stake,
// min-profit solve, round to precision) against spec, given the current
// balance. Validate is pure: no I/O, no mutation of its
// arguments, so the same (spec, balance, cfg) always yields the same
// Result — the "validator monotonicity" property depends on this.
func Validate(spec bet.Spec, balance money.Decimal, cfg Config) Result {
	if spec.Skip || spec.IsRange {
		// Range bets carry no chance to shrink; only the balance rules
		// apply to them, the minimum-profit solve is dice-only.
		return validateBalanceOnly(spec, balance, cfg)
	}

	var adjustments []Adjustment
	amount := spec.Amount

	// Rule 1: floor stake to the currency minimum.
	if amount.Cmp(cfg.MinBet) < 0 {
		adjustments = append(adjustments, Adjustment{
			Field: "amount", Reason: "floored to minimum bet",
			Previous: amount.String(), Next: cfg.MinBet.String(),
		})
		amount = cfg.MinBet
	}
	if cfg.MinBet.Cmp(balance) > 0 {
		return Result{Spec: spec, Reject: errs.InsufficientBalance(
			"min_bet " + cfg.MinBet.String() + " exceeds balance " + balance.String())}
	}

	// Rule 2: cap stake to the available balance.
	if amount.Cmp(balance) > 0 {
		adjustments = append(adjustments, Adjustment{
			Field: "amount", Reason: "capped to balance",
			Previous: amount.String(), Next: balance.String(),
		})
		amount = balance
	}

	// Rule 3: minimum-profit adjustment.
	chance := spec.Chance
	payout := amount.MulFloat((100.0 / chance) * (1 - cfg.HouseEdge))
	profit := payout.Sub(amount)

	if profit.Cmp(cfg.MinProfit) < 0 {
		adjusted := false

		// Shrink chance first: solve chance' = 100*amount*(1-e)/(amount+minProfit).
		if shrunk, ok := solveShrinkChance(amount, cfg); ok && shrunk > 0 && shrunk <= cfg.ChanceCeiling {
			adjustments = append(adjustments, Adjustment{
				Field: "chance", Reason: "shrunk to reach min profit",
				Previous: formatChance(chance), Next: formatChance(shrunk),
			})
			chance = shrunk
			adjusted = true
		} else if grown, ok := solveGrowStake(chance, cfg); ok && grown.Cmp(balance) <= 0 {
			// Grow stake at the original chance.
			adjustments = append(adjustments, Adjustment{
				Field: "amount", Reason: "grown to reach min profit",
				Previous: amount.String(), Next: grown.String(),
			})
			amount = grown
			adjusted = true
		}

		if !adjusted {
			return Result{Spec: spec, Reject: errs.Unreachable(
				"cannot reach min_profit " + cfg.MinProfit.String() + " within balance/chance bounds")}
		}
	}

	// Rule 4: round down to currency precision.
	rounded := amount.RoundDownTo(cfg.Precision)
	if rounded.Cmp(amount) != 0 {
		adjustments = append(adjustments, Adjustment{
			Field: "amount", Reason: "rounded to currency precision",
			Previous: amount.String(), Next: rounded.String(),
		})
		amount = rounded
	}
	if amount.Cmp(cfg.MinBet) < 0 {
		return Result{Spec: spec, Reject: errs.Unreachable(
			"rounded amount " + amount.String() + " below min_bet " + cfg.MinBet.String())}
	}

	out := spec
	out.Amount = amount
	out.Chance = chance
	return Result{Spec: out, Accepted: true, Adjustments: adjustments}
}

func validateBalanceOnly(spec bet.Spec, balance money.Decimal, cfg Config) Result {
	if spec.Skip {
		return Result{Spec: spec, Accepted: true}
	}
	var adjustments []Adjustment
	amount := spec.Amount
	if amount.Cmp(cfg.MinBet) < 0 {
		adjustments = append(adjustments, Adjustment{
			Field: "amount", Reason: "floored to minimum bet",
			Previous: amount.String(), Next: cfg.MinBet.String(),
		})
		amount = cfg.MinBet
	}
	if cfg.MinBet.Cmp(balance) > 0 {
		return Result{Spec: spec, Reject: errs.InsufficientBalance(
			"min_bet " + cfg.MinBet.String() + " exceeds balance " + balance.String())}
	}
	if amount.Cmp(balance) > 0 {
		adjustments = append(adjustments, Adjustment{
			Field: "amount", Reason: "capped to balance",
			Previous: amount.String(), Next: balance.String(),
		})
		amount = balance
	}
	rounded := amount.RoundDownTo(cfg.Precision)
	if rounded.Cmp(amount) != 0 {
		adjustments = append(adjustments, Adjustment{
			Field: "amount", Reason: "rounded to currency precision",
			Previous: amount.String(), Next: rounded.String(),
		})
		amount = rounded
	}
	if amount.Cmp(cfg.MinBet) < 0 {
		return Result{Spec: spec, Reject: errs.Unreachable(
			"rounded amount " + amount.String() + " below min_bet " + cfg.MinBet.String())}
	}
	out := spec
	out.Amount = amount
	return Result{Spec: out, Accepted: true, Adjustments: adjustments}
}

// solveShrinkChance solves chance' = 100*amount*(1-e) / (amount+minProfit)
// for the smallest chance that reaches exactly minProfit at the given
// stake, holding the stake fixed.
func solveShrinkChance(amount money.Decimal, cfg Config) (float64, bool) {
	denom := amount.Add(cfg.MinProfit).Float64()
	if denom <= 0 {
		return 0, false
	}
	chance := 100.0 * amount.Float64() * (1 - cfg.HouseEdge) / denom
	return chance, true
}

// solveGrowStake solves amount' = minProfit / ((100/chance)*(1-e) - 1) for
// the smallest stake that reaches exactly minProfit at the original chance.
func solveGrowStake(chance float64, cfg Config) (money.Decimal, bool) {
	if chance <= 0 {
		return money.Zero, false
	}
	denom := (100.0/chance)*(1-cfg.HouseEdge) - 1
	if denom <= 0 {
		return money.Zero, false
	}
	return cfg.MinProfit.MulFloat(1 / denom), true
}

func formatChance(c float64) string {
	return strconv.FormatFloat(c, 'f', 4, 64)
}
