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

package validator

import (
	"testing"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/money"
)

func cfg(minBet, minProfit string) Config {
	return Config{
		MinBet:        money.MustParse(minBet),
		MinProfit:     money.MustParse(minProfit),
		HouseEdge:     0.03,
		Precision:     8,
		ChanceCeiling: 95,
	}
}

// balance=10, min_bet=1, min_profit=5, spec=(amount=1, chance=50):
// the chance must shrink to ~16.17, not the stake grow.
func TestValidate_MinProfitShrinksChance(t *testing.T) {
	spec := bet.Spec{Amount: money.MustParse("1"), Chance: 50, Side: bet.SideHigh}
	balance := money.MustParse("10")
	res := Validate(spec, balance, cfg("1", "5"))

	if !res.Accepted {
		t.Fatalf("expected acceptance, got reject: %v", res.Reject)
	}
	if res.Spec.Chance < 16.0 || res.Spec.Chance > 16.3 {
		t.Fatalf("expected chance ~16.17, got %v", res.Spec.Chance)
	}
	if res.Spec.Amount.Cmp(money.MustParse("1")) != 0 {
		t.Fatalf("stake should be unchanged when chance shrink succeeds, got %v", res.Spec.Amount)
	}
	found := false
	for _, a := range res.Adjustments {
		if a.Field == "chance" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a chance adjustment to be reported on the side-channel")
	}
}

func TestValidate_FloorsToMinBet(t *testing.T) {
	spec := bet.Spec{Amount: money.MustParse("0.1"), Chance: 49.5, Side: bet.SideHigh}
	res := Validate(spec, money.MustParse("100"), cfg("1", "0"))
	if !res.Accepted {
		t.Fatalf("expected acceptance, got reject: %v", res.Reject)
	}
	if res.Spec.Amount.Cmp(money.MustParse("1")) != 0 {
		t.Fatalf("expected amount floored to 1, got %v", res.Spec.Amount)
	}
}

func TestValidate_CapsToBalance(t *testing.T) {
	spec := bet.Spec{Amount: money.MustParse("50"), Chance: 49.5, Side: bet.SideHigh}
	res := Validate(spec, money.MustParse("10"), cfg("1", "0"))
	if !res.Accepted {
		t.Fatalf("expected acceptance, got reject: %v", res.Reject)
	}
	if res.Spec.Amount.Cmp(money.MustParse("10")) != 0 {
		t.Fatalf("expected amount capped to balance 10, got %v", res.Spec.Amount)
	}
}

func TestValidate_InsufficientBalance(t *testing.T) {
	spec := bet.Spec{Amount: money.MustParse("1"), Chance: 49.5, Side: bet.SideHigh}
	res := Validate(spec, money.MustParse("0.5"), cfg("1", "0"))
	if res.Accepted {
		t.Fatalf("expected rejection when min_bet exceeds balance")
	}
}

func TestValidate_UnreachableMinProfit(t *testing.T) {
	// At chance=1 the payout is already near its maximum, so the shrink
	// solve lands above a tight ceiling (chance' = 97/101 ~ 0.96 > 0.5)
	// and the grow solve needs 100/96 ~ 1.04, above the 1.0 balance:
	// neither adjustment can reach min_profit.
	spec := bet.Spec{Amount: money.MustParse("1"), Chance: 1, Side: bet.SideHigh}
	c := cfg("1", "100")
	c.ChanceCeiling = 0.5
	res := Validate(spec, money.MustParse("1"), c)
	if res.Accepted {
		t.Fatalf("expected rejection, got acceptance: %+v", res.Spec)
	}
}

// Validator monotonicity: if (spec, balance) is accepted, (spec, balance')
// for any balance' >= balance is also accepted.
func TestValidate_Monotonicity(t *testing.T) {
	spec := bet.Spec{Amount: money.MustParse("2"), Chance: 40, Side: bet.SideHigh}
	c := cfg("1", "0.1")
	lo := Validate(spec, money.MustParse("10"), c)
	if !lo.Accepted {
		t.Fatalf("expected base case acceptance: %v", lo.Reject)
	}
	hi := Validate(spec, money.MustParse("1000"), c)
	if !hi.Accepted {
		t.Fatalf("expected acceptance at larger balance: %v", hi.Reject)
	}
}
