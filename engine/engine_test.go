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

package engine

import (
	"context"
	"testing"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/catalog/strategies"
	"github.com/zintix-labs/duckdice-bot/diceapi"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/simulator"
	"github.com/zintix-labs/duckdice-bot/validator"
)

func defaultValidatorConfig() validator.Config {
	return validator.Config{
		MinBet:        money.MustParse("0.00000001"),
		MinProfit:     money.Zero,
		HouseEdge:     0.03,
		Precision:     8,
		ChanceCeiling: 95,
	}
}

// Flat-simulation scenario: fixed seed, flat(base=1) near even money,
// max_bets=1000, house_edge=0.03. The session must run to exactly max_bets,
// never go negative, and land inside a wide band around the house-edge
// drift. The bankroll is sized so ruin before 1000 bets would be a many-
// sigma event, keeping the max_bets assertion deterministic in practice.
func TestEngine_FlatSimulationScenario(t *testing.T) {
	sim := simulator.New(simulator.Config{
		Seed:            42,
		HouseEdge:       0.03,
		StartingBalance: money.MustParse("1000"),
		Currency:        "btc",
	})

	strat := strategies.NewFlat()
	ctx := bet.NewContext(20, money.MustParse("1000"), nil)
	ctx.Rand = sim.Core()
	if err := strat.Init(map[string]string{"base": "1"}, ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg := Config{
		Currency:   "btc",
		MaxBets:    1000,
		TickDelay:  0,
		TurboMode:  true,
		MaxRetries: 3,
		Validator:  defaultValidatorConfig(),
	}

	eng := New("sess-1", "simulation", strat, sim, NopJournal{}, ctx, cfg)
	summary, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.StopReason.Kind != StopMaxBets {
		t.Fatalf("expected max_bets stop, got %v", summary.StopReason)
	}
	if summary.BetCount != 1000 {
		t.Fatalf("expected 1000 bets, got %d", summary.BetCount)
	}
	if summary.EndingBalance.Sign() < 0 {
		t.Fatalf("balance went negative: %v", summary.EndingBalance)
	}
	// Sanity band: at chance 49.5 the per-bet EV is -0.03 per unit staked,
	// so E[profit] ~ -30 over 1000 unit bets with sigma ~ 31; allow 3 sigma
	// either side.
	profitFloat := summary.Profit.Float64()
	if profitFloat < -130 || profitFloat > 70 {
		t.Fatalf("profit %v outside sane band for house-edge sim", profitFloat)
	}
	// flat(base=1) stakes exactly 1 every tick, so wagered must equal the
	// bet count precisely - catches a regression where BetResult.Spec
	// stops being echoed back from the API layer and TotalWagered silently
	// collapses to zero.
	wantWagered := money.MustParse("1000")
	if summary.TotalWagered.Cmp(wantWagered) != 0 {
		t.Fatalf("expected total_wagered %v, got %v", wantWagered, summary.TotalWagered)
	}
}

// Decimal closure invariant: balance_after = balance_before - stake +
// payout exactly, for every bet in the stream. Verified here via the
// per-tick journal rather than a wrapping fake, since the invariant is
// about what the simulator computed, not about intercepting the API call.
func TestEngine_DecimalClosureInvariant(t *testing.T) {
	sim := simulator.New(simulator.Config{
		Seed:            7,
		HouseEdge:       0.03,
		StartingBalance: money.MustParse("50"),
		Currency:        "btc",
	})
	strat := strategies.NewFlat()
	ctx := bet.NewContext(10, money.MustParse("50"), nil)
	ctx.Rand = sim.Core()
	_ = strat.Init(map[string]string{"base": "0.5"}, ctx)

	jrn := &recordingJournal{}
	cfg := Config{Currency: "btc", MaxBets: 200, TurboMode: true, MaxRetries: 1, Validator: defaultValidatorConfig()}
	eng := New("sess-2", "simulation", strat, sim, jrn, ctx, cfg)

	if _, err := eng.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	running := money.MustParse("50")
	checked := 0
	for _, rec := range jrn.records {
		p, ok := rec.Payload.(BetExecutedPayload)
		if !ok {
			continue
		}
		res := p.Result
		payout := res.Profit.Add(res.Spec.Amount)
		if !res.Won {
			payout = money.Zero
		}
		want := running.Sub(res.Spec.Amount).Add(payout)
		if want.Cmp(res.BalanceAfter) != 0 {
			t.Fatalf("closure violated at bet %d: want %v got %v", p.Index, want, res.BalanceAfter)
		}
		running = res.BalanceAfter
		checked++
	}
	if checked == 0 {
		t.Fatalf("no bet_executed records found")
	}
}

// faucetOnlyAPI never takes a bet; every ClaimFaucet call hands back a
// fixed amount. Exercises the OutcomeClaimFaucet engine hook in isolation
// from the simulator's "faucet claims unsupported" stance.
type faucetOnlyAPI struct {
	claimAmount money.Decimal
	claims      int
}

func (a *faucetOnlyAPI) PlaceDice(context.Context, money.Currency, money.Decimal, float64, bet.Side, diceapi.FaucetMode, string) (bet.Result, error) {
	return bet.Result{}, diceapi.Rejected("faucetOnlyAPI never places bets")
}

func (a *faucetOnlyAPI) PlaceRange(context.Context, money.Currency, money.Decimal, int, int, bet.RangeMode, diceapi.FaucetMode, string) (bet.Result, error) {
	return bet.Result{}, diceapi.Rejected("faucetOnlyAPI never places bets")
}

func (a *faucetOnlyAPI) Balance(context.Context, money.Currency) (money.Decimal, error) {
	return money.Zero, nil
}

func (a *faucetOnlyAPI) ClaimFaucet(context.Context, money.Currency) (diceapi.FaucetClaim, error) {
	a.claims++
	return diceapi.FaucetClaim{Amount: a.claimAmount}, nil
}

func (a *faucetOnlyAPI) ListCurrencies(context.Context) ([]money.Currency, error) {
	return []money.Currency{"btc"}, nil
}

// faucet-cashout never wagers; it should claim the faucet tick after tick
// until balance reaches its threshold, then stop. This exercises the
// OutcomeClaimFaucet path end to end: without the engine-level hook,
// NextBet would have nothing to drive its balance forward and the session
// would sit at OutcomeSkip forever.
func TestEngine_FaucetCashoutClaimsUntilThreshold(t *testing.T) {
	api := &faucetOnlyAPI{claimAmount: money.MustParse("1")}
	strat := strategies.NewFaucetCashout()
	ctx := bet.NewContext(0, money.Zero, nil)
	if err := strat.Init(map[string]string{"threshold": "3"}, ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg := Config{Currency: "btc", TurboMode: true, MaxRetries: 1, Validator: defaultValidatorConfig()}
	eng := New("sess-faucet", "simulation", strat, api, NopJournal{}, ctx, cfg)

	summary, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.StopReason.Kind != StopStrategy {
		t.Fatalf("expected strategy stop, got %v", summary.StopReason)
	}
	if api.claims != 3 {
		t.Fatalf("expected 3 faucet claims, got %d", api.claims)
	}
	wantBalance := money.MustParse("3")
	if summary.EndingBalance.Cmp(wantBalance) != 0 {
		t.Fatalf("expected ending balance %v, got %v", wantBalance, summary.EndingBalance)
	}
	if summary.BetCount != 0 {
		t.Fatalf("expected 0 bets placed, got %d", summary.BetCount)
	}
}

type recordingJournal struct {
	records []Record
}

func (j *recordingJournal) Append(rec Record) error {
	j.records = append(j.records, rec)
	return nil
}

func (j *recordingJournal) Sync() error { return nil }
