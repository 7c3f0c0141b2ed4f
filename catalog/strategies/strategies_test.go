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

package strategies

import (
	"testing"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/strategy"
)

// win/loss build a settled bet.Result for a given stake, enough for a
// strategy's OnResult to react to without going through the simulator.
func win(stake money.Decimal, multiplier float64) bet.Result {
	payout := stake.MulFloat(multiplier)
	return bet.Result{Won: true, Profit: payout.Sub(stake), Spec: bet.Spec{Amount: stake}}
}

func loss(stake money.Decimal) bet.Result {
	return bet.Result{Won: false, Profit: money.Zero.Sub(stake), Spec: bet.Spec{Amount: stake}}
}

func newCtx() *bet.Context {
	return bet.NewContext(8, money.MustParse("100"), nil)
}

func initStrategy(t *testing.T, s strategy.Strategy, params map[string]string, ctx *bet.Context) {
	t.Helper()
	if err := s.Init(params, ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
}

func stakeOf(t *testing.T, s strategy.Strategy, ctx *bet.Context) money.Decimal {
	t.Helper()
	out := s.NextBet(ctx)
	if out.Kind != strategy.OutcomeBet {
		t.Fatalf("expected OutcomeBet, got %v (stop reason %q)", out.Kind, out.StopReason)
	}
	return out.Spec.Amount
}

// TestStrategyNextBetIsPure: calling NextBet twice with identical ctx and
// private state must return identical Specs.
func TestStrategyNextBetIsPure(t *testing.T) {
	ctx := newCtx()
	s := NewClassicMartingale()
	initStrategy(t, s, map[string]string{"base": "1", "multiplier": "2", "max_streak": "0"}, ctx)

	first := s.NextBet(ctx)
	second := s.NextBet(ctx)
	if first.Spec.Amount.Cmp(second.Spec.Amount) != 0 {
		t.Fatalf("NextBet not pure: %s != %s", first.Spec.Amount, second.Spec.Amount)
	}
}

func TestClassicMartingaleProgression(t *testing.T) {
	ctx := newCtx()
	s := NewClassicMartingale()
	initStrategy(t, s, map[string]string{"base": "1", "multiplier": "2", "max_streak": "0"}, ctx)

	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("initial stake = %s, want 1", got)
	}
	s.OnResult(ctx, loss(money.MustParse("1")))
	if got := stakeOf(t, s, ctx); got.String() != "2.00000000" {
		t.Fatalf("after 1 loss stake = %s, want 2", got)
	}
	s.OnResult(ctx, loss(money.MustParse("2")))
	if got := stakeOf(t, s, ctx); got.String() != "4.00000000" {
		t.Fatalf("after 2 losses stake = %s, want 4", got)
	}
	s.OnResult(ctx, win(money.MustParse("4"), 2))
	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("after win stake = %s, want reset to base 1", got)
	}
}

func TestClassicMartingaleMaxStreakStops(t *testing.T) {
	ctx := newCtx()
	s := NewClassicMartingale()
	initStrategy(t, s, map[string]string{"base": "1", "multiplier": "2", "max_streak": "3"}, ctx)

	for i := 0; i < 3; i++ {
		out := s.NextBet(ctx)
		if out.Kind != strategy.OutcomeBet {
			t.Fatalf("iteration %d: expected a bet before max_streak is reached", i)
		}
		s.OnResult(ctx, loss(out.Spec.Amount))
	}
	out := s.NextBet(ctx)
	if out.Kind != strategy.OutcomeStop {
		t.Fatalf("expected Stop after max_streak consecutive losses, got %v", out.Kind)
	}
}

func TestAntiMartingaleStreakMirrorsMartingale(t *testing.T) {
	ctx := newCtx()
	s := NewAntiMartingaleStreak()
	initStrategy(t, s, map[string]string{"base": "1", "multiplier": "2", "max_streak": "0"}, ctx)

	s.OnResult(ctx, win(money.MustParse("1"), 2))
	if got := stakeOf(t, s, ctx); got.String() != "2.00000000" {
		t.Fatalf("after 1 win stake = %s, want 2", got)
	}
	s.OnResult(ctx, loss(money.MustParse("2")))
	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("after loss stake = %s, want reset to base 1", got)
	}
}

func TestFibonacciSequenceWalk(t *testing.T) {
	ctx := newCtx()
	s := NewFibonacci()
	initStrategy(t, s, map[string]string{"base": "1"}, ctx)

	// fib(0)=1, fib(1)=1, fib(2)=2, fib(3)=3, fib(4)=5, per the betting
	// convention documented in fib() (not the textbook 0,1,1,2 sequence).
	want := []string{"1.00000000", "1.00000000", "2.00000000", "3.00000000", "5.00000000"}
	for i, w := range want {
		got := stakeOf(t, s, ctx)
		if got.String() != w {
			t.Fatalf("step %d: stake = %s, want %s", i, got, w)
		}
		s.OnResult(ctx, loss(got))
	}

	// Two wins in a row should walk the index back down by 2 each time,
	// floored at 0.
	s.OnResult(ctx, win(money.MustParse("5"), 2))
	if got := stakeOf(t, s, ctx); got.String() != "3.00000000" {
		t.Fatalf("after 1 win stake = %s, want fib(3)=3", got)
	}
	s.OnResult(ctx, win(money.MustParse("3"), 2))
	s.OnResult(ctx, win(money.MustParse("1"), 2))
	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("index should floor at 0 (stake=base), got %s", got)
	}
}

func TestDAlembertLinearProgression(t *testing.T) {
	ctx := newCtx()
	s := NewDAlembert()
	initStrategy(t, s, map[string]string{"unit": "1"}, ctx)

	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("initial stake = %s, want unit 1", got)
	}
	s.OnResult(ctx, loss(money.MustParse("1")))
	if got := stakeOf(t, s, ctx); got.String() != "2.00000000" {
		t.Fatalf("after loss stake = %s, want 2", got)
	}
	s.OnResult(ctx, win(money.MustParse("2"), 2))
	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("after win stake = %s, want 1", got)
	}
	// Floor at unit: a win at stake==unit must never drop below unit.
	s.OnResult(ctx, win(money.MustParse("1"), 2))
	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("stake floored below unit: got %s", got)
	}
}

func TestLabouchereStakeAndTermination(t *testing.T) {
	ctx := newCtx()
	s := NewLabouchere()
	initStrategy(t, s, map[string]string{"unit": "1", "target": "6"}, ctx)

	// A 6-unit target seeds [1,2,3]; stake = (first+last)*unit = 4.
	if got := stakeOf(t, s, ctx); got.String() != "4.00000000" {
		t.Fatalf("initial stake = %s, want 4", got)
	}
	// A win pops both ends -> [2]; stake = 2.
	s.OnResult(ctx, win(money.MustParse("4"), 2))
	if got := stakeOf(t, s, ctx); got.String() != "2.00000000" {
		t.Fatalf("after win stake = %s, want 2", got)
	}
	// A second win empties the sequence -> strategy stops.
	s.OnResult(ctx, win(money.MustParse("2"), 2))
	out := s.NextBet(ctx)
	if out.Kind != strategy.OutcomeStop {
		t.Fatalf("expected Stop once the sequence empties, got %v", out.Kind)
	}
}

func TestLabouchereLossAppendsStake(t *testing.T) {
	ctx := newCtx()
	s := NewLabouchere()
	initStrategy(t, s, map[string]string{"unit": "1", "target": "3"}, ctx)

	// A 3-unit target seeds [1,2]; stake = 3.
	got := stakeOf(t, s, ctx)
	if got.String() != "3.00000000" {
		t.Fatalf("initial stake = %s, want 3", got)
	}
	// A loss appends the stake (in units) -> [1,2,3]; next stake = 1+3=4.
	s.OnResult(ctx, loss(got))
	if got := stakeOf(t, s, ctx); got.String() != "4.00000000" {
		t.Fatalf("after loss stake = %s, want 4", got)
	}
}

func TestParoliDoublesUpToMaxWinsThenResets(t *testing.T) {
	ctx := newCtx()
	s := NewParoli()
	initStrategy(t, s, map[string]string{"base": "1", "max_wins": "2"}, ctx)

	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("initial stake = %s, want base 1", got)
	}
	s.OnResult(ctx, win(money.MustParse("1"), 2))
	if got := stakeOf(t, s, ctx); got.String() != "2.00000000" {
		t.Fatalf("after 1 win stake = %s, want 2", got)
	}
	// Second win hits max_wins -> reset to base, not a further double.
	s.OnResult(ctx, win(money.MustParse("2"), 2))
	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("after max_wins stake = %s, want reset to base 1", got)
	}
}

func TestParoliLossAlwaysResets(t *testing.T) {
	ctx := newCtx()
	s := NewParoli()
	initStrategy(t, s, map[string]string{"base": "1", "max_wins": "3"}, ctx)

	s.OnResult(ctx, win(money.MustParse("1"), 2))
	s.OnResult(ctx, loss(money.MustParse("2")))
	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("after loss stake = %s, want reset to base 1", got)
	}
}

func TestOscarsGrindIncreasesOnWinBelowTargetAndResetsAtTarget(t *testing.T) {
	ctx := newCtx()
	s := NewOscarsGrind()
	initStrategy(t, s, map[string]string{"unit": "1", "target": "1"}, ctx)

	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("initial stake = %s, want unit 1", got)
	}
	// A loss never changes the stake.
	s.OnResult(ctx, loss(money.MustParse("1")))
	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("after loss stake = %s, want unchanged 1", got)
	}
	// The cycle is down one unit from the preceding loss; a win at 3x
	// nets +2 units, bringing cumulative cycle profit to exactly the
	// 1-unit target and resetting the cycle.
	s.OnResult(ctx, win(money.MustParse("1"), 3))
	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("stake after hitting target = %s, want reset to unit 1", got)
	}
}

func TestOscarsGrindIncreasesStakeWhileBelowTarget(t *testing.T) {
	ctx := newCtx()
	s := NewOscarsGrind()
	initStrategy(t, s, map[string]string{"unit": "1", "target": "5"}, ctx)

	stakeOf(t, s, ctx)
	// A win at a 1.5x payout leaves the cycle short of the 5-unit
	// target, so the strategy should grind the stake up by one unit.
	s.OnResult(ctx, win(money.MustParse("1"), 1.5))
	if got := stakeOf(t, s, ctx); got.String() != "2.00000000" {
		t.Fatalf("after partial-target win stake = %s, want 2", got)
	}
}

func TestOneThreeTwoSixSequenceAndReset(t *testing.T) {
	ctx := newCtx()
	s := NewOneThreeTwoSix()
	initStrategy(t, s, map[string]string{"unit": "1"}, ctx)

	want := []string{"1.00000000", "3.00000000", "2.00000000", "6.00000000", "1.00000000"}
	for i, w := range want {
		got := stakeOf(t, s, ctx)
		if got.String() != w {
			t.Fatalf("step %d: stake = %s, want %s", i, got, w)
		}
		s.OnResult(ctx, win(got, 2))
	}
}

func TestOneThreeTwoSixLossResetsImmediately(t *testing.T) {
	ctx := newCtx()
	s := NewOneThreeTwoSix()
	initStrategy(t, s, map[string]string{"unit": "1"}, ctx)

	stakeOf(t, s, ctx)
	s.OnResult(ctx, win(money.MustParse("1"), 2))
	if got := stakeOf(t, s, ctx); got.String() != "3.00000000" {
		t.Fatalf("after 1 win stake = %s, want step 3", got)
	}
	s.OnResult(ctx, loss(money.MustParse("3")))
	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("after loss stake = %s, want reset to step 1", got)
	}
}

func TestFlatStakeNeverChanges(t *testing.T) {
	ctx := newCtx()
	s := NewFlat()
	initStrategy(t, s, map[string]string{"base": "2.5"}, ctx)

	for i := 0; i < 5; i++ {
		got := stakeOf(t, s, ctx)
		if got.String() != "2.50000000" {
			t.Fatalf("iteration %d: stake = %s, want constant 2.5", i, got)
		}
		if i%2 == 0 {
			s.OnResult(ctx, win(got, 2))
		} else {
			s.OnResult(ctx, loss(got))
		}
	}
}

func TestStreakHunterPressesThenResetsOnLoss(t *testing.T) {
	ctx := newCtx()
	s := NewStreakHunter()
	initStrategy(t, s, map[string]string{"base": "1", "lottery_period": "0"}, ctx)

	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("initial stake = %s, want base 1", got)
	}
	// OnResult reads the Context's post-bet streak, which the engine sets
	// via Context.Record before calling OnResult (bet/context.go); a unit
	// test calling OnResult directly must set it the same way.
	ctx.Streak = 1
	s.OnResult(ctx, win(money.MustParse("1"), 2))
	if got := stakeOf(t, s, ctx); got.String() != "2.50000000" {
		t.Fatalf("after 1st win stake = %s, want base*2.5=2.5", got)
	}
	ctx.Streak = 2
	s.OnResult(ctx, win(money.MustParse("2.5"), 2))
	if got := stakeOf(t, s, ctx); got.String() != "5.00000000" {
		t.Fatalf("after 2nd win stake = %s, want 2.5*2.0=5", got)
	}
	s.OnResult(ctx, loss(money.MustParse("5")))
	if got := stakeOf(t, s, ctx); got.String() != "1.00000000" {
		t.Fatalf("after loss stake = %s, want reset to base 1", got)
	}
}

func TestKellyCappedIsZeroAtFairOdds(t *testing.T) {
	// kellyFraction's payout multiplier 100/chance is the fair (no-edge)
	// multiplier, so f* = p - q/b algebraically cancels to 0 for any
	// chance: a Kelly bettor stakes nothing at break-even odds. The stake
	// should be the floor, never the base ceiling.
	ctx := newCtx()
	ctx.Balance = money.MustParse("1000")
	s := NewKellyCapped()
	initStrategy(t, s, map[string]string{"base": "1000", "chance": "49.5", "cap_fraction": "0.02"}, ctx)

	got := stakeOf(t, s, ctx)
	if got.Sign() != 0 {
		t.Fatalf("stake %s at fair odds, want 0", got)
	}
	if got.Cmp(ctx.Balance.MulFloat(0.02)) > 0 {
		t.Fatalf("stake %s should never exceed the 2%% cap ceiling", got)
	}
}

func TestKellyCappedNeverExceedsBase(t *testing.T) {
	ctx := newCtx()
	ctx.Balance = money.MustParse("100000")
	s := NewKellyCapped()
	initStrategy(t, s, map[string]string{"base": "1", "chance": "49.5", "cap_fraction": "0.5"}, ctx)

	got := stakeOf(t, s, ctx)
	if got.Cmp(money.MustParse("1")) > 0 {
		t.Fatalf("stake %s exceeds the absolute base ceiling of 1", got)
	}
}

func TestEveryCatalogStrategyRejectsUnknownParameter(t *testing.T) {
	builders := map[string]func() strategy.Strategy{
		"flat":                   NewFlat,
		"classic-martingale":     NewClassicMartingale,
		"anti-martingale-streak": NewAntiMartingaleStreak,
		"fibonacci":              NewFibonacci,
		"dalembert":              NewDAlembert,
		"labouchere":             NewLabouchere,
		"paroli":                 NewParoli,
		"oscars-grind":           NewOscarsGrind,
		"one-three-two-six":      NewOneThreeTwoSix,
		"kelly-capped":           NewKellyCapped,
		"streak-hunter":          NewStreakHunter,
		"faucet-grind":           NewFaucetGrind,
		"faucet-cashout":         NewFaucetCashout,
		"target-aware":           NewTargetAware,
		"range-50-random":        NewRange50Random,
		"max-wager-flow":         NewMaxWagerFlow,
		"fib-loss-cluster":       NewFibLossCluster,
		"micro-exponential":      NewMicroExponential,
		"micro-exponential-safe": NewMicroExponentialSafe,
		"rng-analysis":           NewRngAnalysis,
		"custom-script":          NewCustomScript,
	}
	for name, newS := range builders {
		s := newS()
		ctx := newCtx()
		err := s.Init(map[string]string{"definitely_not_a_real_param": "1"}, ctx)
		if err == nil {
			t.Fatalf("%s: expected BadParameter for an unknown key, got nil", name)
		}
	}
}
