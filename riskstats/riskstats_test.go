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

package riskstats

import (
	"math"
	"testing"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/money"
)

func bt(stake string, won bool, profit, balanceAfter string) bet.Result {
	return bet.Result{
		Spec:         bet.Spec{Amount: money.MustParse(stake), Chance: 49.5, Side: bet.SideHigh},
		Won:          won,
		Profit:       money.MustParse(profit),
		BalanceAfter: money.MustParse(balanceAfter),
	}
}

func TestFromBets_CountsAndStreaks(t *testing.T) {
	results := []bet.Result{
		bt("1.00000000", true, "0.96000000", "101.96000000"),
		bt("1.00000000", true, "0.96000000", "102.92000000"),
		bt("1.00000000", false, "-1.00000000", "101.92000000"),
		bt("1.00000000", false, "-1.00000000", "100.92000000"),
		bt("1.00000000", false, "-1.00000000", "99.92000000"),
		bt("1.00000000", true, "0.96000000", "100.88000000"),
	}
	rep := FromBets(money.MustParse("100.00000000"), results)

	if rep.Bets != 6 || rep.Wins != 3 || rep.Losses != 3 {
		t.Fatalf("bets=%d wins=%d losses=%d, want 6,3,3", rep.Bets, rep.Wins, rep.Losses)
	}
	if rep.LongestWinStreak != 2 {
		t.Fatalf("LongestWinStreak = %d, want 2", rep.LongestWinStreak)
	}
	if rep.LongestLossStreak != 3 {
		t.Fatalf("LongestLossStreak = %d, want 3", rep.LongestLossStreak)
	}
	if rep.WinRate < 0.49 || rep.WinRate > 0.51 {
		t.Fatalf("WinRate = %v, want ~0.5", rep.WinRate)
	}
}

func TestFromBets_MaxDrawdown(t *testing.T) {
	// Balance path: 100 -> 102 (peak) -> 99 (trough, dd=3) -> 100.
	results := []bet.Result{
		bt("1", true, "2", "102"),
		bt("1", false, "-3", "99"),
		bt("1", true, "1", "100"),
	}
	rep := FromBets(money.MustParse("100"), results)

	wantDD := money.MustParse("3")
	if rep.MaxDrawdownAbs.Cmp(wantDD) != 0 {
		t.Fatalf("MaxDrawdownAbs = %s, want %s", rep.MaxDrawdownAbs, wantDD)
	}
	wantPct := 3.0 / 102.0
	if math.Abs(rep.MaxDrawdownPct-wantPct) > 1e-9 {
		t.Fatalf("MaxDrawdownPct = %v, want %v", rep.MaxDrawdownPct, wantPct)
	}
	// Current balance (100) is back below peak (102): current drawdown is 2.
	wantCurDD := money.MustParse("2")
	if rep.CurrentDrawdownAbs.Cmp(wantCurDD) != 0 {
		t.Fatalf("CurrentDrawdownAbs = %s, want %s", rep.CurrentDrawdownAbs, wantCurDD)
	}
}

func TestFromBets_ProfitFactorAndVariance(t *testing.T) {
	results := []bet.Result{
		bt("1", true, "1", "101"),
		bt("1", true, "1", "102"),
		bt("1", false, "-1", "101"),
	}
	rep := FromBets(money.MustParse("100"), results)

	// gross wins 2, gross losses 1 -> profit factor 2.
	if math.Abs(rep.ProfitFactor-2.0) > 1e-9 {
		t.Fatalf("ProfitFactor = %v, want 2", rep.ProfitFactor)
	}
	if rep.ProfitVariance <= 0 || rep.ProfitStdDev <= 0 {
		t.Fatalf("expected positive variance/stddev, got %v/%v", rep.ProfitVariance, rep.ProfitStdDev)
	}
}

func TestRiskOfRuin_Clamps(t *testing.T) {
	if got := RiskOfRuin(0, money.MustParse("100"), money.MustParse("1")); got != 1 {
		t.Fatalf("p=0 risk = %v, want 1", got)
	}
	if got := RiskOfRuin(1, money.MustParse("100"), money.MustParse("1")); got != 0 {
		t.Fatalf("p=1 risk = %v, want 0", got)
	}
	// Favorable edge (p > 0.5): ruin probability should fall as bankroll grows.
	small := RiskOfRuin(0.51, money.MustParse("10"), money.MustParse("1"))
	large := RiskOfRuin(0.51, money.MustParse("1000"), money.MustParse("1"))
	if !(large < small) {
		t.Fatalf("expected larger bankroll to lower ruin risk: small=%v large=%v", small, large)
	}
}

func TestFromBets_EmptyStream(t *testing.T) {
	rep := FromBets(money.MustParse("50"), nil)
	if rep.Bets != 0 {
		t.Fatalf("Bets = %d, want 0", rep.Bets)
	}
	if rep.WinRate != 0 || rep.ROI != 0 {
		t.Fatalf("expected zero-value rates on empty stream, got WinRate=%v ROI=%v", rep.WinRate, rep.ROI)
	}
}
