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

// Package riskstats aggregates a bet stream into performance and risk
// reports. Accumulator is a single-pass running estimator: fields are
// updated as each bet.Result arrives, and Report() does the O(1)
// arithmetic to turn running sums into the final metrics. Variance uses Welford's online
// algorithm rather than gonum/stat.Variance, since the latter needs the
// full sample slice in memory — incompatible with this package's
// single-pass, O(1)-state contract. Batch callers with a slice already in
// hand (store/index history exports, the comparison harness aggregating
// many sessions) should prefer gonum/stat directly instead of replaying
// through an Accumulator.
package riskstats

import (
	"math"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/money"
)

// Report is the finalized metrics snapshot.
type Report struct {
	Bets      int
	Wins      int
	Losses    int
	WinRate   float64
	Wagered   money.Decimal
	Profit    money.Decimal
	ROI       float64 // Profit / Wagered

	LongestWinStreak  int
	LongestLossStreak int

	AvgStake    money.Decimal
	AvgWinPay   money.Decimal // mean profit (payout minus stake) on winning bets
	AvgLoss     money.Decimal // mean loss magnitude on losing bets
	ProfitFactor float64      // gross wins / gross losses
	EVPerUnit   float64       // expected profit per unit staked

	MaxDrawdownAbs money.Decimal
	MaxDrawdownPct float64
	CurrentDrawdownAbs money.Decimal
	CurrentDrawdownPct float64

	ProfitVariance float64
	ProfitStdDev   float64

	RiskOfRuin      float64
	SuggestedBankroll money.Decimal
}

// Accumulator holds the running state. Zero value is ready to use once
// Start is called with the opening balance.
type Accumulator struct {
	startingBalance money.Decimal

	bets, wins, losses int
	wagered            money.Decimal
	profit             money.Decimal

	curWinStreak, curLossStreak       int
	longestWinStreak, longestLossStreak int

	stakeSum    money.Decimal
	grossWins   money.Decimal
	grossLosses money.Decimal // stored positive
	winCount    int
	lossCount   int

	peak    money.Decimal
	balance money.Decimal
	maxDD   money.Decimal // absolute, positive
	maxDDPct float64

	// Welford's online mean/variance over per-bet profit.
	welfordMean float64
	welfordM2   float64
}

// Start resets the accumulator for a fresh bet stream rooted at
// startingBalance (typically the session's starting_balance).
func (a *Accumulator) Start(startingBalance money.Decimal) {
	*a = Accumulator{
		startingBalance: startingBalance,
		balance:         startingBalance,
		peak:            startingBalance,
	}
}

// Add folds one settled bet into the running state. Results must arrive in
// the order they were settled.
func (a *Accumulator) Add(r bet.Result) {
	a.bets++
	a.wagered = a.wagered.Add(r.Spec.Amount)
	a.profit = a.profit.Add(r.Profit)
	a.stakeSum = a.stakeSum.Add(r.Spec.Amount)
	a.balance = r.BalanceAfter

	if r.Won {
		a.wins++
		a.winCount++
		a.grossWins = a.grossWins.Add(r.Profit)
		a.curWinStreak++
		a.curLossStreak = 0
		if a.curWinStreak > a.longestWinStreak {
			a.longestWinStreak = a.curWinStreak
		}
	} else {
		a.losses++
		a.lossCount++
		a.grossLosses = a.grossLosses.Add(r.Profit.Neg())
		a.curLossStreak++
		a.curWinStreak = 0
		if a.curLossStreak > a.longestLossStreak {
			a.longestLossStreak = a.curLossStreak
		}
	}

	if a.balance.Cmp(a.peak) > 0 {
		a.peak = a.balance
	}
	dd := a.peak.Sub(a.balance)
	if dd.Cmp(a.maxDD) > 0 {
		a.maxDD = dd
		if !a.peak.IsZero() {
			a.maxDDPct = dd.Float64() / a.peak.Float64()
		}
	}

	// Welford online update.
	x := r.Profit.Float64()
	n := float64(a.bets)
	delta := x - a.welfordMean
	a.welfordMean += delta / n
	delta2 := x - a.welfordMean
	a.welfordM2 += delta * delta2
}

// Report computes the final metrics snapshot from the running state. The
// risk-of-ruin estimate plugs in the observed win rate, the closing balance
// as bankroll and the observed average stake; callers wanting a
// forward-looking estimate with a planned stake can call RiskOfRuin
// directly.
func (a *Accumulator) Report() Report {
	rep := Report{
		Bets:    a.bets,
		Wins:    a.wins,
		Losses:  a.losses,
		Wagered: a.wagered,
		Profit:  a.profit,

		LongestWinStreak:  a.longestWinStreak,
		LongestLossStreak: a.longestLossStreak,

		MaxDrawdownAbs:     a.maxDD,
		MaxDrawdownPct:     a.maxDDPct,
		CurrentDrawdownAbs: a.peak.Sub(a.balance),
	}
	if !a.peak.IsZero() {
		rep.CurrentDrawdownPct = rep.CurrentDrawdownAbs.Float64() / a.peak.Float64()
	}
	if a.bets > 0 {
		rep.WinRate = float64(a.wins) / float64(a.bets)
		rep.AvgStake = a.stakeSum.MulRat(1, int64(a.bets))
	}
	if w := a.wagered.Float64(); w != 0 {
		rep.ROI = a.profit.Float64() / w
	}
	if a.winCount > 0 {
		rep.AvgWinPay = a.grossWins.MulRat(1, int64(a.winCount))
	}
	if a.lossCount > 0 {
		rep.AvgLoss = a.grossLosses.MulRat(1, int64(a.lossCount))
	}
	if gl := a.grossLosses.Float64(); gl > 0 {
		rep.ProfitFactor = a.grossWins.Float64() / gl
	} else if a.grossWins.Float64() > 0 {
		rep.ProfitFactor = math.Inf(1)
	}
	if stake := rep.AvgStake.Float64(); stake > 0 {
		rep.EVPerUnit = (a.profit.Float64() / float64(maxInt(a.bets, 1))) / stake
	}

	if a.bets > 1 {
		rep.ProfitVariance = a.welfordM2 / float64(a.bets-1)
		rep.ProfitStdDev = math.Sqrt(rep.ProfitVariance)
	}

	rep.RiskOfRuin = RiskOfRuin(rep.WinRate, a.balance, rep.AvgStake)
	rep.SuggestedBankroll = a.maxDD.MulRat(10, 1)
	return rep
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// RiskOfRuin is the simplified estimate
// ((1-p)/p)^(bankroll/avg_stake), clamped to [0, 1] and guarded against a
// non-positive average stake or an edge case p (p<=0 means certain ruin,
// p>=1 means ruin is impossible).
func RiskOfRuin(p float64, bankroll, avgStake money.Decimal) float64 {
	if p <= 0 {
		return 1
	}
	if p >= 1 {
		return 0
	}
	stake := avgStake.Float64()
	if stake <= 0 {
		return 0
	}
	exponent := bankroll.Float64() / stake
	if exponent <= 0 {
		return 1
	}
	ratio := (1 - p) / p
	if ratio <= 0 {
		return 0
	}
	r := math.Pow(ratio, exponent)
	if math.IsNaN(r) || r > 1 {
		return 1
	}
	if r < 0 {
		return 0
	}
	return r
}

// FromBets is a convenience one-shot entry point: fold an entire settled
// bet stream (e.g. a SQLite-backed store/index.BetsBySession read, or a
// simulator run's in-memory results) into a Report.
func FromBets(startingBalance money.Decimal, results []bet.Result) Report {
	var acc Accumulator
	acc.Start(startingBalance)
	for _, r := range results {
		acc.Add(r)
	}
	return acc.Report()
}
