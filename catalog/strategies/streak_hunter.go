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
	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/catalog/metadata"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/strategy"
)

// streakMultipliers is the declared decreasing sequence applied per
// consecutive win: the first win after base presses hardest, tapering off
// as the streak lengthens.
var streakMultipliers = []float64{2.5, 2.0, 1.7, 1.5, 1.3, 1.2, 1.1}

func streakMultiplierAt(streak int) float64 {
	if streak <= 0 {
		return 1
	}
	idx := streak - 1
	if idx >= len(streakMultipliers) {
		idx = len(streakMultipliers) - 1
	}
	return streakMultipliers[idx]
}

// StreakHunter resets to base on loss; on win, presses the prior stake by
// a declining multiplier keyed to the current win streak. Optionally
// issues a tiny "lottery" bet between streaks.
type StreakHunter struct {
	base          money.Decimal
	lotteryPeriod int64

	stake money.Decimal
}

func NewStreakHunter() strategy.Strategy { return &StreakHunter{} }

func (s *StreakHunter) Name() string { return "streak-hunter" }

func (s *StreakHunter) Metadata() strategy.Metadata { return metadata.Load("streak-hunter") }

func (s *StreakHunter) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.base = p.Money("base")
	s.lotteryPeriod = p.Int("lottery_period")
	s.stake = s.base
	return nil
}

func (s *StreakHunter) NextBet(ctx *bet.Context) strategy.Outcome {
	// ctx.Bets is the index of the bet about to be placed; reading it (rather
	// than keeping a private counter) keeps NextBet pure.
	if s.lotteryPeriod > 0 && ctx.Streak <= 0 && ctx.Bets > 0 && int64(ctx.Bets)%s.lotteryPeriod == 0 {
		return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
			Amount: money.Min(s.base, money.MustParse("0.00000100")),
			Chance: 2,
			Side:   bet.SideHigh,
		}}
	}
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: s.stake,
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *StreakHunter) OnResult(ctx *bet.Context, res bet.Result) {
	if !res.Won {
		s.stake = s.base
		return
	}
	s.stake = s.stake.MulFloat(streakMultiplierAt(ctx.Streak))
}

func (s *StreakHunter) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
