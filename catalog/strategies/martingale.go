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

// ClassicMartingale doubles (by multiplier) on loss, resets to base on win.
type ClassicMartingale struct {
	base       money.Decimal
	multiplier float64
	maxStreak  int64

	stake     money.Decimal
	lossRun   int
}

func NewClassicMartingale() strategy.Strategy { return &ClassicMartingale{} }

func (s *ClassicMartingale) Name() string { return "classic-martingale" }

func (s *ClassicMartingale) Metadata() strategy.Metadata { return metadata.Load("classic-martingale") }

func (s *ClassicMartingale) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.base = p.Money("base")
	s.multiplier = p.Float("multiplier")
	s.maxStreak = p.Int("max_streak")
	s.stake = s.base
	return nil
}

func (s *ClassicMartingale) NextBet(ctx *bet.Context) strategy.Outcome {
	if s.maxStreak > 0 && int64(s.lossRun) >= s.maxStreak {
		return strategy.Outcome{Kind: strategy.OutcomeStop, StopReason: "max_streak reached"}
	}
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: s.stake,
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *ClassicMartingale) OnResult(ctx *bet.Context, res bet.Result) {
	if res.Won {
		s.stake = s.base
		s.lossRun = 0
		return
	}
	s.lossRun++
	s.stake = s.stake.MulFloat(s.multiplier)
}

func (s *ClassicMartingale) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}

// AntiMartingaleStreak is the mirror image: multiply on win, reset on loss.
type AntiMartingaleStreak struct {
	base       money.Decimal
	multiplier float64
	maxStreak  int64

	stake   money.Decimal
	winRun  int
}

func NewAntiMartingaleStreak() strategy.Strategy { return &AntiMartingaleStreak{} }

func (s *AntiMartingaleStreak) Name() string { return "anti-martingale-streak" }

func (s *AntiMartingaleStreak) Metadata() strategy.Metadata {
	return metadata.Load("anti-martingale-streak")
}

func (s *AntiMartingaleStreak) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.base = p.Money("base")
	s.multiplier = p.Float("multiplier")
	s.maxStreak = p.Int("max_streak")
	s.stake = s.base
	return nil
}

func (s *AntiMartingaleStreak) NextBet(ctx *bet.Context) strategy.Outcome {
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: s.stake,
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *AntiMartingaleStreak) OnResult(ctx *bet.Context, res bet.Result) {
	if !res.Won {
		s.stake = s.base
		s.winRun = 0
		return
	}
	s.winRun++
	if s.maxStreak > 0 && int64(s.winRun) >= s.maxStreak {
		s.stake = s.base
		s.winRun = 0
		return
	}
	s.stake = s.stake.MulFloat(s.multiplier)
}

func (s *AntiMartingaleStreak) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
