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

type targetAwarePhase uint8

const (
	phaseGrow targetAwarePhase = iota
	phaseRecover
	phaseDrawdown
	phaseConsolidate
)

// TargetAware is a four-state machine over session P/L and current
// drawdown, sizing stake to reach target within one or two wins and
// shrinking stake during a drawdown.
type TargetAware struct {
	base   money.Decimal
	target money.Decimal

	phase    targetAwarePhase
	peak     money.Decimal
}

func NewTargetAware() strategy.Strategy { return &TargetAware{} }

func (s *TargetAware) Name() string { return "target-aware" }

func (s *TargetAware) Metadata() strategy.Metadata { return metadata.Load("target-aware") }

func (s *TargetAware) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.base = p.Money("base")
	s.target = p.Money("target")
	s.peak = ctx.Balance
	return nil
}

func (s *TargetAware) stakeForPhase() money.Decimal {
	switch s.phase {
	case phaseRecover:
		return s.target.MulRat(1, 2) // half the session target, whatever the current gap
	case phaseDrawdown:
		return s.base.MulRat(1, 2)
	case phaseConsolidate:
		return s.base.MulRat(1, 4)
	default: // phaseGrow
		return s.base
	}
}

func (s *TargetAware) NextBet(ctx *bet.Context) strategy.Outcome {
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: s.stakeForPhase(),
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *TargetAware) OnResult(ctx *bet.Context, res bet.Result) {
	if ctx.Balance.Cmp(s.peak) > 0 {
		s.peak = ctx.Balance
	}
	drawdown := s.peak.Sub(ctx.Balance)

	switch {
	case ctx.TotalProfit.Cmp(s.target) >= 0:
		s.phase = phaseConsolidate
	case drawdown.Cmp(s.base.MulRat(10, 1)) >= 0:
		s.phase = phaseDrawdown
	case ctx.TotalProfit.Sign() < 0:
		s.phase = phaseRecover
	default:
		s.phase = phaseGrow
	}
}

func (s *TargetAware) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
