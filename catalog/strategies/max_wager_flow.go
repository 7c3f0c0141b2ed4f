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
	"github.com/zintix-labs/duckdice-bot/strategy"
)

// MaxWagerFlow stakes a constant fraction of balance at a fixed chance,
// escalating the fraction after every escalate_after consecutive wins.
type MaxWagerFlow struct {
	fraction      float64
	chance        float64
	escalateAfter int64

	currentFraction float64
	winRun          int64
}

func NewMaxWagerFlow() strategy.Strategy { return &MaxWagerFlow{} }

func (s *MaxWagerFlow) Name() string { return "max-wager-flow" }

func (s *MaxWagerFlow) Metadata() strategy.Metadata { return metadata.Load("max-wager-flow") }

func (s *MaxWagerFlow) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.fraction = p.Float("fraction")
	s.chance = p.Float("chance")
	s.escalateAfter = p.Int("escalate_after")
	s.currentFraction = s.fraction
	return nil
}

func (s *MaxWagerFlow) NextBet(ctx *bet.Context) strategy.Outcome {
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: ctx.Balance.MulFloat(s.currentFraction),
		Chance: s.chance,
		Side:   bet.SideHigh,
	}}
}

func (s *MaxWagerFlow) OnResult(ctx *bet.Context, res bet.Result) {
	if !res.Won {
		s.currentFraction = s.fraction
		s.winRun = 0
		return
	}
	s.winRun++
	if s.escalateAfter > 0 && s.winRun%s.escalateAfter == 0 {
		s.currentFraction += s.fraction
	}
}

func (s *MaxWagerFlow) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
