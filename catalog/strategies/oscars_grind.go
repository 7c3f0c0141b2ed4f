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

// OscarsGrind increases stake by unit on a win while the current cycle's
// profit is below target; stake is unchanged on a loss; the cycle resets
// once the target is reached.
type OscarsGrind struct {
	unit   money.Decimal
	target money.Decimal

	stake        money.Decimal
	cycleProfit  money.Decimal
}

func NewOscarsGrind() strategy.Strategy { return &OscarsGrind{} }

func (s *OscarsGrind) Name() string { return "oscars-grind" }

func (s *OscarsGrind) Metadata() strategy.Metadata { return metadata.Load("oscars-grind") }

func (s *OscarsGrind) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.unit = p.Money("unit")
	s.target = s.unit.MulRat(p.Int("target"), 1)
	s.stake = s.unit
	return nil
}

func (s *OscarsGrind) NextBet(ctx *bet.Context) strategy.Outcome {
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: s.stake,
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *OscarsGrind) OnResult(ctx *bet.Context, res bet.Result) {
	s.cycleProfit = s.cycleProfit.Add(res.Profit)
	if s.cycleProfit.Cmp(s.target) >= 0 {
		s.stake = s.unit
		s.cycleProfit = money.Zero
		return
	}
	if res.Won {
		s.stake = s.stake.Add(s.unit)
	}
}

func (s *OscarsGrind) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
