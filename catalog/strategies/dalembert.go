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

// DAlembert adds unit to the stake on loss, subtracts on win, floored at
// unit itself.
type DAlembert struct {
	unit  money.Decimal
	stake money.Decimal
}

func NewDAlembert() strategy.Strategy { return &DAlembert{} }

func (s *DAlembert) Name() string { return "dalembert" }

func (s *DAlembert) Metadata() strategy.Metadata { return metadata.Load("dalembert") }

func (s *DAlembert) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.unit = p.Money("unit")
	s.stake = s.unit
	return nil
}

func (s *DAlembert) NextBet(ctx *bet.Context) strategy.Outcome {
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: s.stake,
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *DAlembert) OnResult(ctx *bet.Context, res bet.Result) {
	if res.Won {
		s.stake = s.stake.Sub(s.unit)
		if s.stake.Cmp(s.unit) < 0 {
			s.stake = s.unit
		}
		return
	}
	s.stake = s.stake.Add(s.unit)
}

func (s *DAlembert) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
