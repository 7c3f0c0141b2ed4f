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

const rangeWidth = 50

// Range50Random places range bets of constant stake and fixed width 50,
// with a uniformly random sub-range start drawn fresh each tick from the
// session's own PRNG stream (ctx.Rand), so a session seed still reproduces
// this strategy's exact bet sequence.
type Range50Random struct {
	base money.Decimal
}

func NewRange50Random() strategy.Strategy { return &Range50Random{} }

func (s *Range50Random) Name() string { return "range-50-random" }

func (s *Range50Random) Metadata() strategy.Metadata { return metadata.Load("range-50-random") }

func (s *Range50Random) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.base = p.Money("base")
	return nil
}

func (s *Range50Random) NextBet(ctx *bet.Context) strategy.Outcome {
	low := ctx.Rand.IntN(10000 - rangeWidth)
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount:  s.base,
		IsRange: true,
		Low:     low,
		High:    low + rangeWidth,
		Mode:    bet.RangeIn,
	}}
}

func (s *Range50Random) OnResult(ctx *bet.Context, res bet.Result) {}

func (s *Range50Random) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
