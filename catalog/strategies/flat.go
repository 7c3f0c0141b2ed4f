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

// Package strategies holds the concrete catalog of staking algorithms.
// Every implementation follows the same shape: Init parses and stores
// params via strategy.Parse, private per-session state lives in the
// strategy's own struct fields, and NextBet/OnResult never perform I/O.
package strategies

import (
	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/catalog/metadata"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/strategy"
)

// defaultChance is used by every strategy that doesn't expose its own
// chance parameter: a flat/progression strategy only cares about stake
// sizing, so the win chance is fixed close to even money.
const defaultChance = 49.5

// Flat bets a constant stake every tick.
type Flat struct {
	base money.Decimal
}

func NewFlat() strategy.Strategy { return &Flat{} }

func (s *Flat) Name() string { return "flat" }

func (s *Flat) Metadata() strategy.Metadata { return metadata.Load("flat") }

func (s *Flat) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.base = p.Money("base")
	return nil
}

func (s *Flat) NextBet(ctx *bet.Context) strategy.Outcome {
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: s.base,
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *Flat) OnResult(ctx *bet.Context, res bet.Result) {}

func (s *Flat) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
