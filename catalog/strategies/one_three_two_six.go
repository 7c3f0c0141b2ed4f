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

// oneThreeTwoSixSequence is the fixed positive-progression multipliers.
var oneThreeTwoSixSequence = [4]int64{1, 3, 2, 6}

// OneThreeTwoSix resets to step 0 on any loss, or after completing step 4.
type OneThreeTwoSix struct {
	unit money.Decimal
	step int
}

func NewOneThreeTwoSix() strategy.Strategy { return &OneThreeTwoSix{} }

func (s *OneThreeTwoSix) Name() string { return "one-three-two-six" }

func (s *OneThreeTwoSix) Metadata() strategy.Metadata { return metadata.Load("one-three-two-six") }

func (s *OneThreeTwoSix) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.unit = p.Money("unit")
	return nil
}

func (s *OneThreeTwoSix) NextBet(ctx *bet.Context) strategy.Outcome {
	stake := s.unit.MulRat(oneThreeTwoSixSequence[s.step], 1)
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: stake,
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *OneThreeTwoSix) OnResult(ctx *bet.Context, res bet.Result) {
	if !res.Won {
		s.step = 0
		return
	}
	s.step++
	if s.step >= len(oneThreeTwoSixSequence) {
		s.step = 0
	}
}

func (s *OneThreeTwoSix) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
