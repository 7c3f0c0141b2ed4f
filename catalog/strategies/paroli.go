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

// Paroli doubles the stake on each win up to max_wins, then resets; any
// loss resets immediately.
type Paroli struct {
	base    money.Decimal
	maxWins int64

	stake  money.Decimal
	winRun int64
}

func NewParoli() strategy.Strategy { return &Paroli{} }

func (s *Paroli) Name() string { return "paroli" }

func (s *Paroli) Metadata() strategy.Metadata { return metadata.Load("paroli") }

func (s *Paroli) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.base = p.Money("base")
	s.maxWins = p.Int("max_wins")
	s.stake = s.base
	return nil
}

func (s *Paroli) NextBet(ctx *bet.Context) strategy.Outcome {
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: s.stake,
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *Paroli) OnResult(ctx *bet.Context, res bet.Result) {
	if !res.Won {
		s.stake = s.base
		s.winRun = 0
		return
	}
	s.winRun++
	if s.maxWins > 0 && s.winRun >= s.maxWins {
		s.stake = s.base
		s.winRun = 0
		return
	}
	s.stake = s.stake.MulRat(2, 1)
}

func (s *Paroli) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
