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

// KellyCapped sizes stake as min(base, f*balance) where f is the Kelly
// fraction derived from chance, clamped to cap_fraction.
type KellyCapped struct {
	base        money.Decimal
	chance      float64
	capFraction float64
}

func NewKellyCapped() strategy.Strategy { return &KellyCapped{} }

func (s *KellyCapped) Name() string { return "kelly-capped" }

func (s *KellyCapped) Metadata() strategy.Metadata { return metadata.Load("kelly-capped") }

func (s *KellyCapped) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.base = p.Money("base")
	s.chance = p.Float("chance")
	s.capFraction = p.Float("cap_fraction")
	return nil
}

// kellyFraction computes the clamped Kelly fraction for a bet of this
// chance at the payout multiplier 100/chance, f* = p - q/b with b the net
// odds. Clamped to [0, capFraction].
func (s *KellyCapped) kellyFraction() float64 {
	p := s.chance / 100.0
	q := 1 - p
	b := 100.0/s.chance - 1 // net odds (payout multiplier minus the stake itself)
	if b <= 0 {
		return 0
	}
	f := p - q/b
	if f < 0 {
		f = 0
	}
	if f > s.capFraction {
		f = s.capFraction
	}
	return f
}

func (s *KellyCapped) NextBet(ctx *bet.Context) strategy.Outcome {
	f := s.kellyFraction()
	stake := money.Min(s.base, ctx.Balance.MulFloat(f))
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: stake,
		Chance: s.chance,
		Side:   bet.SideHigh,
	}}
}

func (s *KellyCapped) OnResult(ctx *bet.Context, res bet.Result) {}

func (s *KellyCapped) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
