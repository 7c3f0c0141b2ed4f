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
	"math"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/catalog/metadata"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/strategy"
)

// MicroExponential stakes base*ratio^k where k counts consecutive wins,
// capped at k_max; resets to k=0 on any loss.
type MicroExponential struct {
	base  money.Decimal
	ratio float64
	kMax  int64

	winRun int64
}

func NewMicroExponential() strategy.Strategy { return &MicroExponential{} }

func (s *MicroExponential) Name() string { return "micro-exponential" }

func (s *MicroExponential) Metadata() strategy.Metadata { return metadata.Load("micro-exponential") }

func (s *MicroExponential) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.base = p.Money("base")
	s.ratio = p.Float("ratio")
	s.kMax = p.Int("k_max")
	return nil
}

func (s *MicroExponential) k() int64 {
	if s.kMax > 0 && s.winRun > s.kMax {
		return s.kMax
	}
	return s.winRun
}

func (s *MicroExponential) stake() money.Decimal {
	factor := math.Pow(s.ratio, float64(s.k()))
	return s.base.MulFloat(factor)
}

func (s *MicroExponential) NextBet(ctx *bet.Context) strategy.Outcome {
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: s.stake(),
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *MicroExponential) OnResult(ctx *bet.Context, res bet.Result) {
	if res.Won {
		s.winRun++
		return
	}
	s.winRun = 0
}

func (s *MicroExponential) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}

// MicroExponentialSafe is MicroExponential with an additional hard cap of
// stake <= cap_fraction * balance.
type MicroExponentialSafe struct {
	inner       MicroExponential
	capFraction float64
}

func NewMicroExponentialSafe() strategy.Strategy { return &MicroExponentialSafe{} }

func (s *MicroExponentialSafe) Name() string { return "micro-exponential-safe" }

func (s *MicroExponentialSafe) Metadata() strategy.Metadata {
	return metadata.Load("micro-exponential-safe")
}

func (s *MicroExponentialSafe) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.inner.base = p.Money("base")
	s.inner.ratio = p.Float("ratio")
	s.inner.kMax = p.Int("k_max")
	s.capFraction = p.Float("cap_fraction")
	return nil
}

func (s *MicroExponentialSafe) NextBet(ctx *bet.Context) strategy.Outcome {
	stake := money.Min(s.inner.stake(), ctx.Balance.MulFloat(s.capFraction))
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: stake,
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *MicroExponentialSafe) OnResult(ctx *bet.Context, res bet.Result) {
	s.inner.OnResult(ctx, res)
}

func (s *MicroExponentialSafe) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
