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

// Labouchere maintains an integer sequence summing to the target profit;
// each stake is (first+last)*unit, popping both ends on a win and
// appending the stake (in units) on a loss. The strategy stops once the
// sequence empties.
type Labouchere struct {
	unit money.Decimal
	seq  []int64
}

func NewLabouchere() strategy.Strategy { return &Labouchere{} }

func (s *Labouchere) Name() string { return "labouchere" }

func (s *Labouchere) Metadata() strategy.Metadata { return metadata.Load("labouchere") }

func (s *Labouchere) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.unit = p.Money("unit")
	target := p.Int("target")
	if target <= 0 {
		target = 1
	}
	// Seed 1,2,3,... capping the last entry so the sequence sums to exactly
	// target: the invariant "sum(seq) == remaining target profit in units"
	// must hold from the first tick, since wins pop exactly first+last units
	// of profit off the plan.
	s.seq = s.seq[:0]
	remaining := target
	for i := int64(1); remaining > 0; i++ {
		step := i
		if step > remaining {
			step = remaining
		}
		s.seq = append(s.seq, step)
		remaining -= step
	}
	return nil
}

func (s *Labouchere) currentUnits() int64 {
	switch len(s.seq) {
	case 0:
		return 0
	case 1:
		return s.seq[0]
	default:
		return s.seq[0] + s.seq[len(s.seq)-1]
	}
}

func (s *Labouchere) NextBet(ctx *bet.Context) strategy.Outcome {
	if len(s.seq) == 0 {
		return strategy.Outcome{Kind: strategy.OutcomeStop, StopReason: "labouchere sequence complete"}
	}
	stake := s.unit.MulRat(s.currentUnits(), 1)
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: stake,
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *Labouchere) OnResult(ctx *bet.Context, res bet.Result) {
	if res.Won {
		switch len(s.seq) {
		case 0:
			return
		case 1:
			s.seq = s.seq[:0]
		default:
			s.seq = s.seq[1 : len(s.seq)-1]
		}
		return
	}
	s.seq = append(s.seq, s.currentUnits())
}

func (s *Labouchere) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
