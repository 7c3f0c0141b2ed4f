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

// FibLossCluster only advances the Fibonacci index when losses cluster
// within the recent-results window (more than half the window are
// losses); otherwise it resets to the base stake.
type FibLossCluster struct {
	base   money.Decimal
	window int64

	index int
}

func NewFibLossCluster() strategy.Strategy { return &FibLossCluster{} }

func (s *FibLossCluster) Name() string { return "fib-loss-cluster" }

func (s *FibLossCluster) Metadata() strategy.Metadata { return metadata.Load("fib-loss-cluster") }

func (s *FibLossCluster) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.base = p.Money("base")
	s.window = p.Int("window")
	return nil
}

func (s *FibLossCluster) inCluster(ctx *bet.Context) bool {
	items := ctx.Window.Items()
	n := int64(len(items))
	if n == 0 {
		return false
	}
	if n > s.window {
		items = items[n-s.window:]
	}
	losses := 0
	for _, r := range items {
		if !r.Won {
			losses++
		}
	}
	return losses*2 > len(items)
}

func (s *FibLossCluster) NextBet(ctx *bet.Context) strategy.Outcome {
	stake := s.base.MulRat(fib(s.index), 1)
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: stake,
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *FibLossCluster) OnResult(ctx *bet.Context, res bet.Result) {
	if res.Won {
		s.index -= 2
		if s.index < 0 {
			s.index = 0
		}
		return
	}
	if s.inCluster(ctx) {
		s.index++
	} else {
		s.index = 0
	}
}

func (s *FibLossCluster) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
