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

// RngAnalysis modulates stake by up to +-20% based on the win rate of the
// recent-results window: hot windows (win rate above hot_threshold) raise
// stake, cold windows (below cold_threshold) lower it; the modulation
// resets to 1.0 whenever win rate drops below floor. This is presented to
// users purely as a variance-shaping tool: per-bet outcomes are
// independent, so no window statistic predicts the next roll.
type RngAnalysis struct {
	base         money.Decimal
	window       int64
	hotThreshold float64
	coldThreshold float64
	floor        float64

	modulation float64
}

func NewRngAnalysis() strategy.Strategy { return &RngAnalysis{modulation: 1} }

func (s *RngAnalysis) Name() string { return "rng-analysis" }

func (s *RngAnalysis) Metadata() strategy.Metadata { return metadata.Load("rng-analysis") }

func (s *RngAnalysis) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.base = p.Money("base")
	s.window = p.Int("window")
	s.hotThreshold = p.Float("hot_threshold")
	s.coldThreshold = p.Float("cold_threshold")
	s.floor = p.Float("floor")
	s.modulation = 1
	return nil
}

func (s *RngAnalysis) winRate(ctx *bet.Context) (float64, bool) {
	items := ctx.Window.Items()
	n := int64(len(items))
	if n == 0 {
		return 0, false
	}
	if n > s.window {
		items = items[n-s.window:]
	}
	wins := 0
	for _, r := range items {
		if r.Won {
			wins++
		}
	}
	return float64(wins) / float64(len(items)), true
}

func (s *RngAnalysis) NextBet(ctx *bet.Context) strategy.Outcome {
	if rate, ok := s.winRate(ctx); ok {
		switch {
		case rate < s.floor:
			s.modulation = 1
		case rate > s.hotThreshold:
			s.modulation = 1.2
		case rate < s.coldThreshold:
			s.modulation = 0.8
		default:
			s.modulation = 1
		}
	}
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: s.base.MulFloat(s.modulation),
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *RngAnalysis) OnResult(ctx *bet.Context, res bet.Result) {}

func (s *RngAnalysis) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
