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

// FaucetGrind claims the faucet whenever the current balance is zero, then
// places a single all-in bet at a chance computed to reach target_usd in
// one win. Losing means claiming again from scratch: NextBet returns
// OutcomeClaimFaucet on an empty balance, and the engine is responsible
// for actually invoking ClaimFaucet before calling NextBet again; this
// strategy only decides the chance.
type FaucetGrind struct {
	targetUSD float64
	houseEdge float64
}

func NewFaucetGrind() strategy.Strategy { return &FaucetGrind{} }

func (s *FaucetGrind) Name() string { return "faucet-grind" }

func (s *FaucetGrind) Metadata() strategy.Metadata { return metadata.Load("faucet-grind") }

func (s *FaucetGrind) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.targetUSD = p.Float("target_usd")
	s.houseEdge = p.Float("house_edge")
	return nil
}

func (s *FaucetGrind) NextBet(ctx *bet.Context) strategy.Outcome {
	if s.targetUSD <= 0 {
		return strategy.Outcome{Kind: strategy.OutcomeStop, StopReason: "faucet-grind: no target configured"}
	}
	balanceUSD := ctx.Balance.Float64()
	if balanceUSD <= 0 {
		return strategy.Outcome{Kind: strategy.OutcomeClaimFaucet}
	}
	chance := 100 * balanceUSD * (1 - s.houseEdge) / s.targetUSD
	if chance <= 0 {
		return strategy.Outcome{Kind: strategy.OutcomeStop, StopReason: "faucet-grind: unreachable target"}
	}
	if chance > 95 {
		chance = 95
	}
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: ctx.Balance,
		Chance: chance,
		Side:   bet.SideHigh,
	}}
}

func (s *FaucetGrind) OnResult(ctx *bet.Context, res bet.Result) {}

func (s *FaucetGrind) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}

// FaucetCashout only ever claims the faucet (never wagers); every tick
// below threshold it returns OutcomeClaimFaucet, and once balance reaches
// threshold it proposes stopping so the engine can surface a cash-out.
type FaucetCashout struct {
	threshold money.Decimal
}

func NewFaucetCashout() strategy.Strategy { return &FaucetCashout{} }

func (s *FaucetCashout) Name() string { return "faucet-cashout" }

func (s *FaucetCashout) Metadata() strategy.Metadata { return metadata.Load("faucet-cashout") }

func (s *FaucetCashout) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.threshold = p.Money("threshold")
	return nil
}

func (s *FaucetCashout) NextBet(ctx *bet.Context) strategy.Outcome {
	if ctx.Balance.Cmp(s.threshold) >= 0 {
		return strategy.Outcome{Kind: strategy.OutcomeStop, StopReason: "faucet-cashout: threshold reached"}
	}
	return strategy.Outcome{Kind: strategy.OutcomeClaimFaucet}
}

func (s *FaucetCashout) OnResult(ctx *bet.Context, res bet.Result) {}

func (s *FaucetCashout) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
