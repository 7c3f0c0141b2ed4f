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
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/catalog/metadata"
	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/strategy"
)

// scriptTimeout bounds a single nextBet/onResult call; a script that
// doesn't return within this window is treated as a script error rather
// than allowed to hang the session.
const scriptTimeout = 50 * time.Millisecond

// CustomScript executes a user-supplied goja (ECMAScript 5.1) script.
// The script must define a global function nextBet(ctx) returning either
// {skip:true}, {stop:true, reason:"..."} or {amount, chance, side}, and
// may optionally define onResult(ctx, won), where won is the settled
// bet's boolean outcome. No host object exposes
// network, filesystem, or process access: the sandbox is exactly the
// StrategyContext snapshot plus the ECMAScript standard library.
type CustomScript struct {
	source string
	vm     *goja.Runtime
}

func NewCustomScript() strategy.Strategy { return &CustomScript{} }

func (s *CustomScript) Name() string { return "custom-script" }

func (s *CustomScript) Metadata() strategy.Metadata { return metadata.Load("custom-script") }

func (s *CustomScript) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.source = p.String("script")
	if s.source == "" {
		return errs.BadParameter("script", "custom-script requires a non-empty script")
	}
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	if _, err := vm.RunString(s.source); err != nil {
		return errs.ScriptError("script failed to compile: " + err.Error())
	}
	s.vm = vm
	return nil
}

type scriptContextView struct {
	Bets         int     `json:"bets"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Streak       int     `json:"streak"`
	Balance      float64 `json:"balance"`
	TotalProfit  float64 `json:"total_profit"`
	TotalWagered float64 `json:"total_wagered"`
}

func toScriptContext(ctx *bet.Context) scriptContextView {
	return scriptContextView{
		Bets:         ctx.Bets,
		Wins:         ctx.Wins,
		Losses:       ctx.Losses,
		Streak:       ctx.Streak,
		Balance:      ctx.Balance.Float64(),
		TotalProfit:  ctx.TotalProfit.Float64(),
		TotalWagered: ctx.TotalWagered.Float64(),
	}
}

type scriptBetProposal struct {
	Skip   bool    `json:"skip"`
	Stop   bool    `json:"stop"`
	Reason string  `json:"reason"`
	Amount float64 `json:"amount"`
	Chance float64 `json:"chance"`
	Side   string  `json:"side"`
}

func (s *CustomScript) callNextBet(ctx *bet.Context) (scriptBetProposal, error) {
	fn, ok := goja.AssertFunction(s.vm.Get("nextBet"))
	if !ok {
		return scriptBetProposal{}, errs.ScriptError("script does not define nextBet(ctx)")
	}
	done := make(chan struct{})
	var (
		result scriptBetProposal
		callErr error
	)
	go func() {
		defer close(done)
		v, err := fn(goja.Undefined(), s.vm.ToValue(toScriptContext(ctx)))
		if err != nil {
			callErr = err
			return
		}
		if err := s.vm.ExportTo(v, &result); err != nil {
			callErr = err
		}
	}()
	select {
	case <-done:
		if callErr != nil {
			return scriptBetProposal{}, errs.ScriptError("nextBet failed: " + callErr.Error())
		}
		return result, nil
	case <-time.After(scriptTimeout):
		s.vm.Interrupt("timeout")
		// Wait for the goroutine to actually unwind before returning: the
		// Runtime isn't safe for concurrent use, and the next tick's call
		// would otherwise race this one.
		<-done
		return scriptBetProposal{}, errs.ScriptError("nextBet exceeded the sandbox time budget")
	}
}

func (s *CustomScript) NextBet(ctx *bet.Context) strategy.Outcome {
	proposal, err := s.callNextBet(ctx)
	if err != nil {
		return strategy.Outcome{Kind: strategy.OutcomeStop, StopReason: "script_error: " + err.Error()}
	}
	if proposal.Stop {
		return strategy.Outcome{Kind: strategy.OutcomeStop, StopReason: proposal.Reason}
	}
	if proposal.Skip {
		return strategy.Outcome{Kind: strategy.OutcomeSkip}
	}
	side := bet.SideHigh
	if proposal.Side == "low" {
		side = bet.SideLow
	}
	amount, err := money.Parse(fmt.Sprintf("%.8f", proposal.Amount))
	if err != nil {
		return strategy.Outcome{Kind: strategy.OutcomeStop, StopReason: "nextBet returned an invalid amount"}
	}
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: amount,
		Chance: proposal.Chance,
		Side:   side,
	}}
}

func (s *CustomScript) OnResult(ctx *bet.Context, res bet.Result) {
	fn, ok := goja.AssertFunction(s.vm.Get("onResult"))
	if !ok {
		return
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = fn(goja.Undefined(), s.vm.ToValue(toScriptContext(ctx)), s.vm.ToValue(res.Won))
	}()
	select {
	case <-done:
	case <-time.After(scriptTimeout):
		s.vm.Interrupt("timeout")
		<-done
	}
}

func (s *CustomScript) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
