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

// Package strategy defines the contract any wagering progression algorithm
// implements, and the compile-time registry catalog builds on.
//
// A Strategy is pure with respect to Context + its own private state: the
// engine guarantees single-threaded, sequential calls (no NextBet overlaps
// another, no OnResult precedes its matching NextBet), and NextBet/OnResult
// must never perform I/O.
package strategy

import (
	"github.com/zintix-labs/duckdice-bot/bet"
)

// Outcome is what NextBet hands back to the engine each tick.
type Outcome struct {
	Spec bet.Spec // valid only when Kind == OutcomeBet
	Kind OutcomeKind
	// StopReason is set when Kind == OutcomeStop.
	StopReason string
}

type OutcomeKind uint8

const (
	OutcomeBet OutcomeKind = iota
	OutcomeSkip
	OutcomeStop
	// OutcomeClaimFaucet asks the engine to call DiceApi.ClaimFaucet before
	// invoking NextBet again, instead of placing a bet this tick. Only the
	// faucet-driven strategies (faucet-grind, faucet-cashout) use this.
	OutcomeClaimFaucet
)

// Strategy is the contract every progression algorithm implements.
type Strategy interface {
	// Name returns the strategy's stable catalog identifier.
	Name() string

	// Metadata returns the static description (risk, schema, tips) catalog
	// consumers (CLI, comparison harness) render.
	Metadata() Metadata

	// Init validates params against Metadata().Params and initializes the
	// strategy's private state (held in its own fields). Returns a *errs.KE with
	// Kind KindBadParameter on schema violation.
	Init(params map[string]string, ctx *bet.Context) error

	// NextBet computes this tick's proposal. Pure w.r.t. ctx + private
	// state; must not perform I/O.
	NextBet(ctx *bet.Context) Outcome

	// OnResult updates private state after a bet settles. Must not perform
	// I/O.
	OnResult(ctx *bet.Context, res bet.Result)

	// OnSessionEnd is an optional finalizer; most strategies no-op here.
	OnSessionEnd(ctx *bet.Context, summary Summary)
}

// Summary is the subset of the session summary a strategy finalizer may
// want to observe (kept minimal and decoupled from package engine to avoid
// an import cycle: engine imports strategy, not the reverse).
type Summary struct {
	StopReason string
	BetCount   int
	Profit     string // money.Decimal.String(), kept as string to avoid the dependency
}
