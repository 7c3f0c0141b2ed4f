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

// Package engine drives the auto-bet loop: strategy -> validator -> API ->
// journal -> stop-condition check -> repeat. Stop conditions are a
// precedence-ordered sum type, and the engine exposes an atomically-stored
// state instead of relying on a caller remembering to check an error
// return at every step.
package engine

import (
	"context"
	"crypto/sha256"
	"sync/atomic"
	"time"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/corefmt"
	"github.com/zintix-labs/duckdice-bot/diceapi"
	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/strategy"
	"github.com/zintix-labs/duckdice-bot/validator"
)

// Config carries one session's stop conditions and execution parameters,
// all of which are caller-supplied (the CLI's `run` flags, or the
// comparison harness's fixed config).
type Config struct {
	Currency money.Currency
	Faucet   diceapi.FaucetMode

	// Params is the raw key=value strategy parameter map, journaled in the
	// session_started record so a journal alone reproduces the run.
	Params map[string]string

	MaxBets   int // 0 = unlimited
	MaxLosses int
	MaxWins   int

	HasStopLoss   bool
	StopLossAmt   money.Decimal // signed; session_profit <= this fires
	HasTakeProfit bool
	TakeProfit    money.Decimal // session_profit >= this fires

	TickDelay  time.Duration
	TurboMode  bool
	MaxRetries int

	Validator validator.Config
}

func (c Config) tickDelay() time.Duration {
	if c.TurboMode {
		return 0
	}
	return c.TickDelay
}

type controlKind uint8

const (
	ctrlPause controlKind = iota
	ctrlResume
	ctrlStop
)

type controlMsg struct {
	kind   controlKind
	reason string
}

// Engine drives exactly one session. The calling goroutine owns Run's
// loop; Pause/Resume/Stop are safe to call from any other goroutine and
// are conveyed cooperatively through a buffered control channel, polled
// before every tick and again inside the inter-tick sleep.
type Engine struct {
	sessionID string
	mode      string
	strategy  strategy.Strategy
	api       diceapi.DiceApi
	journal   Journaler
	ctx       *bet.Context
	cfg       Config

	state   atomic.Uint32
	control chan controlMsg
	paused  bool

	maxWinStreak  int
	maxLossStreak int
	betIndex      int
}

// New builds an Engine ready to Run. strat must already have been
// initialized via strategy.Init with ctx before Run is called.
func New(sessionID, mode string, strat strategy.Strategy, api diceapi.DiceApi, journal Journaler, ctx *bet.Context, cfg Config) *Engine {
	if journal == nil {
		journal = NopJournal{}
	}
	e := &Engine{
		sessionID: sessionID,
		mode:      mode,
		strategy:  strat,
		api:       api,
		journal:   journal,
		ctx:       ctx,
		cfg:       cfg,
		control:   make(chan controlMsg, 8),
	}
	e.state.Store(uint32(Idle))
	return e
}

func (e *Engine) State() State { return State(e.state.Load()) }

func (e *Engine) setState(s State) { e.state.Store(uint32(s)) }

// Pause requests a cooperative pause; takes effect before the next tick.
func (e *Engine) Pause() {
	select {
	case e.control <- controlMsg{kind: ctrlPause}:
	default:
	}
}

// Resume cancels a pending/active pause.
func (e *Engine) Resume() {
	select {
	case e.control <- controlMsg{kind: ctrlResume}:
	default:
	}
}

// Stop requests the session end with StopExternal at the next poll point.
// At most one in-flight bet finishes first: Run never
// abandons a submitted bet mid-flight.
func (e *Engine) Stop(reason string) {
	select {
	case e.control <- controlMsg{kind: ctrlStop, reason: reason}:
	default:
	}
}

// Run drives the session to completion, returning the Summary once a stop
// condition fires. Run is not safe to call concurrently with itself; a
// second session must use its own Engine, Context and Strategy instance.
func (e *Engine) Run(parent context.Context) (Summary, error) {
	e.setState(Running)
	start := e.ctx.Balance
	startedAt := e.ctx.Clock.Now()

	if err := e.journal.Append(Record{
		Type:        RecordSessionStarted,
		MonotonicTs: startedAt.UnixNano(),
		Payload: SessionStartedPayload{
			SessionID:       e.sessionID,
			Mode:            e.mode,
			Currency:        e.cfg.Currency.String(),
			Strategy:        e.strategy.Name(),
			Params:          e.cfg.Params,
			StartingBalance: start.String(),
			StartTs:         startedAt,
		},
	}); err != nil {
		return Summary{}, errs.StoreError("journal session_started: " + err.Error())
	}

	for {
		if reason, ok := e.drainControl(parent); ok {
			return e.finish(reason, start, startedAt)
		}
		if reason, ok := e.checkStopConditions(); ok {
			return e.finish(reason, start, startedAt)
		}

		outcome := e.strategy.NextBet(e.ctx)
		switch outcome.Kind {
		case strategy.OutcomeSkip:
			if !e.sleep(parent, e.cfg.tickDelay()) {
				return e.finish(StopReason{Kind: StopExternal, Detail: "cancelled during sleep"}, start, startedAt)
			}
			continue
		case strategy.OutcomeStop:
			return e.finish(StopReason{Kind: StopStrategy, Detail: outcome.StopReason}, start, startedAt)
		case strategy.OutcomeClaimFaucet:
			if err := e.claimFaucet(parent); err != nil {
				return e.finish(StopReason{Kind: StopApiError, Detail: err.Error()}, start, startedAt)
			}
			if !e.sleep(parent, e.cfg.tickDelay()) {
				return e.finish(StopReason{Kind: StopExternal, Detail: "cancelled during sleep"}, start, startedAt)
			}
			continue
		}

		spec := outcome.Spec
		if err := spec.Validate(); err != nil {
			return e.finish(StopReason{Kind: StopValidatorRejected, Detail: err.Error()}, start, startedAt)
		}

		vres := validator.Validate(spec, e.ctx.Balance, e.cfg.Validator)
		if !vres.Accepted {
			reason := e.rejectReason(vres)
			return e.finish(reason, start, startedAt)
		}
		if len(vres.Adjustments) > 0 {
			_ = e.journal.Append(Record{
				Type:        RecordBetAdjusted,
				MonotonicTs: e.ctx.Clock.Now().UnixNano(),
				Payload:     BetAdjustedPayload{Index: e.betIndex, Adjustments: vres.Adjustments},
			})
		}

		key := e.idempotencyKey(e.betIndex)
		result, err := e.submit(parent, vres.Spec, key)
		if err != nil {
			return e.finish(StopReason{Kind: StopApiError, Detail: err.Error()}, start, startedAt)
		}

		if err := e.journal.Append(Record{
			Type:        RecordBetExecuted,
			MonotonicTs: result.Timestamp.UnixNano(),
			Payload:     BetExecutedPayload{Index: e.betIndex, Result: result},
		}); err != nil {
			return Summary{}, errs.StoreError("journal bet_executed: " + err.Error())
		}

		e.ctx.Record(result)
		e.strategy.OnResult(e.ctx, result)
		e.trackStreak()
		e.betIndex++

		if reason, ok := e.checkStopConditions(); ok {
			return e.finish(reason, start, startedAt)
		}
		if !e.sleep(parent, e.cfg.tickDelay()) {
			return e.finish(StopReason{Kind: StopExternal, Detail: "cancelled during sleep"}, start, startedAt)
		}
	}
}

func (e *Engine) rejectReason(vres validator.Result) StopReason {
	if ke, ok := errs.AsKind(vres.Reject); ok && ke.K == errs.KindInsufficientBalance {
		return StopReason{Kind: StopBankrupt, Detail: vres.Reject.Error()}
	}
	detail := ""
	if vres.Reject != nil {
		detail = vres.Reject.Error()
	}
	return StopReason{Kind: StopValidatorRejected, Detail: detail}
}

// checkStopConditions evaluates the numeric stop conditions in precedence
// order; the first that holds is reported.
func (e *Engine) checkStopConditions() (StopReason, bool) {
	if e.cfg.MaxBets > 0 && e.ctx.Bets >= e.cfg.MaxBets {
		return StopReason{Kind: StopMaxBets}, true
	}
	if e.cfg.MaxLosses > 0 && e.ctx.Losses >= e.cfg.MaxLosses {
		return StopReason{Kind: StopMaxLosses}, true
	}
	if e.cfg.MaxWins > 0 && e.ctx.Wins >= e.cfg.MaxWins {
		return StopReason{Kind: StopMaxWins}, true
	}
	if e.cfg.HasStopLoss && e.ctx.TotalProfit.Cmp(e.cfg.StopLossAmt) <= 0 {
		return StopReason{Kind: StopLoss}, true
	}
	if e.cfg.HasTakeProfit && e.ctx.TotalProfit.Cmp(e.cfg.TakeProfit) >= 0 {
		return StopReason{Kind: StopTakeProfit}, true
	}
	return StopReason{}, false
}

// drainControl processes pending Pause/Resume/Stop requests. A pending
// Stop always wins. While
// paused, drainControl blocks until Resume, Stop, or ctx cancellation.
func (e *Engine) drainControl(ctx context.Context) (StopReason, bool) {
	for {
		select {
		case msg := <-e.control:
			switch msg.kind {
			case ctrlStop:
				return StopReason{Kind: StopExternal, Detail: msg.reason}, true
			case ctrlPause:
				e.paused = true
				e.setState(Paused)
			case ctrlResume:
				e.paused = false
				e.setState(Running)
			}
			continue
		default:
		}
		if !e.paused {
			return StopReason{}, false
		}
		select {
		case msg := <-e.control:
			switch msg.kind {
			case ctrlStop:
				return StopReason{Kind: StopExternal, Detail: msg.reason}, true
			case ctrlResume:
				e.paused = false
				e.setState(Running)
				return StopReason{}, false
			}
		case <-ctx.Done():
			return StopReason{Kind: StopExternal, Detail: "context cancelled while paused"}, true
		}
	}
}

// sleep waits d, cancellable by a pending Stop or ctx cancellation. A zero
// duration (turbo mode) returns immediately.
func (e *Engine) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case msg := <-e.control:
		switch msg.kind {
		case ctrlStop:
			return false
		case ctrlPause:
			// Recorded here so drainControl blocks before the next tick.
			e.paused = true
			e.setState(Paused)
		case ctrlResume:
			e.paused = false
			e.setState(Running)
		}
		return true
	case <-ctx.Done():
		return false
	}
}

// submit places the bet, retrying on Transient/RateLimited/Network errors up to
// cfg.MaxRetries with the API's own retry_after when present. The engine
// is not required to retry beyond this bound; exhaustion is surfaced as a
// terminal ApiError to the caller.
func (e *Engine) submit(ctx context.Context, spec bet.Spec, idempotencyKey string) (bet.Result, error) {
	var lastErr error
	for attempt := 0; attempt <= e.cfg.MaxRetries; attempt++ {
		var result bet.Result
		var err error
		if spec.IsRange {
			result, err = e.api.PlaceRange(ctx, e.currency(spec), spec.Amount, spec.Low, spec.High, spec.Mode, e.cfg.Faucet, idempotencyKey)
		} else {
			result, err = e.api.PlaceDice(ctx, e.currency(spec), spec.Amount, spec.Chance, spec.Side, e.cfg.Faucet, idempotencyKey)
		}
		if err == nil {
			if result.Timestamp.IsZero() {
				result.Timestamp = e.ctx.Clock.Now()
			}
			result.Spec = spec
			return result, nil
		}
		lastErr = err
		apiErr, ok := err.(*diceapi.ApiError)
		if !ok || !apiErr.Retryable() || attempt == e.cfg.MaxRetries {
			return bet.Result{}, err
		}
		wait := time.Duration(apiErr.RetryAfterMs) * time.Millisecond
		if wait <= 0 {
			wait = 500 * time.Millisecond << attempt
		}
		if !e.sleep(ctx, wait) {
			return bet.Result{}, lastErr
		}
	}
	return bet.Result{}, lastErr
}

// claimFaucet services an OutcomeClaimFaucet tick (faucet-grind,
// faucet-cashout): calls DiceApi.ClaimFaucet, folds the claimed amount
// into ctx.Balance, and journals the claim. Does not count toward
// bet-based stop conditions or betIndex.
func (e *Engine) claimFaucet(ctx context.Context) error {
	claim, err := e.api.ClaimFaucet(ctx, e.cfg.Currency)
	if err != nil {
		return err
	}
	e.ctx.Balance = e.ctx.Balance.Add(claim.Amount)
	return e.journal.Append(Record{
		Type:        RecordFaucetClaimed,
		MonotonicTs: e.ctx.Clock.Now().UnixNano(),
		Payload: FaucetClaimedPayload{
			Amount:       claim.Amount.String(),
			BalanceAfter: e.ctx.Balance.String(),
			NextClaimAt:  claim.NextClaimAt,
		},
	})
}

func (e *Engine) currency(spec bet.Spec) money.Currency {
	if !spec.Currency.IsZero() {
		return spec.Currency
	}
	return e.cfg.Currency
}

// idempotencyKey = hash(session_id, bet_index).
func (e *Engine) idempotencyKey(index int) string {
	h := sha256.New()
	h.Write([]byte(e.sessionID))
	h.Write([]byte{0})
	var idx [8]byte
	for i := range idx {
		idx[i] = byte(index >> (8 * i))
	}
	h.Write(idx[:])
	return corefmt.EncodeHex(h.Sum(nil))[:32]
}

func (e *Engine) trackStreak() {
	if e.ctx.Streak > e.maxWinStreak {
		e.maxWinStreak = e.ctx.Streak
	}
	if -e.ctx.Streak > e.maxLossStreak {
		e.maxLossStreak = -e.ctx.Streak
	}
}

func (e *Engine) finish(reason StopReason, startBalance money.Decimal, startedAt time.Time) (Summary, error) {
	e.setState(Stopped)
	endedAt := e.ctx.Clock.Now()
	summary := Summary{
		SessionID:       e.sessionID,
		StopReason:      reason,
		BetCount:        e.ctx.Bets,
		WinCount:        e.ctx.Wins,
		LossCount:       e.ctx.Losses,
		StartingBalance: startBalance,
		EndingBalance:   e.ctx.Balance,
		Profit:          e.ctx.TotalProfit,
		TotalWagered:    e.ctx.TotalWagered,
		MaxWinStreak:    e.maxWinStreak,
		MaxLossStreak:   e.maxLossStreak,
		StartedAt:       startedAt,
		EndedAt:         endedAt,
		Duration:        endedAt.Sub(startedAt),
	}

	e.strategy.OnSessionEnd(e.ctx, strategy.Summary{
		StopReason: reason.String(),
		BetCount:   summary.BetCount,
		Profit:     summary.Profit.String(),
	})

	if err := e.journal.Append(Record{
		Type:        RecordSessionStopped,
		MonotonicTs: endedAt.UnixNano(),
		Payload:     SessionStoppedPayload{Summary: summary},
	}); err != nil {
		return summary, errs.StoreError("journal session_stopped: " + err.Error())
	}
	if err := e.journal.Sync(); err != nil {
		return summary, errs.StoreError("journal sync: " + err.Error())
	}
	return summary, nil
}
