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

package bet

import (
	"time"

	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/rng"
)

// Clock is the injectable time source the engine hands to a session. The
// simulator drives a virtual clock for determinism; the live engine uses
// RealClock. Strategies never call time.Now() directly.
type Clock interface {
	Now() time.Time
}

// RealClock wraps time.Now.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// VirtualClock is a monotonically-advancing clock controlled by the caller
// (the simulator), so that a given seed + tick count always produces the
// same timestamps.
type VirtualClock struct {
	t    time.Time
	step time.Duration
}

func NewVirtualClock(start time.Time, step time.Duration) *VirtualClock {
	return &VirtualClock{t: start, step: step}
}

func (c *VirtualClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

// Ring is a fixed-capacity ring buffer of the last N bet results, the
// strategy-declared window a Strategy can inspect via Context.Window.
type Ring struct {
	buf   []Result
	start int
	size  int
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([]Result, capacity)}
}

func (r *Ring) Push(res Result) {
	idx := (r.start + r.size) % len(r.buf)
	r.buf[idx] = res
	if r.size < len(r.buf) {
		r.size++
	} else {
		r.start = (r.start + 1) % len(r.buf)
	}
}

// Items returns the buffered results, oldest first.
func (r *Ring) Items() []Result {
	out := make([]Result, r.size)
	for i := range out {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

func (r *Ring) Len() int { return r.size }

// Context is the mutable state the engine hands a strategy every tick.
// Strategy-private state is opaque to the engine; the catalog strategies
// keep it in their own struct fields, and Private is a slot a strategy may
// use instead.
type Context struct {
	Bets         int
	Wins         int
	Losses       int
	TotalWagered money.Decimal
	TotalProfit  money.Decimal

	// Streak is signed: positive is a win streak, negative a loss streak.
	Streak int

	Window *Ring

	Balance money.Decimal
	Clock   Clock

	// Rand is the session's own PRNG stream, shared between the simulator
	// (for its seeds and range draws) and any strategy that needs its own
	// randomness (e.g. range-50-random's sub-range pick). Drawing from
	// this single stream, rather than letting a strategy seed its own,
	// keeps the whole session reproducible from one seed.
	Rand *rng.Core

	// Private is strategy-owned scratch state; the engine never reads or
	// writes it.
	Private any
}

// NewContext builds a fresh Context for a session.
func NewContext(windowSize int, startingBalance money.Decimal, clock Clock) *Context {
	if clock == nil {
		clock = RealClock{}
	}
	return &Context{
		Window:  NewRing(windowSize),
		Balance: startingBalance,
		Clock:   clock,
	}
}

// Record folds a settled Result's accounting into the Context. This is the
// only place session-cumulative counters and the streak are mutated; the
// balance is also changed by the engine when it folds in a faucet claim.
// The engine calls it once per tick, strictly after the bet has settled and
// strictly before strategy.OnResult.
func (c *Context) Record(res Result) {
	c.Bets++
	c.TotalWagered = c.TotalWagered.Add(res.Spec.Amount)
	c.TotalProfit = c.TotalProfit.Add(res.Profit)
	c.Balance = res.BalanceAfter

	if res.Won {
		c.Wins++
		if c.Streak >= 0 {
			c.Streak++
		} else {
			c.Streak = 1
		}
	} else {
		c.Losses++
		if c.Streak <= 0 {
			c.Streak--
		} else {
			c.Streak = -1
		}
	}
	c.Window.Push(res)
}
