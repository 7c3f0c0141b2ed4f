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

package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/duckdice-bot/errs"
)

// Pool runs multiple independent sessions concurrently, bounded to a
// fixed number of in-flight runs; each session owns its own strategy
// instance, context, journal and idempotency-key namespace. Sessions are
// one-shot jobs that run to completion and are discarded — an auto-bet
// session has no notion of "healthy, ready for reuse" once it stops, so
// there is no borrow-and-return.
type Pool struct {
	sem chan struct{}

	inflight  atomic.Int32
	completed atomic.Int32
	panics    atomic.Int32
	failed    atomic.Int32
}

// NewPool builds a Pool that runs at most concurrency sessions at once.
func NewPool(concurrency int) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pool{sem: make(chan struct{}, concurrency)}
}

// Job is one session to run: SessionID only labels the result (the engine
// itself doesn't need it), Run is the blocking call that drives the
// session to a Summary (typically eng.Run(ctx) on a freshly constructed
// *Engine with its own Strategy/Context/journal).
type Job struct {
	SessionID string
	Run       func(ctx context.Context) (Summary, error)
}

// Result is one Job's outcome.
type Result struct {
	SessionID string
	Summary   Summary
	Err       error
}

// RunAll runs every job, respecting the pool's concurrency cap, and
// returns results in the same order as jobs (not completion order). A
// panicking job is recovered and turned into a Result.Err rather than
// crashing the batch.
func (p *Pool) RunAll(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		p.sem <- struct{}{}
		go func(i int, job Job) {
			defer wg.Done()
			defer func() { <-p.sem }()
			results[i] = p.runOne(ctx, job)
		}(i, job)
	}
	wg.Wait()
	return results
}

func (p *Pool) runOne(ctx context.Context, job Job) (res Result) {
	res.SessionID = job.SessionID
	p.inflight.Add(1)
	defer p.inflight.Add(-1)
	defer p.completed.Add(1) // counts panicking jobs too

	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			p.failed.Add(1)
			res.Err = errs.NewFatal(fmt.Sprintf("session %s panicked: %v", job.SessionID, r))
		}
	}()

	summary, err := job.Run(ctx)
	if err != nil {
		p.failed.Add(1)
		res.Err = err
	} else {
		res.Summary = summary
	}
	return res
}

// Metrics is a pull-style observability snapshot over session counts.
type Metrics struct {
	Capacity  int `json:"capacity"`
	Inflight  int `json:"inflight"`
	Completed int `json:"completed"`
	Panics    int `json:"panics"`
	Failed    int `json:"failed"`
}

func (p *Pool) Metrics() Metrics {
	return Metrics{
		Capacity:  cap(p.sem),
		Inflight:  int(p.inflight.Load()),
		Completed: int(p.completed.Load()),
		Panics:    int(p.panics.Load()),
		Failed:    int(p.failed.Load()),
	}
}
