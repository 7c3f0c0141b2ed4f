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

// Package compare runs the whole strategy catalog against the simulator
// under one identical configuration and collects a report, with a skip
// list for strategies the harness can't configure generically. Package
// compare performs no I/O of its own — no terminal output, no file
// writes — so it stays usable from both the CLI
// and the HTTP surface; a caller that wants a progress bar supplies a
// Progress callback.
package compare

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"gonum.org/v1/gonum/stat"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/catalog"
	"github.com/zintix-labs/duckdice-bot/engine"
	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/riskstats"
	"github.com/zintix-labs/duckdice-bot/simulator"
	"github.com/zintix-labs/duckdice-bot/strategy"
	"github.com/zintix-labs/duckdice-bot/validator"
)

// Config is the one run configuration applied to every strategy in the
// catalog, so the resulting reports are comparable.
type Config struct {
	StartingBalance money.Decimal
	Currency        money.Currency
	Seed            int64
	MaxBets         int
	HouseEdge       float64
	WindowSize      int // bet.Context.Window capacity; 0 defaults to 50
	Validator       validator.Config
	Concurrency     int // max strategies run in parallel; 0 defaults to 4
}

func (c Config) windowSize() int {
	if c.WindowSize <= 0 {
		return 50
	}
	return c.WindowSize
}

func (c Config) concurrency() int {
	if c.Concurrency <= 0 {
		return 4
	}
	return c.Concurrency
}

// StrategyResult is one catalog entry's outcome: either a completed run
// (Summary + Risk populated), a skip (SpecialConfig), or a recorded
// failure. Exactly one of {Skipped, Err != "", Summary populated} holds.
type StrategyResult struct {
	Name       string
	Metadata   strategy.Metadata
	Skipped    bool
	SkipReason string
	Err        string
	Summary    engine.Summary
	Risk       riskstats.Report
}

// Report is the full batch outcome, plus cross-strategy metrics computed
// with gonum/stat over the full set of final profits — a genuinely batch
// computation (the complete sample is already in memory here), unlike
// riskstats.Accumulator's single-pass per-session running estimator.
type Report struct {
	Config         Config
	Results        []StrategyResult
	ProfitVariance float64
	ProfitStdDev   float64
}

// Progress is called once per completed catalog entry (including skips
// and failures), with done counting from 1 and total fixed for the run.
// Run invokes it concurrently from multiple goroutines (engine.Pool runs
// strategies in parallel), so Progress implementations must be safe for
// concurrent calls — a mutex-guarded counter or an atomic, never a bare
// shared variable.
type Progress func(done, total int)

// Run executes every non-skipped catalog strategy under cfg and returns
// the collected report. A per-strategy error (bad params, engine
// failure) is recorded on that entry and does not abort the batch.
//
// Strategies run concurrently, bounded by cfg.Concurrency, through
// engine.Pool — each has its own Strategy instance, bet.Context, simulator
// and in-memory journal, so there is nothing shared between jobs beyond
// ctx and the registry itself. Results preserve the catalog's original
// order regardless of completion order.
func Run(ctx context.Context, cfg Config, progress Progress) (Report, error) {
	reg, err := catalog.All()
	if err != nil {
		return Report{}, errs.Wrap(err, "compare: build catalog")
	}
	names, err := catalog.Names()
	if err != nil {
		return Report{}, errs.Wrap(err, "compare: list catalog")
	}

	prepared := make([]preparedRun, len(names))
	jobs := make([]engine.Job, len(names))
	var done atomic.Int32

	for i, name := range names {
		prepared[i] = prepareRun(reg, name, cfg)
		jobs[i] = engine.Job{
			SessionID: name,
			Run: func(ctx context.Context) (engine.Summary, error) {
				p := prepared[i]
				defer func() {
					if progress != nil {
						progress(int(done.Add(1)), len(names))
					}
				}()
				if p.skipped || p.buildErr != "" || p.eng == nil {
					return engine.Summary{}, nil
				}
				return p.eng.Run(ctx)
			},
		}
	}

	pool := engine.NewPool(cfg.concurrency())
	poolResults := pool.RunAll(ctx, jobs)

	report := Report{Config: cfg, Results: make([]StrategyResult, len(names))}
	var finalProfits []float64

	for i, name := range names {
		p := prepared[i]
		res := StrategyResult{Name: name, Metadata: p.meta, Skipped: p.skipped, SkipReason: p.skipReason}
		switch {
		case p.skipped:
			// nothing more to record
		case p.buildErr != "":
			res.Err = p.buildErr
		case poolResults[i].Err != nil:
			res.Err = poolResults[i].Err.Error()
		default:
			res.Summary = poolResults[i].Summary
			res.Risk = riskstats.FromBets(cfg.StartingBalance, p.journal.betResults())
			finalProfits = append(finalProfits, res.Summary.Profit.Float64())
		}
		report.Results[i] = res
	}

	if len(finalProfits) > 1 {
		report.ProfitVariance = stat.Variance(finalProfits, nil)
		report.ProfitStdDev = stat.StdDev(finalProfits, nil)
	}
	return report, nil
}

// preparedRun holds the per-strategy state built before the engine ever
// runs (strategy instance, simulator, journal) so Run can hand engine.Pool
// a plain Run(ctx) closure and still recover the journal/metadata
// afterward to finish building the StrategyResult.
type preparedRun struct {
	meta       strategy.Metadata
	skipped    bool
	skipReason string
	buildErr   string
	eng        *engine.Engine
	journal    *recordingJournal
}

func prepareRun(reg *strategy.Registry, name string, cfg Config) preparedRun {
	if reason, skip := catalog.SpecialConfig[name]; skip {
		return preparedRun{skipped: true, skipReason: reason}
	}

	strat, err := reg.Build(name)
	if err != nil {
		return preparedRun{buildErr: err.Error()}
	}
	meta := strat.Metadata()

	sim := simulator.New(simulator.Config{
		Seed:            cfg.Seed,
		HouseEdge:       cfg.HouseEdge,
		StartingBalance: cfg.StartingBalance,
		Currency:        cfg.Currency,
	})
	bctx := bet.NewContext(cfg.windowSize(), cfg.StartingBalance, nil)
	bctx.Rand = sim.Core()

	if err := strat.Init(defaultParams(meta), bctx); err != nil {
		return preparedRun{meta: meta, buildErr: err.Error()}
	}

	jrn := &recordingJournal{}
	eng := engine.New(
		"compare-"+name,
		"simulation",
		strat,
		sim,
		jrn,
		bctx,
		engine.Config{
			Currency:   cfg.Currency,
			MaxBets:    cfg.MaxBets,
			TurboMode:  true,
			MaxRetries: 0,
			Validator:  cfg.Validator,
		},
	)

	return preparedRun{meta: meta, eng: eng, journal: jrn}
}

// defaultParams flattens a strategy's parameter schema into the
// map[string]string shape Init expects, using each ParamSpec's declared
// default — the same values `duckdice show <strategy>` lists.
func defaultParams(meta strategy.Metadata) map[string]string {
	params := make(map[string]string, len(meta.Params))
	for _, p := range meta.Params {
		params[p.Name] = p.Default
	}
	return params
}

// recordingJournal discards nothing; it keeps every record in memory so
// Run can replay the settled bets into riskstats.FromBets once the
// session stops. Compare never persists these journals to disk.
type recordingJournal struct {
	records []engine.Record
}

func (j *recordingJournal) Append(rec engine.Record) error {
	j.records = append(j.records, rec)
	return nil
}

func (j *recordingJournal) Sync() error { return nil }

func (j *recordingJournal) betResults() []bet.Result {
	out := make([]bet.Result, 0, len(j.records))
	for _, rec := range j.records {
		if p, ok := rec.Payload.(engine.BetExecutedPayload); ok {
			out = append(out, p.Result)
		}
	}
	return out
}

// sortedByProfit returns result indices ordered by descending final
// profit, skips and failures last. Used by the HTML renderer to rank the
// leaderboard.
func sortedByProfit(results []StrategyResult) []int {
	idx := make([]int, len(results))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := results[idx[a]], results[idx[b]]
		if ra.Skipped || ra.Err != "" {
			return false
		}
		if rb.Skipped || rb.Err != "" {
			return true
		}
		return ra.Summary.Profit.Cmp(rb.Summary.Profit) > 0
	})
	return idx
}

// String renders a one-line plain-text summary, for the CLI's non-HTML
// `compare` output.
func (r StrategyResult) String() string {
	switch {
	case r.Skipped:
		return fmt.Sprintf("%s: skipped (%s)", r.Name, r.SkipReason)
	case r.Err != "":
		return fmt.Sprintf("%s: error (%s)", r.Name, r.Err)
	default:
		return fmt.Sprintf("%s: %d bets, profit %s", r.Name, r.Summary.BetCount, r.Summary.Profit.String())
	}
}
