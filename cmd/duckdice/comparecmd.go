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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/zintix-labs/duckdice-bot/compare"
	"github.com/zintix-labs/duckdice-bot/config"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/validator"
)

func cmdCompare(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	balance := fs.String("balance", "100", "starting balance for every strategy")
	currency := fs.String("currency", "", "currency code, defaults to the saved config's default_currency")
	maxBets := fs.Int("max-bets", 500, "bets per strategy")
	seed := fs.Int64("seed", 1, "shared PRNG seed, same seed for every strategy")
	houseEdge := fs.Float64("house-edge", 0, "0 uses the saved config's house_edge")
	output := fs.String("output", "compare-report.html", "HTML report path")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice compare:", err)
		return exitUsage
	}
	cur := money.Normalize(*currency)
	if cur.IsZero() {
		cur = cfg.DefaultCurrency
	}
	edge := *houseEdge
	if edge == 0 {
		edge = cfg.HouseEdge
	}
	bal, err := money.Parse(*balance)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice compare: -balance:", err)
		return exitUsage
	}

	ccfg := compare.Config{
		StartingBalance: bal,
		Currency:        cur,
		Seed:            *seed,
		MaxBets:         *maxBets,
		HouseEdge:       edge,
		Validator: validator.Config{
			MinBet:        cfg.MinBet,
			MinProfit:     cfg.MinProfit,
			HouseEdge:     edge,
			Precision:     cfg.Precision,
			ChanceCeiling: cfg.ChanceCeiling,
		},
	}

	bar := pb.StartNew(0)
	bar.Set(pb.CleanOnFinish, true)
	progress := func(done, total int) {
		if bar.Total() != int64(total) {
			bar.SetTotal(int64(total))
		}
		bar.SetCurrent(int64(done))
	}

	report, err := compare.Run(ctx, ccfg, progress)
	bar.Finish()
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice compare:", err)
		return exitUsage
	}

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice compare:", err)
		return exitUsage
	}
	defer f.Close()
	if err := compare.RenderHTML(f, report); err != nil {
		fmt.Fprintln(os.Stderr, "duckdice compare:", err)
		return exitUsage
	}

	for _, r := range report.Results {
		fmt.Println(r.String())
	}
	fmt.Printf("\nprofit variance across strategies: %.8f  stddev: %.8f\n", report.ProfitVariance, report.ProfitStdDev)
	fmt.Printf("report written to %s\n", *output)
	return exitOK
}
