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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/zintix-labs/duckdice-bot/catalog"
)

// cmdInteractive is the guided wizard: it prompts for the
// same arguments `run` accepts and then builds a `run` argv, so the two
// commands can never drift. The wizard is a plain bufio.Scanner loop over
// stdin, in the CLI's own flag-driven style.
func cmdInteractive(ctx context.Context, args []string) int {
	in := bufio.NewScanner(os.Stdin)
	ask := func(prompt, def string) string {
		if def != "" {
			fmt.Printf("%s [%s]: ", prompt, def)
		} else {
			fmt.Printf("%s: ", prompt)
		}
		if !in.Scan() {
			return def
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			return def
		}
		return line
	}

	names, err := catalog.Names()
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice interactive:", err)
		return exitUsage
	}
	fmt.Println("Available strategies:", strings.Join(names, ", "))
	strategyName := ask("strategy", "flat")

	reg, err := catalog.All()
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice interactive:", err)
		return exitUsage
	}
	strat, err := reg.Build(strategyName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice interactive:", err)
		return exitUsage
	}
	meta := strat.Metadata()
	fmt.Printf("\n%s — risk: %s, volatility: %s\n\n", meta.DisplayName, meta.RiskLevel, meta.Volatility)

	mode := ask("mode (simulation|live-main|live-faucet)", "simulation")
	currency := ask("currency", "btc")
	maxBets := ask("max-bets (0 = unlimited)", "1000")
	stopLoss := ask("stop-loss (blank = none)", "")
	takeProfit := ask("take-profit (blank = none)", "")
	balance := "1"
	if mode == "simulation" {
		balance = ask("starting balance (simulation only)", "1")
	}

	runArgs := []string{
		"-strategy", strategyName,
		"-mode", mode,
		"-currency", currency,
		"-max-bets", maxBets,
		"-balance", balance,
	}
	if stopLoss != "" {
		runArgs = append(runArgs, "-stop-loss", stopLoss)
	}
	if takeProfit != "" {
		runArgs = append(runArgs, "-take-profit", takeProfit)
	}

	for _, p := range meta.Params {
		v := ask(fmt.Sprintf("param %s (%s)", p.Name, p.Description), p.Default)
		runArgs = append(runArgs, "-P", p.Name+"="+v)
	}

	fmt.Println("\nrunning: duckdice run " + strings.Join(runArgs, " "))
	return cmdRun(ctx, runArgs)
}
