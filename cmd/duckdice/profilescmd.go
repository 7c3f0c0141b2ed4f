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
	"flag"
	"fmt"
	"os"

	"github.com/zintix-labs/duckdice-bot/profile"
)

func cmdProfiles(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "duckdice profiles: expects list|save|load|delete")
		return exitUsage
	}

	switch args[0] {
	case "list":
		names, err := profile.Names()
		if err != nil {
			fmt.Fprintln(os.Stderr, "duckdice profiles list:", err)
			return exitUsage
		}
		if len(names) == 0 {
			fmt.Println("(no saved profiles)")
			return exitOK
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return exitOK

	case "save":
		return profilesSave(args[1:])

	case "load":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "duckdice profiles load: expects <name>")
			return exitUsage
		}
		p, ok, err := profile.Get(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "duckdice profiles load:", err)
			return exitUsage
		}
		if !ok {
			fmt.Fprintf(os.Stderr, "duckdice profiles load: no profile named %q\n", args[1])
			return exitUsage
		}
		keys := []string{"strategy", "mode", "currency", "max_bets", "stop_loss", "take_profit"}
		values := map[string]string{
			"strategy":    p.Strategy,
			"mode":        p.Mode,
			"currency":    p.Currency,
			"max_bets":    fmt.Sprintf("%d", p.MaxBets),
			"stop_loss":   p.StopLoss,
			"take_profit": p.TakeProfit,
		}
		fmt.Print(fmtTable(args[1], keys, values))
		for k, v := range p.Params {
			fmt.Printf("  -P %s=%s\n", k, v)
		}
		return exitOK

	case "delete":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "duckdice profiles delete: expects <name>")
			return exitUsage
		}
		if err := profile.Delete(args[1]); err != nil {
			fmt.Fprintln(os.Stderr, "duckdice profiles delete:", err)
			return exitUsage
		}
		return exitOK

	default:
		fmt.Fprintln(os.Stderr, "duckdice profiles: expects list|save|load|delete")
		return exitUsage
	}
}

func profilesSave(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "duckdice profiles save: expects <name>")
		return exitUsage
	}
	name := args[0]

	fs := flag.NewFlagSet("profiles save", flag.ContinueOnError)
	strategyName := fs.String("strategy", "", "strategy name")
	mode := fs.String("mode", "simulation", "simulation|live-main|live-faucet")
	currency := fs.String("currency", "btc", "currency code")
	maxBets := fs.Int("max-bets", 0, "0 = unlimited")
	stopLoss := fs.String("stop-loss", "", "signed money amount")
	takeProfit := fs.String("take-profit", "", "signed money amount")
	params := paramFlag{}
	fs.Var(&params, "P", "strategy parameter key=value, repeatable")
	if err := fs.Parse(args[1:]); err != nil {
		return exitUsage
	}
	if *strategyName == "" {
		fmt.Fprintln(os.Stderr, "duckdice profiles save: -strategy is required")
		return exitUsage
	}

	p := profile.Profile{
		Strategy:   *strategyName,
		Mode:       *mode,
		Currency:   *currency,
		Params:     map[string]string(params),
		MaxBets:    *maxBets,
		StopLoss:   *stopLoss,
		TakeProfit: *takeProfit,
	}
	if err := profile.Save(name, p); err != nil {
		fmt.Fprintln(os.Stderr, "duckdice profiles save:", err)
		return exitUsage
	}
	return exitOK
}
