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
	"fmt"
	"os"

	"github.com/zintix-labs/duckdice-bot/catalog"
	"github.com/zintix-labs/duckdice-bot/strategy"
)

func cmdStrategies(args []string) int {
	names, err := catalog.Names()
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice strategies:", err)
		return exitUsage
	}
	reg, err := catalog.All()
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice strategies:", err)
		return exitUsage
	}

	rows := make(map[string]string, len(names))
	for _, name := range names {
		strat, err := reg.Build(name)
		if err != nil {
			rows[name] = "error: " + err.Error()
			continue
		}
		meta := strat.Metadata()
		note := riskEmoji(meta.RiskLevel) + " " + string(meta.RiskLevel)
		if reason, skip := catalog.SpecialConfig[name]; skip {
			note += " (compare skips: " + reason + ")"
		}
		rows[name] = note
	}
	fmt.Print(fmtTable("catalog strategies", names, rows))
	return exitOK
}

func cmdShow(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "duckdice show: expects exactly one strategy name")
		return exitUsage
	}
	name := args[0]
	reg, err := catalog.All()
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice show:", err)
		return exitUsage
	}
	strat, err := reg.Build(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice show:", err)
		return exitUsage
	}
	meta := strat.Metadata()

	fmt.Printf("%s (%s)\n", meta.DisplayName, meta.Name)
	fmt.Printf("risk: %s  volatility: %s  time to profit: %s\n", meta.RiskLevel, meta.Volatility, meta.TimeToProfit)
	fmt.Printf("bankroll hint: %s\n", meta.BankrollHint)
	fmt.Printf("recommended for: %s\n\n", meta.RecommendedAudience)

	printList("pros", meta.Pros)
	printList("cons", meta.Cons)
	printList("tips", meta.Tips)

	if len(meta.Params) == 0 {
		return exitOK
	}
	fmt.Println("\nparameters:")
	keys := make([]string, len(meta.Params))
	values := make(map[string]string, len(meta.Params))
	for i, p := range meta.Params {
		keys[i] = p.Name
		bounds := ""
		if p.Min != "" || p.Max != "" {
			bounds = fmt.Sprintf(" [%s, %s]", p.Min, p.Max)
		}
		values[p.Name] = fmt.Sprintf("%s default=%s%s — %s", p.Kind, p.Default, bounds, p.Description)
	}
	fmt.Print(fmtTable(name+" params", keys, values))
	return exitOK
}

func riskEmoji(level strategy.RiskLevel) string {
	switch level {
	case strategy.RiskLow:
		return "🟢"
	case strategy.RiskMedium:
		return "🟡"
	case strategy.RiskHigh:
		return "🟠"
	case strategy.RiskExtreme:
		return "🔴"
	default:
		return "⚪"
	}
}

func printList(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Println(label + ":")
	for _, item := range items {
		fmt.Println("  - " + item)
	}
}
