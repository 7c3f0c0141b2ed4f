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

	"github.com/zintix-labs/duckdice-bot/config"
)

func cmdConfig(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "duckdice config: expects show|set")
		return exitUsage
	}

	switch args[0] {
	case "show":
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "duckdice config show:", err)
			return exitUsage
		}
		keys := []string{"default_currency", "min_bet", "min_profit", "house_edge", "chance_ceiling", "precision"}
		values := map[string]string{
			"default_currency": cfg.DefaultCurrency.String(),
			"min_bet":          cfg.MinBet.String(),
			"min_profit":       cfg.MinProfit.String(),
			"house_edge":       fmt.Sprintf("%.4f", cfg.HouseEdge),
			"chance_ceiling":   fmt.Sprintf("%.2f", cfg.ChanceCeiling),
			"precision":        fmt.Sprintf("%d", cfg.Precision),
		}
		fmt.Print(fmtTable("config", keys, values))
		return exitOK
	case "set":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "duckdice config set: expects <key> <value>")
			return exitUsage
		}
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "duckdice config set:", err)
			return exitUsage
		}
		cfg, err = config.Set(cfg, args[1], args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, "duckdice config set:", err)
			return exitUsage
		}
		if err := config.Save(cfg); err != nil {
			fmt.Fprintln(os.Stderr, "duckdice config set:", err)
			return exitUsage
		}
		fmt.Printf("%s = %s\n", args[1], args[2])
		return exitOK
	default:
		fmt.Fprintln(os.Stderr, "duckdice config: expects show|set")
		return exitUsage
	}
}
