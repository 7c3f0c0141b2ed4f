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

// duckdice is the CLI front-end: strategies, show, config, profiles,
// run, compare, interactive, serve, repair. Flag-based per subcommand
// (one flag.FlagSet each), no CLI framework.
package main

import (
	"context"
	"fmt"
	"os"
)

// Exit codes.
const (
	exitOK           = 0
	exitUsage        = 1
	exitAPIFailure   = 2
	exitBankrupt     = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return exitUsage
	}

	ctx := context.Background()
	switch args[0] {
	case "strategies":
		return cmdStrategies(args[1:])
	case "show":
		return cmdShow(args[1:])
	case "config":
		return cmdConfig(args[1:])
	case "profiles":
		return cmdProfiles(args[1:])
	case "run":
		return cmdRun(ctx, args[1:])
	case "compare":
		return cmdCompare(ctx, args[1:])
	case "interactive":
		return cmdInteractive(ctx, args[1:])
	case "serve":
		return cmdServe(ctx, args[1:])
	case "repair":
		return cmdRepair(ctx, args[1:])
	case "-h", "--help", "help":
		usage()
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "duckdice: unknown command %q\n", args[0])
		usage()
		return exitUsage
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `duckdice: a DuckDice auto-betting toolkit

Usage:
  duckdice strategies
  duckdice show <strategy>
  duckdice config show
  duckdice config set <key> <value>
  duckdice profiles list
  duckdice profiles save <name> -strategy ... -mode ... [-P key=value]...
  duckdice profiles load <name>
  duckdice profiles delete <name>
  duckdice run -mode {simulation|live-main|live-faucet} -strategy <name> [-P key=value]... [flags]
  duckdice compare [flags]
  duckdice interactive
  duckdice serve [-addr :5808] [-mode dev|prod]
  duckdice repair`)
}
