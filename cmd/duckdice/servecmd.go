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

	"github.com/zintix-labs/duckdice-bot/server"
	"github.com/zintix-labs/duckdice-bot/server/logger"
	"github.com/zintix-labs/duckdice-bot/server/svrcfg"
)

// cmdServe starts the read-only HTTP surface: healthz, metrics, and — in
// dev mode — session/strategy inspection over the same SQLite index `run`
// writes to.
func cmdServe(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", ":5808", "HTTP listen address")
	mode := fs.String("mode", "dev", "dev|prod")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	st, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice serve:", err)
		return exitUsage
	}
	defer st.Close()

	runMode := svrcfg.ModeDev
	if *mode == "prod" {
		runMode = svrcfg.ModeProd
	}

	server.Run(&svrcfg.SvrCfg{
		Log:   logger.NewDefaultLogger(logger.ModeDev),
		Store: st,
		Addr:  *addr,
		Mode:  runMode,
	})
	return exitOK
}

// cmdRepair runs the offline repair pass once: journals left behind by a
// process that died mid-session get reconciled into the SQLite index,
// without standing up the HTTP surface's scheduled pass.
func cmdRepair(ctx context.Context, args []string) int {
	st, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice repair:", err)
		return exitUsage
	}
	defer st.Close()

	n, err := st.RepairPass(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice repair:", err)
		return exitUsage
	}
	fmt.Printf("reconciled %d journal(s)\n", n)
	return exitOK
}
