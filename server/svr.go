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

package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/server/api"
	"github.com/zintix-labs/duckdice-bot/server/app"
	"github.com/zintix-labs/duckdice-bot/server/netsvr"
	"github.com/zintix-labs/duckdice-bot/server/repair"
	"github.com/zintix-labs/duckdice-bot/server/svrcfg"
)

// repairSchedule is the offline repair pass's cron spec.
const repairSchedule = "@every 5m"

// Run is the default server entrypoint (assembler + runtime starter).
//
// It validates the provided SvrCfg, creates a default HTTP server adapter,
// registers routes (catalog, session inspection, metrics, healthz), and
// starts the app lifecycle. This surface is a thin collaborator: it renders
// what engine/store already computed and carries none of the engine's own
// invariants.
func Run(sCfg *svrcfg.SvrCfg) {
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	svr := netsvr.NewChiServer(sCfg.Addr)

	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		sCfg.Log.Error("register route error:" + err.Error())
		return
	}

	a := app.NewWith(svr)
	if rc, err := repair.New(sCfg.Store, sCfg.Log, repairSchedule); err != nil {
		sCfg.Log.Error("repair component disabled: " + err.Error())
	} else {
		a.Register(rc)
	}

	sCfg.Log.Info("[duckdice-bot] listening on http://localhost" + svr.Address())
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
	}
}

// RunWithSvr is the same as Run, but lets callers inject a custom NetSvr
// (router adapter / listener / server lifecycle integration).
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) {
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if svr == nil {
		sCfg.Log.Error(errs.NewFatal("svr is required").Error())
		return
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		sCfg.Log.Error(errs.NewFatal("default server is not ready").Error())
		return
	}

	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		sCfg.Log.Error("register route error:" + err.Error())
		return
	}

	a := app.NewWith(svr)
	if rc, err := repair.New(sCfg.Store, sCfg.Log, repairSchedule); err != nil {
		sCfg.Log.Error("repair component disabled: " + err.Error())
	} else {
		a.Register(rc)
	}

	sCfg.Log.Info("[duckdice-bot] listening")
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
	}
}
