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

// Package api registers the HTTP collaborator surface: it renders what the engine and store already
// computed and carries none of the core's own invariants.
package api

import (
	"log/slog"

	v1 "github.com/zintix-labs/duckdice-bot/server/api/v1"
	"github.com/zintix-labs/duckdice-bot/server/netsvr"
	"github.com/zintix-labs/duckdice-bot/server/netsvr/middleware"
	"github.com/zintix-labs/duckdice-bot/server/svrcfg"
)

// RegisterRoutes wires every handler onto svr based on sCfg.Mode.
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	registerMiddleware(svr, sCfg.Log)

	svr.Get("/healthz", v1.Healthz)
	svr.Get("/metrics", v1.NewMetricsHandler(sCfg.Store).ServeHTTP)

	if sCfg.Mode != svrcfg.ModeDev {
		return nil
	}

	sessions, err := v1.NewSessionsHandler(sCfg.Store)
	if err != nil {
		return err
	}
	strategies, err := v1.NewStrategiesHandler()
	if err != nil {
		return err
	}

	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/sessions/{id}", sessions.Get)
		vOne.Get("/strategies", strategies.List)
		vOne.Get("/strategies/{name}", strategies.Show)
	})
	return nil
}

func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover)
	svr.Use(middleware.Compression)
}
