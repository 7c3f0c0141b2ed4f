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

// Package svrcfg is the assembled configuration the HTTP collaborator
// surface needs to come up:
// the shared store (sessions/bets SQLite index), the strategy catalog it
// renders, a logger, and a listen address. RunMode's dev/prod split
// separates a local tooling surface from a minimal production one.
package svrcfg

import (
	"log/slog"

	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/server/logger"
	"github.com/zintix-labs/duckdice-bot/store"
)

// RunMode controls which HTTP endpoints are exposed by the server router.
type RunMode uint8

const (
	// ModeDev enables the full surface, including /v1/sessions/{id} detail
	// lookups and /v1/strategies schema dumps. Intended for local
	// inspection alongside the CLI.
	ModeDev RunMode = iota
	// ModeProd exposes only /healthz and /metrics: liveness and scraping.
	// /metrics reads aggregate totals from the store on each scrape; no
	// endpoint reads individual sessions.
	ModeProd
)

// SvrCfg bundles everything server/api's router needs to register routes.
type SvrCfg struct {
	Log   *slog.Logger
	Store *store.Store
	Addr  string
	Mode  RunMode
}

// Valid fills in safe defaults (a dev-mode logger if none was given) and
// rejects configurations the router cannot serve.
func (sc *SvrCfg) Valid() error {
	if sc.Log == nil {
		sc.Log = logger.NewDefaultLogger(logger.ModeDev)
	}
	if sc.Store == nil {
		return errs.NewFatal("svrcfg: store is required")
	}
	if sc.Addr == "" {
		sc.Addr = ":5808"
	}
	return nil
}
