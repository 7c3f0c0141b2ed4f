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

// Package repair runs the offline journal-reconciliation pass on a
// schedule, so journals left behind by a process that died mid-session
// eventually make it into the SQLite index without a human running
// `duckdice repair` by hand. It implements server/app.Component so it can
// share the same lifecycle as the HTTP server.
package repair

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/zintix-labs/duckdice-bot/store"
)

// Component periodically calls store.Store.RepairPass.
type Component struct {
	store *store.Store
	log   *slog.Logger
	cron  *cron.Cron
}

// New builds a repair Component that runs on the given cron spec (e.g.
// "@every 5m"). A nil logger disables log output.
func New(st *store.Store, log *slog.Logger, spec string) (*Component, error) {
	c := cron.New()
	comp := &Component{store: st, log: log, cron: c}
	if _, err := c.AddFunc(spec, comp.runOnce); err != nil {
		return nil, err
	}
	return comp, nil
}

func (c *Component) runOnce() {
	n, err := c.store.RepairPass(context.Background())
	if err != nil {
		if c.log != nil {
			c.log.Error("repair pass failed", slog.Any("err", err))
		}
		return
	}
	if n > 0 && c.log != nil {
		c.log.Info("repair pass reconciled journals", slog.Int("count", n))
	}
}

// Run starts the cron scheduler and blocks until Shutdown is called.
func (c *Component) Run() error {
	c.cron.Run()
	return nil
}

// Shutdown stops the scheduler, waiting for any in-flight run to finish or
// ctx to expire.
func (c *Component) Shutdown(ctx context.Context) error {
	stopCtx := c.cron.Stop()
	select {
	case <-stopCtx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
