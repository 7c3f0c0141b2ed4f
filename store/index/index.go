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

// Package index is the SQLite-backed session/bet index the HTTP surface
// (session detail with its risk report, /metrics) and the repair pass query
// instead of replaying JSONL journals; compare and verifier work on bet
// slices and do not read it: jmoiron/sqlx over the embedded modernc.org/sqlite driver,
// short transactions, one history.db per config dir.
package index

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/zintix-labs/duckdice-bot/engine"
	"github.com/zintix-labs/duckdice-bot/errs"
)

// Index is the shared, process-wide SQLite connection. Concurrent
// sessions write through short transactions; reads never
// block on the JSONL journals.
type Index struct {
	db *sqlx.DB
}

// Open opens (creating if absent) the SQLite database at path and applies
// the embedded schema migrations.
func Open(ctx context.Context, path string) (*Index, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, errs.StoreError("index: open " + path + ": " + err.Error())
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite: single-writer, avoids SQLITE_BUSY under our short-tx discipline
	if err := applyMigrations(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func (x *Index) Close() error { return x.db.Close() }

// SessionRow is the sessions table shape.
type SessionRow struct {
	SessionID       string  `db:"session_id"`
	StartTs         int64   `db:"start_ts"`
	EndTs           *int64  `db:"end_ts"`
	Mode            string  `db:"mode"`
	Strategy        string  `db:"strategy"`
	Currency        string  `db:"currency"`
	ParamsJSON      string  `db:"params_json"`
	StartingBalance string  `db:"starting_balance"`
	EndingBalance   *string `db:"ending_balance"`
	BetCount        int     `db:"bet_count"`
	WinCount        int     `db:"win_count"`
	Profit          *string `db:"profit"`
	StopReason      *string `db:"stop_reason"`
}

// BetRow is the bets table shape.
type BetRow struct {
	BetID        string  `db:"bet_id"`
	SessionID    string  `db:"session_id"`
	Ts           int64   `db:"ts"`
	Stake        string  `db:"stake"`
	Chance       float64 `db:"chance"`
	Side         string  `db:"side"`
	Won          bool    `db:"won"`
	Profit       string  `db:"profit"`
	BalanceAfter string  `db:"balance_after"`
}

// StartSession inserts the initial session row at session_started.
func (x *Index) StartSession(ctx context.Context, row SessionRow) error {
	_, err := x.db.NamedExecContext(ctx, `
		INSERT INTO sessions (session_id, start_ts, mode, strategy, currency, params_json, starting_balance)
		VALUES (:session_id, :start_ts, :mode, :strategy, :currency, :params_json, :starting_balance)
	`, row)
	if err != nil {
		return errs.StoreError("index: insert session: " + err.Error())
	}
	return nil
}

// FinishSession closes out a session row at session_stopped, inside a
// single short transaction.
func (x *Index) FinishSession(ctx context.Context, sessionID string, endTs int64, endingBalance string, betCount, winCount int, profit, stopReason string) error {
	tx, err := x.db.BeginTxx(ctx, nil)
	if err != nil {
		return errs.StoreError("index: begin tx: " + err.Error())
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		UPDATE sessions
		SET end_ts = ?, ending_balance = ?, bet_count = ?, win_count = ?, profit = ?, stop_reason = ?
		WHERE session_id = ?
	`, endTs, endingBalance, betCount, winCount, profit, stopReason, sessionID)
	if err != nil {
		return errs.StoreError("index: update session: " + err.Error())
	}
	if err := tx.Commit(); err != nil {
		return errs.StoreError("index: commit: " + err.Error())
	}
	return nil
}

// InsertBet records one settled bet. ReconcileSession calls it once per
// journaled bet, after the session stops or in the repair pass; the short
// transaction discipline means write contention across concurrent
// sessions is not a concern at human-scale bet rates.
func (x *Index) InsertBet(ctx context.Context, row BetRow) error {
	_, err := x.db.NamedExecContext(ctx, `
		INSERT INTO bets (bet_id, session_id, ts, stake, chance, side, won, profit, balance_after)
		VALUES (:bet_id, :session_id, :ts, :stake, :chance, :side, :won, :profit, :balance_after)
	`, row)
	if err != nil {
		return errs.StoreError("index: insert bet: " + err.Error())
	}
	return nil
}

// Session fetches one session row by id.
func (x *Index) Session(ctx context.Context, sessionID string) (SessionRow, error) {
	var row SessionRow
	if err := x.db.GetContext(ctx, &row, `SELECT * FROM sessions WHERE session_id = ?`, sessionID); err != nil {
		return SessionRow{}, errs.StoreError("index: get session: " + err.Error())
	}
	return row, nil
}

// BetsBySession fetches every bet row for a session, ordered by ts, the
// shape the metrics/risk and verifier packages stream over.
func (x *Index) BetsBySession(ctx context.Context, sessionID string) ([]BetRow, error) {
	var rows []BetRow
	if err := x.db.SelectContext(ctx, &rows, `SELECT * FROM bets WHERE session_id = ? ORDER BY ts`, sessionID); err != nil {
		return nil, errs.StoreError("index: bets by session: " + err.Error())
	}
	return rows, nil
}

// SessionsByStrategy fetches sessions for one strategy, most recent first,
// backing the CLI/HTTP `strategies`/`show` history views.
func (x *Index) SessionsByStrategy(ctx context.Context, strategyName string, limit int) ([]SessionRow, error) {
	var rows []SessionRow
	if err := x.db.SelectContext(ctx, &rows, `
		SELECT * FROM sessions WHERE strategy = ? ORDER BY start_ts DESC LIMIT ?
	`, strategyName, limit); err != nil {
		return nil, errs.StoreError("index: sessions by strategy: " + err.Error())
	}
	return rows, nil
}

// Totals is the aggregate snapshot the HTTP surface's /metrics endpoint
// scrapes into Prometheus metrics (server/api/v1/metrics.go): one SELECT per
// scrape over the sessions/bets tables, no in-process counters to keep in
// sync across concurrent sessions.
type Totals struct {
	Sessions     int64 `db:"sessions"`
	OpenSessions int64 `db:"open_sessions"`
	Bets         int64 `db:"bets"`
	Wins         int64 `db:"wins"`
}

// Totals computes the current process-wide aggregate snapshot.
func (x *Index) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	if err := x.db.GetContext(ctx, &t, `
		SELECT
			(SELECT COUNT(*) FROM sessions) AS sessions,
			(SELECT COUNT(*) FROM sessions WHERE end_ts IS NULL) AS open_sessions,
			(SELECT COUNT(*) FROM bets) AS bets,
			(SELECT COUNT(*) FROM bets WHERE won) AS wins
	`); err != nil {
		return Totals{}, errs.StoreError("index: totals: " + err.Error())
	}
	return t, nil
}

// ReconcileSession replays one journal's records (store/journal.ReadAll's
// output, passed in as decoded engine payloads to avoid an import cycle)
// into the index.
// This is the "reconcile to SQLite on session stop or during an offline
// repair pass" path, used when a process died before
// FinishSession/InsertBet committed.
func (x *Index) ReconcileSession(ctx context.Context, started engine.SessionStartedPayload, bets []engine.BetExecutedPayload, stopped *engine.SessionStoppedPayload) error {
	paramsJSON := "{}"
	if len(started.Params) > 0 {
		if raw, err := json.Marshal(started.Params); err == nil {
			paramsJSON = string(raw)
		}
	}
	if err := x.StartSession(ctx, SessionRow{
		SessionID:       started.SessionID,
		StartTs:         started.StartTs.UnixNano(),
		Mode:            started.Mode,
		Strategy:        started.Strategy,
		Currency:        started.Currency,
		ParamsJSON:      paramsJSON,
		StartingBalance: started.StartingBalance,
	}); err != nil {
		return err
	}
	for _, b := range bets {
		side := b.Result.Spec.Side.String()
		if err := x.InsertBet(ctx, BetRow{
			BetID:        b.Result.BetID,
			SessionID:    started.SessionID,
			Ts:           b.Result.Timestamp.UnixNano(),
			Stake:        b.Result.Spec.Amount.String(),
			Chance:       b.Result.Spec.Chance,
			Side:         side,
			Won:          b.Result.Won,
			Profit:       b.Result.Profit.String(),
			BalanceAfter: b.Result.BalanceAfter.String(),
		}); err != nil {
			return err
		}
	}
	if stopped != nil {
		s := stopped.Summary
		if err := x.FinishSession(ctx, started.SessionID, s.EndedAt.UnixNano(), s.EndingBalance.String(), s.BetCount, s.WinCount, s.Profit.String(), s.StopReason.String()); err != nil {
			return err
		}
	}
	return nil
}
