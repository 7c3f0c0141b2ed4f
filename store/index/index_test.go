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

package index

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/engine"
	"github.com/zintix-labs/duckdice-bot/money"
)

func openTest(t *testing.T) (*Index, context.Context) {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")
	idx, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx, ctx
}

func TestStartFinishSession_RoundTrips(t *testing.T) {
	idx, ctx := openTest(t)

	if err := idx.StartSession(ctx, SessionRow{
		SessionID:       "sess-1",
		StartTs:         1000,
		Mode:            "auto",
		Strategy:        "flat",
		Currency:        "btc",
		ParamsJSON:      `{"amount":"0.00000010"}`,
		StartingBalance: "1.00000000",
	}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if err := idx.InsertBet(ctx, BetRow{
		BetID:        "bet-1",
		SessionID:    "sess-1",
		Ts:           1001,
		Stake:        "0.00000010",
		Chance:       49.5,
		Side:         "high",
		Won:          true,
		Profit:       "0.00000009",
		BalanceAfter: "1.00000009",
	}); err != nil {
		t.Fatalf("InsertBet: %v", err)
	}

	if err := idx.FinishSession(ctx, "sess-1", 2000, "1.00000009", 1, 1, "0.00000009", "max_bets"); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	row, err := idx.Session(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if row.BetCount != 1 || row.WinCount != 1 {
		t.Fatalf("got bet_count=%d win_count=%d, want 1,1", row.BetCount, row.WinCount)
	}
	if row.EndingBalance == nil || *row.EndingBalance != "1.00000009" {
		t.Fatalf("ending_balance = %v, want 1.00000009", row.EndingBalance)
	}
	if row.StopReason == nil || *row.StopReason != "max_bets" {
		t.Fatalf("stop_reason = %v, want max_bets", row.StopReason)
	}

	bets, err := idx.BetsBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("BetsBySession: %v", err)
	}
	if len(bets) != 1 || bets[0].BetID != "bet-1" {
		t.Fatalf("BetsBySession = %+v, want one row bet-1", bets)
	}
}

func TestSessionsByStrategy_OrdersNewestFirst(t *testing.T) {
	idx, ctx := openTest(t)

	for i, id := range []string{"s1", "s2", "s3"} {
		if err := idx.StartSession(ctx, SessionRow{
			SessionID:       id,
			StartTs:         int64(1000 + i),
			Mode:            "auto",
			Strategy:        "martingale",
			Currency:        "ltc",
			ParamsJSON:      "{}",
			StartingBalance: "1.00000000",
		}); err != nil {
			t.Fatalf("StartSession %s: %v", id, err)
		}
	}

	rows, err := idx.SessionsByStrategy(ctx, "martingale", 10)
	if err != nil {
		t.Fatalf("SessionsByStrategy: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].SessionID != "s3" || rows[2].SessionID != "s1" {
		t.Fatalf("order = %v, want newest first [s3 s2 s1]", []string{rows[0].SessionID, rows[1].SessionID, rows[2].SessionID})
	}
}

func TestReconcileSession_ReplaysJournalPayloads(t *testing.T) {
	idx, ctx := openTest(t)

	started := engine.SessionStartedPayload{
		SessionID:       "sess-reconcile",
		Mode:            "auto",
		Currency:        "btc",
		Strategy:        "flat",
		Params:          map[string]string{"amount": "0.00000010"},
		StartingBalance: "1.00000000",
		StartTs:         time.Unix(0, 1_000_000),
	}

	bets := []engine.BetExecutedPayload{
		{
			Index: 0,
			Result: bet.Result{
				BetID:     "b0",
				Timestamp: time.Unix(0, 2_000_000),
				Spec: bet.Spec{
					Amount: money.MustParse("0.00000010"),
					Chance: 49.5,
					Side:   bet.SideHigh,
				},
				Won:          false,
				Profit:       money.MustParse("-0.00000010"),
				BalanceAfter: money.MustParse("0.99999990"),
			},
		},
		{
			Index: 1,
			Result: bet.Result{
				BetID:     "b1",
				Timestamp: time.Unix(0, 3_000_000),
				Spec: bet.Spec{
					Amount: money.MustParse("0.00000010"),
					Chance: 49.5,
					Side:   bet.SideHigh,
				},
				Won:          true,
				Profit:       money.MustParse("0.00000009"),
				BalanceAfter: money.MustParse("0.99999999"),
			},
		},
	}

	stopped := &engine.SessionStoppedPayload{
		Summary: engine.Summary{
			SessionID:       started.SessionID,
			StopReason:      engine.StopReason{Kind: engine.StopMaxBets},
			BetCount:        2,
			WinCount:        1,
			LossCount:       1,
			StartingBalance: money.MustParse("1.00000000"),
			EndingBalance:   money.MustParse("0.99999999"),
			Profit:          money.MustParse("-0.00000001"),
			EndedAt:         time.Unix(0, 4_000_000),
		},
	}

	if err := idx.ReconcileSession(ctx, started, bets, stopped); err != nil {
		t.Fatalf("ReconcileSession: %v", err)
	}

	row, err := idx.Session(ctx, "sess-reconcile")
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if row.BetCount != 2 || row.WinCount != 1 {
		t.Fatalf("got bet_count=%d win_count=%d, want 2,1", row.BetCount, row.WinCount)
	}
	if row.StopReason == nil || *row.StopReason != "max_bets" {
		t.Fatalf("stop_reason = %v, want max_bets", row.StopReason)
	}

	rows, err := idx.BetsBySession(ctx, "sess-reconcile")
	if err != nil {
		t.Fatalf("BetsBySession: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d bet rows, want 2", len(rows))
	}
	if rows[0].BetID != "b0" || rows[1].BetID != "b1" {
		t.Fatalf("bet order = %s,%s, want b0,b1", rows[0].BetID, rows[1].BetID)
	}
	if !rows[1].Won {
		t.Fatalf("rows[1].Won = false, want true")
	}
}
