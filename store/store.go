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

// Package store ties together the two-tier durability model:
// store/journal's per-session JSONL file is the write path the
// engine uses directly (it satisfies engine.Journaler); store/index's
// SQLite database is what the HTTP surface queries (feeding riskstats for
// session detail); compare and verifier do not read it. Store.Reconcile is the glue that replays a finished
// journal into the index once a session stops, or during an offline
// repair pass over journals the process never got to reconcile.
package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/zintix-labs/duckdice-bot/engine"
	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/store/index"
	"github.com/zintix-labs/duckdice-bot/store/journal"
)

// Store bundles the journal directory and the shared SQLite index.
type Store struct {
	JournalDir string
	Index      *index.Index
}

// Open opens the SQLite index at dbPath; journalDir is created lazily by
// journal.Open per session.
func Open(ctx context.Context, journalDir, dbPath string) (*Store, error) {
	idx, err := index.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	return &Store{JournalDir: journalDir, Index: idx}, nil
}

func (s *Store) Close() error { return s.Index.Close() }

// NewJournal opens a fresh per-session journal file under JournalDir.
func (s *Store) NewJournal(sessionID string) (*journal.Writer, error) {
	return journal.Open(s.JournalDir, sessionID)
}

// Reconcile replays the journal at journalPath into the SQLite index. Safe
// to call twice on the same file only if the session_id hasn't already
// been indexed (session_id is the sessions table's primary key); the
// offline repair pass is expected to run once per unreconciled journal.
func (s *Store) Reconcile(ctx context.Context, journalPath string) error {
	raw, err := journal.ReadAll(journalPath)
	if err != nil {
		return err
	}

	var started *engine.SessionStartedPayload
	var bets []engine.BetExecutedPayload
	var stopped *engine.SessionStoppedPayload

	for _, rec := range raw {
		switch rec.Type {
		case engine.RecordSessionStarted:
			var p engine.SessionStartedPayload
			if err := json.Unmarshal(rec.Payload, &p); err != nil {
				return errs.StoreError("reconcile: decode session_started: " + err.Error())
			}
			started = &p
		case engine.RecordBetExecuted:
			p, err := journal.DecodeBetExecuted(rec)
			if err != nil {
				return err
			}
			bets = append(bets, p)
		case engine.RecordSessionStopped:
			p, err := journal.DecodeSessionStopped(rec)
			if err != nil {
				return err
			}
			stopped = &p
		}
	}
	if started == nil {
		return errs.StoreError("reconcile: journal " + journalPath + " has no session_started record")
	}
	return s.Index.ReconcileSession(ctx, *started, bets, stopped)
}

// RepairPass is the offline repair pass: a
// process died mid-session, so the journal on disk never made it into
// the SQLite index. It walks JournalDir for "<session_id>.jsonl" files,
// skips any whose session_id is already indexed (Reconcile's INSERT would
// otherwise collide with the sessions table's primary key), and replays
// the rest. Returns the count of journals it reconciled.
func (s *Store) RepairPass(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.JournalDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errs.StoreError("repair pass: read " + s.JournalDir + ": " + err.Error())
	}

	repaired := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		sessionID := strings.TrimSuffix(e.Name(), ".jsonl")
		if _, err := s.Index.Session(ctx, sessionID); err == nil {
			continue // already indexed
		}
		if err := s.Reconcile(ctx, filepath.Join(s.JournalDir, e.Name())); err != nil {
			return repaired, err
		}
		repaired++
	}
	return repaired, nil
}
