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

package engine

import (
	"time"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/validator"
)

// RecordType names one line of the per-session journal.
type RecordType string

const (
	RecordSessionStarted RecordType = "session_started"
	RecordBetExecuted    RecordType = "bet_executed"
	RecordBetAdjusted    RecordType = "bet_adjusted"
	RecordFaucetClaimed  RecordType = "faucet_claimed"
	RecordSessionStopped RecordType = "session_stopped"
)

// Record is one journal line. Payload is type-asserted by readers based on
// Type; the engine never reads its own journal back (store/journal does,
// for the repair pass).
type Record struct {
	Type       RecordType `json:"type"`
	MonotonicTs int64     `json:"monotonic_ts"`
	Payload    any        `json:"payload"`
}

// SessionStartedPayload is the first line of every journal.
type SessionStartedPayload struct {
	SessionID       string `json:"session_id"`
	Mode            string `json:"mode"`
	Currency        string `json:"currency"`
	Strategy        string `json:"strategy"`
	Params          map[string]string `json:"params"`
	StartingBalance string `json:"starting_balance"`
	StartTs         time.Time `json:"start_ts"`
}

// BetExecutedPayload mirrors bet.Result plus the tick index.
type BetExecutedPayload struct {
	Index  int        `json:"index"`
	Result bet.Result `json:"result"`
}

// BetAdjustedPayload carries the validator's side-channel warnings — never
// silent.
type BetAdjustedPayload struct {
	Index       int                     `json:"index"`
	Adjustments []validator.Adjustment  `json:"adjustments"`
}

// FaucetClaimedPayload records a successful ClaimFaucet call, so the
// journal replay (and store/index reconciliation) can account for balance
// that entered the session without a matching BetExecuted line.
type FaucetClaimedPayload struct {
	Amount        string `json:"amount"`
	BalanceAfter  string `json:"balance_after"`
	NextClaimAt   int64  `json:"next_claim_at"`
}

// SessionStoppedPayload is the last line, fsynced before the journal is
// considered durable.
type SessionStoppedPayload struct {
	Summary Summary `json:"summary"`
}

// Journaler is the append-only sink the engine writes to. Package
// store/journal implements this against a JSONL file; tests may use an
// in-memory fake. Sync is only required to be durable after
// RecordSessionStopped, matching the "fsync on session_stopped" rule.
type Journaler interface {
	Append(rec Record) error
	Sync() error
}

// NopJournal discards everything; used when a caller (e.g. a test that
// never inspects the records) doesn't want per-bet journals, and by New
// when it is given a nil journal.
type NopJournal struct{}

func (NopJournal) Append(Record) error { return nil }
func (NopJournal) Sync() error         { return nil }
