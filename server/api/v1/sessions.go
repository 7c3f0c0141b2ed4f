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

package v1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/riskstats"
	"github.com/zintix-labs/duckdice-bot/server/httperr"
	"github.com/zintix-labs/duckdice-bot/store"
	"github.com/zintix-labs/duckdice-bot/store/index"
)

// SessionsHandler renders a stored session plus its bet count and risk
// report, read straight out of the SQLite index, which holds a session once
// its journal has been reconciled (at session stop or by the repair pass). It performs no writes and owns no engine state.
type SessionsHandler struct {
	store *store.Store
}

func NewSessionsHandler(st *store.Store) (*SessionsHandler, error) {
	if st == nil {
		return nil, errs.NewFatal("sessions handler: store is required")
	}
	return &SessionsHandler{store: st}, nil
}

// sessionResponse is the wire shape; kept separate from index.SessionRow
// so the HTTP contract doesn't drift if the SQLite column set changes.
type sessionResponse struct {
	SessionID       string  `json:"session_id"`
	Mode            string  `json:"mode"`
	Strategy        string  `json:"strategy"`
	Currency        string  `json:"currency"`
	StartingBalance string  `json:"starting_balance"`
	EndingBalance   *string `json:"ending_balance,omitempty"`
	BetCount        int     `json:"bet_count"`
	WinCount        int     `json:"win_count"`
	Profit          *string `json:"profit,omitempty"`
	StopReason      *string `json:"stop_reason,omitempty"`
	Running         bool    `json:"running"`

	Risk *riskstats.Report `json:"risk,omitempty"`
}

func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httperr.Errs(w, errs.NewWarn("session id is required"))
		return
	}

	row, err := h.store.Index.Session(r.Context(), id)
	if err != nil {
		httperr.Errs(w, errs.NewWarn("session not found: "+id))
		return
	}

	resp := sessionResponse{
		SessionID:       row.SessionID,
		Mode:            row.Mode,
		Strategy:        row.Strategy,
		Currency:        row.Currency,
		StartingBalance: row.StartingBalance,
		EndingBalance:   row.EndingBalance,
		BetCount:        row.BetCount,
		WinCount:        row.WinCount,
		Profit:          row.Profit,
		StopReason:      row.StopReason,
		Running:         row.EndTs == nil,
	}

	betRows, err := h.store.Index.BetsBySession(r.Context(), id)
	if err == nil && len(betRows) > 0 {
		report := riskstats.FromBets(mustParse(row.StartingBalance), toBetResults(betRows))
		resp.Risk = &report
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func mustParse(s string) money.Decimal {
	d, err := money.Parse(s)
	if err != nil {
		return money.Decimal{}
	}
	return d
}

func toBetResults(rows []index.BetRow) []bet.Result {
	out := make([]bet.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, bet.Result{
			BetID:        row.BetID,
			Won:          row.Won,
			Profit:       mustParse(row.Profit),
			BalanceAfter: mustParse(row.BalanceAfter),
			Spec: bet.Spec{
				Amount: mustParse(row.Stake),
				Chance: row.Chance,
				Side:   bet.ParseSide(row.Side),
			},
		})
	}
	return out
}
