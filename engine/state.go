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

// State is the auto-bet session's lifecycle state: Idle -> Running <-> Paused
// -> Stopped. Stop is reachable from any state.
type State uint8

const (
	Idle State = iota
	Running
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StopKind is the tagged value carried in the session summary. Ordered by
// precedence: when several stop conditions become true in the same tick,
// the lowest index wins.
type StopKind uint8

const (
	StopNone StopKind = iota
	StopExternal
	StopMaxBets
	StopMaxLosses
	StopMaxWins
	StopLoss
	StopTakeProfit
	StopStrategy
	StopValidatorRejected
	StopBankrupt
	StopApiError
)

var stopNames = map[StopKind]string{
	StopNone:              "",
	StopExternal:          "external",
	StopMaxBets:           "max_bets",
	StopMaxLosses:         "max_losses",
	StopMaxWins:           "max_wins",
	StopLoss:              "stop_loss",
	StopTakeProfit:        "take_profit",
	StopStrategy:          "strategy",
	StopValidatorRejected: "validator_rejected",
	StopBankrupt:          "bankrupt",
	StopApiError:          "api_error",
}

func (k StopKind) String() string {
	if s, ok := stopNames[k]; ok {
		return s
	}
	return "unknown"
}

// StopReason pairs the tagged kind with a human-readable detail, e.g.
// "strategy: max_streak reached" (String renders "<kind>: <detail>").
type StopReason struct {
	Kind   StopKind
	Detail string
}

func (r StopReason) String() string {
	if r.Detail == "" {
		return r.Kind.String()
	}
	return r.Kind.String() + ": " + r.Detail
}
