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

	"github.com/zintix-labs/duckdice-bot/money"
)

// Summary is emitted once a session transitions to Stopped.
type Summary struct {
	SessionID       string
	StopReason      StopReason
	BetCount        int
	WinCount        int
	LossCount       int
	StartingBalance money.Decimal
	EndingBalance   money.Decimal
	Profit          money.Decimal
	TotalWagered    money.Decimal
	MaxWinStreak    int
	MaxLossStreak   int
	StartedAt       time.Time
	EndedAt         time.Time
	Duration        time.Duration
}
