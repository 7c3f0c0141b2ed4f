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

package simulator

import "github.com/zintix-labs/duckdice-bot/errs"

// Replay feeds the simulator a fixed sequence of rolls recorded from a
// prior bet log instead of drawing from the PRNG. Dice and
// range rolls are tracked on independent cursors, since a session that
// mixes dice and range bets advances each roll kind's history separately.
type Replay struct {
	diceRolls  []float64
	rangeRolls []int
	diceAt     int
	rangeAt    int
}

// NewReplay builds a Replay over a recorded dice-roll sequence and a
// recorded range-roll sequence, each consumed in order as the simulator
// places bets of the matching kind.
func NewReplay(diceRolls []float64, rangeRolls []int) *Replay {
	return &Replay{diceRolls: diceRolls, rangeRolls: rangeRolls}
}

// NewReplayFromResults builds a Replay by extracting rolls from a prior
// bet log in original settlement order, splitting dice and range bets by
// whether the originating spec was a range bet.
func NewReplayFromResults(results []ReplaySource) *Replay {
	r := &Replay{}
	for _, res := range results {
		if res.IsRange {
			r.rangeRolls = append(r.rangeRolls, int(res.Roll))
		} else {
			r.diceRolls = append(r.diceRolls, res.Roll)
		}
	}
	return r
}

// ReplaySource is the minimal shape NewReplayFromResults needs from a
// journaled or SQLite-indexed bet row.
type ReplaySource struct {
	Roll    float64
	IsRange bool
}

// NextDice returns the next dice roll in the recorded sequence.
func (r *Replay) NextDice() (float64, error) {
	if r.diceAt >= len(r.diceRolls) {
		return 0, errs.NewKind(errs.Warn, errs.KindUnreachable, "replay: out of data (dice)")
	}
	roll := r.diceRolls[r.diceAt]
	r.diceAt++
	return roll, nil
}

// NextRange returns the next range roll in the recorded sequence.
func (r *Replay) NextRange() (int, error) {
	if r.rangeAt >= len(r.rangeRolls) {
		return 0, errs.NewKind(errs.Warn, errs.KindUnreachable, "replay: out of data (range)")
	}
	roll := r.rangeRolls[r.rangeAt]
	r.rangeAt++
	return roll, nil
}

// Remaining reports how many rolls of each kind are left to replay.
func (r *Replay) Remaining() (dice, rng int) {
	return len(r.diceRolls) - r.diceAt, len(r.rangeRolls) - r.rangeAt
}
