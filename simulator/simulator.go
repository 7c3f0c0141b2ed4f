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

// Package simulator implements diceapi.DiceApi deterministically: same
// seed, same request sequence, same BetResult sequence. It is the
// DiceApi the comparison harness and every regression test drive instead
// of the live client.
package simulator

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"sync"
	"time"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/corefmt"
	"github.com/zintix-labs/duckdice-bot/diceapi"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/rng"
	"github.com/zintix-labs/duckdice-bot/verifier"
)

// Config parameterizes a simulator run.
type Config struct {
	Seed            int64
	HouseEdge       float64 // default 0.03
	StartingBalance money.Decimal
	Currency        money.Currency
	Clock           bet.Clock // nil means bet.RealClock{}

	// Replay, if non-nil, makes the simulator read rolls from a prior bet
	// log instead of drawing from the PRNG.
	Replay *Replay
}

// Simulator is a deterministic, in-memory DiceApi implementation.
//
// Dice rolls come from the same committed-seed SHA-256 scheme the live
// house uses (server_seed + client_seed + nonce, package verifier's exact
// formula), with both seeds derived deterministically from Config.Seed. A
// batch verification over any simulated journal therefore passes by
// construction, and a given seed still reproduces the whole roll sequence.
// Range rolls and strategy-side randomness draw from the PCG stream.
type Simulator struct {
	mu      sync.Mutex
	cfg     Config
	core    *rng.Core
	balance money.Decimal
	seen    map[string]bet.Result // idempotency key -> result, for the "submit twice" law

	serverSeed     string
	serverSeedHash string
	clientSeed     string
	nonce          int64
	betSeq         int64
}

// New builds a Simulator. HouseEdge defaults to 0.03 when zero.
func New(cfg Config) *Simulator {
	if cfg.HouseEdge == 0 {
		cfg.HouseEdge = 0.03
	}
	core := rng.New(rng.Default().New(cfg.Seed))
	serverSeed := drawSeedHex(core, 4)
	sum := sha256.Sum256([]byte(serverSeed))
	return &Simulator{
		cfg:            cfg,
		core:           core,
		balance:        cfg.StartingBalance,
		seen:           make(map[string]bet.Result, 64),
		serverSeed:     serverSeed,
		serverSeedHash: corefmt.EncodeHex(sum[:]),
		clientSeed:     "sim-" + drawSeedHex(core, 2),
	}
}

// drawSeedHex renders n PRNG draws as a hex string, the deterministic
// stand-in for the house's crypto/rand seed generation.
func drawSeedHex(core *rng.Core, n int) string {
	b := make([]byte, 8*n)
	for i := 0; i < n; i++ {
		binary.BigEndian.PutUint64(b[i*8:], core.Uint64())
	}
	return corefmt.EncodeHex(b)
}

// Core exposes the simulator's PRNG stream so the engine can hand the same
// stream to a strategy via bet.Context.Rand — one seed drives both the
// bet outcomes and any strategy-side randomness.
func (s *Simulator) Core() *rng.Core { return s.core }

func (s *Simulator) now() time.Time {
	clock := s.cfg.Clock
	if clock == nil {
		clock = bet.RealClock{}
	}
	return clock.Now()
}

// drawDiceRoll derives the next dice roll. In replay mode the recorded
// sequence is authoritative and no fairness fields are attached (the
// original seeds are not recoverable from a roll log); otherwise the roll
// comes from the provably-fair formula at the current nonce.
func (s *Simulator) drawDiceRoll() (float64, int64, error) {
	if s.cfg.Replay != nil {
		roll, err := s.cfg.Replay.NextDice()
		return roll, -1, err
	}
	nonce := s.nonce
	s.nonce++
	roll, _ := verifier.Recompute(s.serverSeed, s.clientSeed, nonce)
	return roll, nonce, nil
}

func (s *Simulator) drawRangeRoll() (int, error) {
	if s.cfg.Replay != nil {
		return s.cfg.Replay.NextRange()
	}
	return s.core.IntN(10000), nil
}

// settle applies the win/loss payout formula and updates balance,
// preserving the invariant balance_after = balance_before - stake +
// payout exactly (Decimal arithmetic only, no intermediate float).
func (s *Simulator) settle(stake money.Decimal, chance float64, won bool) (profit, balanceAfter money.Decimal) {
	if !won {
		profit = stake.Neg()
	} else {
		payout := stake.MulFloat((100.0 / chance) * (1 - s.cfg.HouseEdge))
		profit = payout.Sub(stake)
	}
	s.balance = s.balance.Add(profit)
	return profit, s.balance
}

func (s *Simulator) PlaceDice(ctx context.Context, currency money.Currency, stake money.Decimal, chance float64, side bet.Side, faucet diceapi.FaucetMode, idempotencyKey string) (bet.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prior, ok := s.seen[idempotencyKey]; ok {
		return prior, nil
	}
	if stake.Cmp(s.balance) > 0 {
		return bet.Result{}, diceapi.InsufficientFunds("stake exceeds balance")
	}
	roll, nonce, err := s.drawDiceRoll()
	if err != nil {
		return bet.Result{}, err
	}
	spec := bet.Spec{Chance: chance, Side: side}
	won := spec.WinPredicate(roll)
	profit, balanceAfter := s.settle(stake, chance, won)
	result := bet.Result{
		BetID:        s.nextBetID(),
		Timestamp:    s.now(),
		Roll:         roll,
		Won:          won,
		Profit:       profit,
		BalanceAfter: balanceAfter,
	}
	if nonce >= 0 {
		result.ServerSeedHash = s.serverSeedHash
		result.ServerSeed = s.serverSeed
		result.ClientSeed = s.clientSeed
		result.Nonce = nonce
	}
	s.seen[idempotencyKey] = result
	return result, nil
}

func (s *Simulator) PlaceRange(ctx context.Context, currency money.Currency, stake money.Decimal, lo, hi int, mode bet.RangeMode, faucet diceapi.FaucetMode, idempotencyKey string) (bet.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prior, ok := s.seen[idempotencyKey]; ok {
		return prior, nil
	}
	if stake.Cmp(s.balance) > 0 {
		return bet.Result{}, diceapi.InsufficientFunds("stake exceeds balance")
	}
	roll, err := s.drawRangeRoll()
	if err != nil {
		return bet.Result{}, err
	}
	spec := bet.Spec{IsRange: true, Low: lo, High: hi, Mode: mode}
	won := spec.WinPredicate(float64(roll))
	chance := spec.PayoutMultiplier()
	if chance > 0 {
		chance = 100.0 / chance // invert PayoutMultiplier back to an effective chance for settle()
	}
	profit, balanceAfter := s.settle(stake, chance, won)
	result := bet.Result{
		BetID:        s.nextBetID(),
		Timestamp:    s.now(),
		Roll:         float64(roll),
		Won:          won,
		Profit:       profit,
		BalanceAfter: balanceAfter,
	}
	s.seen[idempotencyKey] = result
	return result, nil
}

// nextBetID assigns the simulator's monotonic bet identifier, the in-process
// stand-in for the opaque id the live API returns.
func (s *Simulator) nextBetID() string {
	s.betSeq++
	return "sim-" + strconv.FormatInt(s.betSeq, 10)
}

func (s *Simulator) Balance(ctx context.Context, currency money.Currency) (money.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance, nil
}

func (s *Simulator) ClaimFaucet(ctx context.Context, currency money.Currency) (diceapi.FaucetClaim, error) {
	return diceapi.FaucetClaim{}, diceapi.Unsupported("faucet claims are not modeled by the simulator")
}

func (s *Simulator) ListCurrencies(ctx context.Context) ([]money.Currency, error) {
	return []money.Currency{s.cfg.Currency}, nil
}
