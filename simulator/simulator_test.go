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

import (
	"context"
	"testing"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/diceapi"
	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/verifier"
)

func newSim(seed int64) *Simulator {
	return New(Config{
		Seed:            seed,
		StartingBalance: money.MustParse("100.00000000"),
		Currency:        "btc",
	})
}

func TestSimulator_DeterministicGivenSameSeedAndRequests(t *testing.T) {
	ctx := context.Background()
	a := newSim(42)
	b := newSim(42)

	for i := 0; i < 20; i++ {
		ra, err := a.PlaceDice(ctx, "btc", money.MustParse("1.00000000"), 49.5, bet.SideHigh, diceapi.FaucetOff, fakeKey(i, "a"))
		if err != nil {
			t.Fatalf("bet %d (a): %v", i, err)
		}
		rb, err := b.PlaceDice(ctx, "btc", money.MustParse("1.00000000"), 49.5, bet.SideHigh, diceapi.FaucetOff, fakeKey(i, "b"))
		if err != nil {
			t.Fatalf("bet %d (b): %v", i, err)
		}
		if ra.Roll != rb.Roll || ra.Won != rb.Won || ra.BalanceAfter.Cmp(rb.BalanceAfter) != 0 {
			t.Fatalf("bet %d diverged: a=%+v b=%+v", i, ra, rb)
		}
	}
}

func TestSimulator_IdempotencyKeyReplaysPriorResult(t *testing.T) {
	ctx := context.Background()
	s := newSim(1)
	key := "same-key"

	first, err := s.PlaceDice(ctx, "btc", money.MustParse("1.00000000"), 49.5, bet.SideHigh, diceapi.FaucetOff, key)
	if err != nil {
		t.Fatalf("first bet: %v", err)
	}
	second, err := s.PlaceDice(ctx, "btc", money.MustParse("5.00000000"), 10, bet.SideLow, diceapi.FaucetOff, key)
	if err != nil {
		t.Fatalf("second bet: %v", err)
	}
	if first != second {
		t.Fatalf("resubmitting the same idempotency key changed the result: %+v vs %+v", first, second)
	}
}

func TestSimulator_InsufficientFundsWhenStakeExceedsBalance(t *testing.T) {
	ctx := context.Background()
	s := New(Config{Seed: 3, StartingBalance: money.MustParse("0.00000005"), Currency: "btc"})

	_, err := s.PlaceDice(ctx, "btc", money.MustParse("1.00000000"), 49.5, bet.SideHigh, diceapi.FaucetOff, "k")
	if err == nil {
		t.Fatalf("expected InsufficientFunds, got nil")
	}
}

func TestSimulator_ReplayModeConsumesRecordedRollsInOrder(t *testing.T) {
	ctx := context.Background()
	replay := NewReplay([]float64{10.000, 90.000}, nil)
	s := New(Config{
		Seed:            5,
		StartingBalance: money.MustParse("100.00000000"),
		Currency:        "btc",
		Replay:          replay,
	})

	r1, err := s.PlaceDice(ctx, "btc", money.MustParse("1.00000000"), 49.5, bet.SideLow, diceapi.FaucetOff, "r1")
	if err != nil {
		t.Fatalf("r1: %v", err)
	}
	if r1.Roll != 10.000 {
		t.Fatalf("r1.Roll = %v, want 10.000", r1.Roll)
	}
	r2, err := s.PlaceDice(ctx, "btc", money.MustParse("1.00000000"), 49.5, bet.SideLow, diceapi.FaucetOff, "r2")
	if err != nil {
		t.Fatalf("r2: %v", err)
	}
	if r2.Roll != 90.000 {
		t.Fatalf("r2.Roll = %v, want 90.000", r2.Roll)
	}

	_, err = s.PlaceDice(ctx, "btc", money.MustParse("1.00000000"), 49.5, bet.SideLow, diceapi.FaucetOff, "r3")
	ke, ok := errs.AsKind(err)
	if !ok || ke.K != errs.KindUnreachable {
		t.Fatalf("expected replay exhaustion error, got %v", err)
	}
}

func TestSimulator_DiceRollsVerifyAgainstCommittedSeeds(t *testing.T) {
	ctx := context.Background()
	s := newSim(42)

	var results []bet.Result
	for i := 0; i < 50; i++ {
		r, err := s.PlaceDice(ctx, "btc", money.MustParse("0.10000000"), 49.5, bet.SideHigh, diceapi.FaucetOff, fakeKey(i, "v"))
		if err != nil {
			t.Fatalf("bet %d: %v", i, err)
		}
		if r.ServerSeed == "" || r.ClientSeed == "" || r.ServerSeedHash == "" {
			t.Fatalf("bet %d is missing fairness fields: %+v", i, r)
		}
		if r.Nonce != int64(i) {
			t.Fatalf("bet %d nonce = %d, want %d", i, r.Nonce, i)
		}
		results = append(results, r)
	}

	batch := verifier.VerifyBatch(results)
	if batch.PassRate != 1.0 {
		t.Fatalf("pass rate = %v, want 1.0; failed ids: %v", batch.PassRate, batch.FailedIDs())
	}
}

func fakeKey(i int, tag string) string {
	return tag + "-" + string(rune('a'+i))
}
