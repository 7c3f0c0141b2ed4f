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

// Package verifier independently recomputes a provably-fair roll from the
// house's committed seeds, so a bet's outcome can be
// audited without trusting the API response. Digest rendering is grounded
// on corefmt.EncodeHex.
package verifier

import (
	"crypto/sha256"
	"strconv"
	"strings"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/corefmt"
)

const tolerance = 1e-3

// Verification is the outcome of recomputing one roll.
type Verification struct {
	BetID        string
	Roll         float64
	Hash         string
	StoredRoll   float64
	Verified     bool
	Delta        float64
}

// Recompute derives the roll from the committed seeds: msg = server_seed ||
// client_seed || ascii_decimal(nonce), h = SHA-256(msg), k = first five hex
// characters of h read as base-16, roll = (k mod 100000) / 1000.0.
func Recompute(serverSeed, clientSeed string, nonce int64) (roll float64, hash string) {
	msg := serverSeed + clientSeed + strconv.FormatInt(nonce, 10)
	sum := sha256.Sum256([]byte(msg))
	hash = corefmt.EncodeHex(sum[:])

	k, err := strconv.ParseInt(hash[:5], 16, 64)
	if err != nil {
		// corefmt.EncodeHex of a SHA-256 sum is always 64 lowercase hex
		// characters; this is unreachable unless Hash is tampered with
		// before parsing.
		return 0, hash
	}
	roll = float64(k%100000) / 1000.0
	return roll, hash
}

// Verify recomputes the roll for one settled bet.Result and compares it
// against the stored roll within the 1e-3 tolerance.
func Verify(r bet.Result) Verification {
	roll, hash := Recompute(r.ServerSeed, r.ClientSeed, r.Nonce)
	delta := roll - r.Roll
	if delta < 0 {
		delta = -delta
	}
	return Verification{
		BetID:      r.BetID,
		Roll:       roll,
		Hash:       hash,
		StoredRoll: r.Roll,
		Verified:   delta < tolerance,
		Delta:      delta,
	}
}

// BatchResult summarizes verifying many bets in one pass.
type BatchResult struct {
	Total      int
	Passed     int
	PassRate   float64
	Failed     []Verification
}

// VerifyBatch verifies every result and returns the pass rate plus the
// full detail of every failure, never just a failing-id list — the delta
// and recomputed hash are what a human needs to investigate a mismatch.
func VerifyBatch(results []bet.Result) BatchResult {
	out := BatchResult{Total: len(results)}
	for _, r := range results {
		v := Verify(r)
		if v.Verified {
			out.Passed++
		} else {
			out.Failed = append(out.Failed, v)
		}
	}
	if out.Total > 0 {
		out.PassRate = float64(out.Passed) / float64(out.Total)
	}
	return out
}

// FailedIDs extracts just the bet ids from a batch's failures, for
// callers that only need ids.
func (b BatchResult) FailedIDs() []string {
	if len(b.Failed) == 0 {
		return nil
	}
	ids := make([]string, len(b.Failed))
	for i, v := range b.Failed {
		ids[i] = v.BetID
	}
	return ids
}

// String renders a one-line human summary, e.g. for CLI output.
func (b BatchResult) String() string {
	if b.Total == 0 {
		return "verifier: no bets to check"
	}
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(b.Passed))
	sb.WriteByte('/')
	sb.WriteString(strconv.Itoa(b.Total))
	sb.WriteString(" bets verified (")
	sb.WriteString(strconv.FormatFloat(b.PassRate*100, 'f', 2, 64))
	sb.WriteString("%)")
	return sb.String()
}
