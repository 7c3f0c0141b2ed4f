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

// Package diceapi defines the abstraction the engine consumes to place
// bets, whether backed by the live HTTP client (diceapi/live) or the
// deterministic simulator (package simulator). Both implementations
// satisfy the same DiceApi interface, so the engine never knows which one
// it's driving.
package diceapi

import (
	"context"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/money"
)

// FaucetMode selects whether a bet draws from the faucet balance tier.
type FaucetMode uint8

const (
	FaucetOff FaucetMode = iota
	FaucetOn
)

// FaucetClaim is the result of claiming the faucet.
type FaucetClaim struct {
	Amount      money.Decimal
	NextClaimAt int64 // unix seconds
}

// DiceApi is the surface the engine drives every tick.
type DiceApi interface {
	PlaceDice(ctx context.Context, currency money.Currency, stake money.Decimal, chance float64, side bet.Side, faucet FaucetMode, idempotencyKey string) (bet.Result, error)
	PlaceRange(ctx context.Context, currency money.Currency, stake money.Decimal, lo, hi int, mode bet.RangeMode, faucet FaucetMode, idempotencyKey string) (bet.Result, error)
	Balance(ctx context.Context, currency money.Currency) (money.Decimal, error)
	// ClaimFaucet is optional: the simulator returns ErrUnsupported.
	ClaimFaucet(ctx context.Context, currency money.Currency) (FaucetClaim, error)
	ListCurrencies(ctx context.Context) ([]money.Currency, error)
}

// ErrorKind classifies an ApiError the way the engine needs to branch:
// whether to retry, back off, or stop the session outright.
type ErrorKind uint8

const (
	ErrInsufficientFunds ErrorKind = iota
	ErrRateLimited
	ErrTransient
	ErrRejected
	ErrNetwork
	ErrUnsupported
)

// ApiError is the error type every DiceApi method returns on failure.
type ApiError struct {
	Kind       ErrorKind
	Reason     string
	RetryAfterMs int64
}

func (e *ApiError) Error() string {
	return "diceapi: " + e.Reason
}

// Retryable reports whether the engine may retry the same idempotency key.
func (e *ApiError) Retryable() bool {
	switch e.Kind {
	case ErrRateLimited, ErrTransient, ErrNetwork:
		return true
	default:
		return false
	}
}

func InsufficientFunds(reason string) *ApiError { return &ApiError{Kind: ErrInsufficientFunds, Reason: reason} }
func RateLimited(retryAfterMs int64) *ApiError {
	return &ApiError{Kind: ErrRateLimited, Reason: "rate limited", RetryAfterMs: retryAfterMs}
}
func Transient(reason string) *ApiError  { return &ApiError{Kind: ErrTransient, Reason: reason} }
func Rejected(reason string) *ApiError   { return &ApiError{Kind: ErrRejected, Reason: reason} }
func Network(reason string) *ApiError    { return &ApiError{Kind: ErrNetwork, Reason: reason} }
func Unsupported(reason string) *ApiError { return &ApiError{Kind: ErrUnsupported, Reason: reason} }
