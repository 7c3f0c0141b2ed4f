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

// Package live implements diceapi.DiceApi against the real DuckDice HTTP
// API. Retry/backoff is exponential with jitter, applied only to
// transient failures; client-side pacing uses golang.org/x/time/rate so a
// runaway strategy can never outrun the API's own rate limit.
package live

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/diceapi"
	"github.com/zintix-labs/duckdice-bot/money"
)

const baseURL = "https://duckdice.io/api"

// RetryConfig mirrors the "base 0.5s, 3 attempts" contract from the dice
// API abstraction: exponential backoff with jitter, retried only on
// Transient/Network/5xx/429.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.2,
	}
}

// Client is the live DuckDice API client.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      RetryConfig
	apiKey     string
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

func WithRetryConfig(cfg RetryConfig) Option { return func(c *Client) { c.retry = cfg } }
func WithBaseURL(url string) Option          { return func(c *Client) { c.baseURL = url } }
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// New builds a Client authenticated with apiKey (the DUCKDICE_API_KEY).
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
		retry:      DefaultRetryConfig(),
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type placeBetRequest struct {
	Amount         string `json:"amount"`
	Chance         float64 `json:"chance"`
	IsHigh         bool   `json:"isHigh,omitempty"`
	Symbol         string `json:"symbol"`
	FaucetBet      bool   `json:"faucetBet,omitempty"`
	IdempotencyKey string `json:"clientSeed"`
}

type placeBetResponse struct {
	BetID          string  `json:"id"`
	Result         float64 `json:"result"`
	Win            bool    `json:"win"`
	Profit         string  `json:"profit"`
	Balance        string  `json:"balance"`
	ServerSeedHash string  `json:"serverSeedHash"`
	ClientSeed     string  `json:"clientSeed"`
	Nonce          int64   `json:"nonce"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return diceapi.Network(err.Error())
	}

	var lastErr error
	delay := c.retry.InitialDelay
	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		err := c.doOnce(ctx, method, path, body, out)
		if err == nil {
			return nil
		}
		lastErr = err
		apiErr, ok := err.(*diceapi.ApiError)
		if !ok || !apiErr.Retryable() {
			return err
		}
		if attempt < c.retry.MaxAttempts-1 {
			wait := delay
			if apiErr.RetryAfterMs > 0 {
				wait = time.Duration(apiErr.RetryAfterMs) * time.Millisecond
			}
			select {
			case <-ctx.Done():
				return diceapi.Network(ctx.Err().Error())
			case <-time.After(addJitter(wait, c.retry.Jitter)):
			}
			delay = nextDelay(delay, c.retry)
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return diceapi.Rejected("encode request: " + err.Error())
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return diceapi.Rejected("build request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return diceapi.Network(err.Error())
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return diceapi.RateLimited(2000)
	case resp.StatusCode >= 500:
		return diceapi.Transient(fmt.Sprintf("server error %d", resp.StatusCode))
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusConflict:
		return diceapi.InsufficientFunds(string(raw))
	case resp.StatusCode >= 400:
		return diceapi.Rejected(fmt.Sprintf("status %d: %s", resp.StatusCode, string(raw)))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return diceapi.Rejected("decode response: " + err.Error())
		}
	}
	return nil
}

func nextDelay(current time.Duration, cfg RetryConfig) time.Duration {
	next := time.Duration(float64(current) * cfg.Multiplier)
	if next > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	return next
}

func addJitter(d time.Duration, jitter float64) time.Duration {
	if jitter <= 0 {
		return d
	}
	delta := float64(d) * jitter
	return d + time.Duration(rand.Float64()*delta*2-delta)
}

func (c *Client) PlaceDice(ctx context.Context, currency money.Currency, stake money.Decimal, chance float64, side bet.Side, faucet diceapi.FaucetMode, idempotencyKey string) (bet.Result, error) {
	req := placeBetRequest{
		Amount:         stake.String(),
		Chance:         chance,
		IsHigh:         side == bet.SideHigh,
		Symbol:         currency.String(),
		FaucetBet:      faucet == diceapi.FaucetOn,
		IdempotencyKey: idempotencyKey,
	}
	var resp placeBetResponse
	if err := c.do(ctx, http.MethodPost, "/play", req, &resp); err != nil {
		return bet.Result{}, err
	}
	return decodeBetResult(resp)
}

func (c *Client) PlaceRange(ctx context.Context, currency money.Currency, stake money.Decimal, lo, hi int, mode bet.RangeMode, faucet diceapi.FaucetMode, idempotencyKey string) (bet.Result, error) {
	req := map[string]any{
		"amount":     stake.String(),
		"low":        lo,
		"high":       hi,
		"rangeIn":    mode == bet.RangeIn,
		"symbol":     currency.String(),
		"faucetBet":  faucet == diceapi.FaucetOn,
		"clientSeed": idempotencyKey,
	}
	var resp placeBetResponse
	if err := c.do(ctx, http.MethodPost, "/play-range", req, &resp); err != nil {
		return bet.Result{}, err
	}
	return decodeBetResult(resp)
}

func decodeBetResult(resp placeBetResponse) (bet.Result, error) {
	profit, err := money.Parse(resp.Profit)
	if err != nil {
		return bet.Result{}, diceapi.Rejected("malformed profit in response")
	}
	balance, err := money.Parse(resp.Balance)
	if err != nil {
		return bet.Result{}, diceapi.Rejected("malformed balance in response")
	}
	return bet.Result{
		BetID:          resp.BetID,
		Timestamp:      time.Now(),
		Roll:           resp.Result,
		Won:            resp.Win,
		Profit:         profit,
		BalanceAfter:   balance,
		ServerSeedHash: resp.ServerSeedHash,
		ClientSeed:     resp.ClientSeed,
		Nonce:          resp.Nonce,
	}, nil
}

func (c *Client) Balance(ctx context.Context, currency money.Currency) (money.Decimal, error) {
	var resp struct {
		Balance string `json:"balance"`
	}
	if err := c.do(ctx, http.MethodGet, "/balance/"+currency.String(), nil, &resp); err != nil {
		return money.Zero, err
	}
	return money.Parse(resp.Balance)
}

func (c *Client) ClaimFaucet(ctx context.Context, currency money.Currency) (diceapi.FaucetClaim, error) {
	var resp struct {
		Amount      string `json:"amount"`
		NextClaimAt int64  `json:"nextClaimAt"`
	}
	if err := c.do(ctx, http.MethodPost, "/faucet/"+currency.String(), nil, &resp); err != nil {
		return diceapi.FaucetClaim{}, err
	}
	amount, err := money.Parse(resp.Amount)
	if err != nil {
		return diceapi.FaucetClaim{}, diceapi.Rejected("malformed faucet amount")
	}
	return diceapi.FaucetClaim{Amount: amount, NextClaimAt: resp.NextClaimAt}, nil
}

func (c *Client) ListCurrencies(ctx context.Context) ([]money.Currency, error) {
	var resp []string
	if err := c.do(ctx, http.MethodGet, "/currencies", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]money.Currency, len(resp))
	for i, s := range resp {
		out[i] = money.Currency(s)
	}
	return out, nil
}
