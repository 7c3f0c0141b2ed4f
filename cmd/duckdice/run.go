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

package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"math"
	"math/big"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/catalog"
	"github.com/zintix-labs/duckdice-bot/config"
	"github.com/zintix-labs/duckdice-bot/diceapi"
	"github.com/zintix-labs/duckdice-bot/diceapi/live"
	"github.com/zintix-labs/duckdice-bot/engine"
	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/rng"
	"github.com/zintix-labs/duckdice-bot/simulator"
	"github.com/zintix-labs/duckdice-bot/store"
	"github.com/zintix-labs/duckdice-bot/validator"
)

func cmdRun(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	mode := fs.String("mode", "simulation", "simulation|live-main|live-faucet")
	strategyName := fs.String("strategy", "", "strategy name (see `duckdice strategies`)")
	currency := fs.String("currency", "", "currency code, defaults to the saved config's default_currency")
	maxBets := fs.Int("max-bets", 0, "0 = unlimited")
	maxLosses := fs.Int("max-losses", 0, "0 = unlimited")
	maxWins := fs.Int("max-wins", 0, "0 = unlimited")
	stopLoss := fs.String("stop-loss", "", "signed money amount; session stops once profit <= this")
	takeProfit := fs.String("take-profit", "", "signed money amount; session stops once profit >= this")
	balance := fs.String("balance", "1", "starting balance (simulation mode only)")
	seed := fs.Int64("seed", -1, "PRNG seed (simulation mode only); <1 draws a random seed")
	turbo := fs.Bool("turbo", false, "skip the inter-tick delay")
	params := paramFlag{}
	fs.Var(&params, "P", "strategy parameter key=value, repeatable")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *strategyName == "" {
		fmt.Fprintln(os.Stderr, "duckdice run: -strategy is required")
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice run:", err)
		return exitUsage
	}
	cur := money.Normalize(*currency)
	if cur.IsZero() {
		cur = cfg.DefaultCurrency
	}

	reg, err := catalog.All()
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice run:", err)
		return exitUsage
	}
	strat, err := reg.Build(*strategyName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice run:", err)
		return exitUsage
	}

	api, startingBalance, err := buildDiceApi(ctx, *mode, cur, *balance, *seed, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice run:", err)
		return exitAPIFailure
	}

	bctx := bet.NewContext(50, startingBalance, nil)
	if sim, ok := api.(*simulator.Simulator); ok {
		bctx.Rand = sim.Core()
	} else {
		// Live mode has no simulator stream to share; strategies that draw
		// randomness (range-50-random) still need a seeded source.
		bctx.Rand = rng.New(rng.Default().New(randomSeed()))
	}
	if err := strat.Init(map[string]string(params), bctx); err != nil {
		fmt.Fprintln(os.Stderr, "duckdice run:", err)
		return exitUsage
	}

	sessionID := uuid.NewString()
	st, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice run:", err)
		return exitUsage
	}
	defer st.Close()
	jrn, err := st.NewJournal(sessionID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice run:", err)
		return exitUsage
	}
	journalPath := jrn.Path()

	econf := engine.Config{
		Currency:   cur,
		Faucet:     faucetMode(*mode),
		Params:     map[string]string(params),
		MaxBets:    *maxBets,
		MaxLosses:  *maxLosses,
		MaxWins:    *maxWins,
		TickDelay:  tickDelay(*mode),
		TurboMode:  *turbo,
		MaxRetries: 3,
		Validator: validator.Config{
			MinBet:        cfg.MinBet,
			MinProfit:     cfg.MinProfit,
			HouseEdge:     cfg.HouseEdge,
			Precision:     cfg.Precision,
			ChanceCeiling: cfg.ChanceCeiling,
		},
	}
	if *stopLoss != "" {
		d, err := money.Parse(*stopLoss)
		if err != nil {
			fmt.Fprintln(os.Stderr, "duckdice run: -stop-loss:", err)
			return exitUsage
		}
		econf.HasStopLoss, econf.StopLossAmt = true, d
	}
	if *takeProfit != "" {
		d, err := money.Parse(*takeProfit)
		if err != nil {
			fmt.Fprintln(os.Stderr, "duckdice run: -take-profit:", err)
			return exitUsage
		}
		econf.HasTakeProfit, econf.TakeProfit = true, d
	}

	eng := engine.New(sessionID, *mode, strat, api, jrn, bctx, econf)
	summary, err := eng.Run(ctx)
	if cerr := jrn.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "duckdice run:", err)
		if ke, ok := errs.AsKind(err); ok && ke.K == errs.KindApiTerminal {
			return exitAPIFailure
		}
		return exitUsage
	}
	if rerr := st.Reconcile(ctx, journalPath); rerr != nil {
		fmt.Fprintln(os.Stderr, "duckdice run: reconcile:", rerr)
	}

	keys := []string{"session", "stop reason", "bets", "wins", "losses", "wagered", "profit", "ending balance"}
	values := map[string]string{
		"session":        summary.SessionID,
		"stop reason":    summary.StopReason.String(),
		"bets":           fmt.Sprintf("%d", summary.BetCount),
		"wins":           fmt.Sprintf("%d", summary.WinCount),
		"losses":         fmt.Sprintf("%d", summary.LossCount),
		"wagered":        summary.TotalWagered.String(),
		"profit":         summary.Profit.String(),
		"ending balance": summary.EndingBalance.String(),
	}
	fmt.Print(fmtTable(*strategyName, keys, values))

	switch summary.StopReason.Kind {
	case engine.StopBankrupt:
		return exitBankrupt
	case engine.StopApiError:
		return exitAPIFailure
	default:
		return exitOK
	}
}

// tickDelay paces live sessions so the bot stays inside the service's rate
// expectations; simulated sessions have no remote party to pace against.
func tickDelay(mode string) time.Duration {
	if mode == "simulation" {
		return 0
	}
	return time.Second
}

func faucetMode(mode string) diceapi.FaucetMode {
	if mode == "live-faucet" {
		return diceapi.FaucetOn
	}
	return diceapi.FaucetOff
}

// buildDiceApi resolves the -mode flag into a concrete diceapi.DiceApi:
// the deterministic simulator for "simulation", the live HTTP client
// (requiring DUCKDICE_API_KEY) for "live-main"/"live-faucet".
func buildDiceApi(ctx context.Context, mode string, currency money.Currency, balanceFlag string, seed int64, cfg config.Config) (diceapi.DiceApi, money.Decimal, error) {
	switch mode {
	case "simulation":
		bal, err := money.Parse(balanceFlag)
		if err != nil {
			return nil, money.Decimal{}, errs.BadParameter("balance", err.Error())
		}
		if seed < 1 {
			seed = randomSeed()
		}
		sim := simulator.New(simulator.Config{
			Seed:            seed,
			HouseEdge:       cfg.HouseEdge,
			StartingBalance: bal,
			Currency:        currency,
		})
		return sim, bal, nil
	case "live-main", "live-faucet":
		if cfg.ApiKey == "" {
			return nil, money.Decimal{}, errs.ApiTerminal("DUCKDICE_API_KEY is not set")
		}
		client := live.New(cfg.ApiKey)
		bal, err := client.Balance(ctx, currency)
		if err != nil {
			return nil, money.Decimal{}, err
		}
		return client, bal, nil
	default:
		return nil, money.Decimal{}, errs.BadParameter("mode", "must be simulation, live-main, or live-faucet")
	}
}

func randomSeed() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 1
	}
	return n.Int64()
}

// openStore opens the shared SQLite index plus the per-run journal
// directory: bet_history/auto under the current working directory,
// history.db under the config dir.
func openStore() (*store.Store, error) {
	dbPath, err := defaultHistoryDBPath()
	if err != nil {
		return nil, err
	}
	return store.Open(context.Background(), "bet_history/auto", dbPath)
}

func defaultHistoryDBPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return dir + "/history.db", nil
}
