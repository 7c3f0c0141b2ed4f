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

// Package config is the typed process configuration the CLI's `config
// show|set` command persists: a flat key/value JSON file at
// `~/.duckdice/config.json`, overridable with `DUCKDICE_CONFIG_DIR` and
// `DUCKDICE_API_KEY`. Loading layers a .env file (godotenv), then the
// config file, then env overrides.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/money"
)

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
func parseInt(s string) (int, error)       { return strconv.Atoi(s) }

// Config is the persisted default session configuration.
type Config struct {
	DefaultCurrency money.Currency `json:"default_currency"`
	MinBet          money.Decimal  `json:"min_bet"`
	MinProfit       money.Decimal  `json:"min_profit"`
	HouseEdge       float64        `json:"house_edge"`
	ChanceCeiling   float64        `json:"chance_ceiling"`
	Precision       int            `json:"precision"`
	ApiKey          string         `json:"-"` // never persisted to disk; env-only
}

// Default returns the built-in defaults used when no config file exists
// yet (first run).
func Default() Config {
	return Config{
		DefaultCurrency: "btc",
		MinBet:          money.MustParse("0.00000010"),
		MinProfit:       money.MustParse("0.00000001"),
		HouseEdge:       0.03,
		ChanceCeiling:   95,
		Precision:       8,
	}
}

// Dir resolves the config directory: DUCKDICE_CONFIG_DIR if set, else
// ~/.duckdice.
func Dir() (string, error) {
	if d := os.Getenv("DUCKDICE_CONFIG_DIR"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errs.NewFatal("config: resolve home dir: " + err.Error())
	}
	return filepath.Join(home, ".duckdice"), nil
}

func path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file, falling back to Default() if it doesn't
// exist yet, and applies the DUCKDICE_API_KEY env var. A .env file in the
// working directory is loaded first (dev convenience, silently ignored if
// absent) so DUCKDICE_API_KEY can be supplied without exporting it.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	p, err := path()
	if err != nil {
		return cfg, err
	}
	raw, err := os.ReadFile(p)
	switch {
	case os.IsNotExist(err):
		// first run: keep defaults
	case err != nil:
		return cfg, errs.NewFatal("config: read " + p + ": " + err.Error())
	default:
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return cfg, errs.NewFatal("config: parse " + p + ": " + err.Error())
		}
	}
	cfg.ApiKey = os.Getenv("DUCKDICE_API_KEY")
	return cfg, nil
}

// Save writes cfg to the config file, creating the config directory if
// needed. ApiKey is never written (it carries the `json:"-"` tag).
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.NewFatal("config: mkdir " + dir + ": " + err.Error())
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errs.NewFatal("config: encode: " + err.Error())
	}
	p := filepath.Join(dir, "config.json")
	if err := os.WriteFile(p, raw, 0o644); err != nil {
		return errs.NewFatal("config: write " + p + ": " + err.Error())
	}
	return nil
}

// Set applies a single key=value override onto cfg, matching the CLI's
// `config set key value` surface. Returns errs.BadParameter for an unknown
// key or an unparsable value.
func Set(cfg Config, key, value string) (Config, error) {
	switch key {
	case "default_currency":
		cfg.DefaultCurrency = money.Normalize(value)
	case "min_bet":
		d, err := money.Parse(value)
		if err != nil {
			return cfg, errs.BadParameter(key, err.Error())
		}
		cfg.MinBet = d
	case "min_profit":
		d, err := money.Parse(value)
		if err != nil {
			return cfg, errs.BadParameter(key, err.Error())
		}
		cfg.MinProfit = d
	case "house_edge":
		f, err := parseFloat(value)
		if err != nil {
			return cfg, errs.BadParameter(key, err.Error())
		}
		cfg.HouseEdge = f
	case "chance_ceiling":
		f, err := parseFloat(value)
		if err != nil {
			return cfg, errs.BadParameter(key, err.Error())
		}
		cfg.ChanceCeiling = f
	case "precision":
		n, err := parseInt(value)
		if err != nil {
			return cfg, errs.BadParameter(key, err.Error())
		}
		cfg.Precision = n
	default:
		return cfg, errs.BadParameter(key, "unknown config key")
	}
	return cfg, nil
}
