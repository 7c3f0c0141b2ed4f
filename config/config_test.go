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

package config

import (
	"testing"

	"github.com/zintix-labs/duckdice-bot/money"
)

func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DUCKDICE_CONFIG_DIR", dir)
	return dir
}

func TestLoad_FirstRunReturnsDefaults(t *testing.T) {
	withConfigDir(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultCurrency != "btc" || cfg.Precision != 8 {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	withConfigDir(t)
	cfg := Default()
	cfg.DefaultCurrency = "doge"
	cfg.MinBet = money.MustParse("0.00000020")

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DefaultCurrency != "doge" {
		t.Fatalf("DefaultCurrency = %s, want doge", got.DefaultCurrency)
	}
	if got.MinBet.Cmp(money.MustParse("0.00000020")) != 0 {
		t.Fatalf("MinBet = %s, want 0.00000020", got.MinBet)
	}
}

func TestLoad_ApiKeyNeverPersisted(t *testing.T) {
	withConfigDir(t)
	t.Setenv("DUCKDICE_API_KEY", "secret-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ApiKey != "secret-key" {
		t.Fatalf("ApiKey = %q, want secret-key", cfg.ApiKey)
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Reloading without the env var must not resurrect the key from disk.
	t.Setenv("DUCKDICE_API_KEY", "")
	reloaded, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ApiKey != "" {
		t.Fatalf("ApiKey leaked to disk: got %q", reloaded.ApiKey)
	}
}

func TestSet_UnknownKeyIsBadParameter(t *testing.T) {
	_, err := Set(Default(), "not_a_real_key", "1")
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestSet_UpdatesTypedFields(t *testing.T) {
	cfg, err := Set(Default(), "house_edge", "0.05")
	if err != nil {
		t.Fatalf("Set house_edge: %v", err)
	}
	if cfg.HouseEdge != 0.05 {
		t.Fatalf("HouseEdge = %v, want 0.05", cfg.HouseEdge)
	}

	cfg, err = Set(cfg, "min_bet", "0.00000030")
	if err != nil {
		t.Fatalf("Set min_bet: %v", err)
	}
	if cfg.MinBet.Cmp(money.MustParse("0.00000030")) != 0 {
		t.Fatalf("MinBet = %s, want 0.00000030", cfg.MinBet)
	}
}
