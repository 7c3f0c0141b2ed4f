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

package catalog

import (
	"testing"

	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/money"
)

func TestAllRegistersEveryStrategyExactlyOnce(t *testing.T) {
	reg, err := All()
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	names := reg.Names()
	if len(names) < 20 {
		t.Fatalf("expected at least 20 registered strategies, got %d", len(names))
	}
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Fatalf("duplicate name %q in registry", n)
		}
		seen[n] = true
	}
}

func TestEveryStrategyHasLoadableMetadataAndSchema(t *testing.T) {
	reg, err := All()
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	for _, name := range reg.Names() {
		strat, err := reg.Build(name)
		if err != nil {
			t.Fatalf("build %q: %v", name, err)
		}
		if strat.Name() != name {
			t.Fatalf("strategy registered as %q reports Name() == %q", name, strat.Name())
		}
		meta := strat.Metadata()
		if meta.Name != name {
			t.Fatalf("metadata for %q has Name == %q", name, meta.Name)
		}
		if len(meta.Params) == 0 {
			t.Fatalf("%q: expected a non-empty parameter schema", name)
		}
	}
}

func TestFlatStrategyInitAndNextBet(t *testing.T) {
	reg, err := All()
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	strat, err := reg.Build("flat")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	ctx := bet.NewContext(8, money.MustParse("1"), nil)
	if err := strat.Init(map[string]string{"base": "0.00000500"}, ctx); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	outcome := strat.NextBet(ctx)
	if outcome.Spec.Amount.String() != "0.00000500" {
		t.Fatalf("unexpected stake: %s", outcome.Spec.Amount)
	}
}
