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

package profile

import "testing"

func withProfileDir(t *testing.T) {
	t.Helper()
	t.Setenv("DUCKDICE_CONFIG_DIR", t.TempDir())
}

func TestSaveGetDelete_RoundTrips(t *testing.T) {
	withProfileDir(t)

	p := Profile{
		Strategy: "classic-martingale",
		Mode:     "simulation",
		Currency: "btc",
		Params:   map[string]string{"base": "0.00000010", "multiplier": "2"},
		MaxBets:  1000,
	}
	if err := Save("my-profile", p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := Get("my-profile")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("profile not found after save")
	}
	if got.Strategy != p.Strategy || got.Params["multiplier"] != "2" {
		t.Fatalf("got %+v, want %+v", got, p)
	}

	if err := Delete("my-profile"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, ok, err = Get("my-profile")
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if ok {
		t.Fatalf("profile still present after delete")
	}
}

func TestSave_EmptyNameRejected(t *testing.T) {
	withProfileDir(t)
	if err := Save("", Profile{Strategy: "flat"}); err == nil {
		t.Fatalf("expected error for empty profile name")
	}
}

func TestNames_SortedAndReflectsStore(t *testing.T) {
	withProfileDir(t)
	_ = Save("zeta", Profile{Strategy: "flat"})
	_ = Save("alpha", Profile{Strategy: "flat"})
	_ = Save("mid", Profile{Strategy: "flat"})

	names, err := Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestDelete_NonexistentNameIsNotError(t *testing.T) {
	withProfileDir(t)
	if err := Delete("nope"); err != nil {
		t.Fatalf("Delete nonexistent: %v", err)
	}
}
