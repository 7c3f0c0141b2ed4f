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

// Package profile persists named `run` argument bundles at
// `~/.duckdice/profiles.json`: a mapping from profile name to
// the same flat string-keyed structure the CLI's `-P key=value` flags
// produce, so `profiles save`/`profiles load` round-trip exactly what a
// user typed on the command line.
package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/zintix-labs/duckdice-bot/config"
	"github.com/zintix-labs/duckdice-bot/errs"
)

// Profile is one saved `run` invocation: the strategy to run plus its
// parameter set, already flattened to strings the way `-P key=value`
// collects them.
type Profile struct {
	Strategy string            `json:"strategy"`
	Mode     string            `json:"mode"`
	Currency string            `json:"currency"`
	Params   map[string]string `json:"params"`
	MaxBets  int               `json:"max_bets,omitempty"`
	StopLoss string            `json:"stop_loss,omitempty"`
	TakeProfit string          `json:"take_profit,omitempty"`
}

// Store is the full on-disk mapping from profile name to Profile.
type Store map[string]Profile

func path() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles.json"), nil
}

// Load reads the profile store, returning an empty Store if the file
// doesn't exist yet.
func Load() (Store, error) {
	p, err := path()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(p)
	switch {
	case os.IsNotExist(err):
		return Store{}, nil
	case err != nil:
		return nil, errs.NewFatal("profile: read " + p + ": " + err.Error())
	}
	var s Store
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errs.NewFatal("profile: parse " + p + ": " + err.Error())
	}
	if s == nil {
		s = Store{}
	}
	return s, nil
}

func save(s Store) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.NewFatal("profile: mkdir " + dir + ": " + err.Error())
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errs.NewFatal("profile: encode: " + err.Error())
	}
	p := filepath.Join(dir, "profiles.json")
	if err := os.WriteFile(p, raw, 0o644); err != nil {
		return errs.NewFatal("profile: write " + p + ": " + err.Error())
	}
	return nil
}

// Save persists one named profile into the store, overwriting any
// existing entry with the same name.
func Save(name string, prof Profile) error {
	if name == "" {
		return errs.BadParameter("name", "profile name must not be empty")
	}
	s, err := Load()
	if err != nil {
		return err
	}
	s[name] = prof
	return save(s)
}

// Get fetches one named profile.
func Get(name string) (Profile, bool, error) {
	s, err := Load()
	if err != nil {
		return Profile{}, false, err
	}
	p, ok := s[name]
	return p, ok, nil
}

// Delete removes a named profile. Deleting a name that doesn't exist is
// not an error.
func Delete(name string) error {
	s, err := Load()
	if err != nil {
		return err
	}
	delete(s, name)
	return save(s)
}

// Names returns every saved profile name, sorted for stable CLI listing.
func Names() ([]string, error) {
	s, err := Load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
