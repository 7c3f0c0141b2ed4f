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

// Package metadata embeds the per-strategy YAML description sidecars
// (risk level, bankroll hint, tips, parameter schema) so the catalog
// builds as a single self-contained binary with no sidecar files to
// install.
package metadata

import (
	"embed"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/strategy"
)

//go:embed *.yaml
var fs embed.FS

var (
	mu    sync.Mutex
	cache = map[string]strategy.Metadata{}
)

// Load returns the parsed Metadata for the strategy named name. It panics
// if the sidecar is missing or malformed: a strategy with a broken
// metadata file is a build-time defect, not a runtime condition to recover
// from. catalog.All only registers builders and does not call Load; the
// catalog package's test builds every registered strategy and loads its
// Metadata.
func Load(name string) strategy.Metadata {
	mu.Lock()
	defer mu.Unlock()
	if m, ok := cache[name]; ok {
		return m
	}
	raw, err := fs.ReadFile(name + ".yaml")
	if err != nil {
		panic(errs.Fatalf("metadata: missing sidecar for %q: %v", name, err))
	}
	var m strategy.Metadata
	if err := yaml.Unmarshal(raw, &m); err != nil {
		panic(errs.Fatalf("metadata: invalid sidecar for %q: %v", name, err))
	}
	cache[name] = m
	return m
}
