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

package strategy

import (
	"fmt"

	"github.com/zintix-labs/duckdice-bot/errs"
)

// Builder constructs a fresh Strategy instance. Builders are invoked once
// per session so that two concurrent sessions running the same strategy
// never share mutable state.
type Builder func() Strategy

// Registry is a compile-time catalog of strategy builders, keyed by the
// strategy's stable name. Unlike a dynamic import-time registry (strategies
// self-registering via package init side effects), every entry here is
// wired explicitly by catalog.All(), so `go build` alone proves the catalog
// is complete and free of silent duplicate registrations.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder, 32)}
}

// Register adds a builder under name. Registering the same name twice is an
// error: there is no "last one wins" fallback, because a silently shadowed
// strategy would be indistinguishable from a typo in the catalog.
func (r *Registry) Register(name string, b Builder) error {
	if _, ok := r.builders[name]; ok {
		return errs.Fatalf("duplicate strategy name %q", name)
	}
	r.builders[name] = b
	return nil
}

// Build constructs a fresh Strategy instance for name.
func (r *Registry) Build(name string) (Strategy, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, errs.BadParameter("strategy", fmt.Sprintf("unknown strategy %q", name))
	}
	return b(), nil
}

// IsExist reports whether name has a registered builder.
func (r *Registry) IsExist(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns every registered strategy name, in registration order is
// not guaranteed (map iteration); callers that need stable output should
// sort the result.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.builders))
	for name := range r.builders {
		out = append(out, name)
	}
	return out
}

// Merge combines multiple registries into a new one. Function values are
// not comparable in Go (except to nil), so a duplicate key across
// registries is always an error rather than a silent "last one wins".
func Merge(regs ...*Registry) (*Registry, error) {
	out := NewRegistry()
	origin := make(map[string]int, 32)

	for i, r := range regs {
		if r == nil {
			continue
		}
		for name, b := range r.builders {
			if _, ok := out.builders[name]; ok {
				return nil, errs.Fatalf("duplicate strategy name %q (registry #%d and #%d)", name, origin[name], i)
			}
			out.builders[name] = b
			origin[name] = i
		}
	}
	return out, nil
}
