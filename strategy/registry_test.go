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

import "testing"

func TestRegistryRejectsDuplicate(t *testing.T) {
	reg := NewRegistry()
	b := func() Strategy { return nil }
	if err := reg.Register("a", b); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := reg.Register("a", b); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestRegistryBuildUnknown(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Build("missing"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestMergeRejectsCrossRegistryDuplicate(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	f := func() Strategy { return nil }
	_ = a.Register("x", f)
	_ = b.Register("x", f)
	if _, err := Merge(a, b); err == nil {
		t.Fatalf("expected duplicate-key error across registries")
	}
}

func TestMergeCombinesDistinctNames(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	f := func() Strategy { return nil }
	_ = a.Register("x", f)
	_ = b.Register("y", f)
	merged, err := Merge(a, b)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if !merged.IsExist("x") || !merged.IsExist("y") {
		t.Fatalf("expected merged registry to contain both names")
	}
}
