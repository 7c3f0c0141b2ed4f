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

var testSchema = []ParamSpec{
	{Name: "base", Kind: ParamMoney, Default: "0.00000100"},
	{Name: "multiplier", Kind: ParamFloat, Default: "2"},
}

func TestParseRejectsUnknownParam(t *testing.T) {
	if _, err := Parse(testSchema, map[string]string{"bogus": "1"}); err == nil {
		t.Fatalf("expected error for unknown parameter")
	}
}

func TestParseRejectsBadValue(t *testing.T) {
	if _, err := Parse(testSchema, map[string]string{"multiplier": "not-a-float"}); err == nil {
		t.Fatalf("expected error for malformed value")
	}
}

func TestParseFallsBackToDefault(t *testing.T) {
	p, err := Parse(testSchema, map[string]string{"multiplier": "3"})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if p.Float("multiplier") != 3 {
		t.Fatalf("expected override to take effect")
	}
	if p.Has("base") {
		t.Fatalf("expected base to not be explicitly set")
	}
	if got := p.Money("base").String(); got != "0.00000100" {
		t.Fatalf("expected default base, got %s", got)
	}
}
