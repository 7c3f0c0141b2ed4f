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

// RiskLevel is a coarse, catalog-facing classification of how aggressively a
// strategy escalates stake after a loss.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskExtreme  RiskLevel = "extreme"
)

// ParamKind is the primitive type of a strategy parameter.
type ParamKind string

const (
	ParamInt    ParamKind = "int"
	ParamFloat  ParamKind = "float"
	ParamString ParamKind = "string"
	ParamBool   ParamKind = "bool"
	ParamMoney  ParamKind = "money"
)

// ParamSpec describes one entry in a strategy's parameter schema, as
// rendered by `duckdice show <strategy>` and validated by Init.
type ParamSpec struct {
	Name        string    `yaml:"name"`
	Kind        ParamKind `yaml:"type"`
	Default     string    `yaml:"default"`
	Min         string    `yaml:"min,omitempty"`
	Max         string    `yaml:"max,omitempty"`
	Description string    `yaml:"description"`
}

// Metadata is the static, catalog-facing description of a strategy. It is
// loaded from an embedded YAML sidecar per strategy (see catalog/metadata)
// rather than hand-built in the Go source, keeping tunable description
// data out of code.
type Metadata struct {
	Name                 string      `yaml:"name"`
	DisplayName          string      `yaml:"display_name"`
	RiskLevel            RiskLevel   `yaml:"risk_level"`
	BankrollHint         string      `yaml:"bankroll_hint"`
	Volatility           string      `yaml:"volatility"`
	TimeToProfit         string      `yaml:"time_to_profit"`
	RecommendedAudience  string      `yaml:"recommended_audience"`
	Pros                 []string    `yaml:"pros"`
	Cons                 []string    `yaml:"cons"`
	Tips                 []string    `yaml:"tips"`
	Params               []ParamSpec `yaml:"params"`
}
