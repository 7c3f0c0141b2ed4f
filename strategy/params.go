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
	"strconv"

	"github.com/zintix-labs/duckdice-bot/errs"
	"github.com/zintix-labs/duckdice-bot/money"
)

// Params wraps a validated parameter map, offering typed accessors that
// fall back to a schema default. CheckUnknown/value parsing happens once in
// Parse; every catalog strategy's Init calls Parse and then reads through
// the typed getters below rather than touching the raw map.
type Params struct {
	raw map[string]string
	def map[string]ParamSpec
}

// Parse validates params against schema: rejects unknown keys and values
// that don't parse as their declared Kind. This is the one place the
// "engine rejects unknown parameters" rule is enforced.
func Parse(schema []ParamSpec, params map[string]string) (Params, error) {
	def := make(map[string]ParamSpec, len(schema))
	for _, p := range schema {
		def[p.Name] = p
	}
	for k := range params {
		if _, ok := def[k]; !ok {
			return Params{}, errs.BadParameter(k, "unknown parameter")
		}
	}
	for k, v := range params {
		spec := def[k]
		if err := checkKind(spec.Kind, v); err != nil {
			return Params{}, errs.BadParameter(k, err.Error())
		}
	}
	return Params{raw: params, def: def}, nil
}

func checkKind(kind ParamKind, v string) error {
	switch kind {
	case ParamInt:
		_, err := strconv.ParseInt(v, 10, 64)
		return err
	case ParamFloat:
		_, err := strconv.ParseFloat(v, 64)
		return err
	case ParamBool:
		_, err := strconv.ParseBool(v)
		return err
	case ParamMoney:
		_, err := money.Parse(v)
		return err
	default:
		return nil
	}
}

func (p Params) lookup(name string) string {
	if v, ok := p.raw[name]; ok {
		return v
	}
	if spec, ok := p.def[name]; ok {
		return spec.Default
	}
	return ""
}

func (p Params) Int(name string) int64 {
	v, _ := strconv.ParseInt(p.lookup(name), 10, 64)
	return v
}

func (p Params) Float(name string) float64 {
	v, _ := strconv.ParseFloat(p.lookup(name), 64)
	return v
}

func (p Params) Bool(name string) bool {
	v, _ := strconv.ParseBool(p.lookup(name))
	return v
}

func (p Params) Money(name string) money.Decimal {
	v, _ := money.Parse(p.lookup(name))
	return v
}

func (p Params) String(name string) string {
	return p.lookup(name)
}

// Has reports whether name was explicitly supplied (as opposed to falling
// back to its schema default).
func (p Params) Has(name string) bool {
	_, ok := p.raw[name]
	return ok
}
