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

package money

import "strings"

// Currency is a short lower-case symbol (btc, doge, ...). It is opaque to
// the betting core: no currency-specific behaviour is hard-coded here.
type Currency string

// Normalize lower-cases and trims a currency symbol as received from user
// input or the dice API.
func Normalize(c string) Currency {
	return Currency(strings.ToLower(strings.TrimSpace(c)))
}

func (c Currency) String() string { return string(c) }

// IsZero reports whether the currency symbol is empty.
func (c Currency) IsZero() bool { return c == "" }
