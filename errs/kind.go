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

package errs

import "errors"

// Kind names the domain-specific error taxonomy used across the betting
// core: which layer produced the error, and how it is expected to be
// resolved. Every Kind still carries an ErrLevel (via the wrapping *E), so
// HTTP status mapping keeps working unchanged for errors the taxonomy below
// doesn't specifically name.
type Kind uint8

const (
	KindNone Kind = iota
	KindBadParameter
	KindUnreachable
	KindInsufficientBalance
	KindApiTransient
	KindApiTerminal
	KindScriptError
	KindStopCondition
	KindStoreError
)

var kindNames = map[Kind]string{
	KindNone:                "",
	KindBadParameter:        "bad_parameter",
	KindUnreachable:         "unreachable",
	KindInsufficientBalance: "insufficient_balance",
	KindApiTransient:        "api_transient",
	KindApiTerminal:         "api_terminal",
	KindScriptError:         "script_error",
	KindStopCondition:       "stop_condition",
	KindStoreError:          "store_error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// KE ("kind error") extends E with a Kind tag so callers can branch on the
// domain taxonomy (e.g. the engine mapping an insufficient-balance
// rejection to a bankrupt stop, or the CLI choosing an exit code) without
// string-matching Message.
type KE struct {
	*E
	K Kind
	// Field names the offending parameter for KindBadParameter.
	Field string
}

func (e *KE) Unwrap() error { return e.E }

// NewKind builds a *KE at the given ErrLevel and Kind.
func NewKind(lv ErrLevel, k Kind, msg string) *KE {
	return &KE{E: New(lv, msg), K: k}
}

func BadParameter(field, reason string) *KE {
	e := NewKind(Warn, KindBadParameter, "bad parameter "+field+": "+reason)
	e.Field = field
	return e
}

func Unreachable(reason string) *KE {
	return NewKind(Warn, KindUnreachable, "validator: "+reason)
}

func InsufficientBalance(msg string) *KE {
	return NewKind(Warn, KindInsufficientBalance, msg)
}

func ApiTransient(msg string) *KE {
	return NewKind(Warn, KindApiTransient, msg)
}

func ApiTerminal(msg string) *KE {
	return NewKind(Fatal, KindApiTerminal, msg)
}

func ScriptError(msg string) *KE {
	return NewKind(Warn, KindScriptError, msg)
}

func StopCondition(msg string) *KE {
	return NewKind(Log, KindStopCondition, msg)
}

func StoreError(msg string) *KE {
	return NewKind(Fatal, KindStoreError, msg)
}

// AsKind extracts a *KE from err, if any is present in its chain.
func AsKind(err error) (*KE, bool) {
	var k *KE
	if errors.As(err, &k) {
		return k, true
	}
	return nil, false
}
