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

package strategies

import (
	"github.com/zintix-labs/duckdice-bot/bet"
	"github.com/zintix-labs/duckdice-bot/catalog/metadata"
	"github.com/zintix-labs/duckdice-bot/money"
	"github.com/zintix-labs/duckdice-bot/strategy"
)

// fib returns the nth Fibonacci number (indexed from 0, starting at 1: fib(0)=1, fib(1)=1,
// fib(2)=2, fib(3)=3, fib(4)=5, ...), the classic betting-sequence
// convention rather than the textbook 0,1,1,2 sequence.
func fib(n int) int64 {
	if n < 0 {
		n = 0
	}
	a, b := int64(1), int64(1)
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a
}

// Fibonacci walks the Fibonacci-sequence index +1 on loss, -2 on win
// (floored at 0), staking base*fib(index).
type Fibonacci struct {
	base  money.Decimal
	index int
}

func NewFibonacci() strategy.Strategy { return &Fibonacci{} }

func (s *Fibonacci) Name() string { return "fibonacci" }

func (s *Fibonacci) Metadata() strategy.Metadata { return metadata.Load("fibonacci") }

func (s *Fibonacci) Init(params map[string]string, ctx *bet.Context) error {
	p, err := strategy.Parse(s.Metadata().Params, params)
	if err != nil {
		return err
	}
	s.base = p.Money("base")
	return nil
}

func (s *Fibonacci) NextBet(ctx *bet.Context) strategy.Outcome {
	stake := s.base.MulRat(fib(s.index), 1)
	return strategy.Outcome{Kind: strategy.OutcomeBet, Spec: bet.Spec{
		Amount: stake,
		Chance: defaultChance,
		Side:   bet.SideHigh,
	}}
}

func (s *Fibonacci) OnResult(ctx *bet.Context, res bet.Result) {
	if res.Won {
		s.index -= 2
		if s.index < 0 {
			s.index = 0
		}
		return
	}
	s.index++
}

func (s *Fibonacci) OnSessionEnd(ctx *bet.Context, summary strategy.Summary) {}
