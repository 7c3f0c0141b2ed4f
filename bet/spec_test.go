package bet

import (
	"testing"

	"github.com/zintix-labs/duckdice-bot/money"
)

func TestWinPredicateHighLow(t *testing.T) {
	s := Spec{Chance: 50, Side: SideHigh}
	if !s.WinPredicate(60) {
		t.Fatalf("expected win at roll=60 for high/50")
	}
	if s.WinPredicate(40) {
		t.Fatalf("expected loss at roll=40 for high/50")
	}

	s.Side = SideLow
	if !s.WinPredicate(10) {
		t.Fatalf("expected win at roll=10 for low/50")
	}
}

func TestPayoutMultiplier(t *testing.T) {
	s := Spec{Chance: 50}
	if got := s.PayoutMultiplier(); got != 2.0 {
		t.Fatalf("got %v want 2.0", got)
	}
}

func TestSpecValidateExclusivity(t *testing.T) {
	s := Spec{IsRange: true, Low: 0, High: 100}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	bad := Spec{Chance: 150}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for chance>99")
	}
}

func TestContextRecordStreak(t *testing.T) {
	ctx := NewContext(8, money.MustParse("100"), nil)
	win := Result{Spec: Spec{Amount: money.MustParse("1")}, Won: true, Profit: money.MustParse("0.94"), BalanceAfter: money.MustParse("100.94")}
	ctx.Record(win)
	if ctx.Streak != 1 || ctx.Wins != 1 {
		t.Fatalf("unexpected streak/wins after win: %d/%d", ctx.Streak, ctx.Wins)
	}
	loss := Result{Spec: Spec{Amount: money.MustParse("1")}, Won: false, Profit: money.MustParse("-1"), BalanceAfter: money.MustParse("99.94")}
	ctx.Record(loss)
	if ctx.Streak != -1 || ctx.Losses != 1 {
		t.Fatalf("unexpected streak/losses after loss: %d/%d", ctx.Streak, ctx.Losses)
	}
	if ctx.Window.Len() != 2 {
		t.Fatalf("expected window len 2, got %d", ctx.Window.Len())
	}
}
