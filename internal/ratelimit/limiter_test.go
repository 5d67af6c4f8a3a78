package ratelimit

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestTryEnforcesCooldown(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	l := NewLimiter(6*time.Second, clk)

	if ok, _ := l.Try("Bob", "!fish"); !ok {
		t.Fatal("first call should pass")
	}

	clk.advance(2 * time.Second)
	ok, wait := l.Try("Bob", "!fish")
	if ok {
		t.Fatal("second call inside cooldown should be blocked")
	}
	if wait != 4*time.Second {
		t.Errorf("wait = %v, want 4s", wait)
	}

	clk.advance(4 * time.Second)
	if ok, _ := l.Try("Bob", "!fish"); !ok {
		t.Error("call after cooldown should pass")
	}
}

func TestTryIsPerUserPerCommand(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	l := NewLimiter(6*time.Second, clk)

	if ok, _ := l.Try("Bob", "!fish"); !ok {
		t.Fatal("first call should pass")
	}
	if ok, _ := l.Try("Bob", "!gamble"); !ok {
		t.Error("different command shares no cooldown")
	}
	if ok, _ := l.Try("Alice", "!fish"); !ok {
		t.Error("different user shares no cooldown")
	}
	if ok, _ := l.Try("BOB", "!fish"); ok {
		t.Error("username casing must not dodge the cooldown")
	}
}

func TestIdleEntriesEvicted(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	l := NewLimiter(6*time.Second, clk)

	l.Try("Bob", "!fish")
	clk.advance(61 * time.Second)
	// Any call triggers eviction of idle entries.
	l.Try("Alice", "!fish")

	l.mu.Lock()
	_, stillThere := l.last["bob|!fish"]
	l.mu.Unlock()
	if stillThere {
		t.Error("idle entry survived eviction")
	}
}

func TestReset(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	l := NewLimiter(6*time.Second, clk)

	l.Try("Bob", "!fish")
	l.Reset("bob", "!fish")
	if ok, _ := l.Try("Bob", "!fish"); !ok {
		t.Error("reset should clear the cooldown")
	}
}
