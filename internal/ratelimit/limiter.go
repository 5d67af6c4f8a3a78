package ratelimit

import (
	"strings"
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Limiter tracks the last accepted command per user and enforces a
// fixed per-command cooldown. Entries idle past evictAfter are
// dropped so the map never grows with one-off chatters.
type Limiter struct {
	mu         sync.Mutex
	last       map[string]time.Time
	cooldown   time.Duration
	evictAfter time.Duration
	clk        Clock
}

func NewLimiter(cooldown time.Duration, clk Clock) *Limiter {
	if clk == nil {
		clk = RealClock{}
	}

	return &Limiter{
		last:       make(map[string]time.Time),
		cooldown:   cooldown,
		evictAfter: 60 * time.Second,
		clk:        clk,
	}
}

// Try reports whether username may run command now, and the wait
// remaining if not. An accepted call starts a fresh cooldown.
func (l *Limiter) Try(username, command string) (bool, time.Duration) {
	now := l.clk.Now()
	key := strings.ToLower(username) + "|" + command

	l.mu.Lock()
	defer l.mu.Unlock()

	l.evict(now)

	if last, ok := l.last[key]; ok {
		if wait := l.cooldown - now.Sub(last); wait > 0 {
			return false, wait
		}
	}

	l.last[key] = now
	return true, 0
}

func (l *Limiter) Reset(username, command string) {
	l.mu.Lock()
	delete(l.last, strings.ToLower(username)+"|"+command)
	l.mu.Unlock()
}

func (l *Limiter) evict(now time.Time) {
	for key, last := range l.last {
		if now.Sub(last) > l.evictAfter {
			delete(l.last, key)
		}
	}
}
