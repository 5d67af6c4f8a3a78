package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Yizzii/fishbot/internal/fish"
)

func newTestCatchLog(t *testing.T) *CatchLog {
	t.Helper()
	log, err := OpenCatchLog(filepath.Join(t.TempDir(), "catches.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestCatchLogTopByPrice(t *testing.T) {
	log := newTestCatchLog(t)
	ctx := context.Background()

	catches := []fish.Catch{
		{Username: "Alice", Fish: "Mackerel", Rarity: "Common", Weight: 1.2, Price: 1.8},
		{Username: "Bob", Fish: "Giant Squid", Rarity: "Legendary", Weight: 420.5, Price: 50460},
		{Username: "Alice", Fish: "Halibut", Rarity: "Rare", Weight: 20, Price: 180},
	}
	for _, c := range catches {
		c.CaughtAt = time.Unix(1700000000, 0)
		if err := log.Add(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	top, err := log.TopByPrice(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d rows, want 2", len(top))
	}
	if top[0].Fish != "Giant Squid" || top[1].Fish != "Halibut" {
		t.Errorf("leaderboard order = %s, %s", top[0].Fish, top[1].Fish)
	}
	if top[0].Username != "bob" {
		t.Errorf("username = %q, want lowercased key", top[0].Username)
	}
	if top[0].Weight != 420.5 {
		t.Errorf("weight round trip = %v, want 420.5", top[0].Weight)
	}
	if top[0].Price != 50460 {
		t.Errorf("price round trip = %v, want 50460", top[0].Price)
	}
}

func TestCatchLogEmpty(t *testing.T) {
	log := newTestCatchLog(t)
	top, err := log.TopByPrice(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 0 {
		t.Errorf("empty log returned %d rows", len(top))
	}
}
