package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	return st, dir
}

func TestLoadPlayersMissingFile(t *testing.T) {
	st, _ := newTestStore(t)
	players, err := st.LoadPlayers()
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 0 {
		t.Errorf("missing file loaded %d players, want 0", len(players))
	}
}

func TestLoadPlayersCorruptFile(t *testing.T) {
	st, dir := newTestStore(t)
	if err := os.WriteFile(filepath.Join(dir, "player_stats.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.LoadPlayers(); err == nil {
		t.Error("corrupt player document loaded without error")
	}
}

func TestPlayersRoundTrip(t *testing.T) {
	st, _ := newTestStore(t)

	players := Players{}
	rec := players.Ensure("FisherBob")
	rec.Balance = 123.45
	rec.TotalCasts = 10
	rec.TotalFishCaught = 4
	rec.Rarities["Rare"] = 2
	rec.EquippedRod = "Good Rod"

	if err := st.SavePlayers(players); err != nil {
		t.Fatal(err)
	}
	loaded, err := st.LoadPlayers()
	if err != nil {
		t.Fatal(err)
	}

	got, ok := loaded.Get("fisherbob")
	if !ok {
		t.Fatal("saved player not found after reload")
	}
	if got.Balance != 123.45 || got.TotalCasts != 10 || got.TotalFishCaught != 4 {
		t.Errorf("counters lost in round trip: %+v", got)
	}
	if got.Rarities["Rare"] != 2 {
		t.Errorf("rare count = %d, want 2", got.Rarities["Rare"])
	}
	if got.EquippedRod != "Good Rod" || got.EquippedBait != "Worm" {
		t.Errorf("tackle lost in round trip: %s / %s", got.EquippedRod, got.EquippedBait)
	}
	if got.OriginalUsername != "FisherBob" {
		t.Errorf("display name = %q, want FisherBob", got.OriginalUsername)
	}
}

func TestLoadPlayersBackfillAndKeyNormalization(t *testing.T) {
	st, dir := newTestStore(t)

	// A record written by an old schema: mixed-case key, missing
	// bait, display name and newer rarity tiers.
	doc := `{"FisherBob": {"balance": 50, "total_casts": 3, "rarities": {"Common": 1}}}`
	if err := os.WriteFile(filepath.Join(dir, "player_stats.json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	players, err := st.LoadPlayers()
	if err != nil {
		t.Fatal(err)
	}
	rec, ok := players.Get("FISHERBOB")
	if !ok {
		t.Fatal("lookup by any casing should find the record")
	}
	if rec.OriginalUsername != "FisherBob" {
		t.Errorf("display name backfill = %q, want FisherBob", rec.OriginalUsername)
	}
	if rec.EquippedRod != "Old Rod" || rec.EquippedBait != "Worm" {
		t.Errorf("tackle backfill = %s / %s", rec.EquippedRod, rec.EquippedBait)
	}
	if len(rec.Rarities) != 6 {
		t.Errorf("rarity backfill left %d tiers, want 6", len(rec.Rarities))
	}
	if rec.Rarities["Common"] != 1 || rec.Rarities["Legendary"] != 0 {
		t.Errorf("rarity counts wrong after backfill: %v", rec.Rarities)
	}
}

func TestUnknownFieldsSurviveRewrite(t *testing.T) {
	st, dir := newTestStore(t)

	doc := `{"bob": {"balance": 10, "favorite_lure": "spoon", "notes": {"x": 1}}}`
	path := filepath.Join(dir, "player_stats.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	players, err := st.LoadPlayers()
	if err != nil {
		t.Fatal(err)
	}
	if err := st.SavePlayers(players); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var reread map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &reread); err != nil {
		t.Fatal(err)
	}
	if string(reread["bob"]["favorite_lure"]) != `"spoon"` {
		t.Errorf("favorite_lure not preserved: %s", reread["bob"]["favorite_lure"])
	}
	if !strings.Contains(string(reread["bob"]["notes"]), `"x"`) {
		t.Errorf("nested unknown field not preserved: %s", reread["bob"]["notes"])
	}
}

func TestGlobalStatsRoundTripAndBackfill(t *testing.T) {
	st, dir := newTestStore(t)

	// Absent file defaults.
	g, err := st.LoadGlobal()
	if err != nil {
		t.Fatal(err)
	}
	if g.TotalCasts != 0 || len(g.Rarities) != 6 {
		t.Fatalf("default global stats wrong: %+v", g)
	}

	g.TotalCasts = 7
	g.TotalFishCaught = 3
	g.Rarities["Epic"] = 1
	if err := st.SaveGlobal(g); err != nil {
		t.Fatal(err)
	}

	loaded, err := st.LoadGlobal()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.TotalCasts != 7 || loaded.TotalFishCaught != 3 || loaded.Rarities["Epic"] != 1 {
		t.Errorf("global stats round trip lost data: %+v", loaded)
	}

	// Older document missing a tier gets it back-filled.
	doc := `{"total_casts": 1, "total_fish_caught": 1, "rarities": {"Common": 1}}`
	if err := os.WriteFile(filepath.Join(dir, "global_stats.json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	old, err := st.LoadGlobal()
	if err != nil {
		t.Fatal(err)
	}
	if len(old.Rarities) != 6 || old.Rarities["Very Rare"] != 0 {
		t.Errorf("global rarity backfill wrong: %v", old.Rarities)
	}
}

func TestDisplayName(t *testing.T) {
	st, _ := newTestStore(t)

	if got := st.DisplayName("Stranger"); got != "Stranger" {
		t.Errorf("unknown user display name = %q, want input unchanged", got)
	}

	players := Players{}
	players.Ensure("CoolAngler99")
	if err := st.SavePlayers(players); err != nil {
		t.Fatal(err)
	}
	if got := st.DisplayName("coolangler99"); got != "CoolAngler99" {
		t.Errorf("display name = %q, want first-seen casing", got)
	}
}

func TestDisplayNameCorruptStoreDegrades(t *testing.T) {
	st, dir := newTestStore(t)
	if err := os.WriteFile(filepath.Join(dir, playersFile), []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := st.DisplayName("Stranger"); got != "Stranger" {
		t.Errorf("display name on corrupt store = %q, want input unchanged", got)
	}
	// The corruption still surfaces on the next real read.
	if _, err := st.LoadPlayers(); err == nil {
		t.Error("LoadPlayers succeeded on a corrupt document")
	}
}

func TestEnsureIsCaseInsensitive(t *testing.T) {
	players := Players{}
	a := players.Ensure("Bob")
	b := players.Ensure("BOB")
	if a != b {
		t.Error("Ensure created two records for one username")
	}
	if len(players) != 1 {
		t.Errorf("players map has %d entries, want 1", len(players))
	}
}
