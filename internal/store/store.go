package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Yizzii/fishbot/internal/fish"
)

const (
	playersFile = "player_stats.json"
	globalFile  = "global_stats.json"
)

// Store owns the two persisted JSON documents: the player map and the
// global aggregate. All access to either goes through here; callers
// never touch the files directly. Single writer only — documents are
// read-modify-written whole.
type Store struct {
	playersPath string
	globalPath  string
}

func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		playersPath: filepath.Join(dataDir, playersFile),
		globalPath:  filepath.Join(dataDir, globalFile),
	}, nil
}

// PlayerRecord is one player's persisted state. Fields the decoder
// does not recognize are carried in extra and written back verbatim.
type PlayerRecord struct {
	Balance          float64        `json:"balance"`
	TotalCasts       int            `json:"total_casts"`
	TotalFishCaught  int            `json:"total_fish_caught"`
	Rarities         map[string]int `json:"rarities"`
	EquippedRod      string         `json:"equipped_rod"`
	EquippedBait     string         `json:"equipped_bait"`
	OriginalUsername string         `json:"original_username"`

	extra map[string]json.RawMessage
}

var playerKeys = []string{
	"balance", "total_casts", "total_fish_caught", "rarities",
	"equipped_rod", "equipped_bait", "original_username",
}

// NewPlayerRecord returns a zeroed record with default tackle,
// remembering the first-seen display casing.
func NewPlayerRecord(username string) *PlayerRecord {
	return &PlayerRecord{
		Rarities:         emptyRarities(),
		EquippedRod:      fish.DefaultRod,
		EquippedBait:     fish.DefaultBait,
		OriginalUsername: username,
	}
}

func emptyRarities() map[string]int {
	m := make(map[string]int, len(fish.Rarities))
	for _, r := range fish.Rarities {
		m[r.String()] = 0
	}
	return m
}

func (p *PlayerRecord) UnmarshalJSON(data []byte) error {
	type plain PlayerRecord
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = PlayerRecord(v)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range playerKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		p.extra = raw
	}
	return nil
}

func (p PlayerRecord) MarshalJSON() ([]byte, error) {
	type plain PlayerRecord
	return marshalWithExtra(plain(p), p.extra)
}

// GlobalStats mirrors PlayerRecord's counters, aggregated across all
// players. Exactly one instance is persisted.
type GlobalStats struct {
	TotalCasts      int            `json:"total_casts"`
	TotalFishCaught int            `json:"total_fish_caught"`
	Rarities        map[string]int `json:"rarities"`

	extra map[string]json.RawMessage
}

var globalKeys = []string{"total_casts", "total_fish_caught", "rarities"}

func NewGlobalStats() *GlobalStats {
	return &GlobalStats{Rarities: emptyRarities()}
}

func (g *GlobalStats) UnmarshalJSON(data []byte) error {
	type plain GlobalStats
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*g = GlobalStats(v)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range globalKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		g.extra = raw
	}
	return nil
}

func (g GlobalStats) MarshalJSON() ([]byte, error) {
	type plain GlobalStats
	return marshalWithExtra(plain(g), g.extra)
}

// marshalWithExtra re-attaches preserved unknown fields to the
// encoded struct.
func marshalWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return b, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// Players maps lowercase usernames to records. Lookups must go
// through Get/Ensure so no caller can bypass key normalization.
type Players map[string]*PlayerRecord

func Key(username string) string { return strings.ToLower(username) }

func (ps Players) Get(username string) (*PlayerRecord, bool) {
	rec, ok := ps[Key(username)]
	return rec, ok
}

// Ensure returns the record for username, creating a defaulted one on
// first sight.
func (ps Players) Ensure(username string) *PlayerRecord {
	key := Key(username)
	if rec, ok := ps[key]; ok {
		return rec
	}
	rec := NewPlayerRecord(username)
	ps[key] = rec
	return rec
}

// LoadPlayers reads the player document. A missing file means no
// players yet; an unreadable or corrupt file is an error — we fail
// loudly rather than silently reset anyone's economy. Records are
// back-filled with defaults for fields added since they were written.
func (s *Store) LoadPlayers() (Players, error) {
	raw, err := os.ReadFile(s.playersPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Players{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read player stats: %w", err)
	}

	var loaded map[string]*PlayerRecord
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return nil, fmt.Errorf("parse player stats: %w", err)
	}

	players := make(Players, len(loaded))
	for name, rec := range loaded {
		backfillPlayer(rec, name)
		players[Key(name)] = rec
	}
	return players, nil
}

// backfillPlayer migrates a record written by an older schema: new
// rarity tiers, equipped bait and the display name were all added
// after the first release.
func backfillPlayer(rec *PlayerRecord, name string) {
	if rec.OriginalUsername == "" {
		rec.OriginalUsername = name
	}
	if rec.EquippedRod == "" {
		rec.EquippedRod = fish.DefaultRod
	}
	if rec.EquippedBait == "" {
		rec.EquippedBait = fish.DefaultBait
	}
	if rec.Rarities == nil {
		rec.Rarities = emptyRarities()
		return
	}
	for _, r := range fish.Rarities {
		if _, ok := rec.Rarities[r.String()]; !ok {
			rec.Rarities[r.String()] = 0
		}
	}
}

func (s *Store) SavePlayers(players Players) error {
	return writeJSON(s.playersPath, players)
}

// LoadGlobal reads the global aggregate, defaulting it if absent and
// back-filling newly introduced rarity tiers.
func (s *Store) LoadGlobal() (*GlobalStats, error) {
	raw, err := os.ReadFile(s.globalPath)
	if errors.Is(err, fs.ErrNotExist) {
		return NewGlobalStats(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read global stats: %w", err)
	}

	var g GlobalStats
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("parse global stats: %w", err)
	}
	if g.Rarities == nil {
		g.Rarities = emptyRarities()
	} else {
		for _, r := range fish.Rarities {
			if _, ok := g.Rarities[r.String()]; !ok {
				g.Rarities[r.String()] = 0
			}
		}
	}
	return &g, nil
}

func (s *Store) SaveGlobal(g *GlobalStats) error {
	return writeJSON(s.globalPath, g)
}

// DisplayName returns the first-seen casing for username, or the
// input unchanged when unknown. A load failure degrades to the input
// rather than failing the caller's response; the next mutating read
// surfaces it.
func (s *Store) DisplayName(username string) string {
	players, err := s.LoadPlayers()
	if err != nil {
		slog.Warn("failed to load player stats for display name", "err", err)
		return username
	}
	if rec, ok := players.Get(username); ok && rec.OriginalUsername != "" {
		return rec.OriginalUsername
	}
	return username
}

// writeJSON replaces the document via temp file + rename so a crash
// mid-write leaves the previous document intact.
func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
