// Package shop sells rods and baits from the fixed tackle catalogs
// and equips them on purchase.
package shop

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/Yizzii/fishbot/internal/economy"
	"github.com/Yizzii/fishbot/internal/fish"
	"github.com/Yizzii/fishbot/internal/store"
)

type ItemKind int

const (
	KindRod ItemKind = iota
	KindBait
)

type Purchase struct {
	Item       string
	Kind       ItemKind
	Price      float64
	NewBalance float64
}

// UnknownItemError carries a fuzzy-matched suggestion when the typo
// is close enough to a real item.
type UnknownItemError struct {
	Name       string
	Suggestion string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("unknown item %q", e.Name)
}

// InsufficientFundsError reports how short the buyer is.
type InsufficientFundsError struct {
	Need float64
	Have float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("need %.2f, have %.2f", e.Need, e.Have)
}

func (e *InsufficientFundsError) Unwrap() error { return economy.ErrInsufficientFunds }

// FreeDefaultError rejects buying the always-owned starter gear.
type FreeDefaultError struct {
	Item string
}

func (e *FreeDefaultError) Error() string {
	return fmt.Sprintf("%s is free and already equipped by default", e.Item)
}

type Shop struct {
	store *store.Store
}

func NewShop(st *store.Store) *Shop {
	return &Shop{store: st}
}

// ListRods enumerates purchasable rods, skipping the free default.
func ListRods() []fish.Rod {
	out := make([]fish.Rod, 0, len(fish.Rods)-1)
	for _, r := range fish.Rods {
		if r.Name == fish.DefaultRod {
			continue
		}
		out = append(out, r)
	}
	return out
}

func ListBaits() []fish.Bait {
	out := make([]fish.Bait, 0, len(fish.Baits)-1)
	for _, b := range fish.Baits {
		if b.Name == fish.DefaultBait {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Buy matches itemName case-insensitively against the rod catalog,
// then the bait catalog. The debit and equip land in one persisted
// write so a purchase can never take the money without equipping the
// item.
func (s *Shop) Buy(username, itemName string) (Purchase, error) {
	name := titleCase(itemName)

	if rod, ok := fish.FindRod(name); ok {
		if rod.Price == 0 {
			return Purchase{}, &FreeDefaultError{Item: rod.Name}
		}
		balance, err := s.debitAndEquip(username, rod.Price, func(rec *store.PlayerRecord) {
			rec.EquippedRod = rod.Name
		})
		if err != nil {
			return Purchase{}, err
		}
		return Purchase{Item: rod.Name, Kind: KindRod, Price: rod.Price, NewBalance: balance}, nil
	}

	if bait, ok := fish.FindBait(name); ok {
		if bait.Price == 0 {
			return Purchase{}, &FreeDefaultError{Item: bait.Name}
		}
		balance, err := s.debitAndEquip(username, bait.Price, func(rec *store.PlayerRecord) {
			rec.EquippedBait = bait.Name
		})
		if err != nil {
			return Purchase{}, err
		}
		return Purchase{Item: bait.Name, Kind: KindBait, Price: bait.Price, NewBalance: balance}, nil
	}

	return Purchase{}, &UnknownItemError{Name: itemName, Suggestion: suggest(name)}
}

func (s *Shop) debitAndEquip(username string, price float64, equip func(*store.PlayerRecord)) (float64, error) {
	players, err := s.store.LoadPlayers()
	if err != nil {
		return 0, err
	}
	rec := players.Ensure(username)
	if rec.Balance < price {
		return 0, &InsufficientFundsError{Need: price, Have: rec.Balance}
	}
	rec.Balance -= price
	equip(rec)
	if err := s.store.SavePlayers(players); err != nil {
		return 0, err
	}
	return rec.Balance, nil
}

// suggest returns the closest catalog item within a length-scaled
// edit distance, or "".
func suggest(name string) string {
	best := ""
	bestDist := -1
	for _, cand := range allItemNames() {
		dist := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(cand))
		if dist > distanceLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func allItemNames() []string {
	names := make([]string, 0, len(fish.Rods)+len(fish.Baits))
	for _, r := range fish.Rods {
		names = append(names, r.Name)
	}
	for _, b := range fish.Baits {
		names = append(names, b.Name)
	}
	return names
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// titleCase uppercases the first letter of each word, matching how
// catalog item names are written.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
