package fish

import (
	"encoding/json"
	"fmt"
	"os"
)

type WeightRange struct {
	Min float64 `json:"Min"`
	Max float64 `json:"Max"`
}

type Fish struct {
	Name   string      `json:"Name"`
	Price  float64     `json:"Price"` // currency per pound
	Weight WeightRange `json:"Weight"`
}

type Category struct {
	Rarity   string `json:"Rarity"`
	FishList []Fish `json:"FishList"`
}

// Catalog is the static fish database, one category per rarity tier,
// read-only after load.
type Catalog struct {
	Categories []Category `json:"Categories"`
}

func LoadCatalogFromJSON(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fish catalog: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse fish catalog: %w", err)
	}
	if len(c.Categories) == 0 {
		return nil, fmt.Errorf("fish catalog has no categories")
	}

	seenRarity := map[string]bool{}
	seenName := map[string]bool{}
	for i, cat := range c.Categories {
		if cat.Rarity == "" {
			return nil, fmt.Errorf("missing rarity at category %d", i)
		}
		if seenRarity[cat.Rarity] {
			return nil, fmt.Errorf("duplicate rarity %q", cat.Rarity)
		}
		seenRarity[cat.Rarity] = true
		if len(cat.FishList) == 0 {
			return nil, fmt.Errorf("category %q has no fish", cat.Rarity)
		}
		for _, f := range cat.FishList {
			if f.Name == "" {
				return nil, fmt.Errorf("unnamed fish in category %q", cat.Rarity)
			}
			if seenName[f.Name] {
				return nil, fmt.Errorf("duplicate fish %q", f.Name)
			}
			seenName[f.Name] = true
			if f.Price < 0 {
				return nil, fmt.Errorf("fish %q has negative price", f.Name)
			}
			if f.Weight.Max < f.Weight.Min {
				return nil, fmt.Errorf("fish %q has inverted weight range", f.Name)
			}
		}
	}

	return &c, nil
}

// RarityOf returns the rarity label of the category holding the named
// fish.
func (c *Catalog) RarityOf(fishName string) (string, bool) {
	for _, cat := range c.Categories {
		for _, f := range cat.FishList {
			if f.Name == fishName {
				return cat.Rarity, true
			}
		}
	}
	return "", false
}
