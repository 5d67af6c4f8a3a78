package fish

import (
	"math"
	mrand "math/rand"
	"testing"
)

func testCatalog() *Catalog {
	return &Catalog{Categories: []Category{
		{Rarity: "Common", FishList: []Fish{
			{Name: "Mackerel", Price: 1.5, Weight: WeightRange{Min: 0.5, Max: 3}},
			{Name: "Herring", Price: 1.0, Weight: WeightRange{Min: 0.2, Max: 1.5}},
		}},
		{Rarity: "Uncommon", FishList: []Fish{
			{Name: "Sea Bass", Price: 4, Weight: WeightRange{Min: 1, Max: 8}},
		}},
		{Rarity: "Rare", FishList: []Fish{
			{Name: "Halibut", Price: 9, Weight: WeightRange{Min: 5, Max: 40}},
		}},
		{Rarity: "Very Rare", FishList: []Fish{
			{Name: "Swordfish", Price: 15, Weight: WeightRange{Min: 50, Max: 200}},
		}},
		{Rarity: "Epic", FishList: []Fish{
			{Name: "Bluefin Tuna", Price: 40, Weight: WeightRange{Min: 100, Max: 450}},
		}},
		{Rarity: "Legendary", FishList: []Fish{
			{Name: "Giant Squid", Price: 120, Weight: WeightRange{Min: 200, Max: 600}},
		}},
	}}
}

func (c *Catalog) fishByName(name string) (Fish, bool) {
	for _, cat := range c.Categories {
		for _, f := range cat.FishList {
			if f.Name == name {
				return f, true
			}
		}
	}
	return Fish{}, false
}

func TestCatchRateCapped(t *testing.T) {
	rod := Rod{CatchRate: 0.9}
	bait := Bait{CatchRateBoost: 0.2}
	if got := CatchRate(rod, bait); got != 1.0 {
		t.Errorf("CatchRate = %v, want capped at 1.0", got)
	}
	if got := CatchRate(RodByName("Old Rod"), BaitByName("Worm")); got != 0.25 {
		t.Errorf("default tackle catch rate = %v, want 0.25", got)
	}
}

func TestCategoryWeightsNormalize(t *testing.T) {
	cats := testCatalog().Categories
	for _, modifier := range []float64{0.35, 1.0, 2.17} {
		weights := CategoryWeights(cats, modifier)
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("modifier %v: weights sum to %v, want 1", modifier, sum)
		}
		// A uniform modifier cancels out under normalization.
		if math.Abs(weights[0]-0.40) > 1e-9 {
			t.Errorf("modifier %v: common weight %v, want 0.40", modifier, weights[0])
		}
		if math.Abs(weights[5]-0.02) > 1e-9 {
			t.Errorf("modifier %v: legendary weight %v, want 0.02", modifier, weights[5])
		}
	}
}

func TestCategoryWeightsZeroModifier(t *testing.T) {
	weights := CategoryWeights(testCatalog().Categories, 0)
	for i, w := range weights {
		if w != 0 {
			t.Errorf("weight %d = %v, want 0", i, w)
		}
	}
}

func TestPickIndexMonotonic(t *testing.T) {
	weights := CategoryWeights(testCatalog().Categories, 1.0)

	prev := -1
	for roll := 0.0; roll < 1.0; roll += 0.001 {
		i := PickIndex(roll, weights)
		if i < prev {
			t.Fatalf("selection not monotonic: roll %v picked %d after %d", roll, i, prev)
		}
		prev = i
	}

	// Rounding shortfall in the cumulative sum lands on the last
	// category.
	if i := PickIndex(1.0, weights); i != len(weights)-1 {
		t.Errorf("roll beyond cumulative sum picked %d, want last", i)
	}
}

func TestPickCategoryZeroModifierFallsToLast(t *testing.T) {
	catalog := testCatalog()
	r := NewResolver(catalog, mrand.New(mrand.NewSource(1)), nil)

	for i := 0; i < 50; i++ {
		cat := r.PickCategory(0)
		if cat.Rarity != "Legendary" {
			t.Fatalf("zero modifier picked %q, want last category", cat.Rarity)
		}
	}
}

func TestCastWithGuaranteedCatch(t *testing.T) {
	catalog := testCatalog()
	r := NewResolver(catalog, mrand.New(mrand.NewSource(42)), nil)

	rod := Rod{Name: "Test Rod", CatchRate: 1.0, RarityModifier: 1.0}
	bait := BaitByName("Worm")

	for i := 0; i < 500; i++ {
		_, catch := r.Cast(rod, bait)
		if catch == nil {
			t.Fatal("catch rate 1.0 produced a failed cast")
		}
		if _, ok := RarityFromName(catch.Rarity); !ok {
			t.Fatalf("caught fish with unknown rarity %q", catch.Rarity)
		}
		f, ok := catalog.fishByName(catch.Fish)
		if !ok {
			t.Fatalf("caught fish %q not in catalog", catch.Fish)
		}
		if catch.Weight < f.Weight.Min || catch.Weight > f.Weight.Max {
			t.Fatalf("%s weight %v outside [%v,%v]", catch.Fish, catch.Weight, f.Weight.Min, f.Weight.Max)
		}
		if catch.Price != f.Price*catch.Weight {
			t.Fatalf("%s price %v, want %v", catch.Fish, catch.Price, f.Price*catch.Weight)
		}
	}
}

func TestRollFishStaysInCategory(t *testing.T) {
	catalog := testCatalog()
	r := NewResolver(catalog, mrand.New(mrand.NewSource(3)), nil)

	cat := &catalog.Categories[0]
	for i := 0; i < 100; i++ {
		c := r.RollFish(cat)
		if c.Rarity != "Common" {
			t.Fatalf("rolled rarity %q from common category", c.Rarity)
		}
		if c.Fish != "Mackerel" && c.Fish != "Herring" {
			t.Fatalf("rolled fish %q not in common category", c.Fish)
		}
	}
}
