package fish

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"time"
)

// Resolver rolls weather, catch, rarity and price for a single cast.
// It holds no player state; callers pass the equipped tackle.
type Resolver struct {
	catalog *Catalog
	rng     *mrand.Rand
	clk     Clock
}

func NewResolver(catalog *Catalog, rng *mrand.Rand, clk Clock) *Resolver {
	if rng == nil {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			rng = mrand.New(mrand.NewSource(time.Now().UnixNano()))
		} else {
			rng = mrand.New(mrand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
		}
	}
	if clk == nil {
		clk = RealClock{}
	}

	return &Resolver{
		catalog: catalog,
		rng:     rng,
		clk:     clk,
	}
}

// Landed rolls whether the cast catches anything at all.
func (r *Resolver) Landed(rod Rod, bait Bait) bool {
	return r.rng.Float64() <= CatchRate(rod, bait)
}

// CombinedModifier multiplies the weather, rod and bait rarity
// modifiers.
func CombinedModifier(weather Condition, rod Rod, bait Bait) float64 {
	return weather.RarityModifier() * rod.RarityModifier * bait.RarityModifier
}

// CategoryWeights returns the normalized selection weight of each
// catalog category under the combined modifier. A zero total yields
// all-zero weights; PickIndex then falls through to the last
// category.
func CategoryWeights(categories []Category, modifier float64) []float64 {
	weights := make([]float64, len(categories))
	total := 0.0
	for i, cat := range categories {
		rarity, ok := RarityFromName(cat.Rarity)
		if !ok {
			continue
		}
		weights[i] = rarity.BaseWeight() * modifier
		total += weights[i]
	}
	if total == 0 {
		return weights
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// PickIndex maps a roll in [0,1) onto normalized weights via
// cumulative sum: the first category whose running sum reaches the
// roll wins. Floating-point shortfall in the sum selects the last
// category.
func PickIndex(roll float64, weights []float64) int {
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if roll <= cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// PickCategory draws a rarity category under the combined modifier.
// A degenerate all-zero weighting (modifier 0, or no recognized tier
// labels) deterministically yields the last category.
func (r *Resolver) PickCategory(modifier float64) *Category {
	weights := CategoryWeights(r.catalog.Categories, modifier)
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return &r.catalog.Categories[len(r.catalog.Categories)-1]
	}
	i := PickIndex(r.rng.Float64(), weights)
	return &r.catalog.Categories[i]
}

// RollFish draws one fish uniformly from the category, rolls its
// weight uniformly within range and prices it per pound.
func (r *Resolver) RollFish(cat *Category) Catch {
	f := cat.FishList[r.rng.Intn(len(cat.FishList))]
	min, max := f.Weight.Min, f.Weight.Max
	weight := min + (max-min)*r.rng.Float64()
	return Catch{
		Fish:     f.Name,
		Rarity:   cat.Rarity,
		Weight:   weight,
		Price:    f.Price * weight,
		CaughtAt: r.clk.Now(),
	}
}

// Cast resolves one full cast. The returned catch is nil when
// nothing bit.
func (r *Resolver) Cast(rod Rod, bait Bait) (Condition, *Catch) {
	weather := r.Forecast()
	if !r.Landed(rod, bait) {
		return weather, nil
	}
	cat := r.PickCategory(CombinedModifier(weather, rod, bait))
	c := r.RollFish(cat)
	return weather, &c
}
