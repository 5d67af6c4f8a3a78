package fish

// Rods and baits are in-process constants rather than catalog data;
// the shop enumerates them in declaration order.

type Rod struct {
	Name           string
	Price          float64
	CatchRate      float64 // probability a cast lands anything
	RarityModifier float64
}

type Bait struct {
	Name           string
	Price          float64
	CatchRateBoost float64 // added to the rod's catch rate
	RarityModifier float64
}

const (
	DefaultRod  = "Old Rod"
	DefaultBait = "Worm"
)

var Rods = []Rod{
	{Name: "Old Rod", Price: 0, CatchRate: 0.25, RarityModifier: 1.0},
	{Name: "Average Rod", Price: 1000, CatchRate: 0.45, RarityModifier: 1.1},
	{Name: "Good Rod", Price: 5000, CatchRate: 0.65, RarityModifier: 1.2},
	{Name: "Super Rod", Price: 50000, CatchRate: 0.75, RarityModifier: 1.5},
}

var Baits = []Bait{
	{Name: "Worm", Price: 0, CatchRateBoost: 0, RarityModifier: 1.0},
	{Name: "Minnow", Price: 500, CatchRateBoost: 0.10, RarityModifier: 1.1},
	{Name: "Shrimp", Price: 2000, CatchRateBoost: 0.15, RarityModifier: 1.2},
	{Name: "Crab", Price: 10000, CatchRateBoost: 0.20, RarityModifier: 1.3},
}

// RodByName resolves an equipped rod name, falling back to the free
// default when the name is unknown (e.g. a renamed rod in an old
// save).
func RodByName(name string) Rod {
	for _, r := range Rods {
		if r.Name == name {
			return r
		}
	}
	return Rods[0]
}

func BaitByName(name string) Bait {
	for _, b := range Baits {
		if b.Name == name {
			return b
		}
	}
	return Baits[0]
}

// FindRod reports whether name is a known rod, without a fallback.
func FindRod(name string) (Rod, bool) {
	for _, r := range Rods {
		if r.Name == name {
			return r, true
		}
	}
	return Rod{}, false
}

func FindBait(name string) (Bait, bool) {
	for _, b := range Baits {
		if b.Name == name {
			return b, true
		}
	}
	return Bait{}, false
}

// CatchRate is the effective probability that a cast lands a fish,
// capped at 1.
func CatchRate(rod Rod, bait Bait) float64 {
	rate := rod.CatchRate + bait.CatchRateBoost
	if rate > 1.0 {
		rate = 1.0
	}
	return rate
}
