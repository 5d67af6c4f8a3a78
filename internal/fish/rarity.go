package fish

type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityVeryRare
	RarityEpic
	RarityLegendary
)

// Rarities lists every tier in catalog order.
var Rarities = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityVeryRare,
	RarityEpic,
	RarityLegendary,
}

func (r Rarity) String() string {
	switch r {
	case RarityLegendary:
		return "Legendary"
	case RarityEpic:
		return "Epic"
	case RarityVeryRare:
		return "Very Rare"
	case RarityRare:
		return "Rare"
	case RarityUncommon:
		return "Uncommon"
	default:
		return "Common"
	}
}

// BaseWeight is the unmodified selection weight of the tier. Unknown
// tier labels in a catalog weigh 0 and can never be drawn.
func (r Rarity) BaseWeight() float64 {
	switch r {
	case RarityLegendary:
		return 0.02
	case RarityEpic:
		return 0.05
	case RarityVeryRare:
		return 0.08
	case RarityRare:
		return 0.15
	case RarityUncommon:
		return 0.30
	default:
		return 0.40
	}
}

func RarityFromName(name string) (Rarity, bool) {
	for _, r := range Rarities {
		if r.String() == name {
			return r, true
		}
	}
	return RarityCommon, false
}
