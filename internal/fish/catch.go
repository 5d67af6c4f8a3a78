package fish

import "time"

// Catch is the canonical record used by handlers and stores.
// Storage backends persist weight_tenths and price_cents (ints) for
// precision/ordering.
type Catch struct {
	Id       int64
	Username string
	Fish     string
	Rarity   string
	Weight   float64 // pounds
	Price    float64
	CaughtAt time.Time
}
