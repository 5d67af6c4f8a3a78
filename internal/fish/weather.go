package fish

import "time"

type TimeOfDay int

const (
	Morning TimeOfDay = iota
	Afternoon
	Evening
	Night
)

func (t TimeOfDay) String() string {
	switch t {
	case Morning:
		return "Morning"
	case Afternoon:
		return "Afternoon"
	case Evening:
		return "Evening"
	default:
		return "Night"
	}
}

// TimeOfDayFor buckets a wall-clock hour: 6-11 morning, 12-17
// afternoon, 18-23 evening, 0-5 night.
func TimeOfDayFor(hour int) TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Afternoon
	case hour >= 18 && hour < 24:
		return Evening
	default:
		return Night
	}
}

type Condition int

const (
	ClearSkies Condition = iota
	PartlyCloudy
	Overcast
	Fog
	Rain
	Thunderstorms
	Windy
	Calm

	conditionCount = 8
)

// BaseCondition is the forecast for a time of day before the random
// override is applied.
func (t TimeOfDay) BaseCondition() Condition {
	switch t {
	case Afternoon:
		return PartlyCloudy
	case Evening:
		return Overcast
	default:
		// Morning and Night share clear skies.
		return ClearSkies
	}
}

// RarityModifier scales the base tier weights for the condition.
func (c Condition) RarityModifier() float64 {
	switch c {
	case PartlyCloudy:
		return 1.1
	case Overcast:
		return 1.2
	case Fog:
		return 0.8
	case Rain:
		return 0.7
	case Thunderstorms:
		return 0.5
	case Windy:
		return 0.9
	case Calm:
		return 1.1
	default:
		return 1.0
	}
}

func (c Condition) Description() string {
	switch c {
	case PartlyCloudy:
		return "Partly cloudy skies and gentle breeze"
	case Overcast:
		return "Overcast skies and potential for rain"
	case Fog:
		return "Foggy conditions and reduced visibility"
	case Rain:
		return "Rainfall and choppy seas"
	case Thunderstorms:
		return "Thunderstorms and rough seas and lightning"
	case Windy:
		return "Windy conditions and high waves"
	case Calm:
		return "Calm seas and little to no wind"
	default:
		return "Clear skies and calm seas"
	}
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Forecast derives the current condition from the clock's time of
// day, then with probability 0.25 discards it for a uniformly random
// one. Weather is rolled fresh for every cast.
func (r *Resolver) Forecast() Condition {
	base := TimeOfDayFor(r.clk.Now().Hour()).BaseCondition()
	if r.rng.Float64() <= 0.25 {
		return Condition(r.rng.Intn(conditionCount))
	}
	return base
}
