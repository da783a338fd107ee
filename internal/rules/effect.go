package rules

import "github.com/talgya/kingdoms/internal/state"

// Clamp ranges for every bounded field. No effect path may bypass these.
const (
	LoyaltyMin, LoyaltyMax         = 0, 100
	ProsperityMin, ProsperityMax   = 0, 100
	UnrestMin, UnrestMax           = 0, 100
	InflationMin, InflationMax     = -10, 50
	DebtMin, DebtMax               = 0, 500
	FoodMin, FoodMax               = 0, 100
	TradeMin, TradeMax             = 0, 100
	StabilityMin, StabilityMax     = 0, 100
	PlayerPowerMin, PlayerPowerMax = 0, 120
	EnemyPowerMin, EnemyPowerMax   = 0, 140
	MoraleMin, MoraleMax           = 0, 100
)

// EconomyDelta adjusts economy fields. Zero fields are no-ops.
type EconomyDelta struct {
	Inflation int `yaml:"inflation" json:"inflation,omitempty"`
	Debt      int `yaml:"debt" json:"debt,omitempty"`
	Food      int `yaml:"food" json:"food,omitempty"`
	Trade     int `yaml:"trade" json:"trade,omitempty"`
	Stability int `yaml:"stability" json:"stability,omitempty"`
}

// RegionDelta broadcasts prosperity/unrest deltas to every region.
// FrontierUnrest applies only to the frontier region.
type RegionDelta struct {
	Prosperity     int `yaml:"prosperity" json:"prosperity,omitempty"`
	Unrest         int `yaml:"unrest" json:"unrest,omitempty"`
	FrontierUnrest int `yaml:"frontier_unrest" json:"frontier_unrest,omitempty"`
}

// WarDelta adjusts war gauges. PeaceAttempt raises the peace_attempt flag
// rather than touching a gauge.
type WarDelta struct {
	PlayerPower  int  `yaml:"playerPower" json:"playerPower,omitempty"`
	EnemyPower   int  `yaml:"enemyPower" json:"enemyPower,omitempty"`
	Morale       int  `yaml:"morale" json:"morale,omitempty"`
	PeaceAttempt bool `yaml:"peaceAttempt" json:"peaceAttempt,omitempty"`
}

// Effect is a bag of independent state mutations. Absent keys are no-ops,
// and the whole bag applies as one step: there is no partial failure, a
// delta naming a faction that does not exist is silently skipped.
type Effect struct {
	// Stats deltas are unclamped on purpose: negative gold or military act
	// as sentinel conditions read by the ending catalog.
	Stats map[string]int `yaml:"stats" json:"stats,omitempty"`

	FlagsSet []string `yaml:"flagsSet" json:"flagsSet,omitempty"`

	Factions      map[string]int `yaml:"factions" json:"factions,omitempty"`
	DiplomacyMeta map[string]int `yaml:"diplomacyMeta" json:"diplomacyMeta,omitempty"`

	Economy     *EconomyDelta `yaml:"economy" json:"economy,omitempty"`
	RegionsMeta *RegionDelta  `yaml:"regionsMeta" json:"regionsMeta,omitempty"`
	War         *WarDelta     `yaml:"war" json:"war,omitempty"`
}

// Apply mutates s with every delta the effect carries. Bounded fields are
// clamped to their documented ranges.
func Apply(eff *Effect, s *state.State) {
	if eff == nil {
		return
	}

	for k, v := range eff.Stats {
		s.Stats[k] += v
	}

	for _, f := range eff.FlagsSet {
		s.Flags[f] = true
	}

	for id, delta := range eff.Factions {
		if f := s.Faction(id); f != nil {
			f.Loyalty = Clamp(f.Loyalty+delta, LoyaltyMin, LoyaltyMax)
		}
	}

	for k, delta := range eff.DiplomacyMeta {
		s.DiplomacyMeta[k] += delta
	}

	if e := eff.Economy; e != nil {
		eco := &s.Economy
		eco.Inflation = Clamp(eco.Inflation+e.Inflation, InflationMin, InflationMax)
		eco.Debt = Clamp(eco.Debt+e.Debt, DebtMin, DebtMax)
		eco.Food = Clamp(eco.Food+e.Food, FoodMin, FoodMax)
		eco.Trade = Clamp(eco.Trade+e.Trade, TradeMin, TradeMax)
		eco.Stability = Clamp(eco.Stability+e.Stability, StabilityMin, StabilityMax)
	}

	if m := eff.RegionsMeta; m != nil {
		for i := range s.Regions {
			r := &s.Regions[i]
			r.Prosperity = Clamp(r.Prosperity+m.Prosperity, ProsperityMin, ProsperityMax)
			r.Unrest = Clamp(r.Unrest+m.Unrest, UnrestMin, UnrestMax)
			if r.ID == state.RegionFrontier {
				r.Unrest = Clamp(r.Unrest+m.FrontierUnrest, UnrestMin, UnrestMax)
			}
		}
	}

	if w := eff.War; w != nil {
		s.War.PlayerPower = Clamp(s.War.PlayerPower+w.PlayerPower, PlayerPowerMin, PlayerPowerMax)
		s.War.EnemyPower = Clamp(s.War.EnemyPower+w.EnemyPower, EnemyPowerMin, EnemyPowerMax)
		s.War.Morale = Clamp(s.War.Morale+w.Morale, MoraleMin, MoraleMax)
		if w.PeaceAttempt {
			s.Flags[state.FlagPeaceAttempt] = true
		}
	}
}

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
