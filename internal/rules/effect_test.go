package rules

import (
	"testing"

	"github.com/talgya/kingdoms/internal/state"
)

func TestNilEffectIsNoOp(t *testing.T) {
	s := testState()
	gold := s.Stats[state.StatGold]
	Apply(nil, s)
	if s.Stats[state.StatGold] != gold {
		t.Fatal("nil effect must not mutate state")
	}
}

func TestStatsAreUnclamped(t *testing.T) {
	s := testState()
	Apply(&Effect{Stats: map[string]int{state.StatGold: -120}}, s)
	if got := s.Stats[state.StatGold]; got != -70 {
		t.Fatalf("gold = %d, want -70 (stats must not clamp)", got)
	}
}

func TestFactionLoyaltyClamps(t *testing.T) {
	s := testState()
	Apply(&Effect{Factions: map[string]int{"nobility": 80}}, s)
	if got := s.Faction("nobility").Loyalty; got != LoyaltyMax {
		t.Errorf("loyalty = %d, want %d", got, LoyaltyMax)
	}

	Apply(&Effect{Factions: map[string]int{"nobility": -500}}, s)
	if got := s.Faction("nobility").Loyalty; got != LoyaltyMin {
		t.Errorf("loyalty = %d, want %d", got, LoyaltyMin)
	}
}

func TestUnknownFactionSkipped(t *testing.T) {
	s := testState()
	before := s.Faction("merchants").Loyalty
	Apply(&Effect{Factions: map[string]int{"ghosts": 10, "merchants": 5}}, s)
	if got := s.Faction("merchants").Loyalty; got != before+5 {
		t.Errorf("merchants loyalty = %d, want %d", got, before+5)
	}
}

func TestFlagsOnlyEverSet(t *testing.T) {
	s := testState()
	Apply(&Effect{FlagsSet: []string{"war_declaration"}}, s)
	if !s.Flags["war_declaration"] {
		t.Fatal("flag not set")
	}
	// Later effects cannot clear it; there is no unset path.
	Apply(&Effect{FlagsSet: []string{"peace_attempt"}}, s)
	if !s.Flags["war_declaration"] {
		t.Fatal("flag lost after unrelated effect")
	}
}

func TestEconomyClamps(t *testing.T) {
	s := testState()
	Apply(&Effect{Economy: &EconomyDelta{Inflation: -100, Debt: 9999}}, s)
	if s.Economy.Inflation != InflationMin {
		t.Errorf("inflation = %d, want %d", s.Economy.Inflation, InflationMin)
	}
	if s.Economy.Debt != DebtMax {
		t.Errorf("debt = %d, want %d", s.Economy.Debt, DebtMax)
	}
}

func TestRegionDeltaBroadcastsAndFrontier(t *testing.T) {
	s := state.New(nil, []state.Region{
		{ID: "capital", Prosperity: 60, Unrest: 10},
		{ID: "frontier", Prosperity: 45, Unrest: 18},
	}, 3)

	Apply(&Effect{RegionsMeta: &RegionDelta{Unrest: 2, FrontierUnrest: 3}}, s)

	if got := s.Region("capital").Unrest; got != 12 {
		t.Errorf("capital unrest = %d, want 12", got)
	}
	if got := s.Region("frontier").Unrest; got != 23 {
		t.Errorf("frontier unrest = %d, want 23 (broadcast plus frontier extra)", got)
	}
}

func TestWarDelta(t *testing.T) {
	s := testState()
	Apply(&Effect{War: &WarDelta{EnemyPower: -100, Morale: 200, PeaceAttempt: true}}, s)

	if s.War.EnemyPower != EnemyPowerMin {
		t.Errorf("enemy power = %d, want %d", s.War.EnemyPower, EnemyPowerMin)
	}
	if s.War.Morale != MoraleMax {
		t.Errorf("morale = %d, want %d", s.War.Morale, MoraleMax)
	}
	if !s.Flags[state.FlagPeaceAttempt] {
		t.Error("peace attempt flag not raised")
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ n, lo, hi, want int }{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		if got := Clamp(c.n, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", c.n, c.lo, c.hi, got, c.want)
		}
	}
}
