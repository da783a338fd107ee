package content

import "testing"

func TestLoadCatalogs(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := len(c.Nations); got != 5 {
		t.Errorf("nations = %d, want 5", got)
	}
	if got := len(c.Traits); got != 5 {
		t.Errorf("traits = %d, want 5", got)
	}
	if got := len(c.Factions); got != 4 {
		t.Errorf("factions = %d, want 4", got)
	}
	if got := len(c.Regions); got != 4 {
		t.Errorf("regions = %d, want 4", got)
	}

	if c.Rules.PAPerTurn != 3 {
		t.Errorf("pa_per_turn = %d, want 3", c.Rules.PAPerTurn)
	}
	if c.Rules.MaxTurns != 24 {
		t.Errorf("max_turns = %d, want 24", c.Rules.MaxTurns)
	}
	if c.Rules.Income.Gold != 4 {
		t.Errorf("income.gold = %d, want 4", c.Rules.Income.Gold)
	}
	if c.War.EnemyBase != 55 {
		t.Errorf("enemyBase = %d, want 55", c.War.EnemyBase)
	}
	if c.Economy.DebtInterestRate != 0.05 {
		t.Errorf("debtInterestRate = %v, want 0.05", c.Economy.DebtInterestRate)
	}
}

func TestEventMergeOrder(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(c.Events) == 0 {
		t.Fatal("no events loaded")
	}
	if c.Events[0].ID != "event_prince_tutor" {
		t.Errorf("first event = %q, want the prince set first", c.Events[0].ID)
	}
	if c.Events[len(c.Events)-1].ID != "event_econ_inflation" {
		t.Errorf("last event = %q, want the economy set last", c.Events[len(c.Events)-1].ID)
	}

	idx := func(id string) int {
		for i := range c.Events {
			if c.Events[i].ID == id {
				return i
			}
		}
		t.Fatalf("event %q missing from merged catalog", id)
		return -1
	}
	if idx("event_succession") < idx("event_prince_dissent") {
		t.Error("king events must come after prince events")
	}
	if idx("event_war_raid_result") < idx("event_court_meeting") {
		t.Error("war events must come after king events")
	}
}

func TestEndingKinds(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(c.Endings.Victory) != 3 || len(c.Endings.GameOver) != 4 {
		t.Fatalf("endings = %d victory / %d gameover, want 3/4",
			len(c.Endings.Victory), len(c.Endings.GameOver))
	}
	for _, e := range c.Endings.Victory {
		if e.Kind != EndingVictory {
			t.Errorf("ending %s kind = %q, want %q", e.ID, e.Kind, EndingVictory)
		}
	}
	for _, e := range c.Endings.GameOver {
		if e.Kind != EndingGameOver {
			t.Errorf("ending %s kind = %q, want %q", e.ID, e.Kind, EndingGameOver)
		}
	}
	if c.Endings.Victory[0].ID != "victory_diplomatic" {
		t.Errorf("default victory = %q, want victory_diplomatic", c.Endings.Victory[0].ID)
	}
}

func TestLookups(t *testing.T) {
	c := MustLoad()

	if c.Event("event_war") == nil {
		t.Error("event_war lookup failed")
	}
	if c.Event("event_nonexistent") != nil {
		t.Error("unknown event lookup must return nil")
	}
	if n := c.Nation("england"); n == nil || n.Stats["gold"] != 60 {
		t.Error("england lookup failed")
	}
	if tr := c.Trait("just"); tr == nil || tr.Modifiers["legitimacy"] != 10 {
		t.Error("trait just lookup failed")
	}
	if a := ActionByID(c.Actions, "declare_war"); a == nil || a.CostPA != 2 {
		t.Error("declare_war lookup failed")
	}
	if ActionByID(c.WarActions, "declare_war") != nil {
		t.Error("lookups must not cross catalogs")
	}
}

func TestInitialRosters(t *testing.T) {
	c := MustLoad()

	factions := c.InitialFactions()
	if len(factions) != 4 {
		t.Fatalf("factions = %d, want 4", len(factions))
	}
	for _, f := range factions {
		want := 0
		switch f.ID {
		case "nobility", "merchants":
			want = 55
		case "clergy", "army":
			want = 50
		default:
			t.Errorf("unexpected faction %q", f.ID)
			continue
		}
		if f.Loyalty != want {
			t.Errorf("%s loyalty = %d, want %d", f.ID, f.Loyalty, want)
		}
	}

	regions := c.InitialRegions()
	if len(regions) != 4 {
		t.Fatalf("regions = %d, want 4", len(regions))
	}
	if regions[0].ID != "capital" || regions[0].Prosperity != 60 || regions[0].Unrest != 10 {
		t.Errorf("capital = %+v, want prosperity 60 unrest 10", regions[0])
	}
}
