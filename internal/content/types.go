// Package content loads the static game catalogs: nations, traits,
// factions, regions, actions, events, arc milestones, endings and turn
// rules. Catalogs are data, not behavior — the engine treats them as
// opaque lookup tables and they can be swapped without touching engine
// code.
package content

import (
	"github.com/talgya/kingdoms/internal/rules"
	"github.com/talgya/kingdoms/internal/state"
)

// Nation is a playable starting nation. Its stats override the default
// stat block and its traits are pre-seeded as suggestions.
type Nation struct {
	ID      string         `yaml:"id"`
	NameKey string         `yaml:"nameKey"`
	DescKey string         `yaml:"descKey"`
	Stats   map[string]int `yaml:"stats"`
	Traits  []string       `yaml:"traits"`
}

// Trait is a one-time ruler modifier chosen at game start.
type Trait struct {
	ID        string         `yaml:"id"`
	TitleKey  string         `yaml:"titleKey"`
	DescKey   string         `yaml:"descKey"`
	Modifiers map[string]int `yaml:"modifiers"`
}

// FactionDef seeds the faction roster.
type FactionDef struct {
	ID      string `yaml:"id"`
	NameKey string `yaml:"nameKey"`
	Loyalty int    `yaml:"loyalty"`
}

// RegionDef seeds the realm map.
type RegionDef struct {
	ID         string `yaml:"id"`
	NameKey    string `yaml:"nameKey"`
	Prosperity int    `yaml:"prosperity"`
	Unrest     int    `yaml:"unrest"`
}

// TurnRules holds the per-turn budgets and decay table.
type TurnRules struct {
	PAPerTurn int `yaml:"pa_per_turn"`
	MaxTurns  int `yaml:"max_turns"`
	Income    struct {
		Gold int `yaml:"gold"`
	} `yaml:"income"`
	Decay map[string]int `yaml:"decay"`
}

// WarConfig tunes war progression.
type WarConfig struct {
	EnemyBase          int `yaml:"enemyBase"`
	EnemyGrowthPerTurn int `yaml:"enemyGrowthPerTurn"`
	MoraleLossOnDefeat int `yaml:"moraleLossOnDefeat"`
	MoraleGainOnWin    int `yaml:"moraleGainOnWin"`
}

// EconomyConfig tunes income and interest formulas.
type EconomyConfig struct {
	DebtInterestRate        float64 `yaml:"debtInterestRate"`
	InflationImpactOnIncome float64 `yaml:"inflationImpactOnIncome"`
}

// Action is a player command from any of the three action catalogs
// (court, war, economy). All share the same gate/cost/effect shape.
type Action struct {
	ID           string             `yaml:"id"`
	CostPA       int                `yaml:"costPA"`
	TitleKey     string             `yaml:"titleKey"`
	DescKey      string             `yaml:"descKey"`
	Requirements *rules.Requirement `yaml:"requirements"`
	Effects      *rules.Effect      `yaml:"effects"`
	FlagsSet     []string           `yaml:"flagsSet"`
	MayTrigger   []string           `yaml:"mayTrigger"`
}

// Trigger gates an event's eligibility for the turn scan. Random adds a
// uniform admission roll on top of the embedded requirement.
type Trigger struct {
	Random      bool `yaml:"random"`
	Requirement `yaml:",inline"`
}

// EventChoice is one resolution option for an event.
type EventChoice struct {
	TextKey      string             `yaml:"textKey"`
	Requirements *rules.Requirement `yaml:"requirements"`
	Effects      *rules.Effect      `yaml:"effects"`
}

// Event is a scripted story beat, single-fire per playthrough.
type Event struct {
	ID       string        `yaml:"id"`
	Stage    state.Stage   `yaml:"stage"`
	Priority int           `yaml:"priority"`
	Trigger  *Trigger      `yaml:"trigger"`
	TitleKey string        `yaml:"titleKey"`
	TextKey  string        `yaml:"textKey"`
	Choices  []EventChoice `yaml:"choices"`
}

// Requirement aliases the rules type so Trigger can inline it.
type Requirement = rules.Requirement

// Milestone is a one-shot arc beat unlocked by a requirement.
type Milestone struct {
	ID                 string             `yaml:"id"`
	Unlock             *rules.Requirement `yaml:"unlock"`
	FlagsSet           []string           `yaml:"flagsSet"`
	OnStartQueueEvents []string           `yaml:"onStartQueueEvents"`
}

// Arc is the campaign's milestone sequence.
type Arc struct {
	ID         string      `yaml:"id"`
	Milestones []Milestone `yaml:"milestones"`
}

// Ending kinds. Game-over endings outrank victories in the scan.
const (
	EndingGameOver = "gameover"
	EndingVictory  = "victory"
)

// Ending is a terminal outcome matched against an ordered catalog.
type Ending struct {
	ID           string             `yaml:"id"`
	Requirements *rules.Requirement `yaml:"requirements"`
	TitleKey     string             `yaml:"titleKey"`
	TextKey      string             `yaml:"textKey"`

	// Kind is derived from which list the ending came from.
	Kind string `yaml:"-"`
}

// Endings holds both terminal catalogs in priority order.
type Endings struct {
	Victory  []Ending `yaml:"victory"`
	GameOver []Ending `yaml:"gameover"`
}

// Catalogs is the full immutable content set shared by every playthrough.
type Catalogs struct {
	Nations        []Nation
	Traits         []Trait
	Factions       []FactionDef
	Regions        []RegionDef
	Rules          TurnRules
	War            WarConfig
	Economy        EconomyConfig
	Actions        []Action
	WarActions     []Action
	EconomyActions []Action

	// Events is the merged catalog: prince, king, war, economy sets in
	// that order.
	Events []Event

	Arc     Arc
	Endings Endings
}

// Event returns the event with the given id, or nil.
func (c *Catalogs) Event(id string) *Event {
	for i := range c.Events {
		if c.Events[i].ID == id {
			return &c.Events[i]
		}
	}
	return nil
}

// Nation returns the nation with the given id, or nil.
func (c *Catalogs) Nation(id string) *Nation {
	for i := range c.Nations {
		if c.Nations[i].ID == id {
			return &c.Nations[i]
		}
	}
	return nil
}

// Trait returns the trait with the given id, or nil.
func (c *Catalogs) Trait(id string) *Trait {
	for i := range c.Traits {
		if c.Traits[i].ID == id {
			return &c.Traits[i]
		}
	}
	return nil
}

// ActionByID looks up an action in the given catalog slice.
func ActionByID(catalog []Action, id string) *Action {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

// InitialFactions converts the faction defs into live state.
func (c *Catalogs) InitialFactions() []state.Faction {
	out := make([]state.Faction, len(c.Factions))
	for i, f := range c.Factions {
		out[i] = state.Faction{ID: f.ID, Loyalty: f.Loyalty}
	}
	return out
}

// InitialRegions converts the region defs into live state.
func (c *Catalogs) InitialRegions() []state.Region {
	out := make([]state.Region, len(c.Regions))
	for i, r := range c.Regions {
		out[i] = state.Region{ID: r.ID, Prosperity: r.Prosperity, Unrest: r.Unrest}
	}
	return out
}
