// Package state holds the single mutable game aggregate. The engine owns
// it exclusively; every other component reads a snapshot or receives it by
// reference for the duration of one command.
package state

import "github.com/google/uuid"

// Stage is the two-phase campaign arc.
type Stage string

const (
	StagePrince Stage = "prince"
	StageKing   Stage = "king"
)

// Stat names. Stats are kept as a map so that effect and requirement
// payloads can address them by name; a missing stat reads as zero.
const (
	StatLegitimacy = "legitimacy"
	StatGold       = "gold"
	StatMilitary   = "military"
	StatDiplomacy  = "diplomacy"
)

// Diplomacy counter names.
const (
	MetaAlliances = "alliances"
	MetaWars      = "wars"
	MetaRivalries = "rivalries"
)

// Flags with engine-level meaning (beyond requirement gating).
const (
	FlagWarDeclaration   = "war_declaration"
	FlagInWar            = "in_war"
	FlagPeaceAttempt     = "peace_attempt"
	FlagSuccessionCrisis = "succession_crisis"
)

// RegionFrontier is the region targeted by frontier-only effects.
const RegionFrontier = "frontier"

// FactionMerchants takes the loyalty hit when the treasury runs negative.
const FactionMerchants = "merchants"

// Faction is a court faction with a loyalty value in [0,100].
type Faction struct {
	ID      string `json:"id"`
	Loyalty int    `json:"loyalty"`
}

// Region is one province of the abstract realm map.
type Region struct {
	ID         string `json:"id"`
	Prosperity int    `json:"prosperity"` // [0,100]
	Unrest     int    `json:"unrest"`     // [0,100]
}

// Economy tracks the realm's monetary and supply position.
type Economy struct {
	Inflation int `json:"inflation"` // [-10,50]
	Debt      int `json:"debt"`      // [0,500]
	Food      int `json:"food"`      // [0,100]
	Trade     int `json:"trade"`     // [0,100]
	Stability int `json:"stability"` // [0,100]
}

// War tracks the current (or most recent) war.
type War struct {
	Active      bool `json:"active"`
	PlayerPower int  `json:"player_power"` // [0,120]
	EnemyPower  int  `json:"enemy_power"`  // [0,140]
	Morale      int  `json:"morale"`       // [0,100]
	Days        int  `json:"days"`
}

// SummaryEntry is one append-only log record for end-of-game reporting.
type SummaryEntry struct {
	Turn int    `json:"turn"`
	Type string `json:"type"` // "action", "war", "economy", "event"
	ID   string `json:"id"`
}

// State is the full game aggregate. It round-trips through JSON as the
// persisted save shape.
type State struct {
	Playthrough string `json:"playthrough"`
	Locale      string `json:"locale"`

	Nation string   `json:"nation,omitempty"`
	Traits []string `json:"traits"`
	Stage  Stage    `json:"stage"`
	Turn   int      `json:"turn"`

	// ActionPoints is the per-turn spendable budget (PA).
	ActionPoints int `json:"pa"`

	Stats         map[string]int  `json:"stats"`
	Flags         map[string]bool `json:"flags"`
	SeenEvents    map[string]bool `json:"seen_events"`
	Factions      []Faction       `json:"factions"`
	Regions       []Region        `json:"regions"`
	DiplomacyMeta map[string]int  `json:"diplomacy_meta"`
	Economy       Economy         `json:"economy"`
	War           War             `json:"war"`

	EventQueue   []string       `json:"event_queue"`
	LastActionID string         `json:"last_action_id,omitempty"`
	Summary      []SummaryEntry `json:"summary"`

	// EndingID is set once an ending fires; empty while the game is live.
	EndingID string `json:"ending_id,omitempty"`
}

// New returns a fresh pre-selection state. Faction and region rosters are
// copied from the supplied initial values so catalog data stays immutable.
func New(factions []Faction, regions []Region, actionPoints int) *State {
	return &State{
		Playthrough:   uuid.NewString(),
		Locale:        "en",
		Traits:        []string{},
		Stage:         StagePrince,
		Turn:          1,
		ActionPoints:  actionPoints,
		Stats:         map[string]int{StatLegitimacy: 50, StatGold: 50, StatMilitary: 50, StatDiplomacy: 50},
		Flags:         map[string]bool{},
		SeenEvents:    map[string]bool{},
		Factions:      append([]Faction(nil), factions...),
		Regions:       append([]Region(nil), regions...),
		DiplomacyMeta: map[string]int{MetaAlliances: 0, MetaWars: 0, MetaRivalries: 0},
		Economy:       Economy{Inflation: 0, Debt: 0, Food: 55, Trade: 10, Stability: 55},
		War:           War{Active: false, PlayerPower: 50, EnemyPower: 55, Morale: 50, Days: 0},
		EventQueue:    []string{},
		Summary:       []SummaryEntry{},
	}
}

// Faction returns the faction with the given id, or nil.
func (s *State) Faction(id string) *Faction {
	for i := range s.Factions {
		if s.Factions[i].ID == id {
			return &s.Factions[i]
		}
	}
	return nil
}

// Region returns the region with the given id, or nil.
func (s *State) Region(id string) *Region {
	for i := range s.Regions {
		if s.Regions[i].ID == id {
			return &s.Regions[i]
		}
	}
	return nil
}

// HasTrait reports whether the ruler carries the given trait.
func (s *State) HasTrait(id string) bool {
	for _, t := range s.Traits {
		if t == id {
			return true
		}
	}
	return false
}

// EconomyField resolves an economy field by name, defaulting unknown names
// to zero the same way stat lookups do.
func (s *State) EconomyField(name string) int {
	switch name {
	case "inflation":
		return s.Economy.Inflation
	case "debt":
		return s.Economy.Debt
	case "food":
		return s.Economy.Food
	case "trade":
		return s.Economy.Trade
	case "stability":
		return s.Economy.Stability
	}
	return 0
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := *s
	c.Traits = append([]string(nil), s.Traits...)
	c.Stats = cloneIntMap(s.Stats)
	c.Flags = cloneBoolMap(s.Flags)
	c.SeenEvents = cloneBoolMap(s.SeenEvents)
	c.Factions = append([]Faction(nil), s.Factions...)
	c.Regions = append([]Region(nil), s.Regions...)
	c.DiplomacyMeta = cloneIntMap(s.DiplomacyMeta)
	c.EventQueue = append([]string(nil), s.EventQueue...)
	c.Summary = append([]SummaryEntry(nil), s.Summary...)
	return &c
}

func cloneIntMap(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	c := make(map[string]int, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	c := make(map[string]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
