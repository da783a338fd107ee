// Package rules implements the predicate language that gates actions,
// events, milestones and endings, and the effect payloads those same
// catalogs apply to the game state.
package rules

import "github.com/talgya/kingdoms/internal/state"

// WarBounds constrains war gauges. Nil fields are unconstrained; only the
// three numeric gauges are comparable.
type WarBounds struct {
	PlayerPower *int `yaml:"playerPower" json:"playerPower,omitempty"`
	EnemyPower  *int `yaml:"enemyPower" json:"enemyPower,omitempty"`
	Morale      *int `yaml:"morale" json:"morale,omitempty"`
}

// Requirement is a structured predicate. Every present key must hold for
// the requirement to match; an empty requirement matches everything.
//
// Two lookup-default policies apply, deliberately distinct: a stat (or
// diplomacy counter, or economy field) missing from the state reads as
// zero before comparison, while a faction id missing from the roster fails
// the constraint outright.
type Requirement struct {
	StageIn []state.Stage `yaml:"stageIn" json:"stageIn,omitempty"`

	MinStats map[string]int `yaml:"minStats" json:"minStats,omitempty"`
	MaxStats map[string]int `yaml:"maxStats" json:"maxStats,omitempty"`

	MinFactions map[string]int `yaml:"minFactions" json:"minFactions,omitempty"`
	MaxFactions map[string]int `yaml:"maxFactions" json:"maxFactions,omitempty"`

	MinDiplomacyMeta map[string]int `yaml:"minDiplomacyMeta" json:"minDiplomacyMeta,omitempty"`

	MinEconomy map[string]int `yaml:"minEconomy" json:"minEconomy,omitempty"`
	MaxEconomy map[string]int `yaml:"maxEconomy" json:"maxEconomy,omitempty"`

	MinWar *WarBounds `yaml:"minWar" json:"minWar,omitempty"`
	MaxWar *WarBounds `yaml:"maxWar" json:"maxWar,omitempty"`

	// TraitIn matches when at least one listed trait is present.
	TraitIn []string `yaml:"traitIn" json:"traitIn,omitempty"`

	Flag     string   `yaml:"flag" json:"flag,omitempty"`
	FlagsAll []string `yaml:"flagsAll" json:"flagsAll,omitempty"`

	TurnAtLeast *int `yaml:"turnAtLeast" json:"turnAtLeast,omitempty"`
	TurnAtMost  *int `yaml:"turnAtMost" json:"turnAtMost,omitempty"`

	// Any matches when at least one sub-requirement matches; All when every
	// one does. Both recurse into the full predicate language.
	Any []Requirement `yaml:"any" json:"any,omitempty"`
	All []Requirement `yaml:"all" json:"all,omitempty"`
}

// Matches evaluates a requirement against the current state. A nil
// requirement matches.
func Matches(req *Requirement, s *state.State) bool {
	if req == nil {
		return true
	}

	if len(req.StageIn) > 0 && !containsStage(req.StageIn, s.Stage) {
		return false
	}

	for k, v := range req.MinStats {
		if s.Stats[k] < v {
			return false
		}
	}
	for k, v := range req.MaxStats {
		if s.Stats[k] > v {
			return false
		}
	}

	for id, v := range req.MinFactions {
		f := s.Faction(id)
		if f == nil || f.Loyalty < v {
			return false
		}
	}
	for id, v := range req.MaxFactions {
		f := s.Faction(id)
		if f == nil || f.Loyalty > v {
			return false
		}
	}

	for k, v := range req.MinDiplomacyMeta {
		if s.DiplomacyMeta[k] < v {
			return false
		}
	}

	for k, v := range req.MinEconomy {
		if s.EconomyField(k) < v {
			return false
		}
	}
	for k, v := range req.MaxEconomy {
		if s.EconomyField(k) > v {
			return false
		}
	}

	if b := req.MinWar; b != nil {
		if b.EnemyPower != nil && s.War.EnemyPower < *b.EnemyPower {
			return false
		}
		if b.PlayerPower != nil && s.War.PlayerPower < *b.PlayerPower {
			return false
		}
		if b.Morale != nil && s.War.Morale < *b.Morale {
			return false
		}
	}
	if b := req.MaxWar; b != nil {
		if b.EnemyPower != nil && s.War.EnemyPower > *b.EnemyPower {
			return false
		}
		if b.PlayerPower != nil && s.War.PlayerPower > *b.PlayerPower {
			return false
		}
		if b.Morale != nil && s.War.Morale > *b.Morale {
			return false
		}
	}

	if len(req.TraitIn) > 0 {
		has := false
		for _, tr := range req.TraitIn {
			if s.HasTrait(tr) {
				has = true
				break
			}
		}
		if !has {
			return false
		}
	}

	if req.Flag != "" && !s.Flags[req.Flag] {
		return false
	}
	for _, f := range req.FlagsAll {
		if !s.Flags[f] {
			return false
		}
	}

	if req.TurnAtLeast != nil && s.Turn < *req.TurnAtLeast {
		return false
	}
	if req.TurnAtMost != nil && s.Turn > *req.TurnAtMost {
		return false
	}

	// Composite clauses resolve last; Any takes precedence over All.
	if len(req.Any) > 0 {
		for i := range req.Any {
			if Matches(&req.Any[i], s) {
				return true
			}
		}
		return false
	}
	if len(req.All) > 0 {
		for i := range req.All {
			if !Matches(&req.All[i], s) {
				return false
			}
		}
	}

	return true
}

func containsStage(stages []state.Stage, st state.Stage) bool {
	for _, v := range stages {
		if v == st {
			return true
		}
	}
	return false
}
