package engine

import (
	"github.com/talgya/kingdoms/internal/content"
	"github.com/talgya/kingdoms/internal/rules"
	"github.com/talgya/kingdoms/internal/state"
)

// Actions with systemic side effects beyond their catalog payload.
const (
	actionRaiseTaxes = "raise_taxes"
	actionLowerTaxes = "lower_taxes"
)

const regionHeartland = "heartland"

// spendAndApply runs the shared gate/cost/effect sequence for all three
// action catalogs. On rejection the state is untouched.
func (g *Game) spendAndApply(a *content.Action) error {
	if g.st.ActionPoints < a.CostPA {
		return ErrNoActionPoints
	}
	if !rules.Matches(a.Requirements, g.st) {
		return ErrRequirementsNotMet
	}

	g.st.ActionPoints -= a.CostPA

	// The action-level flagsSet list merges into the effect payload so
	// both apply in one step.
	eff := rules.Effect{}
	if a.Effects != nil {
		eff = *a.Effects
	}
	if len(a.FlagsSet) > 0 {
		eff.FlagsSet = append(append([]string(nil), eff.FlagsSet...), a.FlagsSet...)
	}
	rules.Apply(&eff, g.st)
	return nil
}

// ApplyAction executes a court action by id.
func (g *Game) ApplyAction(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	a := content.ActionByID(g.cat.Actions, id)
	if a == nil {
		return ErrUnknownAction
	}

	warDeclared := g.st.Flags[state.FlagWarDeclaration]
	if err := g.spendAndApply(a); err != nil {
		return err
	}
	g.st.LastActionID = a.ID

	// A freshly raised war_declaration flag opens the war (a flag already
	// set on a previous turn must not count the same war twice).
	if !warDeclared && g.st.Flags[state.FlagWarDeclaration] {
		g.st.Flags[state.FlagInWar] = true
		g.st.War.Active = true
		g.st.DiplomacyMeta[state.MetaWars]++
	}

	// Mild systemic reactions.
	switch a.ID {
	case actionRaiseTaxes:
		for i := range g.st.Regions {
			r := &g.st.Regions[i]
			if r.ID == regionHeartland || r.ID == state.RegionFrontier {
				r.Unrest = rules.Clamp(r.Unrest+3, rules.UnrestMin, rules.UnrestMax)
			}
		}
	case actionLowerTaxes:
		for i := range g.st.Regions {
			r := &g.st.Regions[i]
			r.Unrest = rules.Clamp(r.Unrest-2, rules.UnrestMin, rules.UnrestMax)
		}
	}

	if len(a.MayTrigger) > 0 {
		// Deterministic: always the first candidate.
		g.queueSpecific(a.MayTrigger[0])
	}

	g.record("action", a.ID)
	return nil
}

// ApplyWarAction executes a war action. Beyond the shared gate/cost/effect
// pattern it resolves combat pressure and checks win/loss conditions.
func (g *Game) ApplyWarAction(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	a := content.ActionByID(g.cat.WarActions, id)
	if a == nil {
		return ErrUnknownAction
	}
	if !g.st.War.Active {
		return ErrNoActiveWar
	}
	if err := g.spendAndApply(a); err != nil {
		return err
	}

	// Compare effective strengths; if behind, morale drops.
	advantage := g.st.Stats[state.StatMilitary] + g.st.War.PlayerPower - g.st.War.EnemyPower
	if advantage < 0 {
		g.st.War.Morale = rules.Clamp(g.st.War.Morale-g.cat.War.MoraleLossOnDefeat, rules.MoraleMin, rules.MoraleMax)
	} else {
		g.st.War.Morale = rules.Clamp(g.st.War.Morale+g.cat.War.MoraleGainOnWin, rules.MoraleMin, rules.MoraleMax)
	}

	if len(a.MayTrigger) > 0 {
		g.queueSpecific(a.MayTrigger[0])
	}

	// Win: enemy power crushed.
	if g.st.War.EnemyPower <= 0 {
		g.st.War.Active = false
		g.st.Stats[state.StatLegitimacy] += 10
	}

	// Loss: morale collapse zeroes the army; the ending scan reads it.
	if g.st.War.Morale <= 0 {
		g.st.Stats[state.StatMilitary] = 0
	}

	g.record("war", a.ID)
	return nil
}

// ApplyEconomyAction executes an economy action by id.
func (g *Game) ApplyEconomyAction(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	a := content.ActionByID(g.cat.EconomyActions, id)
	if a == nil {
		return ErrUnknownAction
	}
	if err := g.spendAndApply(a); err != nil {
		return err
	}

	if len(a.MayTrigger) > 0 {
		g.queueSpecific(a.MayTrigger[0])
	}

	g.record("economy", a.ID)
	return nil
}
