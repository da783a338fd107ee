package engine

import (
	"math"

	"github.com/talgya/kingdoms/internal/rules"
	"github.com/talgya/kingdoms/internal/state"
)

// Turn thresholds and tick constants. These are engine mechanics, not
// catalog data, and the turn sequence depends on their exact values.
const (
	coronationTurn = 3

	foodPerTurn        = 4
	lowFoodThreshold   = 20
	highDebtThreshold  = 200
	highInflationLimit = 15
	warMoraleDrain     = 2
)

// EndTurn advances the game by one turn. The step order is fixed; each
// step observes the mutations of the previous ones.
func (g *Game) EndTurn() {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.st

	// 1. Coronation: prince becomes king at the end of turn 3. The
	// succession milestone fires later in the sequence, once the turn
	// counter has advanced.
	if st.Turn == coronationTurn && st.Stage == state.StagePrince {
		st.Stage = state.StageKing
	}

	// 2. Income.
	st.Stats[state.StatGold] += g.incomeForTurn()

	// 3. Debt interest.
	interest := int(math.Round(float64(st.Economy.Debt) * g.cat.Economy.DebtInterestRate))
	if interest > 0 {
		st.Stats[state.StatGold] -= interest
	}

	// 4. Food consumption and stability pressure.
	eco := &st.Economy
	eco.Food = rules.Clamp(eco.Food-foodPerTurn, rules.FoodMin, rules.FoodMax)
	if eco.Food < lowFoodThreshold {
		eco.Stability = rules.Clamp(eco.Stability-3, rules.StabilityMin, rules.StabilityMax)
		st.Stats[state.StatLegitimacy] -= 2
	}
	if eco.Debt > highDebtThreshold {
		eco.Stability = rules.Clamp(eco.Stability-2, rules.StabilityMin, rules.StabilityMax)
	}
	if eco.Inflation > highInflationLimit {
		eco.Stability = rules.Clamp(eco.Stability-2, rules.StabilityMin, rules.StabilityMax)
	}
	if eco.Stability > 70 && eco.Food > 40 {
		st.Stats[state.StatLegitimacy]++
	}
	// Total collapse forces the overthrow ending on the next scan.
	if eco.Stability <= 0 {
		st.Stats[state.StatLegitimacy] = 0
	}

	// 5. Static decay table.
	for k, v := range g.cat.Rules.Decay {
		st.Stats[k] += v
	}

	// 6. Region drift: prosperity follows unrest.
	for i := range st.Regions {
		r := &st.Regions[i]
		if r.Unrest < 20 {
			r.Prosperity = rules.Clamp(r.Prosperity+1, rules.ProsperityMin, rules.ProsperityMax)
		}
		if r.Unrest > 60 {
			r.Prosperity = rules.Clamp(r.Prosperity-1, rules.ProsperityMin, rules.ProsperityMax)
		}
	}

	// 7. A negative treasury costs merchant loyalty.
	if st.Stats[state.StatGold] < 0 {
		if f := st.Faction(state.FactionMerchants); f != nil {
			f.Loyalty = rules.Clamp(f.Loyalty-2, rules.LoyaltyMin, rules.LoyaltyMax)
		}
	}

	// 8. Next turn.
	st.Turn++
	st.ActionPoints = g.cat.Rules.PAPerTurn

	// 9. Arc milestones, each at most once (guarded by its own flag).
	for _, m := range g.cat.Arc.Milestones {
		if st.Flags[m.ID] || !rules.Matches(m.Unlock, st) {
			continue
		}
		for _, f := range m.FlagsSet {
			st.Flags[f] = true
		}
		for _, id := range m.OnStartQueueEvents {
			g.queueSpecific(id)
		}
	}

	// 10. War progression.
	if st.War.Active {
		st.War.Days++
		st.War.EnemyPower = rules.Clamp(st.War.EnemyPower+g.cat.War.EnemyGrowthPerTurn, rules.EnemyPowerMin, rules.EnemyPowerMax)
		st.War.Morale = rules.Clamp(st.War.Morale-warMoraleDrain, rules.MoraleMin, rules.MoraleMax)
		if st.War.EnemyPower <= 0 {
			st.War.Active = false
			st.Stats[state.StatLegitimacy] += 8
			st.Stats[state.StatMilitary] += 6
		}
		if st.War.Morale <= 0 {
			st.Stats[state.StatMilitary] = rules.Clamp(st.Stats[state.StatMilitary]-10, -50, 120)
		}
	}

	// 11. Event roll, only when nothing is pending.
	if len(st.EventQueue) == 0 {
		g.selectEventForTurn()
	}

	// 12. Endings; past the turn limit the default victory fires.
	if ending := g.evaluateEndings(); ending != nil {
		st.EndingID = ending.ID
	} else if st.Turn > g.cat.Rules.MaxTurns {
		st.EndingID = g.cat.Endings.Victory[0].ID
	}
}

// incomeForTurn computes this turn's treasury income: base plus a
// prosperity contribution per region discounted by unrest, plus a trade
// bonus, the sum discounted by inflation.
func (g *Game) incomeForTurn() int {
	st := g.st
	base := g.cat.Rules.Income.Gold

	regionIncome := 0
	for _, r := range st.Regions {
		stability := 1 - float64(r.Unrest)/140
		regionIncome += int(math.Round(float64(r.Prosperity) / 12 * stability))
	}

	tradeBonus := int(math.Round(float64(st.Economy.Trade) / 10))

	inflation := st.Economy.Inflation
	if inflation < 0 {
		inflation = 0
	}
	inflationFactor := 1 - float64(inflation)*g.cat.Economy.InflationImpactOnIncome

	return int(math.Round(float64(base+regionIncome+tradeBonus) * inflationFactor))
}
