// Package engine drives a playthrough: it owns the game state and applies
// player commands and turn advancement against the static catalogs.
//
// Every exported method serializes through one mutex. The state machine
// itself is fully synchronous; the lock only protects against concurrent
// callers of the command surface.
package engine

import (
	"errors"
	"sync"

	"github.com/talgya/kingdoms/internal/content"
	"github.com/talgya/kingdoms/internal/entropy"
	"github.com/talgya/kingdoms/internal/rules"
	"github.com/talgya/kingdoms/internal/state"
)

// Rejected commands leave the state untouched. Callers are expected to
// pre-filter with the same requirement evaluator, so hitting one of these
// is harmless and retryable.
var (
	ErrNoActionPoints     = errors.New("not enough action points")
	ErrRequirementsNotMet = errors.New("requirements not met")
	ErrUnknownAction      = errors.New("unknown action")
	ErrUnknownNation      = errors.New("unknown nation")
	ErrUnknownTrait       = errors.New("unknown trait")
	ErrTraitCount         = errors.New("exactly two traits required")
	ErrNoCurrentEvent     = errors.New("no current event")
	ErrUnknownChoice      = errors.New("unknown event choice")
	ErrNoActiveWar        = errors.New("no active war")
)

// Game is the turn/action controller over one playthrough.
type Game struct {
	mu  sync.Mutex
	cat *content.Catalogs
	rng entropy.Source
	st  *state.State
}

// New creates a controller with a fresh pre-selection state.
func New(cat *content.Catalogs, rng entropy.Source) *Game {
	return &Game{cat: cat, rng: rng, st: freshState(cat)}
}

func freshState(cat *content.Catalogs) *state.State {
	return state.New(cat.InitialFactions(), cat.InitialRegions(), cat.Rules.PAPerTurn)
}

// NewGame discards the current playthrough and starts over.
func (g *Game) NewGame() {
	g.mu.Lock()
	defer g.mu.Unlock()
	locale := g.st.Locale
	g.st = freshState(g.cat)
	g.st.Locale = locale
}

// SetNation applies the chosen nation's stat block and pre-seeds its
// suggested traits.
func (g *Game) SetNation(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.cat.Nation(id)
	if n == nil {
		return ErrUnknownNation
	}

	g.st.Nation = n.ID
	for k, v := range n.Stats {
		g.st.Stats[k] = v
	}
	for _, tr := range n.Traits {
		if !g.st.HasTrait(tr) {
			g.st.Traits = append(g.st.Traits, tr)
		}
	}
	return nil
}

// SetTraits fixes the ruler's two traits and applies their one-time stat
// modifiers.
func (g *Game) SetTraits(ids []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(ids) != 2 {
		return ErrTraitCount
	}
	for _, id := range ids {
		if g.cat.Trait(id) == nil {
			return ErrUnknownTrait
		}
	}

	g.st.Traits = append([]string(nil), ids...)
	for _, id := range ids {
		tr := g.cat.Trait(id)
		rules.Apply(&rules.Effect{Stats: tr.Modifiers}, g.st)
	}
	return nil
}

// SetLocale records the active locale in the save shape. String lookup is
// the presentation layer's business.
func (g *Game) SetLocale(locale string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.st.Locale = locale
}

// Snapshot returns a deep copy of the current state.
func (g *Game) Snapshot() *state.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.st.Clone()
}

// Restore replaces the current state with a loaded snapshot.
func (g *Game) Restore(st *state.State) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.st = st.Clone()
}

// Catalogs exposes the immutable content set (for the presentation layer).
func (g *Game) Catalogs() *content.Catalogs {
	return g.cat
}

// record appends one summary entry.
func (g *Game) record(kind, id string) {
	g.st.Summary = append(g.st.Summary, state.SummaryEntry{Turn: g.st.Turn, Type: kind, ID: id})
}
