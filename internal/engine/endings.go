package engine

import (
	"github.com/talgya/kingdoms/internal/content"
	"github.com/talgya/kingdoms/internal/rules"
)

// evaluateEndings scans the terminal catalogs in priority order:
// game-over conditions always win over victories. Returns nil while the
// playthrough is still live. Caller holds g.mu.
func (g *Game) evaluateEndings() *content.Ending {
	for i := range g.cat.Endings.GameOver {
		e := &g.cat.Endings.GameOver[i]
		if matchesEnding(e, g) {
			return e
		}
	}
	for i := range g.cat.Endings.Victory {
		e := &g.cat.Endings.Victory[i]
		if matchesEnding(e, g) {
			return e
		}
	}
	return nil
}

func matchesEnding(e *content.Ending, g *Game) bool {
	return e.Requirements != nil && rules.Matches(e.Requirements, g.st)
}

// EvaluateEndings reports the ending the current state qualifies for,
// without recording it.
func (g *Game) EvaluateEndings() *content.Ending {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.evaluateEndings()
}

// Ending returns the recorded terminal outcome, or nil while the game
// is still in progress.
func (g *Game) Ending() *content.Ending {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.st.EndingID == "" {
		return nil
	}
	for i := range g.cat.Endings.GameOver {
		if g.cat.Endings.GameOver[i].ID == g.st.EndingID {
			return &g.cat.Endings.GameOver[i]
		}
	}
	for i := range g.cat.Endings.Victory {
		if g.cat.Endings.Victory[i].ID == g.st.EndingID {
			return &g.cat.Endings.Victory[i]
		}
	}
	return nil
}
