package engine

import (
	"github.com/talgya/kingdoms/internal/content"
	"github.com/talgya/kingdoms/internal/rules"
	"github.com/talgya/kingdoms/internal/state"
)

// eventChance is the admission rate for random-gated triggers.
const eventChance = 0.35

// selectEventForTurn scans the catalog for the highest-priority eligible
// event and queues it. Events are single-fire: a selected event is marked
// seen and never rescanned.
func (g *Game) selectEventForTurn() {
	var best *content.Event
	for i := range g.cat.Events {
		e := &g.cat.Events[i]
		if e.Stage != g.st.Stage || g.st.SeenEvents[e.ID] {
			continue
		}
		if t := e.Trigger; t != nil {
			if t.Random && g.rng.Float() > eventChance {
				continue
			}
			if !rules.Matches(&t.Requirement, g.st) {
				continue
			}
		}
		// Strictly-greater keeps the earlier candidate on ties (stable).
		if best == nil || e.Priority > best.Priority {
			best = e
		}
	}

	if best != nil {
		g.st.EventQueue = append(g.st.EventQueue, best.ID)
		g.st.SeenEvents[best.ID] = true
	}
}

// queueSpecific pushes a named event unconditionally, bypassing stage,
// trigger and seen-set filters. Story beats fired by actions and
// milestones are deterministic one-shots regardless of scan state.
// Unknown ids are silently dropped.
func (g *Game) queueSpecific(id string) {
	if id == "" || g.cat.Event(id) == nil {
		return
	}
	g.st.EventQueue = append(g.st.EventQueue, id)
}

// QueueSpecific is the exported form of the deterministic queue push.
func (g *Game) QueueSpecific(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queueSpecific(id)
}

// CurrentEvent returns the event at the head of the queue, or nil. Only
// the head is ever displayed or resolved.
func (g *Game) CurrentEvent() *content.Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentEvent()
}

func (g *Game) currentEvent() *content.Event {
	if len(g.st.EventQueue) == 0 {
		return nil
	}
	return g.cat.Event(g.st.EventQueue[0])
}

// ChooseEventOption resolves the head-of-queue event with the given choice
// index, applies its effects and pops the queue.
func (g *Game) ChooseEventOption(choice int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	e := g.currentEvent()
	if e == nil {
		return ErrNoCurrentEvent
	}
	if choice < 0 || choice >= len(e.Choices) {
		return ErrUnknownChoice
	}
	ch := &e.Choices[choice]
	if !rules.Matches(ch.Requirements, g.st) {
		return ErrRequirementsNotMet
	}

	inWar := g.st.Flags[state.FlagInWar]
	rules.Apply(ch.Effects, g.st)

	// A choice that newly raises in_war activates war mode.
	if !inWar && g.st.Flags[state.FlagInWar] {
		g.st.War.Active = true
	}

	g.record("event", e.ID)
	g.st.EventQueue = g.st.EventQueue[1:]

	if ending := g.evaluateEndings(); ending != nil {
		g.st.EndingID = ending.ID
	}
	return nil
}
