package engine

import (
	"errors"
	"testing"

	"github.com/talgya/kingdoms/internal/entropy"
	"github.com/talgya/kingdoms/internal/state"
)

func TestSelectHighestPriority(t *testing.T) {
	g := newTestGame(t, entropy.Fixed(0.9))
	g.st.Turn = 3 // tutor (90) and study (50) both eligible

	g.selectEventForTurn()
	if got := g.st.EventQueue; len(got) != 1 || got[0] != "event_prince_tutor" {
		t.Fatalf("queue = %v, want the priority-90 event", got)
	}
	if !g.st.SeenEvents["event_prince_tutor"] {
		t.Error("selected event not marked seen")
	}

	// The seen set excludes it from the next scan.
	g.selectEventForTurn()
	if got := g.st.EventQueue; len(got) != 2 || got[1] != "event_prince_study" {
		t.Fatalf("queue = %v, want the next-best event second", got)
	}
}

func TestRandomGate(t *testing.T) {
	shut := newTestGame(t, entropy.Fixed(0.9))
	shut.st.SeenEvents["event_prince_tutor"] = true
	shut.st.Turn = 2

	shut.selectEventForTurn()
	if len(shut.st.EventQueue) != 0 {
		t.Errorf("queue = %v, want nothing with the gate shut", shut.st.EventQueue)
	}

	open := newTestGame(t, entropy.Fixed(0.1))
	open.st.SeenEvents["event_prince_tutor"] = true
	open.st.Turn = 2

	open.selectEventForTurn()
	if got := open.st.EventQueue; len(got) != 1 || got[0] != "event_prince_hunt" {
		t.Errorf("queue = %v, want the random-gated event admitted", got)
	}
}

func TestStageFilter(t *testing.T) {
	g := newTestGame(t, entropy.Fixed(0.9))
	g.st.Stage = state.StageKing
	g.st.Turn = 6 // event_war's turn clause holds; no flags set

	g.selectEventForTurn()
	for _, id := range g.st.EventQueue {
		if e := g.cat.Event(id); e.Stage != state.StageKing {
			t.Errorf("selected %s from the wrong stage", id)
		}
	}
}

func TestQueueSpecificBypassesFilters(t *testing.T) {
	g := newTestGame(t, entropy.Fixed(0.9))

	// A king event in the prince stage, already marked seen: still queued.
	g.st.SeenEvents["event_conspiracy"] = true
	g.QueueSpecific("event_conspiracy")
	if got := g.st.EventQueue; len(got) != 1 || got[0] != "event_conspiracy" {
		t.Fatalf("queue = %v, want the forced event", got)
	}

	// Unknown ids are dropped, not queued as dead entries.
	g.QueueSpecific("event_dragon_attack")
	if len(g.st.EventQueue) != 1 {
		t.Errorf("queue = %v, unknown id must be dropped", g.st.EventQueue)
	}
}

func TestCurrentEventIsHeadOnly(t *testing.T) {
	g := newTestGame(t, entropy.Fixed(0.9))
	if g.CurrentEvent() != nil {
		t.Fatal("empty queue must have no current event")
	}

	g.QueueSpecific("event_prince_tutor")
	g.QueueSpecific("event_prince_study")
	if e := g.CurrentEvent(); e == nil || e.ID != "event_prince_tutor" {
		t.Fatalf("current = %+v, want the head of the queue", e)
	}
}

func TestChooseEventOption(t *testing.T) {
	g := newTestGame(t, entropy.Fixed(0.9))
	g.QueueSpecific("event_prince_tutor")

	if err := g.ChooseEventOption(7); !errors.Is(err, ErrUnknownChoice) {
		t.Fatalf("err = %v, want ErrUnknownChoice", err)
	}
	if err := g.ChooseEventOption(-1); !errors.Is(err, ErrUnknownChoice) {
		t.Fatalf("err = %v, want ErrUnknownChoice for a negative index", err)
	}

	if err := g.ChooseEventOption(1); err != nil {
		t.Fatalf("ChooseEventOption: %v", err)
	}
	st := g.Snapshot()
	if st.Stats[state.StatMilitary] != 60 {
		t.Errorf("military = %d, want 60 after the second choice", st.Stats[state.StatMilitary])
	}
	if len(st.EventQueue) != 0 {
		t.Errorf("queue = %v, want the head popped", st.EventQueue)
	}
	last := st.Summary[len(st.Summary)-1]
	if last.Type != "event" || last.ID != "event_prince_tutor" {
		t.Errorf("summary tail = %+v, want an event entry", last)
	}

	if err := g.ChooseEventOption(0); !errors.Is(err, ErrNoCurrentEvent) {
		t.Fatalf("err = %v, want ErrNoCurrentEvent on an empty queue", err)
	}
}

func TestChoiceRequirementGate(t *testing.T) {
	g := newTestGame(t, entropy.Fixed(0.9))
	g.st.Stats[state.StatGold] = 5 // the tribute choice needs 20
	g.QueueSpecific("event_war_peace_talks")

	if err := g.ChooseEventOption(0); !errors.Is(err, ErrRequirementsNotMet) {
		t.Fatalf("err = %v, want ErrRequirementsNotMet", err)
	}
	if len(g.Snapshot().EventQueue) != 1 {
		t.Error("rejected choice must leave the event pending")
	}

	// The refusal choice carries no requirement and resolves normally.
	if err := g.ChooseEventOption(1); err != nil {
		t.Fatalf("ChooseEventOption: %v", err)
	}
}

func TestChoiceActivatesWar(t *testing.T) {
	g := newTestGame(t, entropy.Fixed(0.9))
	g.QueueSpecific("event_war")

	if err := g.ChooseEventOption(0); err != nil {
		t.Fatalf("ChooseEventOption: %v", err)
	}

	st := g.Snapshot()
	if !st.Flags[state.FlagInWar] {
		t.Error("in_war flag not raised")
	}
	if !st.War.Active {
		t.Error("war not activated by the newly-raised flag")
	}
	if st.DiplomacyMeta[state.MetaWars] != 1 {
		t.Errorf("wars = %d, want 1", st.DiplomacyMeta[state.MetaWars])
	}
}

func TestChoiceCanEndGame(t *testing.T) {
	g := newTestGame(t, entropy.Fixed(0.9))
	g.st.Stats[state.StatLegitimacy] = 4
	g.QueueSpecific("event_succession")

	// The third choice drops legitimacy by 5, through the overthrow line.
	if err := g.ChooseEventOption(2); err != nil {
		t.Fatalf("ChooseEventOption: %v", err)
	}
	if got := g.Snapshot().EndingID; got != "overthrow" {
		t.Errorf("ending = %q, want overthrow", got)
	}
}
