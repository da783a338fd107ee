package persistence

import (
	"path/filepath"
	"testing"

	"github.com/talgya/kingdoms/internal/state"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleState() *state.State {
	s := state.New(
		[]state.Faction{{ID: "nobility", Loyalty: 55}},
		[]state.Region{{ID: "capital", Prosperity: 60, Unrest: 10}},
		3,
	)
	s.Turn = 7
	s.Stats["gold"] = 42
	s.Flags["in_war"] = true
	s.EventQueue = []string{"event_war"}
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	saved := sampleState()

	if err := store.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("Load reported no save")
	}
	if loaded.Playthrough != saved.Playthrough {
		t.Errorf("playthrough = %q, want %q", loaded.Playthrough, saved.Playthrough)
	}
	if loaded.Turn != 7 || loaded.Stats["gold"] != 42 {
		t.Errorf("turn/gold = %d/%d, want 7/42", loaded.Turn, loaded.Stats["gold"])
	}
	if !loaded.Flags["in_war"] {
		t.Error("flags lost in round trip")
	}
	if len(loaded.EventQueue) != 1 || loaded.EventQueue[0] != "event_war" {
		t.Errorf("queue = %v, want [event_war]", loaded.EventQueue)
	}
}

func TestSaveReplacesSlot(t *testing.T) {
	store := openTestStore(t)

	first := sampleState()
	if err := store.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := sampleState()
	second.Turn = 12
	if err := store.Save(second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if loaded.Turn != 12 {
		t.Errorf("turn = %d, want the later save", loaded.Turn)
	}
}

func TestLoadMissing(t *testing.T) {
	store := openTestStore(t)

	s, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || s != nil {
		t.Error("missing save must report ok=false with no error")
	}
}

func TestLoadMalformedSnapshot(t *testing.T) {
	store := openTestStore(t)
	if err := store.Save(sampleState()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := store.conn.Exec(
		"UPDATE saves SET snapshot = ? WHERE slot = ?", "{not json", slotMain,
	); err != nil {
		t.Fatalf("corrupt snapshot: %v", err)
	}

	s, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || s != nil {
		t.Error("malformed save must be discarded, not returned")
	}
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	if err := store.Save(sampleState()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Error("save survived Delete")
	}
}

func TestMetaRoundTrip(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveMeta("schema_version", "1"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	if err := store.SaveMeta("schema_version", "2"); err != nil {
		t.Fatalf("SaveMeta overwrite: %v", err)
	}

	v, err := store.GetMeta("schema_version")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if v != "2" {
		t.Errorf("meta = %q, want 2", v)
	}
}
