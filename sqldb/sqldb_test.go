package sqldb

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/TomBebb/Monopoly/monopoly"
	"github.com/google/go-cmp/cmp"
)

func newDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "monopoly.db"), rand.NewSource(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testState() *monopoly.GameState {
	return &monopoly.GameState{
		Turn: 3,
		Players: []*monopoly.PlayerState{
			{Name: "Alice", Automated: true, Capital: monopoly.M(1340), Position: 5, Owned: []int{5}},
			{Name: "Bob", Automated: true, Capital: monopoly.M(1500), Position: 10, InJail: true, JailCards: 1, Owned: []int{}},
		},
		Spaces: []*monopoly.SpaceState{
			{Index: 0, Name: "Go", Kind: monopoly.KindGo},
			{Index: 1, Name: "Old Kent Road", Kind: monopoly.KindProperty, Owner: "Bob", Houses: 2},
			{Index: 5, Name: "Kings Cross Station", Kind: monopoly.KindStation, Owner: "Alice"},
		},
	}
}

func TestGames(t *testing.T) {
	db := newDB(t)

	id, err := db.NewGame(&monopoly.Game{MaxTurns: 20, State: testState()})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	got, err := db.Game(id)
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	want := &monopoly.Game{ID: id, Status: monopoly.Pending, MaxTurns: 20, State: testState()}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected game (-want +got)\n%s", diff)
	}

	if err := db.UpdateStatus(id, monopoly.Finished); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	next := testState()
	next.Turn = 21
	next.Players[1].InJail = false
	if err := db.UpdateState(id, next); err != nil {
		t.Fatalf("UpdateState: %v", err)
	}

	got, err = db.Game(id)
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	want = &monopoly.Game{ID: id, Status: monopoly.Finished, MaxTurns: 20, State: next}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected game after update (-want +got)\n%s", diff)
	}
}

func TestGamesListedInOrder(t *testing.T) {
	db := newDB(t)

	var want []monopoly.GameID
	for i := 0; i < 5; i++ {
		id, err := db.NewGame(&monopoly.Game{})
		if err != nil {
			t.Fatalf("NewGame: %v", err)
		}
		want = append(want, id)
	}

	got, err := db.Games()
	if err != nil {
		t.Fatalf("Games: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected game IDs (-want +got)\n%s", diff)
	}

	// A game without a snapshot loads with no state.
	g, err := db.Game(want[0])
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if g.State != nil {
		t.Errorf("state = %+v, want nil", g.State)
	}
}

func TestGameNotFound(t *testing.T) {
	db := newDB(t)

	if _, err := db.Game("BootIronHat"); !errors.Is(err, monopoly.ErrGameNotFound) {
		t.Errorf("Game: got %v, want %v", err, monopoly.ErrGameNotFound)
	}
	if err := db.UpdateStatus("BootIronHat", monopoly.Playing); !errors.Is(err, monopoly.ErrGameNotFound) {
		t.Errorf("UpdateStatus: got %v, want %v", err, monopoly.ErrGameNotFound)
	}
}

func TestClose(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "monopoly.db"), rand.NewSource(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := db.Games(); !errors.Is(err, errClosed) {
		t.Errorf("Games after Close: got %v, want %v", err, errClosed)
	}
	if err := db.Close(); !errors.Is(err, errClosed) {
		t.Errorf("second Close: got %v, want %v", err, errClosed)
	}
}
