// Package memdb is an in-memory monopoly.DB, for tests and throwaway servers.
package memdb

import (
	"fmt"
	"sort"
	"sync"

	"github.com/TomBebb/Monopoly/monopoly"
)

type idNamespace string

const (
	gameID = idNamespace("game")
)

type DB struct {
	mu    sync.Mutex
	ids   map[idNamespace]int
	games map[monopoly.GameID]*monopoly.Game
}

func New() *DB {
	return &DB{
		ids:   make(map[idNamespace]int),
		games: make(map[monopoly.GameID]*monopoly.Game),
	}
}

func (db *DB) NewGame(g *monopoly.Game) (monopoly.GameID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	gID := monopoly.GameID(db.newID(gameID))

	gc := g.Clone()
	gc.ID = gID
	if gc.Status == monopoly.NoStatus {
		gc.Status = monopoly.Pending
	}
	db.games[gID] = gc

	return gID, nil
}

func (db *DB) Game(gID monopoly.GameID) (*monopoly.Game, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	g, ok := db.games[gID]
	if !ok {
		return nil, monopoly.ErrGameNotFound
	}

	return g.Clone(), nil
}

// Games returns every game ID, in the order they were created.
func (db *DB) Games() ([]monopoly.GameID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	type idx struct {
		id monopoly.GameID
		n  int
	}
	var all []idx
	for id := range db.games {
		var n int
		if _, err := fmt.Sscanf(string(id), string(gameID)+"_%d", &n); err != nil {
			return nil, fmt.Errorf("malformed game ID %q: %w", id, err)
		}
		all = append(all, idx{id: id, n: n})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].n < all[j].n })

	out := make([]monopoly.GameID, len(all))
	for i, v := range all {
		out[i] = v.id
	}
	return out, nil
}

func (db *DB) UpdateStatus(gID monopoly.GameID, status monopoly.GameStatus) error {
	return db.updateGame(gID, func(g *monopoly.Game) {
		g.Status = status
	})
}

func (db *DB) UpdateState(gID monopoly.GameID, gs *monopoly.GameState) error {
	return db.updateGame(gID, func(g *monopoly.Game) {
		g.State = gs.Clone()
	})
}

func (db *DB) updateGame(gID monopoly.GameID, update func(*monopoly.Game)) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	g, ok := db.games[gID]
	if !ok {
		return monopoly.ErrGameNotFound
	}
	update(g)
	return nil
}

func (db *DB) newID(ns idNamespace) string {
	idx := db.ids[ns]
	id := fmt.Sprintf("%s_%d", ns, idx)
	db.ids[ns]++
	return id
}
