package sqldb

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/TomBebb/Monopoly/monopoly"

	"github.com/mattn/go-sqlite3"
)

var errClosed = errors.New("sqldb: database is closed")

// How many random IDs NewGame tries before giving up.
const maxIDAttempts = 10

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	max_turns INTEGER NOT NULL,
	state BLOB
);`

// DB implements the monopoly.DB interface, backed by a SQLite database.
// NOTE: Since the database doesn't support concurrent writers, we don't
// actually hold the *sql.DB in this struct, we force all callers to get a
// handle via channels. The *rand.Rand used for IDs is only touched from that
// same goroutine.
type DB struct {
	dbChan    chan func(*sql.DB)
	doneChan  chan struct{}
	closeErr  chan error
	closeOnce sync.Once
	r         *rand.Rand
}

// New creates a new *DB that is stored on disk at the given filename.
func New(fn string, src rand.Source) (*DB, error) {
	sdb, err := sql.Open("sqlite3", fn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := sdb.Exec(schema); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	db := &DB{
		dbChan:   make(chan func(*sql.DB)),
		doneChan: make(chan struct{}),
		closeErr: make(chan error, 1),
		r:        rand.New(src),
	}
	go db.run(sdb)
	return db, nil
}

// run handles all database calls, and ensures that only one thing is happening
// against the database at a time.
func (s *DB) run(sdb *sql.DB) {
	for {
		select {
		case dbFn := <-s.dbChan:
			dbFn(sdb)
		case <-s.doneChan:
			s.closeErr <- sdb.Close()
			return
		}
	}
}

// do runs fn on the database goroutine and waits for it to finish.
func (s *DB) do(fn func(*sql.DB) error) error {
	errC := make(chan error, 1)
	select {
	case s.dbChan <- func(sdb *sql.DB) { errC <- fn(sdb) }:
	case <-s.doneChan:
		return errClosed
	}
	return <-errC
}

func (s *DB) Close() error {
	err := errClosed
	s.closeOnce.Do(func() {
		close(s.doneChan)
		err = <-s.closeErr
	})
	return err
}

func (s *DB) NewGame(g *monopoly.Game) (monopoly.GameID, error) {
	state, err := encodeState(g.State)
	if err != nil {
		return "", err
	}
	status := g.Status
	if status == monopoly.NoStatus {
		status = monopoly.Pending
	}

	var id monopoly.GameID
	err = s.do(func(sdb *sql.DB) error {
		for i := 0; i < maxIDAttempts; i++ {
			id = monopoly.RandomGameID(s.r)
			_, err := sdb.Exec(`INSERT INTO games (id, status, max_turns, state) VALUES (?, ?, ?, ?)`,
				string(id), string(status), g.MaxTurns, state)
			if err == nil {
				return nil
			}
			if !isConstraintErr(err) {
				return fmt.Errorf("failed to insert game: %w", err)
			}
		}
		return fmt.Errorf("no free game ID after %d attempts", maxIDAttempts)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *DB) Game(gID monopoly.GameID) (*monopoly.Game, error) {
	g := &monopoly.Game{ID: gID}
	var (
		status string
		state  []byte
	)
	err := s.do(func(sdb *sql.DB) error {
		q := `SELECT status, max_turns, state FROM games WHERE id = ?`
		return sdb.QueryRow(q, string(gID)).Scan(&status, &g.MaxTurns, &state)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, monopoly.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game %q: %w", gID, err)
	}

	g.Status = monopoly.GameStatus(status)
	if g.State, err = decodeState(state); err != nil {
		return nil, fmt.Errorf("game %q: %w", gID, err)
	}
	return g, nil
}

// Games returns every game ID, in the order they were created.
func (s *DB) Games() ([]monopoly.GameID, error) {
	var ids []monopoly.GameID
	err := s.do(func(sdb *sql.DB) error {
		rows, err := sdb.Query(`SELECT id FROM games ORDER BY rowid`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, monopoly.GameID(id))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return ids, nil
}

func (s *DB) UpdateStatus(gID monopoly.GameID, status monopoly.GameStatus) error {
	return s.update(gID, `UPDATE games SET status = ? WHERE id = ?`, string(status))
}

func (s *DB) UpdateState(gID monopoly.GameID, gs *monopoly.GameState) error {
	state, err := encodeState(gs)
	if err != nil {
		return err
	}
	return s.update(gID, `UPDATE games SET state = ? WHERE id = ?`, state)
}

func (s *DB) update(gID monopoly.GameID, q string, v interface{}) error {
	return s.do(func(sdb *sql.DB) error {
		res, err := sdb.Exec(q, v, string(gID))
		if err != nil {
			return fmt.Errorf("failed to update game %q: %w", gID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check update of game %q: %w", gID, err)
		}
		if n == 0 {
			return monopoly.ErrGameNotFound
		}
		return nil
	})
}

func encodeState(gs *monopoly.GameState) ([]byte, error) {
	if gs == nil {
		return nil, nil
	}
	dat, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode game state: %w", err)
	}
	return dat, nil
}

func decodeState(dat []byte) (*monopoly.GameState, error) {
	if len(dat) == 0 {
		return nil, nil
	}
	var gs monopoly.GameState
	if err := json.Unmarshal(dat, &gs); err != nil {
		return nil, fmt.Errorf("failed to decode game state: %w", err)
	}
	return &gs, nil
}

func isConstraintErr(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint
}
