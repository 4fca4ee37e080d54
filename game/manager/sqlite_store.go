package manager

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const createBestResult = `CREATE TABLE IF NOT EXISTS best_result (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	session_id TEXT NOT NULL,
	apples_eaten INTEGER NOT NULL,
	oranges_eaten INTEGER NOT NULL,
	length INTEGER NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	finished_at TEXT NOT NULL,
	games_played INTEGER NOT NULL
)`

// SQLiteStore keeps the record in a single-row table
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	corrupt error // reported by Load until the next successful Save
}

// OpenSQLiteStore opens or creates the database at path. A file that is not a usable
// database is moved aside to path+".corrupt" and replaced by an empty one; the first Load
// then reports ErrCorruptRecord.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create data directory")
	}

	db, err := openBestResultDB(path)
	if err == nil {
		return &SQLiteStore{db: db}, nil
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, err
	}

	corrupt := errors.Wrapf(ErrCorruptRecord, "%s: %v", path, err)
	if err := os.Rename(path, path+".corrupt"); err != nil {
		return nil, errors.Wrapf(err, "move aside %s", path)
	}
	db, err = openBestResultDB(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, corrupt: corrupt}, nil
}

func openBestResultDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	if _, err := db.Exec(createBestResult); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create best_result table")
	}
	return db, nil
}

func (ss *SQLiteStore) Load() (Record, error) {
	ss.mu.Lock()
	corrupt := ss.corrupt
	ss.mu.Unlock()
	if corrupt != nil {
		return Record{}, corrupt
	}
	var (
		rec        Record
		elapsed    int64
		finishedAt string
	)
	row := ss.db.QueryRow(`SELECT session_id, apples_eaten, oranges_eaten, length, elapsed_ns, finished_at, games_played
		FROM best_result WHERE id = 1`)
	err := row.Scan(&rec.Best.SessionID, &rec.Best.ApplesEaten, &rec.Best.OrangesEaten, &rec.Best.Length,
		&elapsed, &finishedAt, &rec.GamesPlayed)
	if err == sql.ErrNoRows {
		return Record{}, ErrNoRecord
	}
	if err != nil {
		return Record{}, errors.Wrapf(ErrCorruptRecord, "scan best_result: %v", err)
	}

	rec.Best.Elapsed = time.Duration(elapsed)
	if rec.Best.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
		return Record{}, errors.Wrapf(ErrCorruptRecord, "finished_at: %v", err)
	}
	if !validRecord(rec) {
		return Record{}, errors.Wrap(ErrCorruptRecord, "best_result holds negative counters")
	}
	return rec, nil
}

func (ss *SQLiteStore) Save(rec Record) error {
	b := rec.Best
	_, err := ss.db.Exec(`INSERT OR REPLACE INTO best_result
		(id, session_id, apples_eaten, oranges_eaten, length, elapsed_ns, finished_at, games_played)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)`,
		b.SessionID, b.ApplesEaten, b.OrangesEaten, b.Length, int64(b.Elapsed),
		b.FinishedAt.UTC().Format(time.RFC3339Nano), rec.GamesPlayed)
	if err != nil {
		return errors.Wrap(err, "save best_result")
	}
	ss.mu.Lock()
	ss.corrupt = nil
	ss.mu.Unlock()
	return nil
}

func (ss *SQLiteStore) Close() error {
	return ss.db.Close()
}
