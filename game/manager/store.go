package manager

import (
	"github.com/pkg/errors"
)

var (
	// ErrNoRecord means nothing has been persisted yet
	ErrNoRecord = errors.New("no best-result record")

	// ErrCorruptRecord means a record exists but cannot be decoded
	ErrCorruptRecord = errors.New("corrupt best-result record")
)

// BestStore persists the best-result record. Load returns ErrNoRecord or ErrCorruptRecord
// (possibly wrapped) when there is nothing usable.
type BestStore interface {
	Load() (Record, error)
	Save(Record) error
	Close() error
}

// Store kinds accepted by OpenStore
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// OpenStore opens a store of the given kind at path
func OpenStore(kind, path string) (BestStore, error) {
	switch kind {
	case StoreJSON, "":
		return NewJSONStore(path), nil
	case StoreSQLite:
		return OpenSQLiteStore(path)
	default:
		return nil, errors.Errorf("unknown store kind %q", kind)
	}
}

func validRecord(r Record) bool {
	b := r.Best
	return r.GamesPlayed >= 0 && b.ApplesEaten >= 0 && b.OrangesEaten >= 0 && b.Length >= 0 && b.Elapsed >= 0
}
