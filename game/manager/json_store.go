package manager

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// JSONStore keeps the record in a single JSON file
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (js *JSONStore) Load() (Record, error) {
	data, err := os.ReadFile(js.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, ErrNoRecord
		}
		return Record{}, errors.Wrapf(err, "read %s", js.path)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.Wrapf(ErrCorruptRecord, "decode %s: %v", js.path, err)
	}
	if !validRecord(rec) {
		return Record{}, errors.Wrapf(ErrCorruptRecord, "%s holds negative counters", js.path)
	}
	return rec, nil
}

// Save writes the record through a temporary file so a crash never leaves a half-written file
func (js *JSONStore) Save(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(js.path), 0755); err != nil {
		return errors.Wrap(err, "failed to create data directory")
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal record")
	}

	tmp := js.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", tmp)
	}
	if err := os.Rename(tmp, js.path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", js.path)
	}
	return nil
}

func (js *JSONStore) Close() error {
	return nil
}
