// Package persist stores the slice of dashboard state that survives a
// restart: the recent-location list and the user preferences. All other
// store fields start fresh each session.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Namespace is the fixed key the persisted state lives under, in both
// the file and Redis backends.
const Namespace = "weather-storage"

// State is the persisted subset of the store.
type State struct {
	RecentLocations []weather.Location  `json:"recentLocations"`
	Preferences     weather.Preferences `json:"preferences"`
}

// Persister saves and restores the persisted state. Load's second
// return value reports whether any state existed.
type Persister interface {
	Save(state State) error
	Load() (State, bool, error)
}

// FileStore keeps the state as a JSON document on disk, keyed under
// Namespace.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed persister at the given path. The
// file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Save(state State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc := map[string]State{Namespace: state}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(f.path, b, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

func (f *FileStore) Load() (State, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("read state file: %w", err)
	}

	var doc map[string]State
	if err := json.Unmarshal(b, &doc); err != nil {
		return State{}, false, fmt.Errorf("decode state file: %w", err)
	}

	state, ok := doc[Namespace]
	return state, ok, nil
}

// Nop discards saves and restores nothing. Useful in tests and when
// persistence is disabled.
type Nop struct{}

func (Nop) Save(State) error           { return nil }
func (Nop) Load() (State, bool, error) { return State{}, false, nil }
