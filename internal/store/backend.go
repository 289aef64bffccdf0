package store

import (
	"encoding/json"
	"fmt"
)

// Backend is a key-value blob store. Values are whole serialized
// collections, written and read in one piece.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, data []byte) error
	Delete(key string) error
	Name() string
	Close() error
}

// Store wraps a primary backend and a session-scoped fallback. Writes try
// the primary first and degrade to the fallback; reads do the same. A
// storage failure is never surfaced as a fatal error: callers keep their
// in-memory state and only durability is lost.
type Store struct {
	primary  Backend
	fallback Backend
}

// SaveResult reports where (if anywhere) a write landed.
type SaveResult struct {
	Success bool
	Storage string
}

func New(primary, fallback Backend) *Store {
	return &Store{primary: primary, fallback: fallback}
}

// NewMemory creates a store over in-memory backends for testing.
func NewMemory() *Store {
	return New(NewMemoryBackend("primary"), NewMemoryBackend("fallback"))
}

func (s *Store) Close() error {
	var firstErr error
	for _, b := range []Backend{s.primary, s.fallback} {
		if b == nil {
			continue
		}
		if err := b.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SaveWithFallback marshals v and writes it under key, trying the primary
// backend first and the fallback second. Both failing is reported, not
// returned as an error: the session continues on in-memory state.
func (s *Store) SaveWithFallback(key string, v any) SaveResult {
	data, err := json.Marshal(v)
	if err != nil {
		return SaveResult{Success: false, Storage: "none"}
	}
	for _, b := range []Backend{s.primary, s.fallback} {
		if b == nil {
			continue
		}
		if err := b.Set(key, data); err == nil {
			return SaveResult{Success: true, Storage: b.Name()}
		}
	}
	return SaveResult{Success: false, Storage: "none"}
}

// load reads key into v, trying primary then fallback. Absent keys and
// malformed payloads both leave v untouched; the caller's zero value stands
// in for the collection.
func (s *Store) load(key string, v any) bool {
	for _, b := range []Backend{s.primary, s.fallback} {
		if b == nil {
			continue
		}
		data, ok, err := b.Get(key)
		if err != nil || !ok {
			continue
		}
		if err := json.Unmarshal(data, v); err != nil {
			continue
		}
		return true
	}
	return false
}

// remove deletes key from every backend. Absence is not an error.
func (s *Store) remove(key string) {
	for _, b := range []Backend{s.primary, s.fallback} {
		if b == nil {
			continue
		}
		b.Delete(key)
	}
}

func sessionKey(userID, date string) string {
	return fmt.Sprintf("fysio_current_session_%s_%s", userID, date)
}

const (
	historyKey  = "fysio_workout_history"
	routinesKey = "fysio_routines"
	settingsKey = "fysio_settings"
	usersKey    = "fysio_users"
	authKey     = "fysio_auth_session"
)
