package store

import "time"

// LoadSession returns the in-progress workout scratch state for the given
// user and day, or nil when none was saved.
func (s *Store) LoadSession(userID, date string) *SessionState {
	var state SessionState
	if !s.load(sessionKey(userID, date), &state) {
		return nil
	}
	return &state
}

// SaveSession persists the scratch state so an interrupted session can be
// resumed the same day.
func (s *Store) SaveSession(userID, date string, state SessionState) SaveResult {
	state.LastSaved = time.Now()
	return s.SaveWithFallback(sessionKey(userID, date), state)
}

// ClearSession drops the scratch state, called after the workout is logged.
func (s *Store) ClearSession(userID, date string) {
	s.remove(sessionKey(userID, date))
}
