package store

// loadAllHistory reads the full interleaved collection, all users included.
// Malformed entries (no id, date or owner) are dropped rather than
// propagated.
func (s *Store) loadAllHistory() []WorkoutRecord {
	var all []WorkoutRecord
	s.load(historyKey, &all)

	valid := all[:0]
	for _, r := range all {
		if r.ID == "" || r.Date == "" || r.UserID == "" {
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

// LoadHistory returns the workout records belonging to userID. A missing or
// unreadable collection yields an empty history, never an error.
func (s *Store) LoadHistory(userID string) []WorkoutRecord {
	var records []WorkoutRecord
	for _, r := range s.loadAllHistory() {
		if r.UserID == userID {
			records = append(records, r)
		}
	}
	return records
}

// AppendRecord pushes rec onto the full collection and writes it back.
// Reading unfiltered before the write is what preserves other users'
// records.
func (s *Store) AppendRecord(rec WorkoutRecord) SaveResult {
	all := s.loadAllHistory()
	all = append(all, rec)
	return s.SaveWithFallback(historyKey, all)
}

// OverwriteHistory replaces the persisted collection wholesale. Used by the
// note-editing path: the caller loads everything, swaps the edited record
// in, and writes the whole collection back.
func (s *Store) OverwriteHistory(all []WorkoutRecord) SaveResult {
	return s.SaveWithFallback(historyKey, all)
}

// AllHistory exposes the unfiltered collection for callers that edit a
// record in place and hand the result to OverwriteHistory.
func (s *Store) AllHistory() []WorkoutRecord {
	return s.loadAllHistory()
}
