package store

// LoadRoutines returns the saved routines belonging to userID, oldest
// first. A missing or unreadable collection yields an empty slice.
func (s *Store) LoadRoutines(userID string) []Routine {
	var all []Routine
	s.load(routinesKey, &all)

	var routines []Routine
	for _, r := range all {
		if r.ID == "" || r.UserID != userID {
			continue
		}
		routines = append(routines, r)
	}
	return routines
}

// SaveRoutine appends r to the full collection, preserving other users'
// routines.
func (s *Store) SaveRoutine(r Routine) SaveResult {
	var all []Routine
	s.load(routinesKey, &all)
	all = append(all, r)
	return s.SaveWithFallback(routinesKey, all)
}

// DeleteRoutine filters the routine out of the persisted collection. Only
// the owner's routine is removed; an unknown id is a no-op that still
// reports the write result.
func (s *Store) DeleteRoutine(userID, routineID string) SaveResult {
	var all []Routine
	s.load(routinesKey, &all)

	kept := all[:0]
	for _, r := range all {
		if r.UserID == userID && r.ID == routineID {
			continue
		}
		kept = append(kept, r)
	}
	return s.SaveWithFallback(routinesKey, kept)
}
