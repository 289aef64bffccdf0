package store

import "time"

// WeekStartKey selects which weekday opens the adherence week. Defaults to
// Sunday.
const WeekStartKey = "week_start"

func (s *Store) loadSettings() map[string]string {
	settings := make(map[string]string)
	s.load(settingsKey, &settings)
	return settings
}

func (s *Store) GetSetting(key, fallback string) string {
	if v, ok := s.loadSettings()[key]; ok && v != "" {
		return v
	}
	return fallback
}

func (s *Store) SetSetting(key, value string) SaveResult {
	settings := s.loadSettings()
	settings[key] = value
	return s.SaveWithFallback(settingsKey, settings)
}

// WeekStart resolves the configured week start as a weekday.
func (s *Store) WeekStart() time.Weekday {
	if s.GetSetting(WeekStartKey, "sunday") == "monday" {
		return time.Monday
	}
	return time.Sunday
}
