package config

// Store holds the fully merged configuration. It is built once by Load
// at process startup and is not mutated afterwards; accessors return
// copies so callers cannot alter it either.
type Store struct {
	entries    map[string]string
	sourcePath string
}

// Get returns the value for key, or the empty string when the key is
// absent. Use Lookup to distinguish an absent key from an empty value.
func (s *Store) Get(key string) string {
	return s.entries[key]
}

// Lookup returns the value for key and whether the key is present.
func (s *Store) Lookup(key string) (string, bool) {
	v, ok := s.entries[key]
	return v, ok
}

// Entries returns a copy of all resolved configuration entries.
func (s *Store) Entries() map[string]string {
	out := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Len reports the number of resolved entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// SourcePath returns the local source locator the store was built from.
// It is informational only and not reused after construction.
func (s *Store) SourcePath() string {
	return s.sourcePath
}

// merge overwrites the store's entries with src, later writers winning.
func (s *Store) merge(src map[string]string) {
	for k, v := range src {
		s.entries[k] = v
	}
}
