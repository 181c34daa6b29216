package config

// Store abstracts the section/key addressed text store behind the accessor.
// The file-backed implementation is IniStore; tests use MemoryStore.
type Store interface {
	// Get returns the raw text for (section, key). ok is false when the key
	// is absent.
	Get(section, key string) (val string, ok bool, err error)
	// Set writes the raw text for (section, key), replacing any existing entry.
	Set(section, key, val string) error
}

// MemoryStore is an in-process Store. The zero value is not usable; call
// NewMemoryStore.
type MemoryStore struct {
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(section, key string) (string, bool, error) {
	v, ok := m.data[section][key]
	return v, ok, nil
}

func (m *MemoryStore) Set(section, key, val string) error {
	if m.data[section] == nil {
		m.data[section] = make(map[string]string)
	}
	m.data[section][key] = val
	return nil
}
