package config

import (
	"fmt"
	"strings"
)

// KeyInfo describes a config key for display purposes.
type KeyInfo struct {
	Section string
	Tag     string
	Key     string
	Kind    Kind
	Help    string
	Value   string
	Default string
}

// ShowAll returns every known key with its effective value.
func ShowAll(a *Accessor) []KeyInfo {
	var result []KeyInfo
	for _, s := range specs {
		result = append(result, KeyInfo{
			Section: s.key.Section,
			Tag:     s.key.Tag,
			Key:     s.key.Name,
			Kind:    s.key.Kind(),
			Help:    s.help,
			Value:   a.Get(s.key).String(),
			Default: s.key.Default.String(),
		})
	}
	return result
}

// Lookup returns the known key called name.
func Lookup(name string) (Key, bool) {
	for _, s := range specs {
		if s.key.Name == name {
			return s.key, true
		}
	}
	return Key{}, false
}

// SetKey parses value for the known key called name and writes it.
func SetKey(a *Accessor, name, value string) error {
	k, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", name, strings.Join(ValidKeys(), ", "))
	}
	v, err := ParseValue(k.Kind(), value)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return a.Set(k, v)
}

// ValidKeys returns the names of all known keys.
func ValidKeys() []string {
	keys := make([]string, 0, len(specs))
	for _, s := range specs {
		keys = append(keys, s.key.Name)
	}
	return keys
}
