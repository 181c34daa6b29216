package config

// DefaultSection is the section keys live in unless told otherwise.
const DefaultSection = "Config"

// Key addresses one configuration entry and carries the value used when the
// entry is missing or unreadable. The default's kind is the key's kind.
type Key struct {
	Section string
	// Tag is a free-form grouping label shown by `config show`.
	Tag     string
	Name    string
	Default Value
}

// KeyOption customises a Key at construction.
type KeyOption func(*Key)

// InSection places the key in section instead of DefaultSection.
func InSection(section string) KeyOption {
	return func(k *Key) { k.Section = section }
}

// WithTag sets the key's grouping label.
func WithTag(tag string) KeyOption {
	return func(k *Key) { k.Tag = tag }
}

func newKey(name string, def Value, opts []KeyOption) Key {
	k := Key{Section: DefaultSection, Tag: DefaultSection, Name: name, Default: def}
	for _, o := range opts {
		o(&k)
	}
	return k
}

func IntKey(name string, def int, opts ...KeyOption) Key {
	return newKey(name, IntValue(def), opts)
}

func FloatKey(name string, def float64, opts ...KeyOption) Key {
	return newKey(name, FloatValue(def), opts)
}

func BoolKey(name string, def bool, opts ...KeyOption) Key {
	return newKey(name, BoolValue(def), opts)
}

func TextKey(name string, def string, opts ...KeyOption) Key {
	return newKey(name, TextValue(def), opts)
}

func PointKey(name string, def Point, opts ...KeyOption) Key {
	return newKey(name, PointValue(def.X, def.Y), opts)
}

func SizeKey(name string, def Size, opts ...KeyOption) Key {
	return newKey(name, SizeValue(def.Width, def.Height), opts)
}

// Kind returns the kind the key reads and writes.
func (k Key) Kind() Kind {
	return k.Default.Kind()
}
