package config

import (
	"fmt"
	"log/slog"
)

// Accessor reads and writes typed values through a Store.
//
// Reads never fail. A key that is absent, or whose text does not parse as
// the key's kind, yields the key's default. See parse for the per-kind rules.
type Accessor struct {
	store     Store
	writeBack bool
	logger    *slog.Logger
}

// AccessorOption customises an Accessor.
type AccessorOption func(*Accessor)

// WithDefaultWriteBack makes Get persist the default whenever it falls back
// to it, so the key shows up in the store after the first read. Off by
// default.
func WithDefaultWriteBack(enabled bool) AccessorOption {
	return func(a *Accessor) { a.writeBack = enabled }
}

// WithLogger sets the logger used for store failures.
func WithLogger(l *slog.Logger) AccessorOption {
	return func(a *Accessor) { a.logger = l }
}

func NewAccessor(store Store, opts ...AccessorOption) *Accessor {
	a := &Accessor{store: store, logger: slog.Default()}
	for _, o := range opts {
		o(a)
	}
	return a
}

// WriteBack reports whether defaults are persisted on fallback.
func (a *Accessor) WriteBack() bool {
	return a.writeBack
}

// Get returns the value stored under k, or k.Default.
func (a *Accessor) Get(k Key) Value {
	raw, ok, err := a.store.Get(k.Section, k.Name)
	if err != nil {
		a.logger.Warn("config read failed, using default", "section", k.Section, "key", k.Name, "error", err)
		return k.Default
	}
	if !ok {
		a.fallback(k)
		return k.Default
	}
	v, ok := parse(raw, k.Default)
	if !ok {
		a.logger.Debug("config value unreadable, using default", "section", k.Section, "key", k.Name, "raw", raw)
		a.fallback(k)
		return k.Default
	}
	return v
}

func (a *Accessor) fallback(k Key) {
	if !a.writeBack {
		return
	}
	if err := a.store.Set(k.Section, k.Name, format(k.Default)); err != nil {
		a.logger.Warn("config default write-back failed", "section", k.Section, "key", k.Name, "error", err)
	}
}

// Set writes v under k, replacing any stored text. v must be of k's kind.
func (a *Accessor) Set(k Key, v Value) error {
	if v.Kind() != k.Kind() {
		return fmt.Errorf("config key %s/%s holds %s, got %s", k.Section, k.Name, k.Kind(), v.Kind())
	}
	if err := a.store.Set(k.Section, k.Name, format(v)); err != nil {
		return fmt.Errorf("writing %s/%s: %w", k.Section, k.Name, err)
	}
	return nil
}

func (a *Accessor) Int(k Key) int { return a.Get(k).Int() }
func (a *Accessor) Float(k Key) float64 { return a.Get(k).Float() }
func (a *Accessor) Bool(k Key) bool { return a.Get(k).Bool() }
func (a *Accessor) Text(k Key) string { return a.Get(k).Text() }
func (a *Accessor) Point(k Key) Point { return a.Get(k).Point() }
func (a *Accessor) Size(k Key) Size { return a.Get(k).Size() }
