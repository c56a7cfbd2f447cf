// Package prefstore implements the servo/prefs extension routes: a
// small in-memory key-value table of browser preferences, seeded with
// defaults and mutable for the lifetime of the process (not scoped to
// a single session, matching the original's process-wide pref store).
package prefstore

import (
	"sort"
	"sync"

	"github.com/use-agent/wdbridge/wire"
)

// Store is a concurrency-safe preference table.
type Store struct {
	mu    sync.RWMutex
	prefs map[string]wire.PrefValue
}

// New creates a Store seeded with the default preference table.
func New() *Store {
	s := &Store{prefs: make(map[string]wire.PrefValue, len(defaults))}
	for k, v := range defaults {
		s.prefs[k] = v
	}
	return s
}

// defaults mirrors the handful of preferences the original bridge
// shipped non-empty out of the box.
var defaults = map[string]wire.PrefValue{
	"dom.webdriver.enabled": wire.BoolPref(true),
	"devtools.enabled":      wire.BoolPref(false),
}

// Get returns the named preferences, in the order requested. An empty
// names list means "all preferences", returned in sorted key order for
// a stable response.
func (s *Store) Get(names []string) []wire.NamedPref {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(names) == 0 {
		keys := make([]string, 0, len(s.prefs))
		for k := range s.prefs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]wire.NamedPref, 0, len(keys))
		for _, k := range keys {
			out = append(out, wire.NamedPref{Name: k, Value: s.prefs[k]})
		}
		return out
	}

	out := make([]wire.NamedPref, 0, len(names))
	for _, name := range names {
		v, ok := s.prefs[name]
		if !ok {
			v = wire.MissingPref()
		}
		out = append(out, wire.NamedPref{Name: name, Value: v})
	}
	return out
}

// Set writes each (name, value) pair, in the given order.
func (s *Store) Set(pairs []wire.NamedPref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range pairs {
		s.prefs[p.Name] = p.Value
	}
}

// Reset restores the named preferences to their default values. An
// empty names list resets every preference (ResetAll).
func (s *Store) Reset(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(names) == 0 {
		s.prefs = make(map[string]wire.PrefValue, len(defaults))
		for k, v := range defaults {
			s.prefs[k] = v
		}
		return
	}
	for _, name := range names {
		if v, ok := defaults[name]; ok {
			s.prefs[name] = v
		} else {
			delete(s.prefs, name)
		}
	}
}
