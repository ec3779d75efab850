// Package vars implements the engine's variable store: a case-insensitive
// name→value registry with simple and destructured resolution.
//
// A store is scoped to one logical session. It is not designed for
// concurrent mutation from multiple sentences at once; hosts running
// sessions in parallel give each session its own store.
package vars

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/plainspeak/plainspeak/pkg/domain"
)

type entry struct {
	name  string // original casing, for listing
	value any
}

// Store is the name→value registry.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry // keyed by lower-cased name
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Register stores a value under a name, unconditionally replacing any
// previous value regardless of type.
func (s *Store) Register(name string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[strings.ToLower(name)] = entry{name: name, value: v}
}

// IsRegistered reports whether the name is known, case-insensitively.
func (s *Store) IsRegistered(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[strings.ToLower(name)]
	return ok
}

// Lookup returns the raw value under a name.
func (s *Store) Lookup(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[strings.ToLower(name)]
	return e.value, ok
}

// Names returns the registered names in their original casing, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
}

// Snapshot copies the store into a plain map for persistence.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[string]any, len(s.entries))
	for _, e := range s.entries {
		snap[e.name] = e.value
	}
	return snap
}

// Restore replaces the store contents with a persisted snapshot.
func (s *Store) Restore(snap map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry, len(snap))
	for name, v := range snap {
		s.entries[strings.ToLower(name)] = entry{name: name, value: v}
	}
}

// Resolve looks a token up as T. Two token shapes are recognized: a bare
// name, optionally bracketed ("[Name]"), and the destructuring shape
// "[{a,b}]". A registered value of the wrong type is reported as not found;
// no coercion is attempted. A missing variable is always an explicit
// ErrVariableNotFound, never a silent zero value.
func Resolve[T any](s *Store, token string) (T, error) {
	var zero T

	if props, ok := destructureProps(token); ok {
		return resolveDestructured[T](s, props)
	}

	name := strings.TrimSpace(token)
	name = strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
	v, ok := s.Lookup(name)
	if !ok {
		return zero, fmt.Errorf("%w: %q", domain.ErrVariableNotFound, name)
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q (registered with a different type)", domain.ErrVariableNotFound, name)
	}
	return typed, nil
}

// destructureProps extracts the property list from "[{a,b}]" tokens.
func destructureProps(token string) ([]string, bool) {
	t := strings.TrimSpace(token)
	if !strings.HasPrefix(t, "[{") || !strings.HasSuffix(t, "}]") {
		return nil, false
	}
	var props []string
	for _, p := range strings.Split(t[2:len(t)-2], ",") {
		if p = strings.TrimSpace(p); p != "" {
			props = append(props, p)
		}
	}
	return props, len(props) > 0
}

// resolveDestructured scans the registered values, in name order, for the
// first one exposing every requested property. String payloads are treated
// as JSON documents; the property subset is decoded into T.
func resolveDestructured[T any](s *Store, props []string) (T, error) {
	var zero T

	s.mu.RLock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]any, 0, len(keys))
	for _, k := range keys {
		values = append(values, s.entries[k].value)
	}
	s.mu.RUnlock()

	for _, v := range values {
		fields, ok := asDocument(v)
		if !ok {
			continue
		}
		subset, ok := pick(fields, props)
		if !ok {
			continue
		}
		var out T
		if err := mapstructure.Decode(subset, &out); err != nil {
			continue
		}
		return out, nil
	}
	return zero, fmt.Errorf("%w: no value matches properties {%s}", domain.ErrVariableNotFound, strings.Join(props, ","))
}

// asDocument views a stored value as a field map.
func asDocument(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case string:
		var fields map[string]any
		if err := json.Unmarshal([]byte(t), &fields); err != nil {
			return nil, false
		}
		return fields, true
	case []byte:
		var fields map[string]any
		if err := json.Unmarshal(t, &fields); err != nil {
			return nil, false
		}
		return fields, true
	default:
		return nil, false
	}
}

// pick extracts the requested properties, matching names
// case-insensitively. All of them must be present.
func pick(fields map[string]any, props []string) (map[string]any, bool) {
	subset := make(map[string]any, len(props))
	for _, p := range props {
		found := false
		for k, v := range fields {
			if strings.EqualFold(k, p) {
				subset[p] = v
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return subset, true
}
