package lexicon

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/plainspeak/plainspeak/pkg/domain"
)

// Argument is one bound role: the raw span text, the resolved value for
// inputs, and the format qualifier found inside the span, if any.
type Argument struct {
	Role      domain.Role
	Text      string
	Value     any
	Qualifier string
}

// Args carries all bound arguments for one candidate. Output names the
// variable a retrieval verb's result is written into.
type Args struct {
	ByRole map[domain.Role]Argument
	Output string
}

// Get returns the argument bound to the role.
func (a Args) Get(r domain.Role) (Argument, bool) {
	arg, ok := a.ByRole[r]
	return arg, ok
}

// Value returns the resolved value for the role, or nil when unbound.
func (a Args) Value(r domain.Role) any {
	return a.ByRole[r].Value
}

// Text returns the resolved value as a string when possible, falling back
// to the raw span text.
func (a Args) Text(r domain.Role) string {
	arg, ok := a.ByRole[r]
	if !ok {
		return ""
	}
	if s, ok := arg.Value.(string); ok {
		return s
	}
	if arg.Value != nil {
		return fmt.Sprintf("%v", arg.Value)
	}
	return arg.Text
}

// Handler is a fully-bound verb implementation: a single invocable entry
// point with no arguments that performs the effect and returns a result.
type Handler interface {
	Act(ctx context.Context) (any, error)
}

// Acceptor is optionally implemented by handlers that want a final
// acceptance check against the un-mutated sentence before being chosen.
type Acceptor interface {
	CanHandle(s *domain.Sentence) bool
}

// ResolveFunc converts a bound argument into the type the implementation
// requires. Returning an error rejects the candidate for this sentence; it
// does not abort the dispatch.
type ResolveFunc func(arg Argument) (any, error)

// Usage is a dispatch candidate descriptor: pure metadata extracted once at
// registration, cached for the process lifetime. It performs no
// instantiation itself; New builds the handler from bound arguments.
type Usage struct {
	// Verb is the canonical keyword name the usage serves, e.g. "GET".
	Verb string

	// Name distinguishes the usage among its verb's candidates,
	// e.g. "TextFromFile".
	Name string

	// Roles the candidate binds. Must be a subset of the verb's shape.
	Roles domain.RoleSet

	// FromType and WhatType document the declared source and object types
	// for listing and help. They take no part in binding.
	FromType reflect.Type
	WhatType reflect.Type

	// Resolvers converts bound arguments per role. A missing entry falls
	// back to passing the raw resolved value through.
	Resolvers map[domain.Role]ResolveFunc

	// New constructs the handler from bound arguments.
	New func(args Args) (Handler, error)
}

// Usages groups dispatch candidates per canonical verb name. Registration
// order is the candidate order: first successful candidate wins.
type Usages struct {
	mu     sync.RWMutex
	byVerb map[string][]Usage
}

// NewUsages creates an empty usage catalog.
func NewUsages() *Usages {
	return &Usages{byVerb: make(map[string][]Usage)}
}

// Register adds a candidate under its verb.
func (u *Usages) Register(usage Usage) error {
	if usage.Verb == "" {
		return fmt.Errorf("usage %q: empty verb", usage.Name)
	}
	if usage.New == nil {
		return fmt.Errorf("usage %s.%s: nil constructor", usage.Verb, usage.Name)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	key := strings.ToUpper(usage.Verb)
	for _, existing := range u.byVerb[key] {
		if strings.EqualFold(existing.Name, usage.Name) {
			return fmt.Errorf("usage %s.%s: already registered", usage.Verb, usage.Name)
		}
	}
	u.byVerb[key] = append(u.byVerb[key], usage)
	return nil
}

// Candidates returns the registered candidates for a verb, in registration
// order. The returned slice must not be mutated.
func (u *Usages) Candidates(verb string) []Usage {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.byVerb[strings.ToUpper(verb)]
}

// Find returns the candidate with the given usage name under a verb.
func (u *Usages) Find(verb, name string) (Usage, bool) {
	for _, c := range u.Candidates(verb) {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Usage{}, false
}

// Names lists the usage names registered under a verb, in order.
func (u *Usages) Names(verb string) []string {
	candidates := u.Candidates(verb)
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	return names
}

// Verbs returns the verb keys that have at least one candidate.
func (u *Usages) Verbs() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	verbs := make([]string, 0, len(u.byVerb))
	for v := range u.byVerb {
		verbs = append(verbs, v)
	}
	return verbs
}
