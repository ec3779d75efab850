package compiler

import (
	"fmt"

	"github.com/plainspeak/plainspeak/pkg/domain"
)

// Capability names one pattern the matchers detect.
type Capability int

const (
	// MatchVariable detects "[...]" tokens.
	MatchVariable Capability = iota
	// MatchReference detects "{...}" tokens.
	MatchReference
	// MatchDestructure detects "[{a,b}]" tokens.
	MatchDestructure
)

func (c Capability) String() string {
	switch c {
	case MatchVariable:
		return "variable"
	case MatchReference:
		return "reference"
	case MatchDestructure:
		return "destructure"
	default:
		return "unknown"
	}
}

// Matcher detects and extracts one pattern. The two families (string scan
// and pattern engine) must be behaviorally identical; they differ only in
// mechanism.
type Matcher interface {
	IsMatch(s string) bool
	// Extract returns the pattern's payload (the text inside the
	// delimiters) and whether the token matched.
	Extract(s string) (string, bool)
}

// MatcherSet resolves capabilities to one configured family.
type MatcherSet struct {
	byCap map[Capability]Matcher
}

// NewMatcherSet selects a family: the string-scan matchers by default, the
// pattern-engine matchers when usePatterns is set.
func NewMatcherSet(usePatterns bool) *MatcherSet {
	if usePatterns {
		return &MatcherSet{byCap: map[Capability]Matcher{
			MatchVariable:    patternVariable,
			MatchReference:   patternReference,
			MatchDestructure: patternDestructure,
		}}
	}
	return &MatcherSet{byCap: map[Capability]Matcher{
		MatchVariable:    scanVariable{},
		MatchReference:   scanReference{},
		MatchDestructure: scanDestructure{},
	}}
}

// For returns the matcher for a capability. Requesting a capability the
// configured family does not provide is an error.
func (m *MatcherSet) For(c Capability) (Matcher, error) {
	matcher, ok := m.byCap[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoMatcher, c)
	}
	return matcher, nil
}
