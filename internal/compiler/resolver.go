package compiler

import (
	"strings"

	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
)

// Resolver converts one token into one typed word node.
//
// The resolution order is load-bearing: variables and references first,
// then qualifiers and keywords, and only then the literal fallback, so that
// recognized vocabulary is never mistaken for free text.
type Resolver struct {
	matchers *MatcherSet
	catalog  *lexicon.Catalog
}

// NewResolver creates a resolver over the given matcher family and catalog.
func NewResolver(matchers *MatcherSet, catalog *lexicon.Catalog) *Resolver {
	return &Resolver{matchers: matchers, catalog: catalog}
}

// Resolve maps a token to a word. A false return is a recoverable condition
// for the caller, not a panic.
func (r *Resolver) Resolve(token string) (domain.Word, bool) {
	if token == "" {
		return nil, false
	}

	if m, err := r.matchers.For(MatchVariable); err == nil {
		if name, ok := m.Extract(token); ok {
			return &domain.VariableWord{Name: name, Raw: token}, true
		}
	}

	if m, err := r.matchers.For(MatchReference); err == nil {
		if value, ok := m.Extract(token); ok {
			return &domain.ReferenceWord{Value: value, Raw: token}, true
		}
	}

	if format, ok := r.catalog.Qualifier(token); ok {
		return &domain.QualifierWord{Format: format, Raw: token}, true
	}

	if role, ok := lexicon.Prepositions[strings.ToUpper(token)]; ok {
		return &domain.PrepositionWord{Role: role, Raw: token}, true
	}

	if strings.EqualFold(token, lexicon.ConnectorThen) {
		return &domain.ConnectorWord{Raw: token}, true
	}

	if k := r.catalog.FindVerb(token); k != nil {
		return &domain.VerbWord{Keyword: k, Raw: token}, true
	}

	return &domain.LiteralWord{Value: token}, true
}
