package compiler

import (
	"fmt"
	"strings"

	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
)

// Compiler bundles the tokenizer, matcher family, word resolver and grammar
// validator behind the three pipeline steps: Tokenize, Validate, Build.
type Compiler struct {
	matchers *MatcherSet
	resolver *Resolver
}

// New creates a compiler over the catalog, selecting the matcher family by
// the usePatterns flag (string scan by default).
func New(catalog *lexicon.Catalog, usePatterns bool) *Compiler {
	matchers := NewMatcherSet(usePatterns)
	return &Compiler{
		matchers: matchers,
		resolver: NewResolver(matchers, catalog),
	}
}

// Matchers exposes the configured matcher family.
func (c *Compiler) Matchers() *MatcherSet {
	return c.matchers
}

// Tokenize produces the Root…Terminal token chain for the input.
func (c *Compiler) Tokenize(input string) []domain.Token {
	return Tokenize(input)
}

// Validate checks the terminator, resolves each token into a word and walks
// the grammar. On success it returns the resolved chain so Build does not
// resolve twice.
func (c *Compiler) Validate(tokens []domain.Token) ([]domain.Word, domain.Validation) {
	if v := CheckTerminator(tokens); !v.Valid {
		return nil, v
	}

	var words []domain.Word
	for i, tok := range tokens {
		if tok.IsSentinel() {
			continue
		}
		value := tok.Value
		if lastRegular(tokens) == &tokens[i] {
			value = strings.TrimRight(value, Terminators)
			if value == "" {
				continue
			}
		}
		word, ok := c.resolver.Resolve(value)
		if !ok {
			return nil, domain.Invalid(fmt.Sprintf("unrecognized token %q", tok.Value))
		}
		words = append(words, word)
	}

	if v := Validate(words); !v.Valid {
		return nil, v
	}
	return words, domain.ValidOK
}

// Build assembles the validated chain into a sentence, splitting on THEN
// into a main sentence plus ordered sub-sentences. Sub-sentences are not
// re-validated: they were validated as part of the single chain.
func (c *Compiler) Build(words []domain.Word) *domain.Sentence {
	clauses := splitClauses(words)
	if len(clauses) == 0 {
		return &domain.Sentence{}
	}
	s := &domain.Sentence{Words: clauses[0]}
	for _, sub := range clauses[1:] {
		s.Subs = append(s.Subs, &domain.Sentence{Words: sub})
	}
	return s
}
