package lexicon

import (
	"sort"
	"strings"
	"sync"

	"github.com/plainspeak/plainspeak/pkg/domain"
)

// ConnectorThen is the clause-chaining keyword.
const ConnectorThen = "THEN"

// Prepositions maps preposition keywords to the role they introduce.
var Prepositions = map[string]domain.Role{
	"FROM":  domain.RoleFrom,
	"TO":    domain.RoleTo,
	"USING": domain.RoleUsing,
}

// Catalog is the registry of known vocabulary. It replaces runtime type
// scanning with an explicit, auditable registration table; Verbs and Nouns
// are memoized views rebuilt only on Invalidate.
//
// Lifecycle contract: keywords registered after the views were first read
// stay invisible until Invalidate is called.
type Catalog struct {
	mu         sync.RWMutex
	keywords   []*domain.Keyword
	qualifiers map[string]struct{}

	verbMemo []*domain.Keyword
	nounMemo []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{qualifiers: make(map[string]struct{})}
}

// RegisterKeyword adds a verb keyword. The memoized views are not refreshed;
// call Invalidate to make the keyword visible.
func (c *Catalog) RegisterKeyword(k *domain.Keyword) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keywords = append(c.keywords, k)
}

// RegisterQualifier adds a format qualifier (stored upper-case).
func (c *Catalog) RegisterQualifier(format string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.qualifiers[strings.ToUpper(format)] = struct{}{}
}

// Invalidate drops the memoized views so the next read rebuilds them.
// It must not run concurrently with readers.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verbMemo = nil
	c.nounMemo = nil
}

// Verbs returns the memoized verb view.
func (c *Catalog) Verbs() []*domain.Keyword {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.verbMemo == nil {
		c.verbMemo = make([]*domain.Keyword, len(c.keywords))
		copy(c.verbMemo, c.keywords)
	}
	return c.verbMemo
}

// Nouns returns the memoized non-verb vocabulary: prepositions, the THEN
// connector and qualifier formats, sorted for stable listing.
func (c *Catalog) Nouns() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nounMemo == nil {
		nouns := make([]string, 0, len(Prepositions)+1+len(c.qualifiers))
		for p := range Prepositions {
			nouns = append(nouns, p)
		}
		nouns = append(nouns, ConnectorThen)
		for q := range c.qualifiers {
			nouns = append(nouns, q)
		}
		sort.Strings(nouns)
		c.nounMemo = nouns
	}
	return c.nounMemo
}

// Words returns the whole known vocabulary: verb names followed by nouns.
func (c *Catalog) Words() []string {
	verbs := c.Verbs()
	nouns := c.Nouns()
	out := make([]string, 0, len(verbs)+len(nouns))
	for _, k := range verbs {
		out = append(out, k.Name)
	}
	return append(out, nouns...)
}

// FindVerb resolves a token against the verb view (name or synonym,
// case-insensitive). Returns nil when no keyword matches.
func (c *Catalog) FindVerb(token string) *domain.Keyword {
	for _, k := range c.Verbs() {
		if k.Matches(token) {
			return k
		}
	}
	return nil
}

// Qualifier resolves a token against the registered formats,
// case-insensitively, returning the canonical form.
func (c *Catalog) Qualifier(token string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	canon := strings.ToUpper(token)
	_, ok := c.qualifiers[canon]
	return canon, ok
}
