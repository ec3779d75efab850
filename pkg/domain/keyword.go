package domain

import "strings"

// Keyword describes one verb of the vocabulary: its canonical name, the
// synonyms that resolve to it, the prepositional roles its sentences may
// carry, and whether it is a retrieval verb.
//
// Keywords are registered explicitly at startup. The descriptor is immutable
// after registration and shared read-only across engine instances.
type Keyword struct {
	// Name is the canonical, upper-case verb text, e.g. "GET".
	Name string

	// Synonyms are alternative spellings that resolve to this keyword,
	// e.g. READ and LOAD for GET. Matching is case-insensitive.
	Synonyms []string

	// Roles is the verb's grammatical shape: which prepositional slots a
	// sentence headed by this verb may fill.
	Roles RoleSet

	// Retrieval marks verbs that produce a value (GET, LOAD, DOWNLOAD).
	// For these, a WHAT-position variable is an output placeholder: it is
	// left unresolved and the result is written into it after invocation.
	Retrieval bool
}

// Matches reports whether the token is the keyword's name or one of its
// synonyms, case-insensitively.
func (k *Keyword) Matches(token string) bool {
	if strings.EqualFold(token, k.Name) {
		return true
	}
	for _, s := range k.Synonyms {
		if strings.EqualFold(token, s) {
			return true
		}
	}
	return false
}
