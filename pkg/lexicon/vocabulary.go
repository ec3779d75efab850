package lexicon

import "github.com/plainspeak/plainspeak/pkg/domain"

// Default builds a catalog pre-loaded with the builtin vocabulary.
func Default() *Catalog {
	c := NewCatalog()
	for _, k := range BuiltinKeywords() {
		c.RegisterKeyword(k)
	}
	for _, q := range BuiltinQualifiers() {
		c.RegisterQualifier(q)
	}
	return c
}

// BuiltinKeywords returns the stock verb vocabulary.
func BuiltinKeywords() []*domain.Keyword {
	return []*domain.Keyword{
		{
			Name:      "GET",
			Synonyms:  []string{"READ", "LOAD"},
			Roles:     domain.NewRoleSet(domain.RoleWhat, domain.RoleFrom),
			Retrieval: true,
		},
		{
			Name:     "SAVE",
			Synonyms: []string{"WRITE", "STORE"},
			Roles:    domain.NewRoleSet(domain.RoleWhat, domain.RoleTo),
		},
		{
			Name:      "DOWNLOAD",
			Synonyms:  []string{"FETCH"},
			Roles:     domain.NewRoleSet(domain.RoleWhat, domain.RoleFrom, domain.RoleTo),
			Retrieval: true,
		},
		{
			Name:     "SHOW",
			Synonyms: []string{"PRINT", "DISPLAY"},
			Roles:    domain.NewRoleSet(domain.RoleWhat),
		},
		{
			Name:     "COMPRESS",
			Synonyms: []string{"ZIP"},
			Roles:    domain.NewRoleSet(domain.RoleWhat, domain.RoleTo, domain.RoleUsing),
		},
	}
}

// BuiltinQualifiers returns the stock format qualifiers.
func BuiltinQualifiers() []string {
	return []string{"TEXT", "JSON", "XML", "CSV", "HTML", "BINARY"}
}
