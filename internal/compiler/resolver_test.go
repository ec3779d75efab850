package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plainspeak/plainspeak/internal/compiler"
	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
)

func newResolver(t *testing.T) *compiler.Resolver {
	t.Helper()
	return compiler.NewResolver(compiler.NewMatcherSet(false), lexicon.Default())
}

func TestResolver_Order(t *testing.T) {
	r := newResolver(t)

	cases := []struct {
		token string
		kind  domain.WordKind
	}{
		{"[text]", domain.WordVariable},
		{"{file.txt}", domain.WordReference},
		{"JSON", domain.WordQualifier},
		{"json", domain.WordQualifier},
		{"FROM", domain.WordPreposition},
		{"to", domain.WordPreposition},
		{"THEN", domain.WordConnector},
		{"then", domain.WordConnector},
		{"GET", domain.WordVerb},
		{"fetch", domain.WordVerb}, // synonym of DOWNLOAD
		{"whatever", domain.WordLiteral},
	}

	for _, tc := range cases {
		word, ok := r.Resolve(tc.token)
		require.True(t, ok, "Resolve(%q)", tc.token)
		require.Equal(t, tc.kind, word.Kind(), "Resolve(%q)", tc.token)
	}
}

func TestResolver_VariableBeatsVocabulary(t *testing.T) {
	// A bracketed token is always a variable, even when its payload spells
	// a keyword.
	r := newResolver(t)
	word, ok := r.Resolve("[from]")
	require.True(t, ok)
	v, isVar := word.(*domain.VariableWord)
	require.True(t, isVar)
	require.Equal(t, "from", v.Name)
}

func TestResolver_SynonymKeepsCanonicalKeyword(t *testing.T) {
	r := newResolver(t)
	word, ok := r.Resolve("read")
	require.True(t, ok)
	verb, isVerb := word.(*domain.VerbWord)
	require.True(t, isVerb)
	require.Equal(t, "GET", verb.Keyword.Name)
	require.Equal(t, "read", verb.Raw)
}

func TestResolver_EmptyToken(t *testing.T) {
	r := newResolver(t)
	_, ok := r.Resolve("")
	require.False(t, ok)
}
