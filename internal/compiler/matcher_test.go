package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plainspeak/plainspeak/internal/compiler"
	"github.com/plainspeak/plainspeak/pkg/domain"
)

// Both matcher families must agree on every token: the pattern engine is an
// alternate mechanism, not alternate behavior.
func TestMatcherFamilies_Equivalent(t *testing.T) {
	families := map[string]*compiler.MatcherSet{
		"scan":    compiler.NewMatcherSet(false),
		"pattern": compiler.NewMatcherSet(true),
	}

	cases := []struct {
		capability  compiler.Capability
		token       string
		wantMatch   bool
		wantPayload string
	}{
		{compiler.MatchVariable, "[text]", true, "text"},
		{compiler.MatchVariable, "[ padded ]", true, "padded"},
		{compiler.MatchVariable, "[multi\nline]", true, "multi\nline"},
		{compiler.MatchVariable, "text", false, ""},
		{compiler.MatchVariable, "[open", false, ""},
		{compiler.MatchVariable, "{text}", false, ""},

		{compiler.MatchReference, "{file.txt}", true, "file.txt"},
		{compiler.MatchReference, "{a b c}", true, "a b c"},
		{compiler.MatchReference, "file.txt", false, ""},
		{compiler.MatchReference, "[file]", false, ""},

		{compiler.MatchDestructure, "[{name,age}]", true, "name,age"},
		{compiler.MatchDestructure, "[name]", false, ""},
		{compiler.MatchDestructure, "{name,age}", false, ""},
	}

	for name, set := range families {
		t.Run(name, func(t *testing.T) {
			for _, tc := range cases {
				m, err := set.For(tc.capability)
				require.NoError(t, err)

				require.Equal(t, tc.wantMatch, m.IsMatch(tc.token), "IsMatch(%q)", tc.token)
				payload, ok := m.Extract(tc.token)
				require.Equal(t, tc.wantMatch, ok, "Extract(%q)", tc.token)
				if tc.wantMatch {
					require.Equal(t, tc.wantPayload, payload, "Extract(%q)", tc.token)
				}
			}
		})
	}
}

func TestMatcherSet_UnknownCapability(t *testing.T) {
	set := compiler.NewMatcherSet(false)
	_, err := set.For(compiler.Capability(99))
	require.ErrorIs(t, err, domain.ErrNoMatcher)
}
