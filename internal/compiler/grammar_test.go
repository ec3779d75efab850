package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plainspeak/plainspeak/internal/compiler"
	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
)

func validate(t *testing.T, input string) domain.Validation {
	t.Helper()
	comp := compiler.New(lexicon.Default(), false)
	_, validation := comp.Validate(comp.Tokenize(input))
	return validation
}

func TestValidate_AcceptedSentences(t *testing.T) {
	inputs := []string{
		"GET [text] FROM {file.txt}.",
		"GET [text] FROM {file.txt} JSON.",
		"SAVE [data] TO {out.txt}.",
		"SHOW [x]!",
		"SHOW [x]?",
		"DOWNLOAD FROM {https://example.com} TO {page.html}.",
		"COMPRESS [x] TO {out.gz} USING {best}.",
		"GET [x] FROM {a.txt} THEN SAVE [x] TO {b.txt}.",
		"read [x] FROM {a.txt}.",
	}
	for _, input := range inputs {
		v := validate(t, input)
		require.True(t, v.Valid, "%s: %s", input, v.Reason)
	}
}

func TestValidate_RejectedSentences(t *testing.T) {
	cases := []struct {
		input  string
		reason string
	}{
		{"", "empty sentence"},
		{"GET [x] FROM {a.txt}", "must end with"},
		{"hello world.", "must start with a verb"},
		{"[x] GET.", "must start with a verb"},
		{"GET [x].", "expects the FROM keyword"},
		{"GET [x] TO {y}.", "expects the FROM keyword"},
		{"GET [x] FROM {a.txt} THEN.", "THEN must be followed by a verb"},
		{"GET [x] FROM {a.txt} THEN nonsense.", "THEN must be followed by a verb"},
		{"GET THEN SHOW [x].", "cannot be followed directly by THEN"},
		{"GET [x] FROM THEN SHOW [x].", "expects a value"},
		{"GET [x] FROM {a.txt} SHOW [y].", "unexpected verb"},
	}

	for _, tc := range cases {
		v := validate(t, tc.input)
		require.False(t, v.Valid, "expected %q to be invalid", tc.input)
		require.Contains(t, v.Reason, tc.reason, "input: %q", tc.input)
	}
}

func TestValidate_UnknownVerbBecomesLiteral(t *testing.T) {
	// An unknown leading token falls through to the literal word, which
	// cannot head a sentence.
	v := validate(t, "FROBNICATE [x] FROM {a.txt}.")
	require.False(t, v.Valid)
	require.Contains(t, v.Reason, "must start with a verb")
}

func TestCheckTerminator(t *testing.T) {
	ok := compiler.CheckTerminator(compiler.Tokenize("SHOW [x]."))
	require.True(t, ok.Valid)

	missing := compiler.CheckTerminator(compiler.Tokenize("SHOW [x]"))
	require.False(t, missing.Valid)
	require.NotEmpty(t, missing.Reason)

	empty := compiler.CheckTerminator(compiler.Tokenize("   "))
	require.False(t, empty.Valid)
}
