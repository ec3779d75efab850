package plainspeak_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plainspeak/plainspeak"
	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
	"github.com/plainspeak/plainspeak/pkg/verbs"
)

func newEngine(t *testing.T, opts ...plainspeak.Option) *plainspeak.Engine {
	t.Helper()
	opts = append(opts, plainspeak.WithUsages(verbs.Builtins(&verbs.Config{Out: io.Discard})...))
	return plainspeak.New(opts...)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_GetFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "file.txt", "the quick brown fox")

	e := newEngine(t)
	result, err := e.Run(context.Background(), fmt.Sprintf("GET [text] FROM {%s}.", path))
	require.NoError(t, err)
	require.True(t, result.Validation.Valid)
	require.Equal(t, "the quick brown fox", result.Value)
	require.Equal(t, "text", result.Stored)

	// The retrieved content is registered under the placeholder name.
	v, ok := e.Variables().Lookup("text")
	require.True(t, ok)
	require.Equal(t, "the quick brown fox", v)
}

func TestRun_SaveToFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	e := newEngine(t)
	e.RegisterVariable("data", "hello")

	result, err := e.Run(context.Background(), fmt.Sprintf("SAVE [data] TO {%s}.", out))
	require.NoError(t, err)
	require.True(t, result.Validation.Valid)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "hello", string(written))
}

func TestRun_ThenChainCopiesFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.txt", "chained content")
	dst := filepath.Join(dir, "b.txt")

	e := newEngine(t)
	sentence := fmt.Sprintf("GET [x] FROM {%s} THEN SAVE [x] TO {%s}.", src, dst)
	result, err := e.Run(context.Background(), sentence)
	require.NoError(t, err)
	require.True(t, result.Validation.Valid)

	written, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "chained content", string(written))
}

func TestRun_MissingFromFailsValidation(t *testing.T) {
	e := newEngine(t)
	result, err := e.Run(context.Background(), "GET [x].")
	require.NoError(t, err)
	require.False(t, result.Validation.Valid)
	require.Contains(t, result.Validation.Reason, "FROM")
}

func TestRun_UnresolvedVariableAborts(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	e := newEngine(t)
	_, err := e.Run(context.Background(), fmt.Sprintf("SAVE [undefinedVar] TO {%s}.", out))
	require.ErrorIs(t, err, domain.ErrVariableNotFound)

	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr), "no file may be written on abort")
}

func TestRun_JSONQualifierDecodes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.json", `{"name":"Ada","age":36}`)

	e := newEngine(t)
	result, err := e.Run(context.Background(), fmt.Sprintf("GET [doc] FROM {%s} JSON.", path))
	require.NoError(t, err)
	require.True(t, result.Validation.Valid)

	doc, ok := result.Value.(map[string]any)
	require.True(t, ok, "JSON qualifier must decode into a document, got %T", result.Value)
	require.Equal(t, "Ada", doc["name"])
}

func TestRun_JSONQualifierBeforeFrom(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.json", `{"name":"Ada","age":36}`)

	e := newEngine(t)
	result, err := e.Run(context.Background(), fmt.Sprintf("GET [doc] JSON FROM {%s}.", path))
	require.NoError(t, err)
	require.True(t, result.Validation.Valid)

	// The qualifier decodes regardless of which side of FROM it sits on.
	doc, ok := result.Value.(map[string]any)
	require.True(t, ok, "JSON qualifier must decode into a document, got %T", result.Value)
	require.Equal(t, "Ada", doc["name"])
	require.Equal(t, "doc", result.Stored)
}

func TestRun_SaveFormatsNonStringValue(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "num.txt")

	e := newEngine(t)
	e.RegisterVariable("answer", 42)

	result, err := e.Run(context.Background(), fmt.Sprintf("SAVE [answer] TO {%s}.", out))
	require.NoError(t, err)
	require.True(t, result.Validation.Valid)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "42", string(written))
}

func TestRun_DestructureAfterJSONGet(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "person.json", `{"name":"Ada","age":36}`)

	e := newEngine(t)
	_, err := e.Run(context.Background(), fmt.Sprintf("GET [doc] FROM {%s} JSON.", path))
	require.NoError(t, err)

	out := &bytes.Buffer{}
	e2 := plainspeak.New(
		plainspeak.WithStore(e.Variables()),
		plainspeak.WithUsages(verbs.Builtins(&verbs.Config{Out: out})...),
	)
	result, err := e2.Run(context.Background(), "SHOW [{name, age}].")
	require.NoError(t, err)
	require.True(t, result.Validation.Valid)
	require.Contains(t, out.String(), "Ada")
}

func TestRun_CompressRoundTrip(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.gz")

	e := newEngine(t)
	e.RegisterVariable("payload", "compress me, twice over, for luck")

	result, err := e.Run(context.Background(), fmt.Sprintf("COMPRESS [payload] TO {%s} USING {best}.", out))
	require.NoError(t, err)
	require.True(t, result.Validation.Valid)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.Equal(t, "compress me, twice over, for luck", string(data))
}

func TestRun_StrictModeStillRunsBuiltins(t *testing.T) {
	// The builtin catalog is coherent under strict dispatch: candidates
	// either bind exclusively or decline via their acceptance check.
	dir := t.TempDir()
	path := writeFile(t, dir, "file.txt", "strict content")

	e := newEngine(t, plainspeak.WithStrictDispatch(true))
	result, err := e.Run(context.Background(), fmt.Sprintf("GET [text] FROM {%s}.", path))
	require.NoError(t, err)
	require.Equal(t, "strict content", result.Value)
}

func TestRun_PatternMatchersBehaveIdentically(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "file.txt", "same either way")
	sentence := fmt.Sprintf("GET [text] FROM {%s}.", path)

	plain := newEngine(t)
	patterns := newEngine(t, plainspeak.WithPatternMatchers(true))

	r1, err := plain.Run(context.Background(), sentence)
	require.NoError(t, err)
	r2, err := patterns.Run(context.Background(), sentence)
	require.NoError(t, err)

	require.Equal(t, r1.Value, r2.Value)
	require.Equal(t, r1.Stored, r2.Stored)
}

func TestEngine_CustomVerb(t *testing.T) {
	e := newEngine(t)
	e.RegisterKeyword(&domain.Keyword{
		Name:      "GREET",
		Roles:     domain.NewRoleSet(domain.RoleWhat),
		Retrieval: false,
	})
	e.Lexicon().Invalidate()

	require.NoError(t, e.RegisterUsage(lexicon.Usage{
		Verb:  "GREET",
		Name:  "Hello",
		Roles: domain.NewRoleSet(domain.RoleWhat),
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			return greeting{name: args.Text(domain.RoleWhat)}, nil
		},
	}))

	e.RegisterVariable("name", "Ada")
	result, err := e.Run(context.Background(), "GREET [name].")
	require.NoError(t, err)
	require.True(t, result.Validation.Valid)
	require.Equal(t, "hello Ada", result.Value)
}

type greeting struct{ name string }

func (g greeting) Act(ctx context.Context) (any, error) {
	return "hello " + g.name, nil
}
