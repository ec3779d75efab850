package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plainspeak/plainspeak/internal/compiler"
	"github.com/plainspeak/plainspeak/internal/runtime"
	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
	"github.com/plainspeak/plainspeak/pkg/vars"
)

type panicHandler struct{}

func (panicHandler) Act(ctx context.Context) (any, error) {
	panic("wired wrong")
}

type fakeMetrics struct {
	runs   int
	valid  int
	misses map[string]int
}

func (m *fakeMetrics) ObserveRun(d time.Duration, valid bool) {
	m.runs++
	if valid {
		m.valid++
	}
}

func (m *fakeMetrics) ObserveDispatchMiss(verb string) {
	if m.misses == nil {
		m.misses = make(map[string]int)
	}
	m.misses[verb]++
}

func newPipeline(t *testing.T, store *vars.Store, usages *lexicon.Usages, opts ...runtime.PipelineOption) *runtime.Pipeline {
	t.Helper()
	comp := compiler.New(lexicon.Default(), false)
	return runtime.NewPipeline(comp, runtime.NewDispatcher(usages, store), store, opts...)
}

func TestPipeline_InvalidSentenceIsAResultNotAnError(t *testing.T) {
	p := newPipeline(t, vars.NewStore(), lexicon.NewUsages())

	result, err := p.Run(context.Background(), "GET [x].")
	require.NoError(t, err)
	require.False(t, result.Validation.Valid)
	require.Contains(t, result.Validation.Reason, "FROM")
}

func TestPipeline_ThenChainSharesOneScope(t *testing.T) {
	var shown any
	get := lexicon.Usage{
		Verb:  "GET",
		Name:  "Fixed",
		Roles: domain.NewRoleSet(domain.RoleWhat, domain.RoleFrom),
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			return &stubHandler{value: "CONTENT"}, nil
		},
	}
	show := lexicon.Usage{
		Verb:  "SHOW",
		Name:  "Capture",
		Roles: domain.NewRoleSet(domain.RoleWhat),
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			shown = args.Value(domain.RoleWhat)
			return &stubHandler{value: shown}, nil
		},
	}

	usages := lexicon.NewUsages()
	require.NoError(t, usages.Register(get))
	require.NoError(t, usages.Register(show))

	store := vars.NewStore()
	p := newPipeline(t, store, usages)

	result, err := p.Run(context.Background(), "GET [x] FROM {a.txt} THEN SHOW [x].")
	require.NoError(t, err)
	require.True(t, result.Validation.Valid)

	// The first clause stored its value; the second clause read it back.
	v, ok := store.Lookup("x")
	require.True(t, ok)
	require.Equal(t, "CONTENT", v)
	require.Equal(t, "CONTENT", shown)

	// The result reflects the final clause.
	require.Equal(t, "CONTENT", result.Value)
	require.Empty(t, result.Stored)
}

func TestPipeline_StoredNameReported(t *testing.T) {
	get := lexicon.Usage{
		Verb:  "GET",
		Name:  "Fixed",
		Roles: domain.NewRoleSet(domain.RoleWhat, domain.RoleFrom),
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			return &stubHandler{value: "CONTENT"}, nil
		},
	}
	usages := lexicon.NewUsages()
	require.NoError(t, usages.Register(get))

	store := vars.NewStore()
	p := newPipeline(t, store, usages)

	result, err := p.Run(context.Background(), "GET [x] FROM {a.txt}.")
	require.NoError(t, err)
	require.Equal(t, "x", result.Stored)
	require.Equal(t, "CONTENT", result.Value)
}

func TestPipeline_VerbPanicBecomesError(t *testing.T) {
	boom := lexicon.Usage{
		Verb:  "SHOW",
		Name:  "Boom",
		Roles: domain.NewRoleSet(domain.RoleWhat),
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			return panicHandler{}, nil
		},
	}
	usages := lexicon.NewUsages()
	require.NoError(t, usages.Register(boom))

	store := vars.NewStore()
	store.Register("x", "anything")
	p := newPipeline(t, store, usages)

	result, err := p.Run(context.Background(), "SHOW [x].")
	require.Error(t, err)
	require.Contains(t, err.Error(), "panicked")
	require.NotNil(t, result)
}

func TestPipeline_AbortStopsLaterClauses(t *testing.T) {
	var saves int
	save := lexicon.Usage{
		Verb:  "SAVE",
		Name:  "Count",
		Roles: domain.NewRoleSet(domain.RoleWhat, domain.RoleTo),
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			saves++
			return &stubHandler{value: "saved"}, nil
		},
	}
	usages := lexicon.NewUsages()
	require.NoError(t, usages.Register(save))

	// The first clause references a variable that was never registered, so
	// the run aborts before the second SAVE binds.
	p := newPipeline(t, vars.NewStore(), usages)
	_, err := p.Run(context.Background(), "SAVE [missing] TO {a.txt} THEN SAVE [missing] TO {b.txt}.")
	require.ErrorIs(t, err, domain.ErrVariableNotFound)
	require.Zero(t, saves)
}

func TestPipeline_Metrics(t *testing.T) {
	metrics := &fakeMetrics{}
	store := vars.NewStore()
	store.Register("x", "anything")
	p := newPipeline(t, store, lexicon.NewUsages(), runtime.WithMetrics(metrics))

	_, err := p.Run(context.Background(), "not a sentence")
	require.NoError(t, err)

	// No usages registered: a valid sentence is a dispatch miss.
	_, err = p.Run(context.Background(), "SHOW [x].")
	require.NoError(t, err)

	require.Equal(t, 2, metrics.runs)
	require.Equal(t, 1, metrics.valid)
	require.Equal(t, 1, metrics.misses["SHOW"])
}
