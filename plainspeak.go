package plainspeak

import (
	"context"
	"log/slog"

	"github.com/plainspeak/plainspeak/internal/compiler"
	"github.com/plainspeak/plainspeak/internal/logging"
	"github.com/plainspeak/plainspeak/internal/runtime"
	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
	"github.com/plainspeak/plainspeak/pkg/vars"
)

// Version is the engine version, overridable at build time.
var Version = "0.3.0"

// Engine is the high-level entry point. It owns one variable scope (one
// logical session) and shares the read-only catalogs it was built with.
//
// An Engine is single-threaded by design: Run executes to completion on the
// calling goroutine, THEN clauses strictly in order. Hosts running sessions
// in parallel create one Engine per session.
type Engine struct {
	catalog  *lexicon.Catalog
	usages   *lexicon.Usages
	store    *vars.Store
	logger   *slog.Logger
	metrics  runtime.Metrics
	strict   bool
	patterns bool

	pipeline *runtime.Pipeline
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithStore injects a shared variable store (e.g. one restored from a
// session snapshot).
func WithStore(s *vars.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithCatalog replaces the default vocabulary catalog.
func WithCatalog(c *lexicon.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithPatternMatchers selects the pattern-engine matcher family instead of
// the default string-scan family. Both are behaviorally identical.
func WithPatternMatchers(enabled bool) Option {
	return func(e *Engine) { e.patterns = enabled }
}

// WithStrictDispatch reports overlapping dispatch candidates as an error
// instead of silently resolving them by registration order.
func WithStrictDispatch(enabled bool) Option {
	return func(e *Engine) { e.strict = enabled }
}

// WithMetrics attaches a metrics sink.
func WithMetrics(m runtime.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithUsages registers dispatch candidates at construction time.
func WithUsages(usages ...lexicon.Usage) Option {
	return func(e *Engine) {
		for _, u := range usages {
			// Registration errors at construction are programmer errors;
			// surfaced on first use via the empty candidate list.
			_ = e.usages.Register(u)
		}
	}
}

// New creates an engine with the builtin vocabulary. Verb implementations
// are registered separately (WithUsages or RegisterUsage); see pkg/verbs
// for the builtins.
func New(opts ...Option) *Engine {
	e := &Engine{
		catalog: lexicon.Default(),
		usages:  lexicon.NewUsages(),
		store:   vars.NewStore(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	comp := compiler.New(e.catalog, e.patterns)
	dispatcher := runtime.NewDispatcher(e.usages, e.store,
		runtime.WithDispatchLogger(e.logger),
		runtime.WithStrict(e.strict),
	)
	pipelineOpts := []runtime.PipelineOption{runtime.WithPipelineLogger(e.logger)}
	if e.metrics != nil {
		pipelineOpts = append(pipelineOpts, runtime.WithMetrics(e.metrics))
	}
	e.pipeline = runtime.NewPipeline(comp, dispatcher, e.store, pipelineOpts...)
	return e
}

// Run interprets one sentence, executing its THEN chain in order. The
// result carries the validation outcome, the built sentence and the final
// clause's value; hard dispatch errors and invocation failures come back as
// the error. Run never panics.
func (e *Engine) Run(ctx context.Context, sentence string) (*domain.Result, error) {
	return e.pipeline.Run(ctx, sentence)
}

// RegisterVariable stores a value in the engine's variable scope.
func (e *Engine) RegisterVariable(name string, value any) {
	e.store.Register(name, value)
}

// RegisterUsage adds a dispatch candidate.
func (e *Engine) RegisterUsage(u lexicon.Usage) error {
	return e.usages.Register(u)
}

// RegisterKeyword adds a verb keyword. Call Invalidate on the catalog (via
// Lexicon) to make it visible to the memoized views.
func (e *Engine) RegisterKeyword(k *domain.Keyword) {
	e.catalog.RegisterKeyword(k)
}

// Variables exposes the engine's variable store.
func (e *Engine) Variables() *vars.Store {
	return e.store
}

// Lexicon exposes the vocabulary catalog.
func (e *Engine) Lexicon() *lexicon.Catalog {
	return e.catalog
}

// Usages exposes the usage catalog.
func (e *Engine) Usages() *lexicon.Usages {
	return e.usages
}
