package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/plainspeak/plainspeak/internal/compiler"
	"github.com/plainspeak/plainspeak/internal/logging"
	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/vars"
)

// Metrics receives pipeline observations. Implemented by the prometheus
// collector in pkg/observability; a nil Metrics disables reporting.
type Metrics interface {
	ObserveRun(d time.Duration, valid bool)
	ObserveDispatchMiss(verb string)
}

// Pipeline orchestrates a run as ordered steps with abort-on-failure:
// tokenize, validate, build, execute the main sentence, store its result,
// then each sub-sentence in declaration order in the same variable scope.
type Pipeline struct {
	compiler   *compiler.Compiler
	dispatcher *Dispatcher
	store      *vars.Store
	logger     *slog.Logger
	metrics    Metrics
}

// PipelineOption configures the pipeline.
type PipelineOption func(*Pipeline)

// WithPipelineLogger sets the logger.
func WithPipelineLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = l }
}

// WithMetrics attaches a metrics sink.
func WithMetrics(m Metrics) PipelineOption {
	return func(p *Pipeline) { p.metrics = m }
}

// NewPipeline wires the compiler, dispatcher and store into a pipeline.
func NewPipeline(c *compiler.Compiler, d *Dispatcher, store *vars.Store, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		compiler:   c,
		dispatcher: d,
		store:      store,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run interprets one input line. Validation failures are reported inside
// the result; dispatch aborts and invocation failures are returned as the
// error. Nothing panics through Run: verb panics are converted into errors.
func (p *Pipeline) Run(ctx context.Context, input string) (*domain.Result, error) {
	start := time.Now()

	tokens := p.compiler.Tokenize(input)
	words, validation := p.compiler.Validate(tokens)
	if !validation.Valid {
		p.logger.Debug("validation failed", "input", input, "reason", validation.Reason)
		p.observe(start, false)
		return &domain.Result{Validation: validation}, nil
	}

	sentence := p.compiler.Build(words)
	result := &domain.Result{Validation: validation, Sentence: sentence}

	clauses := append([]*domain.Sentence{sentence}, sentence.Subs...)
	for _, clause := range clauses {
		value, stored, err := p.executeClause(ctx, clause)
		if err != nil {
			p.observe(start, true)
			return result, err
		}
		if value == nil && p.metrics != nil {
			if v := clause.Verb(); v != nil {
				p.metrics.ObserveDispatchMiss(v.Keyword.Name)
			}
		}
		result.Value = value
		result.Stored = stored
	}

	p.observe(start, true)
	return result, nil
}

// executeClause dispatches one clause and stores its result when the direct
// object was an output placeholder. A panic inside a verb's action is
// converted into an error here so it cannot crash the host.
func (p *Pipeline) executeClause(ctx context.Context, s *domain.Sentence) (value any, stored string, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, stored = nil, ""
			err = fmt.Errorf("verb invocation panicked: %v", r)
		}
	}()

	value, output, err := p.dispatcher.Dispatch(ctx, s)
	if err != nil {
		return nil, "", err
	}
	if output != "" && value != nil {
		p.store.Register(output, value)
		stored = output
	}
	return value, stored, nil
}

func (p *Pipeline) observe(start time.Time, valid bool) {
	if p.metrics != nil {
		p.metrics.ObserveRun(time.Since(start), valid)
	}
}
