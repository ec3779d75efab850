// Package runtime executes validated sentences: candidate enumeration,
// parameter binding, dispatch and the step pipeline around them.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plainspeak/plainspeak/internal/logging"
	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
	"github.com/plainspeak/plainspeak/pkg/vars"
)

// Dispatcher selects and invokes the verb implementation for a sentence.
//
// Failure semantics: a binding or construction failure for one candidate is
// non-fatal and advances to the next candidate; an exhausted candidate list
// yields a nil result; an unresolved variable is a hard error that aborts
// the whole dispatch.
type Dispatcher struct {
	usages *lexicon.Usages
	store  *vars.Store
	logger *slog.Logger
	strict bool
}

// DispatcherOption configures the dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatchLogger sets the logger.
func WithDispatchLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// WithStrict makes overlapping candidates an error instead of silently
// resolving them by registration order.
func WithStrict(strict bool) DispatcherOption {
	return func(d *Dispatcher) { d.strict = strict }
}

// NewDispatcher creates a dispatcher over the usage catalog and variable
// store.
func NewDispatcher(usages *lexicon.Usages, store *vars.Store, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		usages: usages,
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes one clause. It returns the invocation result and, for
// retrieval verbs whose direct object was a variable placeholder, the name
// the caller should store the result under. A nil result with empty name
// means no candidate matched, which is a normal "nothing to do".
func (d *Dispatcher) Dispatch(ctx context.Context, s *domain.Sentence) (any, string, error) {
	verb := s.Verb()
	if verb == nil {
		return nil, "", fmt.Errorf("%w: sentence has no verb", domain.ErrUnknownVerb)
	}

	candidates := d.usages.Candidates(verb.Keyword.Name)
	if len(candidates) == 0 {
		d.logger.Debug("no usage candidates", "verb", verb.Keyword.Name, "shape", verb.Keyword.Roles.Shape())
		return nil, "", nil
	}

	type accepted struct {
		usage   lexicon.Usage
		handler lexicon.Handler
		output  string
	}
	var chosen []accepted

	for _, c := range candidates {
		handler, output, err := d.tryBind(c, verb, s)
		if err != nil {
			if errors.Is(err, domain.ErrVariableNotFound) {
				return nil, "", err
			}
			d.logger.Debug("candidate rejected", "verb", verb.Keyword.Name, "usage", c.Name, "reason", err)
			continue
		}
		chosen = append(chosen, accepted{usage: c, handler: handler, output: output})
		if !d.strict {
			break
		}
	}

	switch {
	case len(chosen) == 0:
		return nil, "", nil
	case len(chosen) > 1:
		names := make([]string, 0, len(chosen))
		for _, a := range chosen {
			names = append(names, a.usage.Name)
		}
		return nil, "", fmt.Errorf("%w: %s matched by %s", domain.ErrAmbiguousDispatch, verb.Keyword.Name, strings.Join(names, ", "))
	}

	winner := chosen[0]
	d.logger.Debug("dispatching", "verb", verb.Keyword.Name, "usage", winner.usage.Name)
	value, err := winner.handler.Act(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%s.%s: %w", winner.usage.Verb, winner.usage.Name, err)
	}
	return value, winner.output, nil
}

// tryBind binds the sentence to one candidate: parameters in fixed order
// (WHAT, FROM, TO, USING), construction, then the optional final acceptance
// check. Any error other than an unresolved variable rejects only this
// candidate.
func (d *Dispatcher) tryBind(c lexicon.Usage, verb *domain.VerbWord, s *domain.Sentence) (lexicon.Handler, string, error) {
	// A sentence carrying a role the candidate does not declare cannot be
	// served by it.
	for _, r := range domain.BindOrder {
		if s.HasRole(r) && !c.Roles.Has(r) {
			return nil, "", fmt.Errorf("sentence carries %s, usage does not", r)
		}
	}

	args := lexicon.Args{ByRole: make(map[domain.Role]lexicon.Argument)}

	for _, role := range domain.BindOrder {
		if !c.Roles.Has(role) {
			continue
		}
		span := s.Span(role)
		if len(span) == 0 {
			continue
		}

		// A retrieval verb leaves a WHAT-position variable unresolved:
		// it is the destination name, not an input.
		if role == domain.RoleWhat && verb.Keyword.Retrieval {
			if v, qualifier, ok := soleVariable(span); ok {
				args.Output = v.Name
				args.ByRole[role] = lexicon.Argument{Role: role, Text: v.Text(), Qualifier: qualifier}
				continue
			}
		}

		arg, err := d.bindSpan(role, span)
		if err != nil {
			return nil, "", err
		}
		if resolve, ok := c.Resolvers[role]; ok {
			converted, err := resolve(arg)
			if err != nil {
				return nil, "", fmt.Errorf("resolving %s: %w", role, err)
			}
			arg.Value = converted
		}
		args.ByRole[role] = arg
	}

	handler, err := c.New(args)
	if err != nil {
		return nil, "", err
	}
	if acceptor, ok := handler.(lexicon.Acceptor); ok && !acceptor.CanHandle(s) {
		return nil, "", fmt.Errorf("usage %s declined the sentence", c.Name)
	}
	return handler, args.Output, nil
}

// bindSpan resolves the contiguous words of one role into an argument.
// Variables are resolved eagerly here; a missing one is the hard error.
func (d *Dispatcher) bindSpan(role domain.Role, span []domain.Word) (lexicon.Argument, error) {
	arg := lexicon.Argument{Role: role}
	var texts []string
	var values []any

	for _, w := range span {
		switch word := w.(type) {
		case *domain.VariableWord:
			v, err := vars.Resolve[any](d.store, word.Raw)
			if err != nil {
				return arg, err
			}
			values = append(values, v)
			texts = append(texts, fmt.Sprintf("%v", v))
		case *domain.ReferenceWord:
			values = append(values, word.Value)
			texts = append(texts, word.Value)
		case *domain.QualifierWord:
			arg.Qualifier = word.Format
		case *domain.LiteralWord:
			texts = append(texts, word.Value)
		default:
			texts = append(texts, w.Text())
		}
	}

	arg.Text = strings.Join(texts, " ")
	if len(values) == 1 {
		arg.Value = values[0]
	} else if arg.Text != "" {
		arg.Value = arg.Text
	}
	return arg, nil
}

// soleVariable reports whether the span is exactly one variable word. A
// qualifier may ride along without making the span an input; its format is
// returned so the placeholder argument keeps it.
func soleVariable(span []domain.Word) (*domain.VariableWord, string, bool) {
	var v *domain.VariableWord
	var qualifier string
	for _, w := range span {
		switch word := w.(type) {
		case *domain.VariableWord:
			if v != nil {
				return nil, "", false
			}
			v = word
		case *domain.QualifierWord:
			qualifier = word.Format
		default:
			return nil, "", false
		}
	}
	return v, qualifier, v != nil
}
