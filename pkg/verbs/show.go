package verbs

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
)

// showValue prints the bound value to the configured output: SHOW [x].
func showValue(cfg *Config) lexicon.Usage {
	return lexicon.Usage{
		Verb:     "SHOW",
		Name:     "Value",
		Roles:    domain.NewRoleSet(domain.RoleWhat),
		WhatType: reflect.TypeOf((*any)(nil)).Elem(),
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			what, ok := args.Get(domain.RoleWhat)
			if !ok {
				return nil, fmt.Errorf("SHOW needs a direct object")
			}
			return &printer{out: cfg.out(), value: what.Value}, nil
		},
	}
}

type printer struct {
	out   io.Writer
	value any
}

func (h *printer) Act(ctx context.Context) (any, error) {
	if _, err := fmt.Fprintln(h.out, h.value); err != nil {
		return nil, err
	}
	return h.value, nil
}
