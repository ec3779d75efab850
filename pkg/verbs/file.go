package verbs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
)

// getTextFromFile reads a file into a string: GET [x] FROM {path}.
func getTextFromFile() lexicon.Usage {
	return lexicon.Usage{
		Verb:     "GET",
		Name:     "TextFromFile",
		Roles:    domain.NewRoleSet(domain.RoleWhat, domain.RoleFrom),
		FromType: reflect.TypeOf(""),
		WhatType: reflect.TypeOf(""),
		Resolvers: map[domain.Role]lexicon.ResolveFunc{
			domain.RoleFrom: asString,
		},
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			path, ok := args.Get(domain.RoleFrom)
			if !ok {
				return nil, fmt.Errorf("GET needs a FROM source")
			}
			return &fileReader{path: path.Value.(string)}, nil
		},
	}
}

// getJSONFromFile reads a file and decodes it as JSON: GET [x] FROM {path}
// JSON. Registered before TextFromFile so the qualifier is honored.
func getJSONFromFile() lexicon.Usage {
	return lexicon.Usage{
		Verb:     "GET",
		Name:     "JSONFromFile",
		Roles:    domain.NewRoleSet(domain.RoleWhat, domain.RoleFrom),
		FromType: reflect.TypeOf(""),
		WhatType: reflect.TypeOf(map[string]any{}),
		Resolvers: map[domain.Role]lexicon.ResolveFunc{
			domain.RoleFrom: asString,
		},
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			path, ok := args.Get(domain.RoleFrom)
			if !ok {
				return nil, fmt.Errorf("GET needs a FROM source")
			}
			if qualifierOf(args) != "JSON" {
				return nil, fmt.Errorf("no JSON qualifier")
			}
			return &fileReader{path: path.Value.(string), decodeJSON: true}, nil
		},
	}
}

// saveTextToFile writes the bound value to a file: SAVE [x] TO {path}.
func saveTextToFile() lexicon.Usage {
	return lexicon.Usage{
		Verb:     "SAVE",
		Name:     "TextToFile",
		Roles:    domain.NewRoleSet(domain.RoleWhat, domain.RoleTo),
		FromType: reflect.TypeOf(""),
		WhatType: reflect.TypeOf(""),
		Resolvers: map[domain.Role]lexicon.ResolveFunc{
			domain.RoleWhat: asString,
			domain.RoleTo:   asString,
		},
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			data, ok := args.Get(domain.RoleWhat)
			if !ok {
				return nil, fmt.Errorf("SAVE needs a direct object")
			}
			path, ok := args.Get(domain.RoleTo)
			if !ok {
				return nil, fmt.Errorf("SAVE needs a TO destination")
			}
			return &fileWriter{data: data.Value.(string), path: path.Value.(string)}, nil
		},
	}
}

type fileReader struct {
	path       string
	decodeJSON bool
}

// CanHandle makes the plain-text reader step aside when the sentence asks
// for JSON, so the JSON usage is the only acceptor.
func (h *fileReader) CanHandle(s *domain.Sentence) bool {
	if h.decodeJSON {
		return true
	}
	for _, w := range s.Words {
		if q, ok := w.(*domain.QualifierWord); ok && q.Format == "JSON" {
			return false
		}
	}
	return true
}

func (h *fileReader) Act(ctx context.Context) (any, error) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", h.path, err)
	}
	if h.decodeJSON {
		var out map[string]any
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decoding %s as JSON: %w", h.path, err)
		}
		return out, nil
	}
	return string(data), nil
}

type fileWriter struct {
	data string
	path string
}

func (h *fileWriter) Act(ctx context.Context) (any, error) {
	if err := os.WriteFile(h.path, []byte(h.data), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", h.path, err)
	}
	return h.path, nil
}

// qualifierOf returns the first qualifier found among the bound arguments.
func qualifierOf(args lexicon.Args) string {
	for _, r := range domain.BindOrder {
		if arg, ok := args.Get(r); ok && arg.Qualifier != "" {
			return arg.Qualifier
		}
	}
	return ""
}
