package verbs

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
)

// compressToFile gzips the bound value into a file: COMPRESS [x] TO
// {path.gz} USING {best}. The USING level is optional.
func compressToFile() lexicon.Usage {
	return lexicon.Usage{
		Verb:     "COMPRESS",
		Name:     "GzipToFile",
		Roles:    domain.NewRoleSet(domain.RoleWhat, domain.RoleTo, domain.RoleUsing),
		FromType: reflect.TypeOf(""),
		WhatType: reflect.TypeOf(""),
		Resolvers: map[domain.Role]lexicon.ResolveFunc{
			domain.RoleWhat:  asString,
			domain.RoleTo:    asString,
			domain.RoleUsing: resolveLevel,
		},
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			data, ok := args.Get(domain.RoleWhat)
			if !ok {
				return nil, fmt.Errorf("COMPRESS needs a direct object")
			}
			path, ok := args.Get(domain.RoleTo)
			if !ok {
				return nil, fmt.Errorf("COMPRESS needs a TO destination")
			}
			level := gzip.DefaultCompression
			if l, ok := args.Get(domain.RoleUsing); ok {
				level = l.Value.(int)
			}
			return &gzipWriter{
				data:  data.Value.(string),
				path:  path.Value.(string),
				level: level,
			}, nil
		},
	}
}

// resolveLevel maps USING values to gzip levels.
func resolveLevel(arg lexicon.Argument) (any, error) {
	raw, err := stringOf(arg)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "best":
		return gzip.BestCompression, nil
	case "fast":
		return gzip.BestSpeed, nil
	case "default", "":
		return gzip.DefaultCompression, nil
	default:
		return nil, fmt.Errorf("unknown compression level %q", raw)
	}
}

type gzipWriter struct {
	data  string
	path  string
	level int
}

func (h *gzipWriter) Act(ctx context.Context) (any, error) {
	f, err := os.Create(h.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zw, err := gzip.NewWriterLevel(f, h.level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write([]byte(h.data)); err != nil {
		zw.Close()
		return nil, fmt.Errorf("compressing to %s: %w", h.path, err)
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return h.path, nil
}
