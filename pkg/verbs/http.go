package verbs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"reflect"

	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
)

// resolveURL rejects the candidate when the source is not an absolute
// http(s) URL.
func resolveURL(arg lexicon.Argument) (any, error) {
	raw, err := stringOf(arg)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%q is not an http(s) URL", raw)
	}
	return raw, nil
}

// downloadText fetches a URL into a variable: DOWNLOAD [x] FROM {url}.
func downloadText(cfg *Config) lexicon.Usage {
	return lexicon.Usage{
		Verb:     "DOWNLOAD",
		Name:     "TextFromURL",
		Roles:    domain.NewRoleSet(domain.RoleWhat, domain.RoleFrom),
		FromType: reflect.TypeOf(""),
		WhatType: reflect.TypeOf(""),
		Resolvers: map[domain.Role]lexicon.ResolveFunc{
			domain.RoleFrom: resolveURL,
		},
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			src, ok := args.Get(domain.RoleFrom)
			if !ok {
				return nil, fmt.Errorf("DOWNLOAD needs a FROM source")
			}
			return &downloader{client: cfg.client(), url: src.Value.(string)}, nil
		},
	}
}

// downloadToFile fetches a URL straight into a file: DOWNLOAD FROM {url}
// TO {path}.
func downloadToFile(cfg *Config) lexicon.Usage {
	return lexicon.Usage{
		Verb:     "DOWNLOAD",
		Name:     "FileFromURL",
		Roles:    domain.NewRoleSet(domain.RoleFrom, domain.RoleTo),
		FromType: reflect.TypeOf(""),
		WhatType: reflect.TypeOf(""),
		Resolvers: map[domain.Role]lexicon.ResolveFunc{
			domain.RoleFrom: resolveURL,
			domain.RoleTo:   asString,
		},
		New: func(args lexicon.Args) (lexicon.Handler, error) {
			src, ok := args.Get(domain.RoleFrom)
			if !ok {
				return nil, fmt.Errorf("DOWNLOAD needs a FROM source")
			}
			dst, ok := args.Get(domain.RoleTo)
			if !ok {
				return nil, fmt.Errorf("no TO destination")
			}
			return &downloader{
				client: cfg.client(),
				url:    src.Value.(string),
				path:   dst.Value.(string),
			}, nil
		},
	}
}

type downloader struct {
	client *http.Client
	url    string
	path   string // empty: return the body as a string
}

func (h *downloader) Act(ctx context.Context) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", h.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", h.url, resp.Status)
	}

	if h.path == "" {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return string(body), nil
	}

	f, err := os.Create(h.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return nil, fmt.Errorf("writing %s: %w", h.path, err)
	}
	return h.path, nil
}
