package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/plainspeak/plainspeak"
	"github.com/plainspeak/plainspeak/internal/runtime"
	"github.com/plainspeak/plainspeak/pkg/adapters/memory"
	"github.com/plainspeak/plainspeak/pkg/adapters/redis"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
	"github.com/plainspeak/plainspeak/pkg/session"
	"github.com/plainspeak/plainspeak/pkg/vars"
	"github.com/plainspeak/plainspeak/pkg/verbs"
)

// RunOptions carries the flags shared by the commands. Flags win over the
// config file where both are set.
type RunOptions struct {
	ConfigPath string
	SessionID  string
	RedisURL   string
	Debug      bool
	JSON       bool
	Strict     bool
	Patterns   bool
}

func (o RunOptions) merge(cfg *Config) RunOptions {
	if o.RedisURL == "" {
		o.RedisURL = cfg.RedisURL
	}
	o.Strict = o.Strict || cfg.StrictDispatch
	o.Patterns = o.Patterns || cfg.PatternMatchers
	return o
}

// engineDeps bundles the shared catalogs and the per-store engine factory.
// Adapters list verbs from the catalogs; each run gets its own engine bound
// to a session's variable store.
type engineDeps struct {
	catalog *lexicon.Catalog
	usages  *lexicon.Usages
	factory func(store *vars.Store) *plainspeak.Engine
}

func newEngineDeps(cfg *Config, opts RunOptions, logger *slog.Logger, metrics runtime.Metrics) engineDeps {
	catalog := buildCatalog(cfg)
	builtins := verbs.Builtins(&verbs.Config{Out: os.Stdout})

	usages := lexicon.NewUsages()
	for _, u := range builtins {
		_ = usages.Register(u)
	}

	factory := func(store *vars.Store) *plainspeak.Engine {
		engineOpts := []plainspeak.Option{
			plainspeak.WithLogger(logger),
			plainspeak.WithStore(store),
			plainspeak.WithCatalog(catalog),
			plainspeak.WithStrictDispatch(opts.Strict),
			plainspeak.WithPatternMatchers(opts.Patterns),
			plainspeak.WithUsages(builtins...),
		}
		if metrics != nil {
			engineOpts = append(engineOpts, plainspeak.WithMetrics(metrics))
		}
		return plainspeak.New(engineOpts...)
	}

	return engineDeps{catalog: catalog, usages: usages, factory: factory}
}

// buildCatalog assembles the vocabulary: the builtin keywords plus the
// synonyms and qualifiers from the config file.
func buildCatalog(cfg *Config) *lexicon.Catalog {
	catalog := lexicon.Default()
	for _, k := range catalog.Verbs() {
		extra, ok := cfg.Synonyms[strings.ToUpper(k.Name)]
		if !ok {
			extra = cfg.Synonyms[k.Name]
		}
		k.Synonyms = append(k.Synonyms, extra...)
	}
	for _, q := range cfg.Qualifiers {
		catalog.RegisterQualifier(q)
	}
	catalog.Invalidate()
	return catalog
}

// newSessionManager picks the snapshot store backend. Redis when
// configured, in-memory otherwise.
func newSessionManager(opts RunOptions, logger *slog.Logger) *session.Manager {
	if opts.RedisURL != "" {
		return session.NewManager(redis.New(opts.RedisURL, "", 0), session.WithLogger(logger))
	}
	return session.NewManager(memory.NewStore(), session.WithLogger(logger))
}
