package cli

import (
	"fmt"

	"github.com/plainspeak/plainspeak/internal/compiler"
)

// Validate checks a sentence against the grammar without dispatching it.
// It prints the verdict and returns an error for invalid sentences so the
// command exits non-zero.
func Validate(opts RunOptions, sentence string) error {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	opts = opts.merge(cfg)

	comp := compiler.New(buildCatalog(cfg), opts.Patterns)
	words, validation := comp.Validate(comp.Tokenize(sentence))
	if !validation.Valid {
		return fmt.Errorf("invalid: %s", validation.Reason)
	}

	s := comp.Build(words)
	fmt.Printf("valid: %s", s.Verb().Keyword.Name)
	for range s.Subs {
		fmt.Print(" THEN ...")
	}
	fmt.Printf(" (%d clause(s))\n", 1+len(s.Subs))
	return nil
}
