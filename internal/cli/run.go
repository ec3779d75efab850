package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/vars"
)

// runOutput is the JSON shape of a one-shot run (--json).
type runOutput struct {
	Session string `json:"session,omitempty"`
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
	Value   any    `json:"value,omitempty"`
	Stored  string `json:"stored,omitempty"`
}

// Run executes one sentence and prints the outcome. When a session ID is
// given, variables are hydrated from the snapshot store before the run and
// persisted after it.
func Run(ctx context.Context, opts RunOptions, sentence string) error {
	logger := createLogger(opts.Debug)
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	opts = opts.merge(cfg)

	deps := newEngineDeps(cfg, opts, logger, nil)

	store := vars.NewStore()
	sessions := newSessionManager(opts, logger)
	if opts.SessionID != "" {
		snapshot, err := sessions.LoadOrStart(ctx, opts.SessionID)
		if err != nil {
			return fmt.Errorf("loading session %s: %w", opts.SessionID, err)
		}
		store.Restore(snapshot)
	}

	engine := deps.factory(store)
	result, runErr := engine.Run(ctx, sentence)
	if runErr != nil {
		return runErr
	}

	if opts.SessionID != "" {
		if err := sessions.Save(ctx, opts.SessionID, store.Snapshot()); err != nil {
			return fmt.Errorf("saving session %s: %w", opts.SessionID, err)
		}
	}

	return printResult(opts, result)
}

func printResult(opts RunOptions, result *domain.Result) error {
	if opts.JSON {
		out := runOutput{
			Session: opts.SessionID,
			Valid:   result.Validation.Valid,
			Reason:  result.Validation.Reason,
			Value:   result.Value,
			Stored:  result.Stored,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if !result.Validation.Valid {
		return errors.New(result.Validation.Reason)
	}
	if result.Stored != "" {
		fmt.Printf("stored [%s]\n", result.Stored)
	} else if result.Value != nil {
		fmt.Println(result.Value)
	}
	return nil
}
