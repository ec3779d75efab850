package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/plainspeak/plainspeak"
	"github.com/plainspeak/plainspeak/internal/presentation/tui"
	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/vars"
)

const helpText = `# plainspeak shell

Type a sentence and end it with ` + "`.`" + `, ` + "`?`" + ` or ` + "`!`" + `:

    GET [text] FROM {notes.txt}.
    SHOW [text].
    DOWNLOAD FROM {https://example.com} TO {page.html}.
    GET [text] FROM {a.txt} THEN SAVE [text] TO {b.txt}.

Brackets name variables, braces quote literals verbatim.

## Meta commands

| Command | Effect |
|---------|--------|
| ` + "`:help`" + ` | this screen |
| ` + "`:verbs`" + ` | list the registered verbs |
| ` + "`:vars`" + ` | list the session's variables |
| ` + "`:history`" + ` | sentences run so far |
| ` + "`:clear`" + ` | forget all variables |
| ` + "`:quit`" + ` | leave the shell |
`

// ShellOptions configures the interactive shell.
type ShellOptions struct {
	RunOptions

	// Fresh discards the named session's saved variables before starting.
	Fresh bool
}

// Shell runs the interactive REPL. Variables persist across sentences; a
// session ID additionally persists them to the snapshot store.
func Shell(ctx context.Context, opts ShellOptions) error {
	logger := createLogger(opts.Debug)
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	opts.RunOptions = opts.RunOptions.merge(cfg)

	store := vars.NewStore()
	sessions := newSessionManager(opts.RunOptions, logger)
	if opts.SessionID != "" {
		if opts.Fresh {
			if err := sessions.Delete(ctx, opts.SessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				return fmt.Errorf("resetting session %s: %w", opts.SessionID, err)
			}
		}
		snapshot, err := sessions.LoadOrStart(ctx, opts.SessionID)
		if err != nil {
			return fmt.Errorf("loading session %s: %w", opts.SessionID, err)
		}
		store.Restore(snapshot)
	}

	engine := newEngineDeps(cfg, opts.RunOptions, logger, nil).factory(store)

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		tui.PrintBanner(plainspeak.Version)
		fmt.Println("Type :help for commands, :quit to leave.")
		fmt.Println()
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "plainspeak> ",
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close()

	render := tui.NewRenderer()
	var history []string

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if quit := metaCommand(line, engine, render, history); quit {
				break
			}
			continue
		}

		history = append(history, line)
		result, runErr := engine.Run(ctx, line)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
			continue
		}
		if !result.Validation.Valid {
			fmt.Fprintf(os.Stderr, "invalid: %s\n", result.Validation.Reason)
			continue
		}
		if result.Stored != "" {
			fmt.Printf("stored [%s]\n", result.Stored)
		} else if result.Value != nil {
			fmt.Println(result.Value)
		}

		if opts.SessionID != "" {
			if err := sessions.Save(ctx, opts.SessionID, store.Snapshot()); err != nil {
				fmt.Fprintf(os.Stderr, "warning: session not saved: %v\n", err)
			}
		}
	}

	return nil
}

// metaCommand handles a ":" command; it reports whether to exit the loop.
func metaCommand(line string, engine *plainspeak.Engine, render func(string) (string, error), history []string) bool {
	switch strings.ToLower(line) {
	case ":quit", ":exit", ":q":
		return true
	case ":help", ":h":
		out, err := render(helpText)
		if err != nil {
			out = helpText
		}
		fmt.Print(out)
	case ":verbs":
		printVerbs(engine)
	case ":vars":
		names := engine.Variables().Names()
		if len(names) == 0 {
			fmt.Println("no variables registered")
			break
		}
		for _, name := range names {
			v, _ := engine.Variables().Lookup(name)
			fmt.Printf("  [%s] = %v\n", name, v)
		}
	case ":history":
		for i, sentence := range history {
			fmt.Printf("%3d  %s\n", i+1, sentence)
		}
	case ":clear":
		engine.Variables().Clear()
		fmt.Println("variables cleared")
	default:
		fmt.Printf("unknown command %s (try :help)\n", line)
	}
	return false
}

func printVerbs(engine *plainspeak.Engine) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Verb", "Synonyms", "Shape", "Usages"})
	for _, k := range engine.Lexicon().Verbs() {
		t.AppendRow(table.Row{
			k.Name,
			strings.Join(k.Synonyms, ", "),
			k.Roles.Shape(),
			strings.Join(engine.Usages().Names(k.Name), ", "),
		})
	}
	t.Render()
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".plainspeak_history")
}
