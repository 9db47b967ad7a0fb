// Package repl drives the interactive read-eval-print loop: it reads
// lines with the input component, dispatches colon commands, feeds Go
// source to the evaluation session and records history.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"replkit/internal/core"
	"replkit/internal/evaluate"
	"replkit/internal/history"
	"replkit/internal/repl/completion"
	"replkit/internal/repl/config"
	"replkit/internal/repl/input"
	"replkit/internal/repl/render"
	"replkit/internal/styles"
)

// Version is stamped by the build; "dev" otherwise.
var Version = "dev"

// ErrExit is returned when the user requests to exit the REPL.
var ErrExit = errors.New("exit requested")

// Options configures a REPL.
type Options struct {
	Config  *config.Config
	Session *evaluate.Session
	History *history.Manager
	Logger  *zap.Logger
	Stdout  io.Writer
	Stderr  io.Writer
}

// REPL is an interactive evaluation loop over a session.
type REPL struct {
	config   *config.Config
	session  *evaluate.Session
	history  *history.Manager
	provider *completion.Provider
	keymap   *input.KeyMap
	logger   *zap.Logger
	stdout   io.Writer
	stderr   io.Writer

	// pending holds the lines of an unfinished multi-line construct.
	pending []string
}

// New creates a REPL. The history manager may be nil, which disables
// persistence and history commands that need it.
func New(opts Options) *REPL {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	keymap := input.DefaultKeyMap()
	for _, err := range keymap.ApplyOverrides(cfg.Bindings) {
		logger.Warn("bad key binding", zap.Error(err))
	}

	r := &REPL{
		config:  cfg,
		session: opts.Session,
		history: opts.History,
		keymap:  keymap,
		logger:  logger,
		stdout:  stdout,
		stderr:  stderr,
	}
	r.provider = completion.NewProvider(opts.Session, cfg.CompletionLimit)
	r.registerCommands()
	return r
}

// Run reads and evaluates input until EOF, :exit or a fatal error.
func (r *REPL) Run(ctx context.Context) error {
	if !r.config.HideWelcome {
		render.RenderWelcome(r.stdout, render.WelcomeInfo{
			Version:   Version,
			GoVersion: runtime.Version(),
			Imports:   r.session.Imports(),
		}, terminalWidth())
	}

	r.loadHistoryFile()

	for {
		result, err := r.readLine()
		if err != nil {
			return err
		}

		switch result.Type {
		case input.ResultInterrupt:
			// Ctrl+C abandons any unfinished construct.
			r.pending = nil
			fmt.Fprintln(r.stdout)
			continue

		case input.ResultEOF:
			fmt.Fprintln(r.stdout)
			return r.saveHistoryFile()

		case input.ResultSubmit:
			fmt.Fprintln(r.stdout)
			if err := r.handleInput(ctx, result.Value); err != nil {
				if errors.Is(err, ErrExit) {
					return r.saveHistoryFile()
				}
				return err
			}
		}
	}
}

// readLine runs one input session with the right prompt and history.
func (r *REPL) readLine() (input.Result, error) {
	prompt := r.config.Prompt
	if len(r.pending) > 0 {
		prompt = r.config.ContinuationPrompt
	}

	return input.Run(input.Config{
		Prompt:             prompt,
		Indent:             r.config.IndentText(),
		HistoryValues:      r.historyValues(),
		CompletionProvider: r.provider,
		HistorySearcher:    r.historySearcher(),
		KeyMap:             r.keymap,
		Width:              terminalWidth(),
		Logger:             r.logger,
	})
}

// handleInput processes one submitted line: a colon command when no
// construct is pending, Go source otherwise.
func (r *REPL) handleInput(ctx context.Context, line string) error {
	trimmed := strings.TrimSpace(line)

	if len(r.pending) == 0 {
		if trimmed == "" {
			return nil
		}
		if strings.HasPrefix(trimmed, ":") {
			r.recordInput(trimmed, 0, false)
			return r.dispatchCommand(ctx, trimmed)
		}
	}

	src := line
	if len(r.pending) > 0 {
		src = strings.Join(append(r.pending, line), "\n")
	}

	started := time.Now()
	value, err := r.session.Eval(ctx, src)
	elapsed := time.Since(started)

	if evaluate.IsIncomplete(src, err) {
		r.pending = append(r.pending, line)
		return nil
	}
	r.pending = nil

	r.recordInput(src, elapsed, err != nil)

	if err != nil {
		fmt.Fprintln(r.stderr, styles.ERROR(err.Error()))
		return nil
	}
	if formatted := evaluate.FormatResult(src, value); formatted != "" {
		fmt.Fprintln(r.stdout, styles.RESULT(formatted))
	}
	return nil
}

// recordInput stores a finished input in history.
func (r *REPL) recordInput(src string, elapsed time.Duration, failed bool) {
	if r.history == nil {
		return
	}
	entry, err := r.history.StartInput(src)
	if err != nil {
		r.logger.Warn("failed to record history", zap.Error(err))
		return
	}
	if _, err := r.history.FinishInput(entry, elapsed, failed); err != nil {
		r.logger.Warn("failed to finish history entry", zap.Error(err))
	}
}

// historyValues returns history lines for Up/Down navigation, newest
// first.
func (r *REPL) historyValues() []string {
	if r.history == nil {
		return nil
	}
	lines, err := r.history.Lines(r.config.HistoryLimit)
	if err != nil {
		r.logger.Warn("failed to load history", zap.Error(err))
		return nil
	}
	return lines
}

// historySearcher backs Ctrl+R with fuzzy history search.
func (r *REPL) historySearcher() input.HistorySearcher {
	if r.history == nil {
		return nil
	}
	return func(query string) []string {
		matches, err := r.history.FuzzySearch(query, 20)
		if err != nil {
			r.logger.Warn("history search failed", zap.Error(err))
			return nil
		}
		return matches
	}
}

// loadHistoryFile imports the flat history file configured (if any) at
// startup.
func (r *REPL) loadHistoryFile() {
	path := r.historyFilePath()
	if path == "" || r.history == nil {
		return
	}
	count, err := r.history.ImportFile(path)
	if err != nil {
		r.logger.Warn("failed to import history file",
			zap.String("path", path), zap.Error(err))
		return
	}
	if count > 0 {
		r.logger.Debug("imported history file",
			zap.String("path", path), zap.Int("lines", count))
	}
}

// saveHistoryFile exports history to the flat file on exit.
func (r *REPL) saveHistoryFile() error {
	path := r.historyFilePath()
	if path == "" || r.history == nil {
		return nil
	}
	if err := r.history.ExportFile(path, r.config.HistoryLimit); err != nil {
		r.logger.Warn("failed to export history file",
			zap.String("path", path), zap.Error(err))
	}
	return nil
}

func (r *REPL) historyFilePath() string {
	if r.config.HistoryFile == "" {
		return ""
	}
	return core.ExpandUser(r.config.HistoryFile)
}

// terminalWidth returns the stdout terminal width, or 80.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
