package repl

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"
	"github.com/olekukonko/tablewriter"

	"replkit/internal/ctrl"
	"replkit/internal/edir"
	"replkit/internal/evaluate"
	"replkit/internal/history"
	"replkit/internal/styles"
	"replkit/internal/timer"
	"replkit/internal/unicodelib"
)

// registerCommands declares every colon command with its help line, so
// the completion provider can offer and describe them.
func (r *REPL) registerCommands() {
	for name, help := range map[string]string{
		"help":    "list available commands",
		"exit":    "exit the REPL",
		"quit":    "exit the REPL",
		"clear":   "clear the screen",
		"reset":   "discard all session state and start over",
		"imports": "list the packages imported into the session",
		"import":  "import a package, e.g. :import net/http",
		"history": "show or manage input history, see :help history",
		"time":    "measure how long a piece of code takes, e.g. :time fib(30)",
		"dir":     "list attributes of a value, e.g. :dir x Set*",
		"ctrl":    "describe control codes, e.g. :ctrl ESC",
		"uni":     "describe unicode characters, e.g. :uni U+03C4",
	} {
		r.provider.RegisterCommand(name, help)
	}
}

// dispatchCommand runs a colon command line.
func (r *REPL) dispatchCommand(ctx context.Context, line string) error {
	trimmed := strings.TrimPrefix(line, ":")
	name, rest, _ := strings.Cut(trimmed, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch name {
	case "help":
		return r.commandHelp(args)
	case "exit", "quit":
		return ErrExit
	case "clear":
		fmt.Fprint(r.stdout, "\033[2J\033[H")
		return nil
	case "reset":
		if err := r.session.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(r.stdout, styles.NOTICE("session reset"))
		return nil
	case "imports":
		for _, path := range r.session.Imports() {
			fmt.Fprintln(r.stdout, path)
		}
		return nil
	case "import":
		return r.commandImport(args)
	case "history":
		return r.commandHistory(args)
	case "time":
		return r.commandTime(ctx, rest)
	case "dir":
		return r.commandDir(ctx, args)
	case "ctrl":
		return r.commandCtrl(args)
	case "uni":
		return r.commandUni(rest)
	default:
		fmt.Fprintln(r.stderr, styles.ERROR(fmt.Sprintf("unknown command :%s, try :help", name)))
		return nil
	}
}

func (r *REPL) commandHelp(args []string) error {
	if len(args) > 0 && args[0] == "history" {
		fmt.Fprint(r.stdout, `:history            show the last `+strconv.Itoa(history.DefaultShowLines)+` inputs
:history <n>        show the last n inputs
:history search <q> search history for a substring
:history delete <n> delete entry n
:history clear      delete all history
:history save [f]   write history to a file
:history load [f]   replace history with a file's contents
:history read [f]   append a file's contents to history
`)
		return nil
	}

	width := terminalWidth()
	for _, name := range r.provider.Commands() {
		line := fmt.Sprintf("  :%-8s %s", name, r.provider.CommandHelp(name))
		fmt.Fprintln(r.stdout, wordwrap.String(line, width))
	}
	return nil
}

func (r *REPL) commandImport(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(r.stderr, styles.ERROR("usage: :import <package path>"))
		return nil
	}
	for _, path := range args {
		if err := r.session.Import(path); err != nil {
			fmt.Fprintln(r.stderr, styles.ERROR(fmt.Sprintf("import %s: %v", path, err)))
		}
	}
	return nil
}

func (r *REPL) commandHistory(args []string) error {
	if r.history == nil {
		fmt.Fprintln(r.stderr, styles.ERROR("history is not available"))
		return nil
	}

	if len(args) == 0 {
		return r.history.Show(r.stdout, history.DefaultShowLines, true)
	}

	if n, err := strconv.Atoi(args[0]); err == nil {
		return r.history.Show(r.stdout, n, true)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "search":
		if len(rest) == 0 {
			fmt.Fprintln(r.stderr, styles.ERROR("usage: :history search <query>"))
			return nil
		}
		entries, err := r.history.Search(strings.Join(rest, " "), history.DefaultShowLines)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			fmt.Fprintf(r.stdout, "%3d:  %s  (%s)\n",
				entry.ID, entry.Input, humanize.Time(entry.CreatedAt))
		}
		return nil

	case "delete":
		if len(rest) == 0 {
			fmt.Fprintln(r.stderr, styles.ERROR("usage: :history delete <id>"))
			return nil
		}
		id, err := strconv.ParseUint(rest[0], 10, 32)
		if err != nil {
			fmt.Fprintln(r.stderr, styles.ERROR("bad history id: "+rest[0]))
			return nil
		}
		if err := r.history.Delete(uint(id)); err != nil {
			fmt.Fprintln(r.stderr, styles.ERROR(err.Error()))
		}
		return nil

	case "clear":
		if err := r.history.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(r.stdout, styles.NOTICE("history cleared"))
		return nil

	case "save", "load", "read":
		path := r.historyFilePath()
		if len(rest) > 0 {
			path = rest[0]
		}
		if path == "" {
			fmt.Fprintln(r.stderr, styles.ERROR("no history file configured, pass a path"))
			return nil
		}
		return r.historyFileOp(sub, path)

	default:
		fmt.Fprintln(r.stderr, styles.ERROR("unknown history command: "+sub))
		return nil
	}
}

func (r *REPL) historyFileOp(op, path string) error {
	switch op {
	case "save":
		if err := r.history.ExportFile(path, r.config.HistoryLimit); err != nil {
			return err
		}
		fmt.Fprintln(r.stdout, styles.NOTICE("history saved to "+path))
	case "load":
		count, err := r.history.LoadFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.stdout, styles.NOTICE(fmt.Sprintf("loaded %d lines from %s", count, path)))
	case "read":
		count, err := r.history.ImportFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.stdout, styles.NOTICE(fmt.Sprintf("read %d lines from %s", count, path)))
	}
	return nil
}

// commandTime evaluates code under a stopwatch and reports the elapsed
// time, warning when the measurement is too small to mean much.
func (r *REPL) commandTime(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		fmt.Fprintln(r.stderr, styles.ERROR("usage: :time <code>"))
		return nil
	}

	stopwatch := timer.New(timer.Config{
		Output:  r.stdout,
		Verbose: true,
		Cutoff:  r.config.TimerCutoff(),
	})

	var evalErr error
	_, err := stopwatch.Do(func() {
		value, errEval := r.session.Eval(ctx, code)
		if errEval != nil {
			evalErr = errEval
			return
		}
		if formatted := evaluate.FormatResult(code, value); formatted != "" {
			fmt.Fprintln(r.stdout, styles.RESULT(formatted))
		}
	})
	if err != nil {
		return err
	}
	if evalErr != nil {
		fmt.Fprintln(r.stderr, styles.ERROR(evalErr.Error()))
	}
	return nil
}

// commandDir lists the attributes of a value or of the session itself.
// The optional last argument is a glob filter; a -a flag includes
// unexported names and -m includes names from the type's type.
func (r *REPL) commandDir(ctx context.Context, args []string) error {
	lister := edir.New()
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "-a":
			lister.Unexported = true
		case "-m":
			lister.Meta = true
		default:
			fmt.Fprintln(r.stderr, styles.ERROR("unknown flag "+args[0]))
			return nil
		}
		args = args[1:]
	}

	var names []string
	var glob string

	switch len(args) {
	case 0:
		names = r.session.Globals()
	case 1, 2:
		value, err := r.evalForCommand(ctx, args[0])
		if err != nil {
			fmt.Fprintln(r.stderr, styles.ERROR(err.Error()))
			return nil
		}
		names = lister.Names(value)
		if len(args) == 2 {
			glob = args[1]
		}
	default:
		fmt.Fprintln(r.stderr, styles.ERROR("usage: :dir [-a] [-m] [expr] [glob]"))
		return nil
	}

	if glob != "" {
		var err error
		names, err = edir.Match(names, glob)
		if err != nil {
			fmt.Fprintln(r.stderr, styles.ERROR(err.Error()))
			return nil
		}
	}

	width := terminalWidth()
	fmt.Fprintln(r.stdout, wordwrap.String(strings.Join(names, "  "), width))
	return nil
}

// commandCtrl prints the control code table, or describes one code.
func (r *REPL) commandCtrl(args []string) error {
	if len(args) == 0 {
		table := tablewriter.NewWriter(r.stdout)
		table.Header("Ord", "Acr", "Char", "Code", "Description")
		for _, code := range ctrl.All() {
			table.Append([]string{
				strconv.Itoa(code.Ordinal),
				code.Acronym,
				code.Symbol(),
				code.Code,
				code.Description,
			})
		}
		return table.Render()
	}

	key := strings.Join(args, " ")
	var code ctrl.Code
	var err error
	if n, convErr := strconv.Atoi(key); convErr == nil {
		code, err = ctrl.LookupOrdinal(n)
	} else {
		code, err = ctrl.Lookup(key)
	}
	if err != nil {
		fmt.Fprintln(r.stderr, styles.ERROR(err.Error()))
		return nil
	}

	fmt.Fprintf(r.stdout, "%s (%d, %s, %s): %s\n",
		code.Acronym, code.Ordinal, code.Symbol(), code.Code, code.Description)
	return nil
}

// commandUni describes the characters of its argument. The argument is
// either a codepoint spec (U+03C4, 0x3c4, 964) or a literal string.
func (r *REPL) commandUni(arg string) error {
	if arg == "" {
		fmt.Fprintln(r.stderr, styles.ERROR("usage: :uni <char|U+XXXX>"))
		return nil
	}

	runes, err := parseUniArg(arg)
	if err != nil {
		fmt.Fprintln(r.stderr, styles.ERROR(err.Error()))
		return nil
	}

	table := tablewriter.NewWriter(r.stdout)
	table.Header("Codepoint", "Char", "UTF-8", "Name")
	for _, ch := range runes {
		display := string(ch)
		if code, err := ctrl.LookupOrdinal(int(ch)); err == nil {
			display = code.Symbol()
		} else if !unicodelib.IsValid(display) {
			display = "?"
		}
		table.Append([]string{
			unicodelib.Codepoint(ch),
			display,
			unicodelib.BytesAsHex([]byte(string(ch))),
			unicodelib.Name(ch),
		})
	}
	return table.Render()
}

// parseUniArg turns a :uni argument into the runes to describe.
func parseUniArg(arg string) ([]rune, error) {
	upper := strings.ToUpper(arg)
	var spec string
	var base int
	switch {
	case strings.HasPrefix(upper, "U+"):
		spec, base = upper[2:], 16
	case strings.HasPrefix(upper, "0X"):
		spec, base = upper[2:], 16
	case utf8.RuneCountInString(arg) > 1 && isDigits(arg):
		spec, base = arg, 10
	default:
		return []rune(arg), nil
	}

	n, err := strconv.ParseInt(spec, base, 32)
	if err != nil || n < 0 || n > int64(unicodelib.MaxRune) {
		return nil, fmt.Errorf("bad codepoint %q", arg)
	}
	return []rune{rune(n)}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// evalForCommand evaluates an expression for a colon command and
// returns its Go value.
func (r *REPL) evalForCommand(ctx context.Context, src string) (any, error) {
	value, err := r.session.Eval(ctx, src)
	if err != nil {
		return nil, err
	}
	if !value.IsValid() || !value.CanInterface() {
		return nil, nil
	}
	return value.Interface(), nil
}
