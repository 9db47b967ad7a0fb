package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"replkit/internal/core"
	"replkit/internal/evaluate"
	"replkit/internal/history"
	"replkit/internal/repl"
	"replkit/internal/repl/config"
	"replkit/internal/styles"
)

var BUILD_VERSION = "dev"

var command = flag.String("c", "", "evaluate an expression and exit")
var quietFlag = flag.Bool("q", false, "skip the welcome banner")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `replkit - an augmented interactive Go interpreter

USAGE:
  replkit [options] [script.go ...]

MODES:
  replkit                 Start an interactive session
  replkit script.go       Interpret a Go script file
  replkit -c "expr"       Evaluate an expression and exit
  cmd | replkit           Evaluate piped-in source

Inside a session, type :help to list the colon commands.

Configuration is read from $REPLKIT_HOME/config.yaml (default
~/.replkit/config.yaml).

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	logger, logLevel, err := initializeLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := loadConfig(logger, logLevel)

	logger.Info("-------- new replkit session --------", zap.Any("args", os.Args))

	if err := run(context.Background(), cfg, logger); err != nil {
		if !errors.Is(err, errReported) {
			logger.Error("unhandled error", zap.Error(err))
			fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		}
		os.Exit(1)
	}
}

// errReported marks errors already shown to the user, so main exits
// nonzero without printing them again.
var errReported = errors.New("reported")

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	session, err := evaluate.NewSession(evaluate.Config{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Imports: cfg.Imports,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize interpreter: %w", err)
	}

	// replkit -c "expr"
	if *command != "" {
		return evalSnippet(ctx, session, *command)
	}

	// replkit
	if flag.NArg() == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return runInteractive(ctx, cfg, session, logger)
		}
		return evalReader(ctx, session, os.Stdin)
	}

	// replkit script.go ...
	for _, path := range flag.Args() {
		if err := runScript(ctx, session, path); err != nil {
			return err
		}
	}
	return nil
}

// runInteractive starts the REPL over the session, with durable history
// when the store can be opened.
func runInteractive(ctx context.Context, cfg *config.Config, session *evaluate.Session, logger *zap.Logger) error {
	historyManager, err := history.NewManager(core.HistoryFile())
	if err != nil {
		// A broken history store degrades the session, it does not
		// prevent one.
		logger.Warn("history unavailable", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.LOG("warning: history unavailable: "+err.Error()))
		historyManager = nil
	}

	if *quietFlag {
		cfg.HideWelcome = true
	}
	repl.Version = BUILD_VERSION

	r := repl.New(repl.Options{
		Config:  cfg,
		Session: session,
		History: historyManager,
		Logger:  logger,
	})
	return r.Run(ctx)
}

// evalSnippet evaluates one snippet and prints its value, REPL-style.
func evalSnippet(ctx context.Context, session *evaluate.Session, src string) error {
	value, err := session.Eval(ctx, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		return errReported
	}
	if formatted := evaluate.FormatResult(src, value); formatted != "" {
		fmt.Fprintln(os.Stdout, styles.RESULT(formatted))
	}
	return nil
}

// evalReader evaluates everything readable from r as one script.
func evalReader(ctx context.Context, session *evaluate.Session, r io.Reader) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if _, err := session.Eval(ctx, string(src)); err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		return errReported
	}
	return nil
}

// runScript interprets a script file. Unlike evalSnippet, values are not
// echoed; scripts speak through their own output.
func runScript(ctx context.Context, session *evaluate.Session, path string) error {
	if _, err := session.EvalFile(ctx, path); err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		return errReported
	}
	return nil
}

// initializeLogger builds the file logger. The level starts at info and
// is adjusted once the config is loaded; dev builds always log debug.
func initializeLogger() (*zap.Logger, zap.AtomicLevel, error) {
	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	// Logs go to file only, to stay out of the Bubble Tea UI. Use
	// `tail -f ~/.replkit/replkit.log` to follow them.

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	return logger, logLevel, nil
}

// loadConfig reads config.yaml and applies its log level. Config
// problems are logged and reported but never fatal.
func loadConfig(logger *zap.Logger, logLevel zap.AtomicLevel) *config.Config {
	result, err := config.NewLoader(logger).LoadFromFile(core.ConfigFile())
	if err != nil {
		logger.Warn("failed to load config, using defaults", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.LOG("warning: failed to load config: "+err.Error()))
		return config.DefaultConfig()
	}
	for _, loadErr := range result.Errors {
		fmt.Fprintln(os.Stderr, styles.LOG("warning: config: "+loadErr.Error()))
	}

	if BUILD_VERSION != "dev" {
		if level, err := zapcore.ParseLevel(result.Config.LogLevel); err == nil {
			logLevel.SetLevel(level)
		}
	}
	return result.Config
}
