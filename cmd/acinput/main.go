package main

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/robottwo/acinput/internal/bash"
	"github.com/robottwo/acinput/internal/completion"
	"github.com/robottwo/acinput/internal/core"
	"github.com/robottwo/acinput/internal/environment"
	"github.com/robottwo/acinput/internal/history"
	"github.com/robottwo/acinput/pkg/autocomplete"
	"github.com/robottwo/acinput/pkg/picker"
	"go.uber.org/zap"
	"golang.org/x/term"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
)

var BUILD_VERSION = "dev"

//go:embed .acinputrc.default
var DEFAULT_VARS []byte

// exitInterrupted matches the status a shell reports for SIGINT.
const exitInterrupted = 130

var completionsFile = flag.String("completions", "", "read candidates from a .txt, .yaml, .yml or .toml file")
var initialValue = flag.String("value", "", "initial value of the input")
var title = flag.String("title", "", "label shown above the input")
var width = flag.Int("width", -1, "width of the input and menu in cells, 0 for unbounded")
var rcFile = flag.String("rcfile", "", "use a custom rc file instead of ~/.acinputrc")
var strictConfig = flag.Bool("strict-config", false, "fail fast if configuration files contain errors (like bash 'set -e')")
var watch = flag.Bool("watch", false, "reload candidates when the completions file changes")
var showHistory = flag.Bool("history", false, "list recently committed values and exit")
var historySince = flag.Duration("since", 0, "with -history, list every value committed within this duration (e.g. 24h)")
var deleteHistory = flag.Uint("delete-history", 0, "delete the history entry with this id and exit")
var resetHistory = flag.Bool("reset-history", false, "delete all history entries and exit")
var withHistory = flag.Bool("with-history", false, "add recently committed values to the candidates")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Println("Usage of acinput:")
		flag.PrintDefaults()
		return
	}

	runner, err := initializeRunner()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(runner)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flush any buffered log entries
	}()

	session := uuid.NewString()
	logger.Info("-------- new acinput session --------", zap.String("session", session), zap.Any("args", os.Args))

	historyManager, err := history.NewHistoryManager(core.HistoryFile())
	if err != nil {
		logger.Error("failed to initialize history manager", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		_ = historyManager.Close()
	}()

	err = run(runner, historyManager, session, logger)

	if errors.Is(err, picker.ErrInterrupted) {
		logger.Info("interrupted by user")
		_ = logger.Sync()
		os.Exit(exitInterrupted)
	}

	if err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(runner *interp.Runner, historyManager *history.HistoryManager, session string, logger *zap.Logger) error {
	historyLimit := environment.GetHistoryLimit(runner, logger)

	// acinput -reset-history
	if *resetHistory {
		return historyManager.ResetHistory()
	}

	// acinput -delete-history 42
	if *deleteHistory != 0 {
		return historyManager.DeleteEntry(*deleteHistory)
	}

	// acinput -history [-since 24h]
	if *showHistory {
		return printHistory(os.Stdout, historyManager, historyLimit, *historySince)
	}

	poolFile := *completionsFile
	if poolFile == "" {
		poolFile = environment.GetCompletionsFile(runner)
	}

	pool, err := loadPool(poolFile, historyManager, historyLimit)
	if err != nil {
		return err
	}
	logger.Debug("loaded completions", zap.String("file", poolFile), zap.Int("count", len(pool)))

	// echo query | acinput -completions genes.txt
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return filterFromReader(os.Stdin, os.Stdout, pool)
	}

	model := autocomplete.NewModel(*initialValue, pool)
	if *title != "" {
		model.SetTitle(*title)
	} else {
		model.SetTitle(environment.GetTitle(runner))
	}
	model.OnChange(func(change autocomplete.Change) {
		if change.Attr == autocomplete.AttrValue {
			logger.Info("value changed", zap.Any("old", change.Old), zap.Any("new", change.New))
		}
	})

	options := picker.NewOptions()
	options.Header = poolFile
	options.Widget.Logger = logger
	options.Widget.Width = *width
	if *width < 0 {
		options.Widget.Width = environment.GetWidth(runner, logger)
	}

	p := picker.New(model, logger, options)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// acinput -watch -completions genes.txt
	if *watch && poolFile != "" {
		err := completion.Watch(ctx, poolFile, logger, func(reloaded []string) {
			if *withHistory {
				reloaded = mergeHistoryOnReload(reloaded, historyManager, historyLimit, logger)
			}
			p.SetCompletions(reloaded)
		})
		if err != nil {
			logger.Warn("failed to watch completions file", zap.String("file", poolFile), zap.Error(err))
		}
	}

	result, err := p.Run()
	if err != nil {
		return err
	}

	if result != "" {
		if _, err := historyManager.RecordCommit(result, session); err != nil {
			logger.Warn("failed to record commit", zap.Error(err))
		}
	}

	fmt.Println(result)
	return nil
}

func loadPool(poolFile string, historyManager *history.HistoryManager, historyLimit int) ([]string, error) {
	var pool []string
	if poolFile != "" {
		var err error
		pool, err = completion.Load(poolFile)
		if err != nil {
			return nil, err
		}
	}

	if *withHistory {
		return withRecentValues(pool, historyManager, historyLimit)
	}
	return pool, nil
}

func withRecentValues(pool []string, historyManager *history.HistoryManager, historyLimit int) ([]string, error) {
	recent, err := historyManager.GetRecentValues(historyLimit)
	if err != nil {
		return pool, fmt.Errorf("failed to read history: %w", err)
	}
	return completion.Merge(pool, recent), nil
}

// mergeHistoryOnReload keeps the reloaded pool when history cannot be read.
func mergeHistoryOnReload(pool []string, historyManager *history.HistoryManager, historyLimit int, logger *zap.Logger) []string {
	merged, err := withRecentValues(pool, historyManager, historyLimit)
	if err != nil {
		logger.Warn("failed to merge history into reloaded completions", zap.Error(err))
		return pool
	}
	return merged
}

// filterFromReader reads one query per line and prints the matching
// candidates, one per line.
func filterFromReader(in io.Reader, out io.Writer, pool []string) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		query := scanner.Text()
		if utf8.RuneCountInString(query) < autocomplete.MinQueryLength {
			continue
		}
		for _, match := range autocomplete.Filter(query, pool) {
			if _, err := fmt.Fprintln(out, match); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

// printHistory lists the newest limit entries, or with since > 0 every entry
// committed within that window, oldest first.
func printHistory(out io.Writer, historyManager *history.HistoryManager, limit int, since time.Duration) error {
	var entries []history.HistoryEntry
	var err error
	if since > 0 {
		entries, err = historyManager.GetEntriesSince(time.Now().Add(-since))
	} else {
		entries, err = historyManager.GetRecentEntries("", limit)
	}
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if _, err := fmt.Fprintf(out, "%5d  %-14s  %s\n", entry.ID, humanize.Time(entry.CreatedAt), entry.Value); err != nil {
			return err
		}
	}
	return nil
}

func initializeLogger(runner *interp.Runner) (*zap.Logger, error) {
	logLevel := environment.GetLogLevel(runner)
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	if environment.ShouldCleanLogFile(runner) {
		_ = os.Remove(core.LogFile())
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}
	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// initializeRunner loads the default variables and the rc file into an
// interpreter that only exists to evaluate configuration.
func initializeRunner() (*interp.Runner, error) {
	dynamicEnv := environment.NewDynamicEnviron()
	dynamicEnv.UpdateVar("ACINPUT_BUILD_VERSION", BUILD_VERSION)

	runner, err := interp.New(
		interp.Env(expand.Environ(dynamicEnv)),
		interp.StdIO(nil, os.Stderr, os.Stderr),
		interp.CallHandler(bash.SetBuiltinHandler()),
	)
	if err != nil {
		return nil, err
	}

	// load default vars
	if err := bash.RunBashScriptFromReader(
		context.Background(),
		runner,
		bytes.NewReader(DEFAULT_VARS),
		"acinput",
	); err != nil {
		return nil, err
	}

	configFile := *rcFile
	if configFile == "" {
		configFile = core.RcFile()
	}

	if stat, err := os.Stat(configFile); err == nil && stat.Size() > 0 {
		if err := bash.RunBashScriptFromFile(context.Background(), runner, configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Configuration file %s contains errors: %v\n", configFile, err)

			if *strictConfig || bash.ShouldExitOnError() {
				return nil, fmt.Errorf("aborting due to configuration error in %s: %w", configFile, err)
			}
		}
	} else if *rcFile != "" {
		fmt.Fprintf(os.Stderr, "Configuration file %s not found\n", configFile)
	}

	return runner, nil
}
