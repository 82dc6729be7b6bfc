package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sageleaf/internal/history"
	"sageleaf/internal/repl"
	"sageleaf/internal/runner"
	"sageleaf/internal/util"
	"strings"

	"github.com/mattn/go-isatty"
)

var (
	// Version, BuildDate and Commit are set at build time with -ldflags.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel string
	logFile  string
	// config vars
	configFile     string
	debugAST       bool
	debugASTFormat string
	historyDriver  string
	historyDSN     string
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configFile, "config", "", "Read settings from a TOML file (flags win over the file)")
	// parser config
	flag.BoolVar(&debugAST, "debug-ast", false, "Write the AST of the executed file next to it")
	flag.StringVar(&debugASTFormat, "debug-ast-format", "json", "AST dump format: json, yaml")
	// log config
	flag.StringVar(&logLevel, "log-level", "none", "Log level: debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
	// history config
	flag.StringVar(&historyDriver, "history-driver", "", "History store: sqlite3, mysql, postgres, bolt, none (default sqlite3 when $SAGELEAF_HOME is set)")
	flag.StringVar(&historyDSN, "history-dsn", "", "History data source; defaults to a file under $SAGELEAF_HOME")
}

func main() {
	flag.Parse()

	if version {
		printVersion()
		return
	}

	if help {
		printHelp()
		return
	}

	config := util.Configuration{
		Version:        Version,
		BuildDate:      BuildDate,
		Commit:         Commit,
		DebugAST:       debugAST,
		DebugASTFormat: debugASTFormat,
		LogLevel:       logLevel,
		LogFile:        logFile,
		HistoryDriver:  historyDriver,
		HistoryDSN:     historyDSN,
		SageleafHome:   os.Getenv("SAGELEAF_HOME"),
		Prompt:         isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
	if configFile != "" {
		if err := loadConfig(configFile, &config); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	// Creates a new Logger that uses a JSONHandler to write to the configured writer
	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(config.LogLevel),
	}
	logWriter := configureLogWriter(config.LogFile)
	defaultLogger := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(defaultLogger)

	store, err := openHistory(config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer store.Close()

	session := history.NewSessionID()

	if flag.NArg() == 0 {
		repl.Start(os.Stdin, os.Stdout, repl.Options{
			Version: Version,
			Prompt:  config.Prompt,
			History: store,
			Session: session,
		})
		return
	}

	filename := flag.Arg(0)
	slog.Info("executing file", slog.String("file", filename))
	_, err = runner.RunFile(context.Background(), filename, os.Stdout, runner.Options{
		Config:  config,
		History: store,
		Session: session,
		Mode:    history.ModeFile,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, formatRunError(err))
		store.Close()
		os.Exit(1)
	}
}

// loadConfig applies the file over cfg, then reapplies every flag given on the command line.
func loadConfig(path string, cfg *util.Configuration) error {
	if err := util.LoadConfigFile(path, cfg); err != nil {
		return err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug-ast":
			cfg.DebugAST = debugAST
		case "debug-ast-format":
			cfg.DebugASTFormat = debugASTFormat
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-file":
			cfg.LogFile = logFile
		case "history-driver":
			cfg.HistoryDriver = historyDriver
		case "history-dsn":
			cfg.HistoryDSN = historyDSN
		}
	})
	return nil
}

// openHistory defaults to sqlite3 under $SAGELEAF_HOME when no driver is configured.
func openHistory(cfg util.Configuration) (history.Store, error) {
	if cfg.HistoryDriver == "" && cfg.SageleafHome != "" {
		cfg.HistoryDriver = "sqlite3"
	}
	dsn := cfg.HistoryDSN
	if cfg.HistoryDriver != "" && cfg.HistoryDriver != "none" && dsn == "" {
		dsn = cfg.DefaultHistoryDSN()
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory for '%s': %w", dsn, err)
		}
	}
	return history.Open(cfg.HistoryDriver, dsn)
}

func formatRunError(err error) string {
	var pf *runner.ParseFailure
	if errors.As(err, &pf) {
		return pf.Error()
	}
	return "error: " + err.Error()
}

func configureLogWriter(logFile string) io.Writer {
	if logFile == "" {
		return os.Stderr
	}
	// Create parent directories if they don't exist
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr
	}
	logWriter, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr
	}
	return logWriter
}

func printVersion() {
	fmt.Printf("sageleaf version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: sageleaf [options] [filename]

Options:
  -config <path>            Read settings from a TOML file. Flags win over the file.
  -debug-ast                Write the AST of the executed file next to it.
  -debug-ast-format <fmt>   AST dump format: json or yaml. Default is 'json'.
  -history-driver <name>    History store: sqlite3, mysql, postgres, bolt or none.
                            Defaults to sqlite3 when $SAGELEAF_HOME is set, none otherwise.
  -history-dsn <dsn>        History data source. Defaults to a file under $SAGELEAF_HOME.
  -help                     Display this help information and exit.
  -version                  Display version information and exit.
  -log-level <level>        Set the log level: debug, info, warn, error, none. Default is 'none'.
  -log-file <path>          Specify a log file to write logs. Default is stderr.

Details:
Sageleaf is a small typed expression language. Without a filename it starts
an interactive session; REPL commands are :env, :history and :quit.

Examples:
  sageleaf                               Start the REPL
  sageleaf -log-level=debug main.sl      Execute main.sl with debug logging
  sageleaf -history-driver=sqlite3 -debug-ast -debug-ast-format=yaml main.sl

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

// logLevelFromString falls back to error for "none" and unknown names.
func logLevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
