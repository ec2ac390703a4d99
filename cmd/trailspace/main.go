// cmd/trailspace/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bethropolis/trailspace/internal/app"
	"github.com/bethropolis/trailspace/internal/config"
	"github.com/bethropolis/trailspace/internal/lang"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/modlines"
	"github.com/bethropolis/trailspace/internal/trimmer"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Exit codes.
const (
	exitClean = 0
	exitFound = 1 // check found trailing whitespace
	exitError = 2
)

const usageText = `Usage: trailspace <command> [flags] FILE...

Commands:
  check    report trailing whitespace as path:line:col
  fix      delete trailing whitespace in place ("-" reads stdin, writes stdout)
  view     open the files in the terminal viewer
  version  print the version

Run 'trailspace <command> -h' for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usageText)
		return exitError
	}

	command := args[0]
	switch command {
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "%s %s\n", config.AppName, version)
		return exitClean
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usageText)
		return exitClean
	case "check", "fix", "view":
	default:
		fmt.Fprintf(stderr, "%s: unknown command %q\n\n%s", config.AppName, command, usageText)
		return exitError
	}

	// --- Argument & Flag Parsing ---
	fs := flag.NewFlagSet(config.AppName+" "+command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var flags config.Flags
	flags.DefineFlags(fs)
	var dryRun *bool
	if command == "fix" {
		dryRun = fs.Bool("dry-run", false, "Print the number of regions per file without changing anything")
	}
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitClean
		}
		return exitError
	}
	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintf(stderr, "%s %s: no files given\n", config.AppName, command)
		return exitError
	}
	mode, err := parseColorMode(*flags.Color)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitError
	}

	// --- Configuration & Logger ---
	cfg, err := config.Load(flags.ConfigPath(), &flags)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitError
	}
	logCfg := cfg.Logger
	if command == "view" && (logCfg.LogFilePath == "" || logCfg.LogFilePath == "-") {
		// The viewer owns the terminal, so stderr is not an option.
		logCfg.LogFilePath = filepath.Join(os.TempDir(), config.DefaultLogFileName)
	}
	logOut, closeLog, err := logger.Open(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitError
	}
	defer closeLog()
	if logOut == os.Stderr {
		logOut = stderr
	}
	log := logger.New(logCfg, logOut)
	log.Debugf("Starting %s %s (%s)", config.AppName, command, version)
	if cfg.Source != "" {
		log.Debugf("Config file: %s", cfg.Source)
	}
	for _, key := range cfg.Unknown {
		log.Warnf("Config: unknown key '%s' in %s", key, cfg.Source)
	}

	languages := lang.NewRegistry(log)
	if command == "view" {
		viewer, err := app.New(app.Options{
			Files:     files,
			Config:    cfg,
			Flags:     &flags,
			Logger:    log,
			Languages: languages,
			Language:  *flags.Language,
		})
		if err != nil {
			log.Errorf("Error initializing viewer: %v", err)
			fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
			return exitError
		}
		if err := viewer.Run(); err != nil {
			log.Errorf("Viewer exited with error: %v", err)
			return exitError
		}
		return exitClean
	}

	settings, err := cfg.Trailing.Settings()
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitError
	}
	kind, err := cfg.Trailing.SnapshotKind()
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitError
	}
	r := &runner{
		log:       log,
		trimmer:   trimmer.New(settings, log, modlines.SourceFor(kind), nil, nil),
		languages: languages,
		language:  *flags.Language,
		color:     colorEnabled(mode, stdout, os.Getenv),
		stdin:     stdin,
		stdout:    stdout,
	}

	var found, failed int
	switch command {
	case "check":
		found, failed = r.check(ctx, files)
	case "fix":
		found, failed = r.fix(ctx, files, *dryRun)
	}
	switch {
	case failed > 0:
		return exitError
	case found > 0 && (command == "check" || *dryRun):
		return exitFound
	}
	return exitClean
}
