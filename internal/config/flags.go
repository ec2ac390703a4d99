// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath *string
	LogLevel       *string
	LogFilePath    *string
	// Logger filters
	EnableTags  *string
	DisableTags *string
	EnablePkgs  *string
	DisablePkgs *string

	Regexp            *string
	IncludeEmptyLines *bool
	ModifiedOnly      *bool
	Snapshot          *string

	// Command-level options; not part of Config.
	Language *string
	Color    *string
}

// DefineFlags registers the shared flags on fs.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML or YAML configuration file (default .trailspace.toml upwards, then ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error, none) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.Regexp = fs.String("regexp", "", "Trailing whitespace pattern - Overrides config file")
	f.IncludeEmptyLines = fs.Bool("include-empty-lines", true, "Match whitespace-only lines - Overrides config file")
	f.ModifiedOnly = fs.Bool("modified-only", false, "Only touch lines changed since the last snapshot")
	f.Snapshot = fs.String("snapshot", "", "Snapshot source for --modified-only (disk, git) - Overrides config file")
	f.Language = fs.String("language", "", "Language id to assume instead of detecting it from the file name")
	f.Color = fs.String("color", "auto", "Colorize output (auto, always, never)")
}

// ApplyOverrides updates cfg with the flags that were set on the command line.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "regexp":
			v := *f.Regexp
			cfg.Trailing.Regexp = &v
		case "include-empty-lines":
			v := *f.IncludeEmptyLines
			cfg.Trailing.IncludeEmptyLines = &v
		case "modified-only":
			v := *f.ModifiedOnly
			cfg.Trailing.DeleteModifiedLinesOnly = &v
		case "snapshot":
			v := *f.Snapshot
			cfg.Trailing.Snapshot = &v
		}
	})
}

// ConfigPath returns the --config value, empty when unset.
func (f *Flags) ConfigPath() string {
	if f.ConfigFilePath == nil {
		return ""
	}
	return *f.ConfigFilePath
}

// Helper function to split comma-separated list
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
