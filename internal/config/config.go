// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/trailing"
	"gopkg.in/yaml.v3"
)

// ErrMissingSetting is returned when a required setting has no value.
var ErrMissingSetting = errors.New("missing required setting")

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config  `toml:"logger" yaml:"logger"`
	Trailing TrailingConfig `toml:"trailing" yaml:"trailing"`
	Viewer   ViewerConfig   `toml:"viewer" yaml:"viewer"`

	// Source is the file the configuration was loaded from, empty when only
	// defaults and flags apply.
	Source string `toml:"-" yaml:"-"`
	// Unknown lists keys in Source that were not recognised. They are
	// reported once the logger exists.
	Unknown []string `toml:"-" yaml:"-"`
}

// TrailingConfig is the [trailing] table. Pointer fields tell "not set"
// apart from zero values so that layers can be merged.
type TrailingConfig struct {
	Regexp                  *string        `toml:"regexp" yaml:"regexp"`
	IncludeEmptyLines       *bool          `toml:"include_empty_lines" yaml:"include_empty_lines"`
	HighlightCurrentLine    *bool          `toml:"highlight_current_line" yaml:"highlight_current_line"`
	DeleteModifiedLinesOnly *bool          `toml:"delete_modified_lines_only" yaml:"delete_modified_lines_only"`
	LiveMatching            *bool          `toml:"live_matching" yaml:"live_matching"`
	SyntaxIgnore            *[]string      `toml:"syntax_ignore" yaml:"syntax_ignore"`
	SchemeIgnore            *[]string      `toml:"scheme_ignore" yaml:"scheme_ignore"`
	TrimOnSave              *bool          `toml:"trim_on_save" yaml:"trim_on_save"`
	ShowStatusBarMessage    *bool          `toml:"show_status_bar_message" yaml:"show_status_bar_message"`
	BackgroundColor         *string        `toml:"background_color" yaml:"background_color"`
	BorderColor             *string        `toml:"border_color" yaml:"border_color"`
	MatchTimeout            *time.Duration `toml:"match_timeout" yaml:"match_timeout"`
	Snapshot                *string        `toml:"snapshot" yaml:"snapshot"`
}

// ViewerConfig holds settings of the interactive viewer.
type ViewerConfig struct {
	TabWidth    int  `toml:"tab_width" yaml:"tab_width"`
	ScrollOff   int  `toml:"scroll_off" yaml:"scroll_off"`
	LineNumbers bool `toml:"line_numbers" yaml:"line_numbers"`
	// Theme is an optional TOML theme file layered onto the built-in theme.
	Theme string `toml:"theme" yaml:"theme"`
}

func ptr[T any](v T) *T { return &v }

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // stderr
		},
		Trailing: TrailingConfig{
			Regexp:                  ptr(DefaultRegexp),
			IncludeEmptyLines:       ptr(DefaultIncludeEmptyLines),
			HighlightCurrentLine:    ptr(DefaultHighlightCurrentLine),
			DeleteModifiedLinesOnly: ptr(DefaultDeleteModifiedOnly),
			LiveMatching:            ptr(DefaultLiveMatching),
			SyntaxIgnore:            ptr([]string{}),
			SchemeIgnore:            ptr([]string{"output"}),
			TrimOnSave:              ptr(DefaultTrimOnSave),
			ShowStatusBarMessage:    ptr(DefaultShowStatusBarMessage),
			BackgroundColor:         ptr(DefaultBackgroundColor),
			BorderColor:             ptr(DefaultBorderColor),
			MatchTimeout:            ptr(DefaultMatchTimeout),
			Snapshot:                ptr(SnapshotDisk),
		},
		Viewer: ViewerConfig{
			TabWidth:    DefaultTabWidth,
			ScrollOff:   DefaultScrollOff,
			LineNumbers: true,
		},
	}
}

func missing(key string) error {
	return fmt.Errorf("%w: trailing.%s", ErrMissingSetting, key)
}

// Settings converts the table into the matcher's flat policy. A nil field
// is an error naming the key; nothing falls back silently.
func (t TrailingConfig) Settings() (trailing.Settings, error) {
	var s trailing.Settings
	switch {
	case t.Regexp == nil:
		return s, missing("regexp")
	case t.IncludeEmptyLines == nil:
		return s, missing("include_empty_lines")
	case t.HighlightCurrentLine == nil:
		return s, missing("highlight_current_line")
	case t.DeleteModifiedLinesOnly == nil:
		return s, missing("delete_modified_lines_only")
	case t.LiveMatching == nil:
		return s, missing("live_matching")
	case t.SyntaxIgnore == nil:
		return s, missing("syntax_ignore")
	case t.SchemeIgnore == nil:
		return s, missing("scheme_ignore")
	case t.TrimOnSave == nil:
		return s, missing("trim_on_save")
	case t.ShowStatusBarMessage == nil:
		return s, missing("show_status_bar_message")
	}

	s = trailing.Settings{
		Pattern:                 *t.Regexp,
		IncludeEmptyLines:       *t.IncludeEmptyLines,
		HighlightCurrentLine:    *t.HighlightCurrentLine,
		DeleteModifiedLinesOnly: *t.DeleteModifiedLinesOnly,
		LanguagesToIgnore:       trailing.SetOf(*t.SyntaxIgnore),
		SchemesToIgnore:         trailing.SetOf(*t.SchemeIgnore),
		LiveMatching:            *t.LiveMatching,
		TrimOnSave:              *t.TrimOnSave,
		ShowStatusBarMessage:    *t.ShowStatusBarMessage,
	}
	if t.MatchTimeout != nil {
		s.MatchTimeout = *t.MatchTimeout
	}
	return s, nil
}

// SnapshotKind returns the validated snapshot source name.
func (t TrailingConfig) SnapshotKind() (string, error) {
	if t.Snapshot == nil {
		return "", missing("snapshot")
	}
	switch kind := strings.ToLower(*t.Snapshot); kind {
	case SnapshotDisk, SnapshotGit:
		return kind, nil
	default:
		return "", fmt.Errorf("trailing.snapshot: unknown source %q (want %q or %q)", *t.Snapshot, SnapshotDisk, SnapshotGit)
	}
}

// Colors returns the highlight colours, empty when unset.
func (t TrailingConfig) Colors() (background, border string) {
	if t.BackgroundColor != nil {
		background = *t.BackgroundColor
	}
	if t.BorderColor != nil {
		border = *t.BorderColor
	}
	return background, border
}

// decodeFile layers the file at path on top of cfg. Keys absent from the
// file keep their current values.
func decodeFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file '%s': %w", path, err)
		}
	default:
		metadata, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return fmt.Errorf("failed to parse config file '%s': %w", path, err)
		}
		for _, key := range metadata.Undecoded() {
			cfg.Unknown = append(cfg.Unknown, key.String())
		}
	}
	cfg.Source = path
	return nil
}

// validate resets invalid viewer values to defaults and normalises logger
// settings. Trailing values are checked by Settings.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Viewer.TabWidth <= 0 {
		c.Viewer.TabWidth = defaults.Viewer.TabWidth
	}
	if c.Viewer.ScrollOff < 0 {
		c.Viewer.ScrollOff = defaults.Viewer.ScrollOff
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load assembles the configuration: defaults, then the config file found by
// Find (explicitPath wins), then flags that were set on the command line.
// flags may be nil.
func Load(explicitPath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	userDir, _ := os.UserConfigDir()

	path, err := Find(explicitPath, cwd, userDir)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, nil
}

// Reload re-reads c.Source and re-applies flags, for ConfigChanged.
func (c *Config) Reload(flags *Flags) (*Config, error) {
	next := NewDefaultConfig()
	if c.Source != "" {
		if err := decodeFile(c.Source, next); err != nil {
			return nil, err
		}
	}
	if flags != nil {
		flags.ApplyOverrides(next)
	}
	next.validate()
	return next, nil
}
