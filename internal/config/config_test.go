package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultsProduceSettings(t *testing.T) {
	s, err := NewDefaultConfig().Trailing.Settings()
	require.NoError(t, err)
	require.Equal(t, DefaultRegexp, s.Pattern)
	require.True(t, s.IncludeEmptyLines)
	require.True(t, s.HighlightCurrentLine)
	require.False(t, s.DeleteModifiedLinesOnly)
	require.True(t, s.LiveMatching)
	require.True(t, s.SchemesToIgnore["output"])
	require.Empty(t, s.LanguagesToIgnore)
	require.Equal(t, DefaultMatchTimeout, s.MatchTimeout)
}

func TestSettingsFailsOnMissingValue(t *testing.T) {
	_, err := TrailingConfig{}.Settings()
	require.ErrorIs(t, err, ErrMissingSetting)
	require.Contains(t, err.Error(), "trailing.regexp")

	tc := NewDefaultConfig().Trailing
	tc.TrimOnSave = nil
	_, err = tc.Settings()
	require.ErrorIs(t, err, ErrMissingSetting)
	require.Contains(t, err.Error(), "trim_on_save")
}

func TestDecodeTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[logger]
log_level = "debug"

[trailing]
regexp = "[\\s]+"
include_empty_lines = false
syntax_ignore = ["markdown", "diff"]
match_timeout = "250ms"
snapshot = "git"
mystery = 1

[viewer]
tab_width = 8
`)
	cfg := NewDefaultConfig()
	require.NoError(t, decodeFile(path, cfg))
	cfg.validate()

	require.Equal(t, path, cfg.Source)
	require.Equal(t, []string{"trailing.mystery"}, cfg.Unknown)
	require.Equal(t, "debug", cfg.Logger.LogLevel)
	require.Equal(t, 8, cfg.Viewer.TabWidth)
	require.Equal(t, DefaultScrollOff, cfg.Viewer.ScrollOff)

	s, err := cfg.Trailing.Settings()
	require.NoError(t, err)
	require.Equal(t, `[\s]+`, s.Pattern)
	require.False(t, s.IncludeEmptyLines)
	require.True(t, s.HighlightCurrentLine, "unset keys keep defaults")
	require.True(t, s.LanguagesToIgnore["markdown"])
	require.True(t, s.LanguagesToIgnore["diff"])
	require.Equal(t, 250*time.Millisecond, s.MatchTimeout)

	kind, err := cfg.Trailing.SnapshotKind()
	require.NoError(t, err)
	require.Equal(t, SnapshotGit, kind)
}

func TestDecodeYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".trailspace.yaml")
	writeFile(t, path, `
trailing:
  highlight_current_line: false
  trim_on_save: true
  background_color: "#ff000044"
  match_timeout: 1s
`)
	cfg := NewDefaultConfig()
	require.NoError(t, decodeFile(path, cfg))

	s, err := cfg.Trailing.Settings()
	require.NoError(t, err)
	require.False(t, s.HighlightCurrentLine)
	require.True(t, s.TrimOnSave)
	require.Equal(t, time.Second, s.MatchTimeout)

	bg, border := cfg.Trailing.Colors()
	require.Equal(t, "#ff000044", bg)
	require.Equal(t, DefaultBorderColor, border)
}

func TestYAMLNullClearsRequiredSetting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yml")
	writeFile(t, path, "trailing:\n  regexp: null\n")
	cfg := NewDefaultConfig()
	require.NoError(t, decodeFile(path, cfg))

	_, err := cfg.Trailing.Settings()
	require.ErrorIs(t, err, ErrMissingSetting)
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, "[trailing\nregexp=")
	require.Error(t, decodeFile(bad, NewDefaultConfig()))

	badYAML := filepath.Join(dir, "bad.yaml")
	writeFile(t, badYAML, "trailing: [unterminated")
	require.Error(t, decodeFile(badYAML, NewDefaultConfig()))

	empty := filepath.Join(dir, "empty.yaml")
	writeFile(t, empty, "\n")
	require.NoError(t, decodeFile(empty, NewDefaultConfig()))
}

func TestSnapshotKind(t *testing.T) {
	tc := NewDefaultConfig().Trailing
	kind, err := tc.SnapshotKind()
	require.NoError(t, err)
	require.Equal(t, SnapshotDisk, kind)

	tc.Snapshot = ptr("svn")
	_, err = tc.SnapshotKind()
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	userDir := filepath.Join(root, "user")

	got, err := Find("", nested, userDir)
	require.NoError(t, err)
	require.Empty(t, got)

	userFile := filepath.Join(userDir, AppName, DefaultConfigFileName)
	writeFile(t, userFile, "")
	got, err = Find("", nested, userDir)
	require.NoError(t, err)
	require.Equal(t, userFile, got)

	local := filepath.Join(root, "a", ".trailspace.yml")
	writeFile(t, local, "")
	got, err = Find("", nested, userDir)
	require.NoError(t, err)
	require.Equal(t, local, got)

	explicit := filepath.Join(root, "explicit.toml")
	writeFile(t, explicit, "")
	got, err = Find(explicit, nested, userDir)
	require.NoError(t, err)
	require.Equal(t, explicit, got)

	_, err = Find(filepath.Join(root, "nope.toml"), nested, userDir)
	require.Error(t, err)
	_, err = Find(root, nested, userDir)
	require.Error(t, err)
}

func TestFlagOverrides(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var f Flags
	f.DefineFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--loglevel", "error",
		"--regexp", `[ ]+`,
		"--include-empty-lines=false",
		"--modified-only",
		"--snapshot", "git",
		"--log-disable-tags", "event, lang",
		"file.txt",
	}))

	cfg := NewDefaultConfig()
	f.ApplyOverrides(cfg)

	require.Equal(t, "error", cfg.Logger.LogLevel)
	require.Equal(t, []string{"event", "lang"}, cfg.Logger.DisabledTags)
	require.Equal(t, []string{"file.txt"}, fs.Args())

	s, err := cfg.Trailing.Settings()
	require.NoError(t, err)
	require.Equal(t, `[ ]+`, s.Pattern)
	require.False(t, s.IncludeEmptyLines)
	require.True(t, s.DeleteModifiedLinesOnly)
	require.Equal(t, SnapshotGit, *cfg.Trailing.Snapshot)
}

func TestUnsetFlagsLeaveConfigAlone(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var f Flags
	f.DefineFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg := NewDefaultConfig()
	cfg.Trailing.IncludeEmptyLines = ptr(false)
	f.ApplyOverrides(cfg)
	require.False(t, *cfg.Trailing.IncludeEmptyLines, "flag default must not override the file")
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[trailing]\ninclude_empty_lines = false\n")
	cfg := NewDefaultConfig()
	require.NoError(t, decodeFile(path, cfg))

	writeFile(t, path, "[trailing]\ninclude_empty_lines = true\ntrim_on_save = true\n")
	next, err := cfg.Reload(nil)
	require.NoError(t, err)
	require.True(t, *next.Trailing.IncludeEmptyLines)
	require.True(t, *next.Trailing.TrimOnSave)
	require.Equal(t, path, next.Source)
}
