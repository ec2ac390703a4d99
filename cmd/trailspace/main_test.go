package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	// Keep config discovery away from the developer's files.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheck(t *testing.T) {
	path := writeFile(t, "a.go", "package a  \n\nfunc f() {\t\n}\n")
	res := runCLI(t, "", "check", "--loglevel", "none", path)
	require.Equal(t, exitFound, res.code)
	require.Equal(t,
		path+":1:10: trailing whitespace (2 chars)\n"+
			path+":3:11: trailing whitespace (1 char)\n",
		res.stdout)
}

func TestCheckClean(t *testing.T) {
	res := runCLI(t, "", "check", writeFile(t, "ok.txt", "fine\n"))
	require.Equal(t, exitClean, res.code)
	require.Empty(t, res.stdout)
}

func TestCheckHonoursRegexpFlag(t *testing.T) {
	path := writeFile(t, "x.txt", "tab\t\nspace \n")
	res := runCLI(t, "", "check", "--regexp", "[ ]+", path)
	require.Equal(t, exitFound, res.code)
	require.Equal(t, path+":2:6: trailing whitespace (1 char)\n", res.stdout)
}

func TestCheckIgnoresLanguage(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "cfg.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[trailing]\nsyntax_ignore = [\"markdown\"]\n"), 0o644))
	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("line  \n"), 0o644))

	res := runCLI(t, "", "check", "--config", cfg, path)
	require.Equal(t, exitClean, res.code)

	res = runCLI(t, "", "check", "--config", cfg, "--language", "plaintext", path)
	require.Equal(t, exitFound, res.code)
}

func TestCheckMissingFile(t *testing.T) {
	res := runCLI(t, "", "check", filepath.Join(t.TempDir(), "nope.txt"))
	require.Equal(t, exitError, res.code)
	require.Contains(t, res.stderr, "nope.txt")
}

func TestFixInPlace(t *testing.T) {
	path := writeFile(t, "f.txt", "a \nb\t\t\nc\n")
	res := runCLI(t, "", "fix", path)
	require.Equal(t, exitClean, res.code)
	require.Contains(t, res.stderr, "Deleting 2 trailing space regions")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a\nb\nc\n", string(data))
}

func TestFixSamePathTwice(t *testing.T) {
	path := writeFile(t, "a.txt", "ab  \ncd  \nef\n")
	again := filepath.Join(filepath.Dir(path), ".", "a.txt")
	res := runCLI(t, "", "fix", "--loglevel", "none", path, again)
	require.Equal(t, exitClean, res.code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "ab\ncd\nef\n", string(data))

	res = runCLI(t, "", "check", "--loglevel", "none", path, again)
	require.Equal(t, exitClean, res.code)
	require.Empty(t, res.stdout)
}

func TestFixDryRun(t *testing.T) {
	path := writeFile(t, "f.txt", "a \nb\n")
	res := runCLI(t, "", "fix", "--dry-run", "--loglevel", "error", path)
	require.Equal(t, exitFound, res.code)
	require.Equal(t, path+": 1 trailing space region\n", res.stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a \nb\n", string(data))
}

func TestFixStdin(t *testing.T) {
	res := runCLI(t, "x  \r\n\t\r\ny\r\n", "fix", "--loglevel", "none", "-")
	require.Equal(t, exitClean, res.code)
	require.Equal(t, "x\r\n\r\ny\r\n", res.stdout)

	res = runCLI(t, "x  \n\t\ny\n", "fix", "--include-empty-lines=false", "--loglevel", "none", "-")
	require.Equal(t, "x\n\t\ny\n", res.stdout)
}

func TestColorAlways(t *testing.T) {
	path := writeFile(t, "c.txt", "x \n")
	res := runCLI(t, "", "check", "--color", "always", path)
	require.Equal(t, "\x1b[1m"+path+"\x1b[0m:1:2: \x1b[33mtrailing whitespace\x1b[0m (1 char)\n", res.stdout)
}

func TestUsageErrors(t *testing.T) {
	require.Equal(t, exitError, runCLI(t, "").code)
	require.Equal(t, exitError, runCLI(t, "", "frobnicate").code)
	require.Equal(t, exitError, runCLI(t, "", "check").code)
	require.Equal(t, exitError, runCLI(t, "", "check", "--color", "sometimes", "x").code)
	require.Equal(t, exitError, runCLI(t, "", "check", "--snapshot", "svn", writeFile(t, "f", "x\n")).code)

	res := runCLI(t, "", "version")
	require.Equal(t, exitClean, res.code)
	require.Equal(t, "trailspace dev\n", res.stdout)
}

func TestColorMode(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}
	var buf bytes.Buffer
	require.True(t, colorEnabled(colorAlways, &buf, env(nil)))
	require.False(t, colorEnabled(colorNever, &buf, env(nil)))
	require.False(t, colorEnabled(colorAuto, &buf, env(nil)), "a buffer is not a terminal")
	require.False(t, colorEnabled(colorAuto, os.Stdout, env(map[string]string{"NO_COLOR": "1"})))

	_, err := parseColorMode("ALWAYS")
	require.NoError(t, err)
}
