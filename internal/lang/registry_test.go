package lang

import (
	"testing"

	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	r := NewRegistry(logger.Discard())
	tests := map[string]string{
		"main.go":             "go",
		"/a/b/README.md":      "markdown",
		"NOTES.MD":            "markdown",
		"Makefile":            "makefile",
		"rules.mk":            "makefile",
		"go.mod":              "go.mod",
		"config.yml":          "yaml",
		"fix.patch":           "diff",
		"script.py":           "python",
		"unknown.zzz":         PlainText,
		"no_extension":        PlainText,
		"/srv/app/Dockerfile": "dockerfile",
	}
	for path, want := range tests {
		require.Equal(t, want, r.Detect(path), path)
	}
}

func TestRegisterOverrides(t *testing.T) {
	r := NewRegistry(logger.Discard())
	r.Register(&Language{ID: "mdx", Name: "MDX", Extensions: []string{".md"}})
	require.Equal(t, "mdx", r.Detect("x.md"))

	l, ok := r.Lookup("mdx")
	require.True(t, ok)
	require.Equal(t, "MDX", l.Name)
	require.Len(t, r.All(), len(builtin)+1)
}
