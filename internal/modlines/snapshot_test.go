package modlines

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type countingSource struct {
	text  string
	calls int
}

func (c *countingSource) Snapshot(context.Context, string) (string, error) {
	c.calls++
	return c.text, nil
}

func TestDiskSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("saved\n"), 0o644))

	got, err := DiskSource{}.Snapshot(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "saved\n", got)

	_, err = DiskSource{}.Snapshot(context.Background(), filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))

	_, err = DiskSource{}.Snapshot(context.Background(), "")
	require.ErrorIs(t, err, ErrNoSnapshot)
}

func TestStoreCaptureAndFallback(t *testing.T) {
	src := &countingSource{text: "from source"}
	store := NewStore(src)
	ctx := context.Background()

	got, err := store.Snapshot(ctx, "/x/a.go")
	require.NoError(t, err)
	require.Equal(t, "from source", got)
	require.Equal(t, 1, src.calls)

	require.NoError(t, store.Capture(ctx, "/x/a.go", "/x/a.go"))
	src.text = "changed on disk"
	got, err = store.Snapshot(ctx, "/x/a.go")
	require.NoError(t, err)
	require.Equal(t, "from source", got, "captured snapshot wins over the source")
	require.Equal(t, 2, src.calls)

	store.Set("/x/a.go", "latest")
	got, _ = store.Snapshot(ctx, "/x/a.go")
	require.Equal(t, "latest", got)

	store.Forget("/x/a.go")
	got, _ = store.Snapshot(ctx, "/x/a.go")
	require.Equal(t, "changed on disk", got)
}

func TestGitSource(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	repo := t.TempDir()
	runGit := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-c", "user.name=test", "-c", "user.email=test@example.com"}, args...)...)
		cmd.Dir = repo
		cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_SYSTEM=/dev/null")
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	runGit("init")
	tracked := filepath.Join(repo, "tracked.txt")
	fresh := filepath.Join(repo, "fresh.txt")

	// No commits yet: everything counts as new.
	require.NoError(t, os.WriteFile(tracked, []byte("one\ntwo\n"), 0o644))
	got, err := GitSource{}.Snapshot(context.Background(), tracked)
	require.NoError(t, err)
	require.Empty(t, got)

	runGit("add", "tracked.txt")
	runGit("commit", "-m", "init")
	require.NoError(t, os.WriteFile(tracked, []byte("one  \ntwo\n"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte("new\n"), 0o644))

	got, err = GitSource{}.Snapshot(context.Background(), tracked)
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", got)
	require.Equal(t, []int{0}, ModifiedLines(got, "one  \ntwo\n").Sorted())

	got, err = GitSource{}.Snapshot(context.Background(), fresh)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGitSourceOutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))

	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	_, err := GitSource{}.Snapshot(context.Background(), path)
	require.Error(t, err)
}

func TestSourceFor(t *testing.T) {
	require.Equal(t, GitSource{}, SourceFor("git"))
	require.Equal(t, DiskSource{}, SourceFor("disk"))
	require.Equal(t, DiskSource{}, SourceFor(""))
}
