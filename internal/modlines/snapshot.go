package modlines

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoSnapshot is returned for documents without a backing file.
var ErrNoSnapshot = errors.New("document has no saved snapshot")

// Source provides the last saved content of a file.
type Source interface {
	Snapshot(ctx context.Context, path string) (string, error)
}

// DiskSource reads the snapshot straight from the file system.
type DiskSource struct{}

func (DiskSource) Snapshot(_ context.Context, path string) (string, error) {
	if path == "" {
		return "", ErrNoSnapshot
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return string(data), nil
}

// SourceFor returns the Source for a snapshot kind: "git" selects
// GitSource, anything else DiskSource.
func SourceFor(kind string) Source {
	if kind == "git" {
		return GitSource{}
	}
	return DiskSource{}
}

// GitSource uses the committed HEAD version of the file as its snapshot, so
// "modified" means changed since the last commit rather than the last save.
type GitSource struct {
	// Git is the executable to run. Defaults to "git".
	Git string
}

func (g GitSource) Snapshot(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", ErrNoSnapshot
	}
	bin := g.Git
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, "show", "HEAD:./"+filepath.Base(path))
	cmd.Dir = filepath.Dir(path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && untracked(stderr.String()) {
			return "", nil
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git show %s: %w", path, err)
		}
		return "", fmt.Errorf("git show %s: %w: %s", path, err, msg)
	}
	return stdout.String(), nil
}

// untracked reports whether git's error output means the file is simply not
// part of HEAD yet, which makes every line of it new.
func untracked(stderr string) bool {
	for _, s := range []string{
		"does not exist in 'HEAD'",
		"exists on disk, but not in 'HEAD'",
		"invalid object name 'HEAD'",
	} {
		if strings.Contains(stderr, s) {
			return true
		}
	}
	return false
}

// Store caches one snapshot per document key. Capture overwrites wholesale;
// the last write wins.
type Store struct {
	source Source

	mu        sync.Mutex
	snapshots map[string]string
}

// NewStore returns a Store that loads misses from source.
func NewStore(source Source) *Store {
	if source == nil {
		source = DiskSource{}
	}
	return &Store{source: source, snapshots: make(map[string]string)}
}

// Capture reads the current snapshot of path from the source and stores it
// under key.
func (s *Store) Capture(ctx context.Context, key, path string) error {
	text, err := s.source.Snapshot(ctx, path)
	if err != nil {
		return err
	}
	s.Set(key, text)
	return nil
}

// Set stores text as the snapshot for key.
func (s *Store) Set(key, text string) {
	s.mu.Lock()
	s.snapshots[key] = text
	s.mu.Unlock()
}

// Forget drops the snapshot for key.
func (s *Store) Forget(key string) {
	s.mu.Lock()
	delete(s.snapshots, key)
	s.mu.Unlock()
}

// Snapshot returns the snapshot captured for path, falling back to the
// underlying source when nothing was captured. The path doubles as the key.
func (s *Store) Snapshot(ctx context.Context, path string) (string, error) {
	s.mu.Lock()
	text, ok := s.snapshots[path]
	s.mu.Unlock()
	if ok {
		return text, nil
	}
	return s.source.Snapshot(ctx, path)
}
