package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/bethropolis/trailspace/internal/buffer"
	"github.com/bethropolis/trailspace/internal/lang"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/trimmer"
)

// stdinPath names standard input on the command line.
const stdinPath = "-"

// runner executes check and fix over a list of files.
type runner struct {
	log       *logger.Logger
	trimmer   *trimmer.Trimmer
	languages *lang.Registry
	language  string // forced language id
	color     bool

	stdin  io.Reader
	stdout io.Writer
}

// open loads path, or standard input for "-", as a document. Missing files
// are errors here, unlike in the viewer.
func (r *runner) open(path string) (*buffer.TextBuffer, error) {
	var doc *buffer.TextBuffer
	if path == stdinPath {
		data, err := io.ReadAll(r.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading standard input: %w", err)
		}
		doc = buffer.NewUntitled(string(data))
	} else {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", path)
		}
		if doc, err = buffer.Open(path); err != nil {
			return nil, err
		}
	}

	languageID := r.language
	if languageID == "" {
		languageID = lang.PlainText
		if path != stdinPath {
			languageID = r.languages.Detect(path)
		}
	}
	doc.SetLanguageID(languageID)
	return doc, nil
}

// check prints one line per trailing region and reports whether any were
// found. Errors are logged per file and counted in failed.
func (r *runner) check(ctx context.Context, paths []string) (found, failed int) {
	for _, path := range paths {
		n, err := r.checkFile(ctx, path)
		found += n
		if err != nil {
			r.log.Errorf("%v", err)
			failed++
		}
	}
	return found, failed
}

func (r *runner) checkFile(ctx context.Context, path string) (int, error) {
	doc, err := r.open(path)
	if err != nil {
		return 0, err
	}
	defer r.trimmer.Forget(doc.Key())

	regions, err := r.trimmer.RangesToDelete(ctx, doc, false)
	if err != nil {
		return 0, err
	}
	text := doc.Text()
	for _, region := range regions {
		pos := doc.PositionAt(region.Start)
		n := utf8.RuneCountInString(text[region.Start:region.End])
		fmt.Fprintf(r.stdout, "%s:%d:%d: %s (%d %s)\n",
			paint(path, sgrBold, r.color), pos.Line+1, pos.Col+1,
			paint("trailing whitespace", sgrYellow, r.color), n, plural(n, "char", "chars"))
	}
	return len(regions), nil
}

// fix deletes the regions of every file and saves the ones that changed.
// Standard input is always echoed to stdout. With dryRun nothing is written
// and a count per file is printed instead.
func (r *runner) fix(ctx context.Context, paths []string, dryRun bool) (found, failed int) {
	for _, path := range paths {
		n, err := r.fixFile(ctx, path, dryRun)
		found += n
		if err != nil {
			r.log.Errorf("%v", err)
			failed++
		}
	}
	return found, failed
}

// fixFile returns the number of regions found even when saving fails.
func (r *runner) fixFile(ctx context.Context, path string, dryRun bool) (int, error) {
	doc, err := r.open(path)
	if err != nil {
		return 0, err
	}
	defer r.trimmer.Forget(doc.Key())

	if dryRun {
		edits, err := r.trimmer.Edits(ctx, doc)
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(r.stdout, "%s: %d trailing space %s\n", paint(path, sgrBold, r.color), len(edits), plural(len(edits), "region", "regions"))
		return len(edits), nil
	}

	n, err := r.trimmer.Delete(ctx, doc, false)
	if err != nil {
		return 0, err
	}
	if path == stdinPath {
		io.WriteString(r.stdout, doc.Text())
		return n, nil
	}
	if n > 0 {
		if err := doc.Save(""); err != nil {
			return n, err
		}
	}
	return n, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
