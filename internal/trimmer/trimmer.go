// Package trimmer applies the trailing-space finder to live documents: it
// owns the per-document caches, the modified-lines narrowing, deletion and
// the user-facing status messages.
package trimmer

import (
	"context"
	"fmt"
	"sync"

	"github.com/bethropolis/trailspace/internal/highlight"
	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/bethropolis/trailspace/internal/modlines"
	"github.com/bethropolis/trailspace/internal/trailing"
	"github.com/bethropolis/trailspace/internal/types"
)

// SchemeFile is the only scheme whose documents have an on-disk snapshot.
const SchemeFile = "file"

// Document is the view of a text document the trimmer works on.
type Document interface {
	Key() string  // identity key for caches
	Text() string // full content
	Version() int // changes on every edit, never shared between buffers
	LanguageID() string
	Scheme() string // "file", "untitled", ...
	Path() string
	IsUntitled() bool
	LineAt(offset int) int
	LineSpan(line int) types.Region // terminator included
	PositionAt(offset int) types.Position
	ValidatePosition(pos types.Position) (types.Position, int)
	DeleteRanges(reversed []types.Region) (types.EditInfo, error)
}

// Notifier shows short messages to the user, e.g. in a status bar.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

type reportKey struct {
	doc     string
	pattern string
}

// Trimmer is safe for concurrent use, but a single document must not be
// edited while one of its methods runs.
type Trimmer struct {
	log        *logger.Logger
	source     modlines.Source
	notify     Notifier
	highlights *highlight.Manager

	mu       sync.Mutex
	settings trailing.Settings
	matcher  *trailing.Matcher
	compErr  error
	reported map[reportKey]bool
}

// New creates a Trimmer. notify and highlights may be nil; a nil source
// reads snapshots from disk.
func New(settings trailing.Settings, log *logger.Logger, source modlines.Source, notify Notifier, highlights *highlight.Manager) *Trimmer {
	if source == nil {
		source = modlines.DiskSource{}
	}
	if highlights == nil {
		highlights = highlight.NewManager(nil)
	}
	return &Trimmer{
		log:        log,
		source:     source,
		notify:     notify,
		highlights: highlights,
		settings:   settings,
		reported:   make(map[reportKey]bool),
	}
}

// Settings returns the settings currently in effect.
func (t *Trimmer) Settings() trailing.Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

// UpdateSettings swaps the settings and drops everything derived from the
// old ones.
func (t *Trimmer) UpdateSettings(settings trailing.Settings) {
	t.mu.Lock()
	t.settings = settings
	t.matcher = nil
	t.compErr = nil
	t.reported = make(map[reportKey]bool)
	t.mu.Unlock()

	t.highlights.Invalidate()
	t.log.DebugTagf("trimmer", "Trimmer: settings updated, pattern %q", settings.Pattern)
}

// Highlights exposes the decoration store the renderer reads from.
func (t *Trimmer) Highlights() *highlight.Manager {
	return t.highlights
}

func (t *Trimmer) compiled() (*trailing.Matcher, trailing.Settings, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.matcher == nil && t.compErr == nil {
		t.matcher, t.compErr = trailing.Compile(t.settings)
	}
	return t.matcher, t.settings, t.compErr
}

// Regions scans doc. caret, when non-nil, is clamped into the document and
// its line becomes the active line. Ignored documents yield no regions and
// no error.
func (t *Trimmer) Regions(doc Document, caret *types.Position) (trailing.Regions, error) {
	generation := t.highlights.Generation()
	settings := t.Settings()
	if trailing.ShouldIgnore(doc.LanguageID(), doc.Scheme(), settings) {
		t.log.Debugf("File with language '%s' ignored - %s", doc.LanguageID(), displayName(doc))
		return trailing.Regions{}, nil
	}

	m, settings, err := t.compiled()
	if err != nil {
		t.reportInvalid(doc, settings.Pattern, err)
		return trailing.Regions{}, err
	}

	caretLine := -1
	var activeLine *types.Region
	if caret != nil && !settings.HighlightCurrentLine {
		pos, _ := doc.ValidatePosition(*caret)
		span := doc.LineSpan(pos.Line)
		activeLine = &span
		caretLine = pos.Line
	}

	key, version := doc.Key(), doc.Version()
	if cached, ok := t.highlights.Cached(key, version, caretLine); ok {
		return cached, nil
	}

	regions, err := m.Find(doc.Text(), activeLine)
	if err != nil {
		t.log.Errorf("Trimmer: scanning %s: %v", displayName(doc), err)
		return trailing.Regions{}, err
	}
	t.highlights.Store(key, generation, version, caretLine, regions)
	return regions, nil
}

// RangesToHighlight returns the regions to decorate and records them in the
// highlight store.
func (t *Trimmer) RangesToHighlight(doc Document, caret *types.Position) ([]types.Region, error) {
	regions, err := t.Regions(doc, caret)
	if err != nil {
		t.highlights.SetDecorations(doc.Key(), nil)
		return nil, err
	}
	t.highlights.SetDecorations(doc.Key(), regions.Highlightable)
	return regions.Highlightable, nil
}

// RangesToDelete returns the regions to delete in ascending order. With
// DeleteModifiedLinesOnly or modifiedOnly set, saved files are narrowed to
// lines changed since their snapshot; untitled and non-file documents count
// as entirely modified.
func (t *Trimmer) RangesToDelete(ctx context.Context, doc Document, modifiedOnly bool) ([]types.Region, error) {
	regions, err := t.Regions(doc, nil)
	if err != nil {
		return nil, err
	}
	ranges := regions.Offending
	if len(ranges) == 0 {
		return ranges, nil
	}

	settings := t.Settings()
	if (settings.DeleteModifiedLinesOnly || modifiedOnly) && !doc.IsUntitled() && doc.Scheme() == SchemeFile {
		snapshot, err := t.source.Snapshot(ctx, doc.Path())
		if err != nil {
			return nil, fmt.Errorf("modified lines of %s: %w", displayName(doc), err)
		}
		modified := modlines.ModifiedLines(snapshot, doc.Text())
		ranges = modlines.FilterByModifiedLines(ranges, modified, doc.LineAt)
		t.log.DebugTagf("trimmer", "Trimmer: %d modified line(s), %d region(s) kept in %s", modified.Len(), len(ranges), displayName(doc))
	}
	return ranges, nil
}

// Edits returns the deletions for a save-time trim, bottom-to-top, without
// applying them. Only DeleteModifiedLinesOnly narrows them.
func (t *Trimmer) Edits(ctx context.Context, doc Document) ([]types.Region, error) {
	ranges, err := t.RangesToDelete(ctx, doc, false)
	if err != nil {
		return nil, err
	}
	t.report(doc, len(ranges), false)
	return trailing.Reverse(ranges), nil
}

// TrimOnSave applies Edits to doc. A message is shown only when something
// was deleted.
func (t *Trimmer) TrimOnSave(ctx context.Context, doc Document) (int, error) {
	edits, err := t.Edits(ctx, doc)
	if err != nil {
		return 0, err
	}
	if _, err := doc.DeleteRanges(edits); err != nil {
		return 0, fmt.Errorf("trimming %s: %w", displayName(doc), err)
	}
	return len(edits), nil
}

// Delete removes the trailing regions of doc, bottom-to-top, and reports the
// count. It backs the explicit delete commands, so a message is shown even
// when there is nothing to delete.
func (t *Trimmer) Delete(ctx context.Context, doc Document, modifiedOnly bool) (int, error) {
	ranges, err := t.RangesToDelete(ctx, doc, modifiedOnly)
	if err != nil {
		return 0, err
	}
	if _, err := doc.DeleteRanges(trailing.Reverse(ranges)); err != nil {
		return 0, fmt.Errorf("deleting trailing spaces in %s: %w", displayName(doc), err)
	}
	t.report(doc, len(ranges), true)
	return len(ranges), nil
}

// Forget drops cached state for a document that is no longer open,
// including a captured snapshot when the source is a Store.
func (t *Trimmer) Forget(key string) {
	t.highlights.Forget(key)
	if store, ok := t.source.(*modlines.Store); ok {
		store.Forget(key)
	}
}

// StatusMessage is the text shown after a deletion of n regions.
func StatusMessage(n int) string {
	switch {
	case n == 0:
		return "No trailing spaces to delete!"
	case n == 1:
		return "Deleting 1 trailing space region"
	default:
		return fmt.Sprintf("Deleting %d trailing space regions", n)
	}
}

func (t *Trimmer) report(doc Document, n int, showIfNoRegions bool) {
	msg := StatusMessage(n)
	t.log.Infof("%s - %s", msg, displayName(doc))
	if t.notify != nil && t.Settings().ShowStatusBarMessage && (n > 0 || showIfNoRegions) {
		t.notify.Info(msg)
	}
}

// reportInvalid logs and notifies a bad pattern once per document.
func (t *Trimmer) reportInvalid(doc Document, pattern string, err error) {
	k := reportKey{doc: doc.Key(), pattern: pattern}
	t.mu.Lock()
	seen := t.reported[k]
	t.reported[k] = true
	t.mu.Unlock()
	if seen {
		return
	}
	t.log.Errorf("Trimmer: %v - %s", err, displayName(doc))
	if t.notify != nil {
		t.notify.Error(err.Error())
	}
}

func displayName(doc Document) string {
	if p := doc.Path(); p != "" {
		return p
	}
	return doc.Key()
}
