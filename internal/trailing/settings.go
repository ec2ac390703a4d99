// Package trailing finds trailing-whitespace regions in document text and
// splits them into the regions to delete and the regions to highlight.
//
// Everything in this package is a pure function of its inputs: callers pass a
// Settings value on every call and own any caching.
package trailing

import (
	"errors"
	"time"
)

// DefaultPattern is the whitespace body hosts usually start from.
const DefaultPattern = `[ \t]+`

var (
	// ErrInvalidPattern wraps every pattern compilation failure.
	ErrInvalidPattern = errors.New("invalid trailing-space pattern")
	// ErrMissingPattern is returned when Settings carries no pattern at all.
	ErrMissingPattern = errors.New("trailing-space pattern not set")
)

// Settings is the flat matching policy. It is treated as immutable; hosts
// build a new value whenever their configuration changes.
type Settings struct {
	// Pattern is a regular expression body meaning "one or more characters to
	// trim". It is combined with an end-of-line anchor internally.
	Pattern string

	// IncludeEmptyLines allows whitespace-only lines to match. When false a
	// span must be preceded by a non-whitespace character on the same line.
	IncludeEmptyLines bool

	// HighlightCurrentLine keeps regions on the active line highlightable.
	// It never affects which regions are deletable.
	HighlightCurrentLine bool

	// DeleteModifiedLinesOnly restricts deletion to lines changed since the
	// last on-disk snapshot.
	DeleteModifiedLinesOnly bool

	LanguagesToIgnore map[string]bool
	SchemesToIgnore   map[string]bool

	// Host behaviour switches consumed by the event wiring, not by Find.
	LiveMatching         bool
	TrimOnSave           bool
	ShowStatusBarMessage bool

	// MatchTimeout bounds a single scan. Zero disables the limit.
	MatchTimeout time.Duration
}

// ShouldIgnore reports whether a document with the given language and URI
// scheme identifiers is skipped entirely.
func ShouldIgnore(languageID, schemeID string, s Settings) bool {
	if languageID != "" && s.LanguagesToIgnore[languageID] {
		return true
	}
	return s.SchemesToIgnore[schemeID]
}

// SetOf turns a list of identifiers into the lookup map Settings expects.
func SetOf(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}
