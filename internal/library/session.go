package library

import (
	"log"
	"slices"
	"strings"

	"github.com/mrlokans/claritybreak/internal/entities"
)

// HistoryRecorder is told about every committed search query.
type HistoryRecorder interface {
	AddSearch(query string) error
}

// Session holds the query state of one browsing session: the search text
// and the selected tags. It is owned by a single caller and is not safe for
// concurrent use. The view is always recomputed from the library, never
// patched in place.
type Session struct {
	lib        *entities.Library
	vocabulary map[string]struct{}
	history    HistoryRecorder

	query    string
	selected map[string]struct{}
}

// NewSession starts a session over lib. history may be nil.
func NewSession(lib *entities.Library, idx entities.Indexes, history HistoryRecorder) *Session {
	vocab := make(map[string]struct{}, len(idx.Tags))
	for _, t := range idx.Tags {
		vocab[t] = struct{}{}
	}
	return &Session{
		lib:        lib,
		vocabulary: vocab,
		history:    history,
		selected:   make(map[string]struct{}),
	}
}

// SetQuery commits a new search text and returns the updated view. The
// trimmed text is reported to the history recorder, including an empty
// text when the search is cleared.
func (s *Session) SetQuery(text string) entities.FilteredView {
	s.query = strings.TrimSpace(text)
	s.record(s.query)
	return s.View()
}

// ToggleTag flips the selection of tag and reports whether it is now
// selected. Tags outside the vocabulary are never selected.
func (s *Session) ToggleTag(tag string) bool {
	_, on := s.selected[tag]
	s.SelectTag(tag, !on)
	_, on = s.selected[tag]
	return on
}

// SelectTag sets the selection state of tag.
func (s *Session) SelectTag(tag string, selected bool) {
	if !selected {
		delete(s.selected, tag)
		return
	}
	if _, known := s.vocabulary[tag]; !known {
		return
	}
	s.selected[tag] = struct{}{}
}

// ClearTags deselects every tag.
func (s *Session) ClearTags() {
	clear(s.selected)
}

// Reset clears both the search text and the tag selection.
func (s *Session) Reset() entities.FilteredView {
	s.ClearTags()
	return s.SetQuery("")
}

// Query returns a snapshot of the current query state with tags sorted.
func (s *Session) Query() entities.Query {
	tags := make([]string, 0, len(s.selected))
	for t := range s.selected {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return entities.Query{Text: NormalizeQuery(s.query), Tags: tags}
}

// View computes the filtered view for the current query state.
func (s *Session) View() entities.FilteredView {
	return FilterQuery(s.lib, s.Query())
}

func (s *Session) record(query string) {
	if s.history == nil {
		return
	}
	if err := s.history.AddSearch(query); err != nil {
		log.Printf("Library: failed to record search %q: %v", query, err)
	}
}
