package library

import (
	"slices"
	"strings"

	"github.com/mrlokans/claritybreak/internal/entities"
)

// NormalizeQuery lower-cases and trims a free-text query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// ApplyFilter returns the categories and articles of lib matching query and
// selectedTags.
//
// An article matches when its title or content contains the normalized
// query (case-insensitive) and, if any tags are selected, it carries at
// least one of them. With no query and no tags every category is returned
// with all of its articles. Otherwise a category is returned only when it
// has matching articles, and then only those. Category and article order
// follow lib. lib is never modified.
func ApplyFilter(lib *entities.Library, query string, selectedTags []string) entities.FilteredView {
	view := entities.FilteredView{Categories: []entities.Category{}}
	if lib == nil {
		return view
	}

	q := NormalizeQuery(query)
	tagSet := make(map[string]struct{}, len(selectedTags))
	for _, t := range selectedTags {
		tagSet[t] = struct{}{}
	}
	unfiltered := q == "" && len(tagSet) == 0

	for _, cat := range lib.Categories {
		categoryMatches := strings.Contains(strings.ToLower(cat.Title), q)

		matched := make([]entities.Article, 0, len(cat.Articles))
		for _, art := range cat.Articles {
			if articleMatches(art, q, tagSet) {
				matched = append(matched, art)
			}
		}

		switch {
		case categoryMatches && unfiltered:
			view.Categories = append(view.Categories, withArticles(cat, slices.Clone(cat.Articles)))
		case len(matched) > 0:
			view.Categories = append(view.Categories, withArticles(cat, matched))
		}
	}

	return view
}

// FilterQuery is ApplyFilter driven by a Query snapshot.
func FilterQuery(lib *entities.Library, q entities.Query) entities.FilteredView {
	return ApplyFilter(lib, q.Text, q.Tags)
}

// ArticleMatches reports whether art passes the text and tag predicate used
// by ApplyFilter.
func ArticleMatches(art entities.Article, query string, selectedTags []string) bool {
	tagSet := make(map[string]struct{}, len(selectedTags))
	for _, t := range selectedTags {
		tagSet[t] = struct{}{}
	}
	return articleMatches(art, NormalizeQuery(query), tagSet)
}

// articleMatches expects q already normalized.
func articleMatches(art entities.Article, q string, tags map[string]struct{}) bool {
	inText := strings.Contains(strings.ToLower(art.Title), q) ||
		strings.Contains(strings.ToLower(art.Content), q)
	if !inText {
		return false
	}
	return len(tags) == 0 || art.HasAnyTag(tags)
}

func withArticles(cat entities.Category, articles []entities.Article) entities.Category {
	return entities.Category{
		ID:       cat.ID,
		Title:    cat.Title,
		Icon:     cat.Icon,
		Articles: articles,
	}
}
