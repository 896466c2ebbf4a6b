package history

import (
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/mrlokans/claritybreak/internal/entities"
	"github.com/mrlokans/claritybreak/internal/library"
)

// MaxQueryLength bounds a stored query, in runes.
const MaxQueryLength = 256

// DefaultRecentLimit is used when Recent is called with a non-positive limit.
const DefaultRecentLimit = 10

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddSearch records a committed search. The query is normalized the way
// the filter matches it (trimmed, lower-cased), so "Sleep" and "sleep" are
// one entry. An empty query marks a cleared search box and stores nothing.
func (r *Repository) AddSearch(query string) error {
	query = library.NormalizeQuery(query)
	if query == "" {
		return nil
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		query = string([]rune(query)[:MaxQueryLength])
	}
	return r.db.Create(&entities.SearchEntry{Query: query}).Error
}

// Recent returns distinct queries, most recently searched first.
func (r *Repository) Recent(limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	queries := []string{}
	err := r.db.Model(&entities.SearchEntry{}).
		Group("query").
		Order("MAX(id) DESC").
		Limit(limit).
		Pluck("query", &queries).Error
	return queries, err
}

// Count returns the number of stored searches, duplicates included.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.SearchEntry{}).Count(&count).Error
	return count, err
}

// Clear removes the whole history and returns the number of deleted entries.
func (r *Repository) Clear() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&entities.SearchEntry{})
	return result.RowsAffected, result.Error
}

// DeleteOlderThan removes searches older than retention.
// Returns the number of deleted entries.
func (r *Repository) DeleteOlderThan(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.SearchEntry{})
	return result.RowsAffected, result.Error
}
