package library

import (
	"slices"
	"sync"

	"github.com/mrlokans/claritybreak/internal/entities"
)

// BuildIndexes derives the tag vocabulary and the featured set from lib.
// Tags are the sorted, deduplicated union of every article's tags. Featured
// articles keep the order they are met walking categories, then articles.
// lib is not modified; a nil lib yields empty indexes.
func BuildIndexes(lib *entities.Library) entities.Indexes {
	idx := entities.Indexes{
		Tags:     []string{},
		Featured: []entities.Article{},
	}
	if lib == nil {
		return idx
	}

	seen := make(map[string]struct{})
	for _, cat := range lib.Categories {
		for _, art := range cat.Articles {
			for _, tag := range art.Tags {
				if _, ok := seen[tag]; ok {
					continue
				}
				seen[tag] = struct{}{}
				idx.Tags = append(idx.Tags, tag)
			}
			if art.Featured {
				idx.Featured = append(idx.Featured, art)
			}
		}
	}
	slices.Sort(idx.Tags)

	return idx
}

// IndexCache memoizes BuildIndexes per Library instance. A different
// Library pointer invalidates the cached result.
type IndexCache struct {
	mu    sync.Mutex
	lib   *entities.Library
	idx   entities.Indexes
	valid bool
}

// NewIndexCache creates an empty cache.
func NewIndexCache() *IndexCache {
	return &IndexCache{}
}

// Get returns the indexes for lib, computing them on first use. The result
// is a copy; callers may modify it freely.
func (c *IndexCache) Get(lib *entities.Library) entities.Indexes {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || c.lib != lib {
		c.idx = BuildIndexes(lib)
		c.lib = lib
		c.valid = true
	}

	featured := make([]entities.Article, len(c.idx.Featured))
	for i, art := range c.idx.Featured {
		art.Tags = slices.Clone(art.Tags)
		featured[i] = art
	}
	return entities.Indexes{
		Tags:     slices.Clone(c.idx.Tags),
		Featured: featured,
	}
}
