package library

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/claritybreak/internal/entities"
)

func TestBuildIndexes(t *testing.T) {
	lib := sampleLibrary()

	idx := BuildIndexes(lib)

	assert.Equal(t, []string{"checklist", "health", "science"}, idx.Tags)
	if assert.Len(t, idx.Featured, 1) {
		assert.Equal(t, "thc-basics", idx.Featured[0].ID)
	}
}

func TestBuildIndexes_Deterministic(t *testing.T) {
	lib := sampleLibrary()

	first := BuildIndexes(lib)
	second := BuildIndexes(lib)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("BuildIndexes not deterministic (-first +second):\n%s", diff)
	}
}

func TestBuildIndexes_TagsAreSortedUnion(t *testing.T) {
	lib := &entities.Library{Categories: []entities.Category{
		{ID: "a", Articles: []entities.Article{
			{ID: "1", Tags: []string{"zeta", "alpha", "mid"}},
			{ID: "2", Tags: []string{"alpha"}},
		}},
		{ID: "b", Articles: []entities.Article{
			{ID: "3", Tags: []string{"beta", "zeta"}},
			{ID: "4", Tags: []string{}},
		}},
	}}

	idx := BuildIndexes(lib)

	assert.True(t, slices.IsSorted(idx.Tags))
	assert.Equal(t, []string{"alpha", "beta", "mid", "zeta"}, idx.Tags)

	union := map[string]bool{}
	for _, c := range lib.Categories {
		for _, a := range c.Articles {
			for _, tag := range a.Tags {
				union[tag] = true
			}
		}
	}
	assert.Len(t, idx.Tags, len(union))
	for _, tag := range idx.Tags {
		assert.True(t, union[tag], "tag %q not present in library", tag)
	}
}

func TestBuildIndexes_FeaturedKeepsEncounterOrder(t *testing.T) {
	lib := &entities.Library{Categories: []entities.Category{
		{ID: "a", Articles: []entities.Article{
			{ID: "a1", Featured: true},
			{ID: "a2"},
			{ID: "a3", Featured: true},
		}},
		{ID: "b", Articles: []entities.Article{
			{ID: "b1", Featured: true},
		}},
	}}

	idx := BuildIndexes(lib)

	ids := make([]string, 0, len(idx.Featured))
	for _, a := range idx.Featured {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"a1", "a3", "b1"}, ids)
}

func TestBuildIndexes_DoesNotMutateLibrary(t *testing.T) {
	lib := sampleLibrary()
	before := sampleLibrary()

	idx := BuildIndexes(lib)
	idx.Tags[0] = "changed"
	idx.Featured[0].Title = "changed"

	if diff := cmp.Diff(before, lib); diff != "" {
		t.Errorf("library mutated (-before +after):\n%s", diff)
	}
}

func TestBuildIndexes_Empty(t *testing.T) {
	for name, lib := range map[string]*entities.Library{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			idx := BuildIndexes(lib)
			assert.NotNil(t, idx.Tags)
			assert.Empty(t, idx.Tags)
			assert.NotNil(t, idx.Featured)
			assert.Empty(t, idx.Featured)
		})
	}
}

func TestIndexCache_KeyedOnLibraryIdentity(t *testing.T) {
	cache := NewIndexCache()
	lib := sampleLibrary()

	first := cache.Get(lib)
	assert.Equal(t, []string{"checklist", "health", "science"}, first.Tags)

	// Callers cannot corrupt the cached copy.
	first.Tags[0] = "tampered"
	assert.Equal(t, []string{"checklist", "health", "science"}, cache.Get(lib).Tags)

	other := &entities.Library{Categories: []entities.Category{
		{ID: "x", Articles: []entities.Article{{ID: "x1", Tags: []string{"solo"}, Featured: true}}},
	}}
	got := cache.Get(other)
	assert.Equal(t, []string{"solo"}, got.Tags)
	assert.Len(t, got.Featured, 1)

	assert.Equal(t, []string{"checklist", "health", "science"}, cache.Get(lib).Tags)
}

func TestIndexCache_FeaturedTagsAreCopied(t *testing.T) {
	cache := NewIndexCache()
	lib := sampleLibrary()

	got := cache.Get(lib)
	if !assert.Len(t, got.Featured, 1) {
		return
	}
	got.Featured[0].Tags[0] = "tampered"
	got.Featured[0].Title = "tampered"

	assert.Equal(t, []string{"science"}, lib.Categories[0].Articles[0].Tags, "library must not change")
	again := cache.Get(lib)
	assert.Equal(t, []string{"science"}, again.Featured[0].Tags)
	assert.Equal(t, "THC Basics", again.Featured[0].Title)
}
