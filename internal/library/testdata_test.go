package library

import "github.com/mrlokans/claritybreak/internal/entities"

// sampleLibrary mirrors the two-category example used throughout the tests.
func sampleLibrary() *entities.Library {
	return &entities.Library{
		Categories: []entities.Category{
			{
				ID:    "science",
				Title: "Science",
				Icon:  entities.IconScience,
				Articles: []entities.Article{
					{ID: "thc-basics", Title: "THC Basics", Content: "THC binds to CB1 receptors.", Tags: []string{"science"}, Featured: true},
					{ID: "tolerance", Title: "Tolerance", Content: "Receptors recover within weeks.", Tags: []string{"science", "health"}},
				},
			},
			{
				ID:    "checklist",
				Title: "Checklist",
				Icon:  entities.IconChecklist,
				Articles: []entities.Article{
					{ID: "day-1", Title: "Day 1", Content: "Remove supplies from reach.", Tags: []string{"checklist"}},
				},
			},
		},
	}
}

func articleIDs(view entities.FilteredView) map[string][]string {
	out := make(map[string][]string, len(view.Categories))
	for _, c := range view.Categories {
		ids := make([]string, 0, len(c.Articles))
		for _, a := range c.Articles {
			ids = append(ids, a.ID)
		}
		out[c.ID] = ids
	}
	return out
}

func categoryIDs(view entities.FilteredView) []string {
	ids := make([]string, 0, len(view.Categories))
	for _, c := range view.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
