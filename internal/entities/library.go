package entities

// IconName is the symbolic icon selector of a category. The presentation
// layer maps it to an actual graphic.
type IconName string

const (
	IconScience    IconName = "science"
	IconChecklist  IconName = "checklist"
	IconRestartAlt IconName = "restart_alt"
	IconBook       IconName = "book" // fallback for unknown selectors
)

// Resolve returns the icon to display, falling back to IconBook for
// selectors the app does not know about.
func (i IconName) Resolve() IconName {
	switch i {
	case IconScience, IconChecklist, IconRestartAlt:
		return i
	default:
		return IconBook
	}
}

type Article struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"` // markdown
	Tags     []string `json:"tags"`
	Featured bool     `json:"featured"`
}

// HasAnyTag reports whether the article carries at least one of the given tags.
func (a Article) HasAnyTag(tags map[string]struct{}) bool {
	for _, t := range a.Tags {
		if _, ok := tags[t]; ok {
			return true
		}
	}
	return false
}

type Category struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Icon     IconName  `json:"icon"`
	Articles []Article `json:"articles"`
}

// Library is the whole knowledge base. It is read-only once loaded.
type Library struct {
	Categories []Category `json:"categories"`
}

// ArticleByID finds an article anywhere in the library.
func (l *Library) ArticleByID(id string) (*Article, *Category, bool) {
	if l == nil {
		return nil, nil, false
	}
	for ci := range l.Categories {
		cat := &l.Categories[ci]
		for ai := range cat.Articles {
			if cat.Articles[ai].ID == id {
				return &cat.Articles[ai], cat, true
			}
		}
	}
	return nil, nil, false
}

// ArticleCount returns the total number of articles across all categories.
func (l *Library) ArticleCount() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, c := range l.Categories {
		n += len(c.Articles)
	}
	return n
}

// Indexes holds the values derived from a Library: the sorted tag
// vocabulary and the featured articles in encounter order.
type Indexes struct {
	Tags     []string  `json:"tags"`
	Featured []Article `json:"featured"`
}

// Query is a snapshot of the user's search state.
type Query struct {
	Text string   `json:"q"`
	Tags []string `json:"tags"`
}

// IsEmpty reports whether no filter is active.
func (q Query) IsEmpty() bool {
	return q.Text == "" && len(q.Tags) == 0
}

// FilteredView is the result of applying a Query to a Library.
type FilteredView struct {
	Categories []Category `json:"categories"`
}
