package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/claritybreak/internal/entities"
	"github.com/mrlokans/claritybreak/internal/library"
)

// LibraryController serves the content library to the presentation layer.
type LibraryController struct {
	provider LibraryProvider
	carousel FeaturedCarousel
	history  library.HistoryRecorder
}

func NewLibraryController(provider LibraryProvider, carousel FeaturedCarousel, history library.HistoryRecorder) *LibraryController {
	return &LibraryController{provider: provider, carousel: carousel, history: history}
}

// CategoryResponse is a category with its icon resolved for display.
type CategoryResponse struct {
	entities.Category
	DisplayIcon entities.IconName `json:"display_icon"`
}

type LibraryResponse struct {
	Categories   []CategoryResponse `json:"categories"`
	ArticleCount int                `json:"article_count"`
}

type SearchResponse struct {
	Query        entities.Query     `json:"query"`
	Categories   []CategoryResponse `json:"categories"`
	ArticleCount int                `json:"article_count"`
}

type FeaturedResponse struct {
	Articles     []entities.Article `json:"articles"`
	Cursor       int                `json:"cursor"`
	Current      *entities.Article  `json:"current,omitempty"`
	IntervalMs   int64              `json:"interval_ms"`
	TransitionMs int64              `json:"transition_ms"`
	Easing       string             `json:"easing"`
	Running      bool               `json:"running"`
}

type ArticleResponse struct {
	Article       entities.Article `json:"article"`
	CategoryID    string           `json:"category_id"`
	CategoryTitle string           `json:"category_title"`
}

func toCategoryResponses(categories []entities.Category) ([]CategoryResponse, int) {
	out := make([]CategoryResponse, 0, len(categories))
	count := 0
	for _, cat := range categories {
		out = append(out, CategoryResponse{Category: cat, DisplayIcon: cat.Icon.Resolve()})
		count += len(cat.Articles)
	}
	return out, count
}

// GetLibrary returns the whole library
// GET /api/library
func (lc *LibraryController) GetLibrary(c *gin.Context) {
	lib, err := lc.provider.Library(c.Request.Context())
	if err != nil {
		respondLibraryUnavailable(c, err)
		return
	}

	categories, count := toCategoryResponses(lib.Categories)
	c.JSON(http.StatusOK, LibraryResponse{Categories: categories, ArticleCount: count})
}

// Search filters the library by text and tags and records the search
// GET /api/library/search?q=sleep&tag=science&tag=health
func (lc *LibraryController) Search(c *gin.Context) {
	ctx := c.Request.Context()
	lib, err := lc.provider.Library(ctx)
	if err != nil {
		respondLibraryUnavailable(c, err)
		return
	}
	idx, err := lc.provider.Indexes(ctx)
	if err != nil {
		respondLibraryUnavailable(c, err)
		return
	}

	session := library.NewSession(lib, idx, lc.history)
	for _, tag := range c.QueryArray("tag") {
		session.SelectTag(tag, true)
	}
	view := session.SetQuery(c.Query("q"))

	categories, count := toCategoryResponses(view.Categories)
	c.JSON(http.StatusOK, SearchResponse{
		Query:        session.Query(),
		Categories:   categories,
		ArticleCount: count,
	})
}

// GetTags returns the tag vocabulary
// GET /api/library/tags
func (lc *LibraryController) GetTags(c *gin.Context) {
	idx, err := lc.provider.Indexes(c.Request.Context())
	if err != nil {
		respondLibraryUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": idx.Tags})
}

// GetFeatured returns the featured set and the carousel position
// GET /api/library/featured
func (lc *LibraryController) GetFeatured(c *gin.Context) {
	idx, err := lc.provider.Indexes(c.Request.Context())
	if err != nil {
		respondLibraryUnavailable(c, err)
		return
	}

	cfg := library.DefaultCarouselConfig()
	resp := FeaturedResponse{Articles: idx.Featured}
	if lc.carousel != nil {
		cfg = lc.carousel.Config()
		resp.Cursor = lc.carousel.Cursor()
		resp.Running = lc.carousel.Running()
		if art, ok := lc.carousel.Current(); ok {
			resp.Current = &art
		}
	} else if len(idx.Featured) > 0 {
		resp.Current = &idx.Featured[0]
	}
	resp.IntervalMs = cfg.Interval.Milliseconds()
	resp.TransitionMs = cfg.Transition.Milliseconds()
	resp.Easing = cfg.Easing

	c.JSON(http.StatusOK, resp)
}

// SetFeaturedCursor moves the carousel after a user swipe
// PUT /api/library/featured/cursor
func (lc *LibraryController) SetFeaturedCursor(c *gin.Context) {
	var req struct {
		Index *int `json:"index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "index is required")
		return
	}
	if lc.carousel == nil || lc.carousel.Len() == 0 {
		respondNotFound(c, "featured carousel")
		return
	}

	lc.carousel.SetCursor(*req.Index)
	c.JSON(http.StatusOK, gin.H{"cursor": lc.carousel.Cursor()})
}

// GetArticle returns one article with its category
// GET /api/library/articles/:id
func (lc *LibraryController) GetArticle(c *gin.Context) {
	lib, err := lc.provider.Library(c.Request.Context())
	if err != nil {
		respondLibraryUnavailable(c, err)
		return
	}

	art, cat, ok := lib.ArticleByID(c.Param("id"))
	if !ok {
		respondNotFound(c, "article")
		return
	}

	c.JSON(http.StatusOK, ArticleResponse{
		Article:       *art,
		CategoryID:    cat.ID,
		CategoryTitle: cat.Title,
	})
}
