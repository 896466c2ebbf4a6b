package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HistoryController struct {
	store        HistoryStore
	defaultLimit int
}

func NewHistoryController(store HistoryStore, defaultLimit int) *HistoryController {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &HistoryController{store: store, defaultLimit: defaultLimit}
}

// GetRecent returns recent distinct searches, newest first
// GET /api/history?limit=10
func (hc *HistoryController) GetRecent(c *gin.Context) {
	limit, ok := parseLimit(c, hc.defaultLimit)
	if !ok {
		return
	}

	queries, err := hc.store.Recent(limit)
	if err != nil {
		respondInternalError(c, err, "get search history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"queries": queries})
}

// Clear removes the whole search history
// DELETE /api/history
func (hc *HistoryController) Clear(c *gin.Context) {
	deleted, err := hc.store.Clear()
	if err != nil {
		respondInternalError(c, err, "clear search history")
		return
	}
	respondSuccess(c, "search history cleared", gin.H{"deleted": deleted})
}
