package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/claritybreak/internal/library"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Library, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Library endpoints
	if cfg.Library != nil {
		var recorder library.HistoryRecorder
		if cfg.History != nil {
			recorder = cfg.History
		}
		libraryController := NewLibraryController(cfg.Library, cfg.Carousel, recorder)
		api.GET("/library", libraryController.GetLibrary)
		api.GET("/library/search", libraryController.Search)
		api.GET("/library/tags", libraryController.GetTags)
		api.GET("/library/featured", libraryController.GetFeatured)
		api.PUT("/library/featured/cursor", libraryController.SetFeaturedCursor)
		api.GET("/library/articles/:id", libraryController.GetArticle)
	}

	// Search history endpoints
	if cfg.History != nil {
		historyController := NewHistoryController(cfg.History, cfg.HistoryRecentLimit)
		api.GET("/history", historyController.GetRecent)
		api.DELETE("/history", historyController.Clear)
	}

	// Reminder endpoints
	if cfg.Reminders != nil {
		remindersController := NewRemindersController(cfg.Reminders, cfg.Rescheduler)
		api.GET("/reminders", remindersController.List)
		api.POST("/reminders", remindersController.Create)
		api.PATCH("/reminders/:id", remindersController.SetEnabled)
		api.DELETE("/reminders/:id", remindersController.Delete)
	}

	if cfg.Boot != nil {
		bootController := NewBootController(cfg.Boot)
		api.POST("/boot", bootController.Trigger)
	}

	// Task status endpoint
	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
