package http

import (
	"github.com/mrlokans/claritybreak/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. Optional dependencies left nil disable
// their routes.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Library  LibraryProvider
	Carousel FeaturedCarousel

	// Search history
	History            HistoryStore
	HistoryRecentLimit int

	// Reminders
	Reminders   ReminderStore
	Rescheduler Rescheduler

	// Boot bridge test hook
	Boot BootHandler

	// Task queue status
	TaskClient TaskStatusReader

	// Application info
	Version string
}
