package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/claritybreak/internal/boot"
	"github.com/mrlokans/claritybreak/internal/database/history"
	dbreminders "github.com/mrlokans/claritybreak/internal/database/reminders"
	"github.com/mrlokans/claritybreak/internal/http"
	"github.com/mrlokans/claritybreak/internal/library"
	"github.com/mrlokans/claritybreak/internal/reminders"
	"github.com/mrlokans/claritybreak/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Search history
var _ library.HistoryRecorder = (*history.Repository)(nil)
var _ http.HistoryStore = (*history.Repository)(nil)
var _ tasks.SearchHistoryPruner = (*history.Repository)(nil)

// Reminders
var _ http.ReminderStore = (*dbreminders.Repository)(nil)
var _ reminders.Store = (*dbreminders.Repository)(nil)

// =============================================================================
// Library
// =============================================================================

var _ library.Loader = (*library.Store)(nil)
var _ http.LibraryProvider = (*library.Catalog)(nil)
var _ http.FeaturedCarousel = (*library.Carousel)(nil)

// =============================================================================
// Scheduling and Boot
// =============================================================================

var _ reminders.Notifier = reminders.LogNotifier{}
var _ http.Rescheduler = (*reminders.Scheduler)(nil)
var _ tasks.BootListener = (*reminders.Scheduler)(nil)
var _ boot.Dispatcher = (*tasks.BootDispatcher)(nil)
var _ http.BootHandler = (*boot.Bridge)(nil)
var _ http.TaskStatusReader = (*tasks.Client)(nil)
