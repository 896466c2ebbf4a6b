// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - HistoryRecorder: Records normalized search queries (internal/library/session.go)
//   - HistoryStore: Recent and clear for search history (internal/http/stores.go)
//   - ReminderStore: Reminder CRUD (internal/http/stores.go)
//   - Store: Enabled reminders for the scheduler (internal/reminders/scheduler.go)
//   - SearchHistoryPruner: Retention cleanup (internal/tasks/cleanup_history.go)
//
// ## Library Interfaces
//
//   - Loader: Reads and validates a library document (internal/library/catalog.go)
//   - LibraryProvider: Loaded library and derived indexes (internal/http/stores.go)
//   - FeaturedCarousel: Featured rotation state (internal/http/stores.go)
//
// ## Scheduling and Boot Interfaces
//
//   - Notifier: Delivers a due reminder (internal/reminders/scheduler.go)
//   - Rescheduler: Re-arms reminder timers (internal/http/stores.go)
//   - BootListener: Reacts to onBootCompleted (internal/tasks/boot.go)
//   - Dispatcher: Sends one boot event and closes (internal/boot/bridge.go)
//
// # Adding a New Reminder Delivery Channel
//
//  1. Implement reminders.Notifier
//  2. Pass it to reminders.NewScheduler in internal/entrypoint
//  3. Add a compile-time check in checks.go
//
// # Adding a New Library Source
//
//  1. Implement library.Loader (or build a library.Store over any fs.FS)
//  2. Wrap it in library.NewCatalog
//  3. Select it from config in entrypoint.NewLibraryStore
package interfaces
