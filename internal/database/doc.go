// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── history/         # Library search history
//	└── reminders/       # Persisted tolerance-break reminders
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./claritybreak.db")
//
//	historyRepo := history.NewRepository(db.DB)
//	remindersRepo := reminders.NewRepository(db.DB)
//
//	err = historyRepo.AddSearch("sleep")
//	recent, err := historyRepo.Recent(10)
//
// # Interface Implementations
//
//   - history.Repository: implements library.HistoryRecorder and
//     tasks.SearchHistoryPruner
//   - reminders.Repository: implements reminders.Store
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the entity to the AutoMigrate list in database.go
//  5. Add compile-time interface check in internal/interfaces
package database
