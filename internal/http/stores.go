package http

import (
	"context"
	"time"

	"github.com/mrlokans/claritybreak/internal/entities"
	"github.com/mrlokans/claritybreak/internal/library"
	"github.com/mrlokans/claritybreak/internal/reminders"
)

// This file consolidates the interfaces HTTP controllers depend on. Each
// controller takes only what it needs.

// LibraryProvider gives access to the loaded library and its indexes.
// *library.Catalog implements it.
type LibraryProvider interface {
	Library(ctx context.Context) (*entities.Library, error)
	Indexes(ctx context.Context) (entities.Indexes, error)
}

// FeaturedCarousel exposes the featured rotation state.
// *library.Carousel implements it.
type FeaturedCarousel interface {
	Cursor() int
	Current() (entities.Article, bool)
	SetCursor(i int)
	Len() int
	Running() bool
	Config() library.CarouselConfig
}

// HistoryStore provides search history persistence.
type HistoryStore interface {
	library.HistoryRecorder
	Recent(limit int) ([]string, error)
	Clear() (int64, error)
}

// ReminderStore provides reminder persistence.
type ReminderStore interface {
	Create(reminder *entities.Reminder) error
	List() ([]entities.Reminder, error)
	Get(id uint) (*entities.Reminder, error)
	SetEnabled(id uint, enabled bool) error
	Delete(id uint) error
}

// Rescheduler re-arms reminders after they change.
// *reminders.Scheduler implements it.
type Rescheduler interface {
	Reschedule(ctx context.Context) (reminders.RescheduleResult, error)
	NextRunTime(id uint) *time.Time
}

// BootHandler delivers a boot signal. *boot.Bridge implements it.
type BootHandler interface {
	Handle(ctx context.Context, signal string)
}
