package entities

import (
	"time"

	"gorm.io/gorm"
)

type ReminderKind string

const (
	ReminderKindRecurring ReminderKind = "recurring" // cron schedule
	ReminderKindOnce      ReminderKind = "once"      // fires at FireAt
)

// Reminder is a tolerance-break notification owned by the reminder scheduler.
// It is persisted so the schedule can be re-armed after the process or the
// device restarts.
type Reminder struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200" json:"title"`
	Message     string         `gorm:"type:text" json:"message"`
	Kind        ReminderKind   `gorm:"size:20;default:'recurring'" json:"kind"`
	Schedule    string         `gorm:"size:100" json:"schedule,omitempty"` // cron format, recurring only
	FireAt      *time.Time     `json:"fire_at,omitempty"`                  // once only
	Enabled     bool           `gorm:"not null" json:"enabled"`
	LastFiredAt *time.Time     `json:"last_fired_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Reminder) TableName() string {
	return "reminders"
}

// SearchEntry is one committed library search.
type SearchEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Query     string    `gorm:"index;size:256" json:"query"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (SearchEntry) TableName() string {
	return "search_history"
}
