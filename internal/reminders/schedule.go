package reminders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/claritybreak/internal/entities"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

var (
	ErrTitleRequired  = errors.New("reminder title is required")
	ErrFireAtRequired = errors.New("one-shot reminder needs fire_at")
	ErrUnknownKind    = errors.New("unknown reminder kind")
)

// ValidateSchedule validates a 5-field cron schedule string.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// DescribeSchedule returns a human-readable description of a cron schedule.
func DescribeSchedule(schedule string) string {
	switch schedule {
	case "0 9 * * *":
		return "Daily at 9:00"
	case "0 21 * * *":
		return "Daily at 21:00"
	case "0 9,21 * * *":
		return "Twice a day"
	case "0 9 * * 1":
		return "Weekly on Monday at 9:00"
	case "0 * * * *":
		return "Every hour at :00"
	default:
		return "Custom schedule: " + schedule
	}
}

// Validate checks that a reminder can be armed.
func Validate(r *entities.Reminder) error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	switch r.Kind {
	case entities.ReminderKindRecurring, "":
		if err := ValidateSchedule(r.Schedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s': %w", r.Schedule, err)
		}
	case entities.ReminderKindOnce:
		if r.FireAt == nil || r.FireAt.IsZero() {
			return ErrFireAtRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}
	return nil
}

// scheduleFor returns the cron schedule for a reminder, or ok=false when
// there is nothing left to fire at now.
func scheduleFor(r entities.Reminder, now time.Time) (cron.Schedule, bool, error) {
	if r.Kind == entities.ReminderKindOnce {
		if r.FireAt == nil {
			return nil, false, ErrFireAtRequired
		}
		if !r.FireAt.After(now) {
			return nil, false, nil
		}
		if r.LastFiredAt != nil && !r.LastFiredAt.Before(*r.FireAt) {
			return nil, false, nil
		}
		return onceSchedule{at: *r.FireAt}, true, nil
	}

	sched, err := parser.Parse(r.Schedule)
	if err != nil {
		return nil, false, fmt.Errorf("invalid cron schedule '%s': %w", r.Schedule, err)
	}
	return sched, true, nil
}

// onceSchedule activates exactly once at a fixed time. cron treats a zero
// Next as "never again".
type onceSchedule struct {
	at time.Time
}

func (s onceSchedule) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}
