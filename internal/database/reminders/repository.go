package reminders

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/claritybreak/internal/entities"
)

var ErrNotFound = errors.New("reminder not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(reminder *entities.Reminder) error {
	if reminder.Kind == "" {
		reminder.Kind = entities.ReminderKindRecurring
	}
	return r.db.Create(reminder).Error
}

// List returns every reminder ordered by creation.
func (r *Repository) List() ([]entities.Reminder, error) {
	reminders := []entities.Reminder{}
	err := r.db.Order("id ASC").Find(&reminders).Error
	return reminders, err
}

// ListEnabled returns the reminders the scheduler should arm.
func (r *Repository) ListEnabled() ([]entities.Reminder, error) {
	reminders := []entities.Reminder{}
	err := r.db.Where("enabled = ?", true).Order("id ASC").Find(&reminders).Error
	return reminders, err
}

func (r *Repository) Get(id uint) (*entities.Reminder, error) {
	var reminder entities.Reminder
	err := r.db.First(&reminder, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

// SetEnabled toggles a reminder without touching its schedule.
func (r *Repository) SetEnabled(id uint, enabled bool) error {
	result := r.db.Model(&entities.Reminder{}).Where("id = ?", id).Update("enabled", enabled)
	if result.Error != nil {
		return fmt.Errorf("failed to update reminder %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Reminder{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete reminder %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkFired records the time a reminder was last delivered.
func (r *Repository) MarkFired(id uint, at time.Time) error {
	result := r.db.Model(&entities.Reminder{}).Where("id = ?", id).Update("last_fired_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to mark reminder %d fired: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
