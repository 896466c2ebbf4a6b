// Package reminders arms persisted tolerance-break reminders on a cron
// scheduler and re-arms them whenever the device finishes booting.
package reminders

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/claritybreak/internal/entities"
)

// Store provides the persisted reminders.
type Store interface {
	ListEnabled() ([]entities.Reminder, error)
	MarkFired(id uint, at time.Time) error
}

// Notifier delivers a due reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, reminder entities.Reminder) error
}

// LogNotifier writes reminders to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, r entities.Reminder) error {
	log.Printf("Reminder: %s - %s", r.Title, r.Message)
	return nil
}

// RescheduleResult summarizes one re-arm pass.
type RescheduleResult struct {
	Armed   int `json:"armed"`
	Skipped int `json:"skipped"`
}

// Scheduler keeps one cron entry per armed reminder.
type Scheduler struct {
	store         Store
	notifier      Notifier
	now           func() time.Time
	notifyTimeout time.Duration

	cron       *cron.Cron
	entries    map[uint]cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewScheduler creates a scheduler. A nil notifier logs reminders.
func NewScheduler(store Store, notifier Notifier) *Scheduler {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Scheduler{
		store:         store,
		notifier:      notifier,
		now:           time.Now,
		notifyTimeout: 30 * time.Second,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(cron.Recover(cron.PrintfLogger(log.Default()))),
		),
		entries: make(map[uint]cron.EntryID),
	}
}

// Start arms every enabled reminder and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	result, err := s.Reschedule(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Reminder scheduler: started with %d reminders armed", result.Armed)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the cron loop and waits for reminders being delivered.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Reminder scheduler: stopped")
}

// Reschedule drops every armed entry and re-arms from the store, so calling
// it repeatedly never duplicates timers. One-shot reminders that are due in
// the past or were already delivered are skipped, as are reminders with a
// broken schedule.
func (s *Scheduler) Reschedule(ctx context.Context) (RescheduleResult, error) {
	if err := ctx.Err(); err != nil {
		return RescheduleResult{}, err
	}

	reminders, err := s.store.ListEnabled()
	if err != nil {
		return RescheduleResult{}, fmt.Errorf("failed to list reminders: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entryID := range s.entries {
		s.cron.Remove(entryID)
		delete(s.entries, id)
	}

	now := s.now()
	var result RescheduleResult
	for _, r := range reminders {
		sched, ok, err := scheduleFor(r, now)
		if err != nil {
			log.Printf("Reminder scheduler: skipping reminder %d: %v", r.ID, err)
			result.Skipped++
			continue
		}
		if !ok {
			result.Skipped++
			continue
		}

		reminder := r
		s.entries[r.ID] = s.cron.Schedule(sched, cron.FuncJob(func() {
			s.fire(reminder)
		}))
		result.Armed++
	}

	log.Printf("Reminder scheduler: rescheduled %d reminders (%d skipped)", result.Armed, result.Skipped)
	return result, nil
}

// OnBootCompleted re-arms all reminders after a device restart.
func (s *Scheduler) OnBootCompleted(ctx context.Context) error {
	log.Printf("Reminder scheduler: boot completed, rescheduling")
	_, err := s.Reschedule(ctx)
	return err
}

// IsRunning returns whether the scheduler is active
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Armed returns the number of reminders with a cron entry.
func (s *Scheduler) Armed() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// NextRunTime returns when a reminder fires next, or nil if it is not armed.
func (s *Scheduler) NextRunTime(id uint) *time.Time {
	s.mu.RLock()
	entryID, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	entry := s.cron.Entry(entryID)
	if !entry.Valid() {
		return nil
	}
	next := entry.Next
	if next.IsZero() {
		// Not started yet: cron fills Next on Start.
		next = entry.Schedule.Next(s.now())
		if next.IsZero() {
			return nil
		}
	}
	return &next
}

func (s *Scheduler) fire(r entities.Reminder) {
	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, r); err != nil {
		log.Printf("Reminder scheduler: failed to deliver reminder %d: %v", r.ID, err)
		return
	}
	if err := s.store.MarkFired(r.ID, s.now()); err != nil {
		log.Printf("Reminder scheduler: failed to mark reminder %d fired: %v", r.ID, err)
	}
}
