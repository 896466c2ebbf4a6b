package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// BootEventName is the only event the boot queue acts on.
const BootEventName = "onBootCompleted"

// BootListener is notified when the device has finished booting.
type BootListener interface {
	OnBootCompleted(ctx context.Context) error
}

// BootEventTask carries one event sent on the boot channel.
type BootEventTask struct {
	Channel string    `json:"channel"`
	Event   string    `json:"event"`
	SentAt  time.Time `json:"sent_at"`
}

// Config returns the queue configuration for boot events. Events are
// delivered at most once; a failed reschedule is not retried.
func (t BootEventTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "boot",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// BootEventProcessor creates a processor function for BootEventTask.
func BootEventProcessor(listener BootListener) backlite.QueueProcessor[BootEventTask] {
	return func(ctx context.Context, task BootEventTask) error {
		if listener == nil {
			return fmt.Errorf("boot listener not configured")
		}

		if task.Event != BootEventName {
			log.Printf("[TASK] Ignoring unknown boot event %q on %s", task.Event, task.Channel)
			return nil
		}

		log.Printf("[TASK] %s received on %s (sent %s)", task.Event, task.Channel, task.SentAt.Format(time.RFC3339))
		if err := listener.OnBootCompleted(ctx); err != nil {
			return fmt.Errorf("handle %s: %w", task.Event, err)
		}
		return nil
	}
}

// NewBootEventQueue creates a backlite queue for boot events.
func NewBootEventQueue(listener BootListener) backlite.Queue {
	return backlite.NewQueue(BootEventProcessor(listener))
}

// BootDispatcher enqueues boot events. It either owns a dedicated client,
// opened just for one delivery, or borrows the client of a running server.
type BootDispatcher struct {
	client *Client
	owned  bool
}

// OpenBootDispatcher opens the tasks database next to mainDBPath without
// starting any workers. Close releases the connection.
func OpenBootDispatcher(mainDBPath string, cfg Config) (*BootDispatcher, error) {
	cfg.Workers = 1
	client, err := NewClient(mainDBPath, cfg)
	if err != nil {
		return nil, err
	}
	// The sender side never processes events; the queue is registered so
	// backlite accepts the task.
	client.Register(NewBootEventQueue(nil))
	return &BootDispatcher{client: client, owned: true}, nil
}

// NewBootDispatcher wraps an existing client. Close leaves the client open.
func NewBootDispatcher(client *Client) *BootDispatcher {
	return &BootDispatcher{client: client}
}

// Send enqueues one event and returns without waiting for it to be processed.
func (d *BootDispatcher) Send(ctx context.Context, channel, event string) error {
	if d.client == nil {
		return errors.New("boot dispatcher is closed")
	}
	ids, err := d.client.Add(BootEventTask{
		Channel: channel,
		Event:   event,
		SentAt:  time.Now(),
	}).Ctx(ctx).Save()
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", event, err)
	}
	log.Printf("[TASK] Enqueued %s on %s (task %v)", event, channel, ids)
	return nil
}

// Close releases the dispatcher. It is safe to call more than once.
func (d *BootDispatcher) Close() error {
	client := d.client
	d.client = nil
	if client == nil || !d.owned {
		return nil
	}
	return client.Close()
}
