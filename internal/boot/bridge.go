// Package boot re-arms reminders after the device restarts.
//
// The host OS runs the binary with the boot-completed signal once startup
// finishes. The bridge opens a short-lived dispatcher (no HTTP server, no
// workers), hands a single onBootCompleted event to the boot channel and
// closes the dispatcher again. The reminder scheduler listening on that
// channel re-derives its timers from its own persisted state.
//
// The bridge never fails the boot sequence: every error is logged and
// dropped, and nothing is retried.
package boot

import (
	"context"
	"log"
	"time"
)

const (
	// SignalBootCompleted is the only signal the bridge acts on.
	SignalBootCompleted = "boot_completed"

	// ChannelName is the logical channel the reminder scheduler listens on.
	ChannelName = "clarity_break/boot"

	// EventBootCompleted is the event delivered on ChannelName. It has no payload.
	EventBootCompleted = "onBootCompleted"

	DefaultTimeout = 10 * time.Second
)

// Dispatcher delivers events to a named channel. It is opened for a single
// delivery and must be closed afterwards.
type Dispatcher interface {
	Send(ctx context.Context, channel, event string) error
	Close() error
}

// Opener builds the minimal execution context needed to deliver an event.
type Opener func(ctx context.Context) (Dispatcher, error)

// Bridge turns an OS boot signal into one event on the boot channel.
type Bridge struct {
	open    Opener
	timeout time.Duration
}

// NewBridge creates a bridge. A non-positive timeout uses DefaultTimeout.
func NewBridge(open Opener, timeout time.Duration) *Bridge {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Bridge{open: open, timeout: timeout}
}

// Handle reacts to an OS signal. Signals other than SignalBootCompleted are
// ignored. For a boot signal it delivers exactly one event and tears the
// dispatcher down on every exit path. It never returns an error and never
// panics; whether the reminders were actually rescheduled is not checked.
func (b *Bridge) Handle(ctx context.Context, signal string) {
	if signal != SignalBootCompleted {
		log.Printf("Boot bridge: ignoring signal %q", signal)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Boot bridge: recovered from panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	log.Printf("Boot bridge: boot completed, scheduling reminders")

	if b.open == nil {
		log.Printf("Boot bridge: no dispatcher configured, dropping %s", EventBootCompleted)
		return
	}

	d, err := b.open(ctx)
	if err != nil {
		log.Printf("Boot bridge: failed to open dispatcher: %v", err)
		return
	}
	if d == nil {
		log.Printf("Boot bridge: dispatcher unavailable, dropping %s", EventBootCompleted)
		return
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("Boot bridge: failed to close dispatcher: %v", err)
		}
	}()

	if err := d.Send(ctx, ChannelName, EventBootCompleted); err != nil {
		log.Printf("Boot bridge: failed to deliver %s to %s: %v", EventBootCompleted, ChannelName, err)
		return
	}

	log.Printf("Boot bridge: delivered %s to %s", EventBootCompleted, ChannelName)
}
