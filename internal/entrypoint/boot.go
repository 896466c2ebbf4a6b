package entrypoint

import (
	"context"
	"log"

	"github.com/mrlokans/claritybreak/internal/boot"
	"github.com/mrlokans/claritybreak/internal/config"
	"github.com/mrlokans/claritybreak/internal/tasks"
)

// Boot runs the boot bridge for one OS signal. It opens only the task
// database, enqueues the event and exits; the serve process delivers it to
// the reminder scheduler.
func Boot(cfg *config.Config, signal string) {
	bridge := boot.NewBridge(newQueueOpener(cfg.Database.Path, TaskConfig(cfg)), cfg.Boot.Timeout)
	bridge.Handle(context.Background(), signal)
}

func newQueueOpener(dbPath string, taskCfg tasks.Config) boot.Opener {
	return func(ctx context.Context) (boot.Dispatcher, error) {
		d, err := tasks.OpenBootDispatcher(dbPath, taskCfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

// newServerOpener serves the HTTP boot hook inside a running server: the
// event goes through the shared task queue when it is enabled, otherwise
// straight to the listener.
func newServerOpener(client *tasks.Client, listener tasks.BootListener) boot.Opener {
	return func(ctx context.Context) (boot.Dispatcher, error) {
		if client != nil {
			return tasks.NewBootDispatcher(client), nil
		}
		return &directDispatcher{listener: listener}, nil
	}
}

// directDispatcher hands boot events to an in-process listener.
type directDispatcher struct {
	listener tasks.BootListener
}

func (d *directDispatcher) Send(ctx context.Context, channel, event string) error {
	if event != tasks.BootEventName {
		log.Printf("Boot bridge: ignoring unknown event %q on %s", event, channel)
		return nil
	}
	return d.listener.OnBootCompleted(ctx)
}

func (d *directDispatcher) Close() error { return nil }

// loggingBootListener stands in for the reminder scheduler when reminders
// are disabled.
type loggingBootListener struct{}

func (loggingBootListener) OnBootCompleted(ctx context.Context) error {
	log.Printf("Boot bridge: boot completed, reminders disabled")
	return nil
}
