package cli

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mrlokans/claritybreak/internal/boot"
	"github.com/mrlokans/claritybreak/internal/config"
	"github.com/mrlokans/claritybreak/internal/entrypoint"
)

// BootCompletedCommand is run by the host OS boot hook.
type BootCompletedCommand struct {
	Signal       string
	DatabasePath string
	Timeout      time.Duration

	cfg     *config.Config
	invalid bool
}

func NewBootCompletedCommand(cfg *config.Config) *BootCompletedCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &BootCompletedCommand{cfg: cfg}
}

func (cmd *BootCompletedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("boot-completed", flag.ContinueOnError)

	fs.StringVar(&cmd.Signal, "signal", boot.SignalBootCompleted, "Signal received from the OS; only boot_completed is acted on")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.cfg.Database.Path, "Path to the application database")
	fs.DurationVar(&cmd.Timeout, "timeout", cmd.cfg.Boot.Timeout, "Upper bound for delivering the event")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s boot-completed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Queue an onBootCompleted event so the reminder scheduler re-arms its timers.\n")
		fmt.Fprintf(os.Stderr, "Always exits 0: failures are logged and never block the boot sequence.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s boot-completed\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s boot-completed -signal boot_completed -db /var/lib/claritybreak/app.db\n", os.Args[0])
	}

	// Bad arguments must not fail the boot sequence: they are logged and
	// Run becomes a no-op.
	if err := fs.Parse(args); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			log.Printf("Boot bridge: invalid arguments %v: %v", args, err)
		}
		cmd.invalid = true
	}
	return nil
}

// Run delivers the signal. It never returns an error.
func (cmd *BootCompletedCommand) Run() error {
	if cmd.invalid {
		return nil
	}

	cfg := *cmd.cfg
	cfg.Database.Path = cmd.DatabasePath
	cfg.Boot.Timeout = cmd.Timeout

	entrypoint.Boot(&cfg, cmd.Signal)
	return nil
}
