package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/claritybreak/internal/config"
	"github.com/mrlokans/claritybreak/internal/entrypoint"
	"github.com/mrlokans/claritybreak/internal/library"
)

// LibraryCheckCommand validates a library document and prints what the app
// would derive from it.
type LibraryCheckCommand struct {
	Path    string
	JSON    bool
	Verbose bool

	out io.Writer
}

func NewLibraryCheckCommand() *LibraryCheckCommand {
	return &LibraryCheckCommand{out: os.Stdout}
}

func (cmd *LibraryCheckCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("library-check", flag.ContinueOnError)

	fs.StringVar(&cmd.Path, "path", "", "Library document to check (default: the bundled library)")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the derived indexes as JSON")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "List every article")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s library-check [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load and validate a library document, then print its tags and featured articles.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s library-check\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s library-check -path ./library_content.json -verbose\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *LibraryCheckCommand) Run() error {
	store := entrypoint.NewLibraryStore(config.Library{Path: cmd.Path})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lib, err := store.Load(ctx)
	if err != nil {
		var loadErr *library.LoadError
		if errors.As(err, &loadErr) {
			return fmt.Errorf("library %s is invalid (%s): %w", store.Source(), loadErr.Kind, loadErr.Err)
		}
		return fmt.Errorf("failed to load library %s: %w", store.Source(), err)
	}
	idx := library.BuildIndexes(lib)

	if cmd.JSON {
		enc := json.NewEncoder(cmd.out)
		enc.SetIndent("", "  ")
		return enc.Encode(idx)
	}

	fmt.Fprintf(cmd.out, "Library: %s\n", store.Source())
	fmt.Fprintf(cmd.out, "Categories: %d\n", len(lib.Categories))
	fmt.Fprintf(cmd.out, "Articles: %d\n", lib.ArticleCount())
	fmt.Fprintf(cmd.out, "Tags (%d): %v\n", len(idx.Tags), idx.Tags)

	fmt.Fprintf(cmd.out, "\n=== Featured ===\n")
	if len(idx.Featured) == 0 {
		fmt.Fprintf(cmd.out, "No featured articles: the carousel will stay empty\n")
	}
	for i, art := range idx.Featured {
		fmt.Fprintf(cmd.out, "%d. %s (%s)\n", i+1, art.Title, art.ID)
	}

	if cmd.Verbose {
		fmt.Fprintf(cmd.out, "\n=== Articles ===\n")
		for _, cat := range lib.Categories {
			icon := cat.Icon.Resolve()
			if icon != cat.Icon {
				fmt.Fprintf(cmd.out, "%s [icon %q shown as %s]\n", cat.Title, cat.Icon, icon)
			} else {
				fmt.Fprintf(cmd.out, "%s [%s]\n", cat.Title, icon)
			}
			for _, art := range cat.Articles {
				fmt.Fprintf(cmd.out, "  - %s (%s) %v\n", art.Title, art.ID, art.Tags)
			}
		}
	}

	return nil
}
