package library

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/mrlokans/claritybreak/internal/entities"
)

// Loader produces a Library. *Store implements it.
type Loader interface {
	Load(ctx context.Context) (*entities.Library, error)
}

var _ Loader = (*Store)(nil)

// Catalog owns the Library for the lifetime of the process. The first
// successful load is published atomically and reused afterwards; a failed
// load publishes nothing, so the next call retries.
type Catalog struct {
	loader  Loader
	indexes *IndexCache

	group singleflight.Group
	lib   atomic.Pointer[entities.Library]

	mu     sync.Mutex
	onLoad []func(entities.Indexes)
}

// NewCatalog creates a catalog backed by loader.
func NewCatalog(loader Loader) *Catalog {
	return &Catalog{
		loader:  loader,
		indexes: NewIndexCache(),
	}
}

// Library returns the loaded library, loading it if needed. Concurrent
// callers share a single load.
func (c *Catalog) Library(ctx context.Context) (*entities.Library, error) {
	if lib := c.lib.Load(); lib != nil {
		return lib, nil
	}

	ch := c.group.DoChan("library", func() (any, error) {
		if lib := c.lib.Load(); lib != nil {
			return lib, nil
		}
		// The load outlives any single caller's context.
		lib, err := c.loader.Load(context.WithoutCancel(ctx))
		if err != nil {
			log.Printf("Library: load failed: %v", err)
			return nil, err
		}
		c.lib.Store(lib)
		log.Printf("Library: loaded %d categories, %d articles", len(lib.Categories), lib.ArticleCount())
		c.notifyLoaded(lib)
		return lib, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entities.Library), nil
	}
}

// OnLoad registers fn to run once with the indexes of the first library
// that loads successfully. Registering after the load runs fn immediately.
func (c *Catalog) OnLoad(fn func(entities.Indexes)) {
	c.mu.Lock()
	lib := c.lib.Load()
	if lib == nil {
		c.onLoad = append(c.onLoad, fn)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	fn(c.indexes.Get(lib))
}

func (c *Catalog) notifyLoaded(lib *entities.Library) {
	c.mu.Lock()
	hooks := c.onLoad
	c.onLoad = nil
	c.mu.Unlock()

	for _, fn := range hooks {
		fn(c.indexes.Get(lib))
	}
}

// Loaded returns the library if it has been loaded, without triggering a load.
func (c *Catalog) Loaded() (*entities.Library, bool) {
	lib := c.lib.Load()
	return lib, lib != nil
}

// Indexes returns the tag vocabulary and featured set of the library.
func (c *Catalog) Indexes(ctx context.Context) (entities.Indexes, error) {
	lib, err := c.Library(ctx)
	if err != nil {
		return entities.Indexes{}, err
	}
	return c.indexes.Get(lib), nil
}
