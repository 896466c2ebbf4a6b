package library

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/claritybreak/internal/entities"
)

const (
	DefaultCarouselInterval   = 5 * time.Second
	DefaultCarouselTransition = 600 * time.Millisecond
	DefaultCarouselEasing     = "ease-in-out"

	// MinCarouselInterval is the finest interval the timer can honor.
	MinCarouselInterval = time.Second
)

// CarouselConfig holds the timing of the featured carousel. Transition and
// Easing are passed through to the presentation layer untouched.
type CarouselConfig struct {
	Interval   time.Duration
	Transition time.Duration
	Easing     string
}

// DefaultCarouselConfig returns a 5s interval with a 600ms ease-in-out transition.
func DefaultCarouselConfig() CarouselConfig {
	return CarouselConfig{
		Interval:   DefaultCarouselInterval,
		Transition: DefaultCarouselTransition,
		Easing:     DefaultCarouselEasing,
	}
}

func (c CarouselConfig) withDefaults() CarouselConfig {
	switch {
	case c.Interval <= 0:
		c.Interval = DefaultCarouselInterval
	case c.Interval < MinCarouselInterval:
		log.Printf("Carousel: interval %v is below %v, using %v", c.Interval, MinCarouselInterval, MinCarouselInterval)
		c.Interval = MinCarouselInterval
	case c.Interval%time.Second != 0:
		rounded := c.Interval.Truncate(time.Second)
		log.Printf("Carousel: interval %v has sub-second precision, using %v", c.Interval, rounded)
		c.Interval = rounded
	}
	if c.Transition <= 0 {
		c.Transition = DefaultCarouselTransition
	}
	if c.Easing == "" {
		c.Easing = DefaultCarouselEasing
	}
	return c
}

// Transition tells the presentation layer to animate from one featured
// position to another.
type Transition struct {
	From     int              `json:"from"`
	To       int              `json:"to"`
	Article  entities.Article `json:"article"`
	Duration time.Duration    `json:"duration"`
	Easing   string           `json:"easing"`
}

// Carousel advances a cursor through the featured set on a fixed interval.
// Ticks never overlap: a tick that comes due while the previous one is
// still running is skipped.
type Carousel struct {
	featured  []entities.Article
	cfg       CarouselConfig
	onAdvance func(Transition)
	cron      *cron.Cron

	mu      sync.Mutex
	cursor  int
	started bool
	stopped bool
	done    chan struct{}
}

// NewCarousel creates a stopped carousel over featured. onAdvance may be nil.
func NewCarousel(featured []entities.Article, cfg CarouselConfig, onAdvance func(Transition)) *Carousel {
	logger := cron.PrintfLogger(log.Default())
	return &Carousel{
		featured:  featured,
		cfg:       cfg.withDefaults(),
		onAdvance: onAdvance,
		cron:      cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		done:      make(chan struct{}),
	}
}

// Start begins ticking. It returns immediately; the carousel stops when ctx
// is done or Stop is called. Starting a stopped carousel is a no-op.
func (c *Carousel) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started || c.stopped {
		return
	}
	c.started = true

	c.cron.Schedule(cron.Every(c.cfg.Interval), cron.FuncJob(func() {
		c.Tick()
	}))
	c.cron.Start()
	log.Printf("Carousel: started with %d featured articles every %v", len(c.featured), c.cfg.Interval)

	go func() {
		select {
		case <-ctx.Done():
			c.Stop()
		case <-c.done:
		}
	}()
}

// Stop halts the timer and waits for an in-flight tick to finish. It is
// safe to call any number of times, before or after Start.
func (c *Carousel) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	wasStarted := c.started
	close(c.done)
	c.mu.Unlock()

	if !wasStarted {
		return
	}
	<-c.cron.Stop().Done()
	log.Printf("Carousel: stopped")
}

// Tick advances the cursor by one position, wrapping around, and notifies
// the presentation layer. With an empty featured set it does nothing and
// returns false.
func (c *Carousel) Tick() (Transition, bool) {
	c.mu.Lock()
	if len(c.featured) == 0 {
		c.mu.Unlock()
		return Transition{}, false
	}
	from := c.cursor
	c.cursor = (c.cursor + 1) % len(c.featured)
	t := Transition{
		From:     from,
		To:       c.cursor,
		Article:  c.featured[c.cursor],
		Duration: c.cfg.Transition,
		Easing:   c.cfg.Easing,
	}
	c.mu.Unlock()

	if c.onAdvance != nil {
		c.onAdvance(t)
	}
	return t, true
}

// SetCursor moves the cursor to i, as when the user swipes to a card.
// Out-of-range positions wrap.
func (c *Carousel) SetCursor(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.featured)
	if n == 0 {
		return
	}
	c.cursor = ((i % n) + n) % n
}

// Cursor returns the current position.
func (c *Carousel) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Current returns the article at the cursor, if any.
func (c *Carousel) Current() (entities.Article, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.featured) == 0 {
		return entities.Article{}, false
	}
	return c.featured[c.cursor], true
}

// Len returns the size of the featured set.
func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.featured)
}

// SetFeatured replaces the featured set, as when the library is loaded
// after the carousel was created. The cursor is kept if it still points
// inside the new set and reset to 0 otherwise.
func (c *Carousel) SetFeatured(featured []entities.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.featured = featured
	if c.cursor >= len(featured) {
		c.cursor = 0
	}
}

// Config returns the effective timing configuration.
func (c *Carousel) Config() CarouselConfig {
	return c.cfg
}

// Running reports whether the timer is active.
func (c *Carousel) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started && !c.stopped
}
