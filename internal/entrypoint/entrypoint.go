package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/claritybreak/internal/boot"
	"github.com/mrlokans/claritybreak/internal/config"
	"github.com/mrlokans/claritybreak/internal/database"
	"github.com/mrlokans/claritybreak/internal/database/history"
	dbreminders "github.com/mrlokans/claritybreak/internal/database/reminders"
	"github.com/mrlokans/claritybreak/internal/entities"
	http_controllers "github.com/mrlokans/claritybreak/internal/http"
	"github.com/mrlokans/claritybreak/internal/library"
	"github.com/mrlokans/claritybreak/internal/reminders"
	"github.com/mrlokans/claritybreak/internal/tasks"
)

// libraryLoadTimeout bounds the initial library load at startup.
const libraryLoadTimeout = 10 * time.Second

type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// NewLibraryStore returns the bundled library store, or a file store when
// an override path is configured.
func NewLibraryStore(cfg config.Library) *library.Store {
	if cfg.Path != "" {
		return library.NewFileStore(cfg.Path)
	}
	return library.NewBundledStore()
}

// NewFeaturedCarousel creates a carousel that picks up the featured set of
// the first library the catalog loads.
func NewFeaturedCarousel(catalog *library.Catalog, cfg config.Carousel) *library.Carousel {
	carousel := library.NewCarousel(nil, library.CarouselConfig{
		Interval:   cfg.Interval,
		Transition: cfg.Transition,
		Easing:     cfg.Easing,
	}, nil)
	catalog.OnLoad(func(idx entities.Indexes) {
		carousel.SetFeatured(idx.Featured)
	})
	return carousel
}

// TaskConfig maps application config onto the task queue config.
func TaskConfig(cfg *config.Config) tasks.Config {
	taskCfg := tasks.DefaultConfig()
	if cfg.Tasks.Workers > 0 {
		taskCfg.Workers = cfg.Tasks.Workers
	}
	if cfg.Tasks.ReleaseAfter > 0 {
		taskCfg.ReleaseAfter = cfg.Tasks.ReleaseAfter
	}
	if cfg.Tasks.CleanupInterval > 0 {
		taskCfg.CleanupInterval = cfg.Tasks.CleanupInterval
	}
	if cfg.Tasks.PollInterval > 0 {
		taskCfg.PollInterval = cfg.Tasks.PollInterval
	}
	if cfg.History.RetentionDays > 0 {
		taskCfg.HistoryRetentionDays = cfg.History.RetentionDays
	}
	return taskCfg
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Clarity Break v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	historyRepo := history.NewRepository(db.DB)
	remindersRepo := dbreminders.NewRepository(db.DB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Library: a failed load is logged, the API answers 503 and retries
	// on the next request. The carousel is filled by whichever load succeeds.
	store := NewLibraryStore(cfg.Library)
	catalog := library.NewCatalog(store)
	carousel := NewFeaturedCarousel(catalog, cfg.Carousel)

	loadCtx, loadCancel := context.WithTimeout(ctx, libraryLoadTimeout)
	if _, err := catalog.Indexes(loadCtx); err != nil {
		log.Printf("WARNING: library %s could not be loaded: %v", store.Source(), err)
	}
	loadCancel()
	carousel.Start(ctx)

	var scheduler *reminders.Scheduler
	var bootListener tasks.BootListener = loggingBootListener{}
	if cfg.Reminders.Enabled {
		scheduler = reminders.NewScheduler(remindersRepo, reminders.LogNotifier{})
		if err := scheduler.Start(ctx); err != nil {
			log.Fatalf("Failed to start reminder scheduler: %v", err)
		}
		bootListener = scheduler
	} else {
		log.Printf("Reminder scheduler: disabled")
	}

	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskCfg := TaskConfig(cfg)

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewBootEventQueue(bootListener),
			tasks.NewCleanupSearchHistoryQueue(historyRepo),
		)
		go taskClient.Start(ctx)

		if _, err := taskClient.Add(tasks.CleanupSearchHistoryTask{RetentionDays: taskCfg.HistoryRetentionDays}).Ctx(ctx).Save(); err != nil {
			log.Printf("WARNING: failed to enqueue search history cleanup: %v", err)
		}
	}

	bridge := boot.NewBridge(newServerOpener(taskClient, bootListener), cfg.Boot.Timeout)

	routerCfg := http_controllers.RouterConfig{
		Database:           db,
		Library:            catalog,
		Carousel:           carousel,
		History:            historyRepo,
		HistoryRecentLimit: cfg.History.RecentLimit,
		Reminders:          remindersRepo,
		Boot:               bridge,
		Version:            version,
	}
	if scheduler != nil {
		routerCfg.Rescheduler = scheduler
	}
	if taskClient != nil {
		routerCfg.TaskClient = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(shutdownCtx context.Context) {
		carousel.Stop()
		if scheduler != nil {
			scheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(shutdownCtx)
		}
		cancel()
	}

	Serve(router, cfg, onShutdown)
}
