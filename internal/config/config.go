package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Library
		Carousel
		Tasks
		Reminders
		Boot
		History
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Library struct {
		Path string // Override for the bundled library document; empty = bundled
	}
	Carousel struct {
		Interval   time.Duration // Time between featured auto-advances (default: 5s)
		Transition time.Duration // Page transition duration (default: 600ms)
		Easing     string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
		PollInterval    time.Duration // How often to look for tasks queued by other processes
	}
	Reminders struct {
		Enabled bool
	}
	Boot struct {
		Timeout time.Duration // Upper bound for one boot event delivery
	}
	History struct {
		RetentionDays int // Days to keep searches (default: 90)
		RecentLimit   int // Default size of the recent searches list
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("library_path", DefaultLibraryPath)

	// Featured carousel defaults
	v.SetDefault("carousel_interval", "5s")
	v.SetDefault("carousel_transition", "600ms")
	v.SetDefault("carousel_easing", "ease-in-out")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_poll_interval", "2s")

	v.SetDefault("reminders_enabled", true)
	v.SetDefault("boot_timeout", "10s")

	v.SetDefault("history_retention_days", 90)
	v.SetDefault("history_recent_limit", 10)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Library: Library{
			Path: v.GetString("LIBRARY_PATH"),
		},
		Carousel: Carousel{
			Interval:   v.GetDuration("CAROUSEL_INTERVAL"),
			Transition: v.GetDuration("CAROUSEL_TRANSITION"),
			Easing:     v.GetString("CAROUSEL_EASING"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
			PollInterval:    v.GetDuration("TASK_POLL_INTERVAL"),
		},
		Reminders: Reminders{
			Enabled: v.GetBool("REMINDERS_ENABLED"),
		},
		Boot: Boot{
			Timeout: v.GetDuration("BOOT_TIMEOUT"),
		},
		History: History{
			RetentionDays: v.GetInt("HISTORY_RETENTION_DAYS"),
			RecentLimit:   v.GetInt("HISTORY_RECENT_LIMIT"),
		},
	}
}
