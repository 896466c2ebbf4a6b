package tasks

import "time"

// Config holds configuration for the task queue.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 1
	Workers int

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often to clean up completed tasks. Default: 1h
	CleanupInterval time.Duration

	// PollInterval is how often the dispatcher re-checks the database for
	// tasks added by other processes. Zero disables polling. Default: 2s
	PollInterval time.Duration

	// HistoryRetentionDays is passed to the search history cleanup task. Default: 90
	HistoryRetentionDays int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:              1,
		ReleaseAfter:         15 * time.Minute,
		CleanupInterval:      1 * time.Hour,
		PollInterval:         2 * time.Second,
		HistoryRetentionDays: 90,
	}
}
