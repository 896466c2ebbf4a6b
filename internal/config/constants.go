package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./claritybreak.db"

	// DefaultLibraryPath is empty: the bundled library document is used
	DefaultLibraryPath = ""
)
