package constants

import "time"

const (
	AppName           = "agenda"
	DefaultConfigPath = "~/.config/agenda/agenda.db"
	Version           = "v0.3.0"

	// MemoryStorePath selects the in-memory backend instead of a file.
	MemoryStorePath = ":memory:"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "agenda-"

	// Lock constants for the JSON file backend
	LockTimeout       = 3 * time.Second
	LockRetryInterval = 100 * time.Millisecond
)
