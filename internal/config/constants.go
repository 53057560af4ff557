package config

const (
	DefaultDatabasePath = "./dealdesk.db"

	// DefaultMaxImportBytes caps the size of an uploaded export document.
	DefaultMaxImportBytes = 32 << 20 // 32 MiB
)
