package config

const (
	// DefaultDatabasePath is the SQLite file holding the books table
	DefaultDatabasePath = "database.db"

	// DefaultPort is the HTTP listen port
	DefaultPort = 3000
)
