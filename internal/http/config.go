package http

import (
	"github.com/mrlokans/books-api/internal/audit"
	"github.com/mrlokans/books-api/internal/readonly"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	BookStore BookStore
	Database  Pinger

	// Background task queue (optional), reported by /health
	TaskQueue Pinger

	// Audit trail (optional)
	AuditService   *audit.Service
	CleanupTrigger CleanupTrigger

	// Read-only mode (optional)
	ReadOnly *readonly.Middleware

	// CORS origins; "*" allows any origin, empty disables CORS headers
	CORSAllowedOrigins []string

	// Application info
	Version string
}
