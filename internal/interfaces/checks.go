package interfaces

// Compile-time checks that concrete types satisfy the interfaces their
// consumers declare.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/books-api/internal/audit"
	"github.com/mrlokans/books-api/internal/database"
	"github.com/mrlokans/books-api/internal/database/books"
	"github.com/mrlokans/books-api/internal/http"
	"github.com/mrlokans/books-api/internal/scheduler"
	"github.com/mrlokans/books-api/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookStore implementations
var _ http.BookStore = (*books.Repository)(nil)

// Pinger implementations
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ http.AuditReader = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)
var _ http.Pinger = (*tasks.Client)(nil)
var _ http.CleanupTrigger = (*scheduler.AuditCleanupScheduler)(nil)
