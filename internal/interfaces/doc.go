// Package interfaces holds compile-time checks tying concrete types to the
// narrow interfaces their consumers declare.
//
// # Data Access
//
//   - BookStore (internal/http/stores.go): CRUD over books, implemented by
//     books.Repository.
//   - Pinger (internal/http/stores.go): connection health, implemented by
//     database.Database and tasks.Client.
//
// # Audit Trail
//
//   - AuditReader (internal/http/stores.go): paginated event queries,
//     implemented by audit.Service.
//   - AuditEventCleaner (internal/tasks/cleanup_audit.go): retention deletes,
//     implemented by audit.Service.
//
// # Background Work
//
//   - TaskEnqueuer (internal/scheduler/audit_cleanup.go): persists backlite
//     tasks, implemented by tasks.Client.
//   - CleanupTrigger (internal/http/stores.go): on-demand retention run,
//     implemented by scheduler.AuditCleanupScheduler.
//
// Interfaces live next to the package that consumes them. Adding a new
// implementation means adding a line to checks.go.
package interfaces
