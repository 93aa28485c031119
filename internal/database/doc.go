// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and schema sync
//	├── books/           # Book CRUD operations
//	└── audit/           # Audit event storage and retention
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type built on the shared *gorm.DB:
//
//	db, err := database.NewDatabase("./database.db", logger.Warn)
//
//	booksRepo := books.NewRepository(db.DB)
//	auditRepo := audit.NewRepository(db.DB)
//
//	book, err := booksRepo.GetBookByID(1)
//
// # Interface Implementations
//
//   - books.Repository: implements http.BookStore
//   - database.Database: implements http.Pinger
//   - audit.Repository: backs audit.Service, which implements http.AuditReader
//     and tasks.AuditEventCleaner
//
// Compile-time checks live in internal/interfaces.
package database
