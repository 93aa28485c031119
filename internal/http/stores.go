package http

import "github.com/mrlokans/books-api/internal/entities"

// BookStore is the persistence surface the books routes need.
// GetBookByID returns nil, nil for a missing row.
type BookStore interface {
	GetAllBooks() ([]entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	CreateBook(book *entities.Book) error
	UpdateBook(book *entities.Book, fields map[string]any) error
	DeleteBook(id uint) error
}

// AuditReader provides read access to the audit trail.
type AuditReader interface {
	GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsForBook(bookID uint, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// CleanupTrigger enqueues an audit retention run on demand.
type CleanupTrigger interface {
	RunNow() (string, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping() error
}
