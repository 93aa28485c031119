package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/books-api/internal/database/audit"
	"github.com/mrlokans/books-api/internal/entities"
)

// Service provides high-level audit logging for book mutations.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event synchronously.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until all pending LogAsync writes have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// RequestInfo carries per-request data copied onto audit events.
type RequestInfo struct {
	RequestID string
	IPAddress string
}

// LogCreate records a book creation.
func (s *Service) LogCreate(book *entities.Book, req RequestInfo) {
	s.LogAsync(s.bookEvent(entities.AuditEventCreate, "book_create", "Created book", book, nil, req))
}

// LogUpdate records a book update together with the columns that were supplied.
func (s *Service) LogUpdate(book *entities.Book, fields map[string]any, req RequestInfo) {
	s.LogAsync(s.bookEvent(entities.AuditEventUpdate, "book_update", "Updated book", book, fields, req))
}

// LogDelete records a book deletion.
func (s *Service) LogDelete(book *entities.Book, req RequestInfo) {
	s.LogAsync(s.bookEvent(entities.AuditEventDelete, "book_delete", "Deleted book", book, nil, req))
}

func (s *Service) bookEvent(eventType entities.AuditEventType, action, verb string, book *entities.Book, fields map[string]any, req RequestInfo) *entities.AuditEvent {
	id := book.ID
	event := &entities.AuditEvent{
		EventType:   eventType,
		Action:      action,
		Description: truncate(fmt.Sprintf("%s %d: %s", verb, book.ID, book.Autor), 500),
		EntityType:  "book",
		EntityID:    &id,
		RequestID:   req.RequestID,
		IPAddress:   req.IPAddress,
		Status:      entities.AuditStatusSuccess,
	}

	if len(fields) > 0 {
		if mdBytes, err := json.Marshal(fields); err == nil {
			event.Metadata = string(mdBytes)
		}
	}

	return event
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves paginated audit events of a single type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// GetEventsForBook retrieves the audit history of one book.
func (s *Service) GetEventsForBook(bookID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsForBook(bookID, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
