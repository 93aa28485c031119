package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/books-api/internal/entities"
)

type AuditController struct {
	reader  AuditReader
	cleanup CleanupTrigger
}

// NewAuditController creates the audit controller. cleanup may be nil when
// the task queue is disabled.
func NewAuditController(reader AuditReader, cleanup CleanupTrigger) *AuditController {
	return &AuditController{reader: reader, cleanup: cleanup}
}

func pageParams(c *gin.Context) (limit, offset int, ok bool) {
	if limit, ok = queryInt(c, "limit", 50); !ok {
		return 0, 0, false
	}
	if offset, ok = queryInt(c, "offset", 0); !ok {
		return 0, 0, false
	}
	if limit == 0 || limit > 500 {
		limit = 50
	}
	return limit, offset, true
}

func respondPage(c *gin.Context, data any, count int, total int64, limit, offset int) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    data,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+count) < total,
	})
}

// ListEvents returns recent audit events, newest first, optionally of one type.
// GET /api/audit?type=delete
func (ac *AuditController) ListEvents(c *gin.Context) {
	limit, offset, ok := pageParams(c)
	if !ok {
		return
	}

	var (
		events []entities.AuditEvent
		total  int64
		err    error
	)
	if raw := c.Query("type"); raw != "" {
		eventType, known := entities.ParseAuditEventType(raw)
		if !known {
			respondBadRequest(c, "invalid type")
			return
		}
		events, total, err = ac.reader.GetEventsByType(eventType, limit, offset)
	} else {
		events, total, err = ac.reader.GetEvents(limit, offset)
	}
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}
	respondPage(c, events, len(events), total, limit, offset)
}

// BookHistory returns the audit events of one book, including deleted ones.
// GET /api/audit/books/:id
func (ac *AuditController) BookHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	limit, offset, ok := pageParams(c)
	if !ok {
		return
	}

	events, total, err := ac.reader.GetEventsForBook(id, limit, offset)
	if err != nil {
		respondInternalError(c, err, "book audit history")
		return
	}
	respondPage(c, events, len(events), total, limit, offset)
}

// RunCleanup enqueues an audit retention run.
// POST /api/audit/cleanup
func (ac *AuditController) RunCleanup(c *gin.Context) {
	if ac.cleanup == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task queue is disabled"})
		return
	}

	taskID, err := ac.cleanup.RunNow()
	if err != nil {
		respondInternalError(c, err, "enqueue audit cleanup")
		return
	}
	respondAccepted(c, "Audit cleanup queued", gin.H{"task_id": taskID})
}
