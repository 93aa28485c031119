package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

const (
	// DefaultAuditRetentionDays applies when a task carries no retention.
	DefaultAuditRetentionDays = 30

	auditRetentionQueue = "audit_retention"
)

// Trigger records what enqueued a retention run.
type Trigger string

const (
	TriggerSchedule Trigger = "schedule"
	TriggerManual   Trigger = "manual"
)

var errNoCleaner = errors.New("audit event cleaner not configured")

// AuditEventCleaner deletes audit events older than a retention window.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// CleanupAuditEventsTask is one retention run over the audit trail.
type CleanupAuditEventsTask struct {
	RetentionDays int     `json:"retention_days"`
	Trigger       Trigger `json:"trigger,omitempty"`
}

// Retention returns the window to keep, falling back to the default for non-positive values.
func (t CleanupAuditEventsTask) Retention() time.Duration {
	days := t.RetentionDays
	if days <= 0 {
		days = DefaultAuditRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	// A missed run is harmless; the next one catches up.
	return backlite.QueueConfig{
		Name:        auditRetentionQueue,
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration: 7 * 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupAuditEventsProcessor builds the worker for retention runs.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return errNoCleaner
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		retention := task.Retention()
		deleted, err := cleaner.DeleteOldEvents(retention)
		if err != nil {
			return fmt.Errorf("delete audit events older than %s: %w", retention, err)
		}

		trigger := task.Trigger
		if trigger == "" {
			trigger = TriggerManual
		}
		log.Printf("[TASK] Audit retention (%s): removed %d events older than %s", trigger, deleted, retention)
		return nil
	}
}

// NewCleanupAuditEventsQueue wraps the processor in a backlite queue.
func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner))
}
