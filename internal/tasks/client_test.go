package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDBPath(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"database.db", "database-tasks.db"},
		{"data/books.db", filepath.Join("data", "books-tasks.db")},
		{"/var/lib/books", "/var/lib/books-tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, QueueDBPath(tt.in))
		})
	}
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(filepath.Join(tmpDir, "test-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")

	assert.NoError(t, client.Ping())
	assert.NoError(t, client.Close())
	assert.Error(t, client.Ping())
}

func TestClientStartStop(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
}

func TestClientStopWithoutStart(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	assert.True(t, client.Stop(context.Background()))
}

type fakeCleaner struct {
	retention time.Duration
	deleted   int64
	err       error
	calls     chan struct{}
}

func (f *fakeCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	f.retention = retention
	if f.calls != nil {
		f.calls <- struct{}{}
	}
	return f.deleted, f.err
}

func TestCleanupAuditEventsTaskConfig(t *testing.T) {
	cfg := CleanupAuditEventsTask{}.Config()

	assert.Equal(t, "audit_retention", cfg.Name)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.Timeout)
	require.NotNil(t, cfg.Retention)
	assert.Equal(t, 7*24*time.Hour, cfg.Retention.Duration)
}

func TestCleanupAuditEventsTask_Retention(t *testing.T) {
	tests := []struct {
		days int
		want time.Duration
	}{
		{7, 7 * 24 * time.Hour},
		{0, DefaultAuditRetentionDays * 24 * time.Hour},
		{-5, DefaultAuditRetentionDays * 24 * time.Hour},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanupAuditEventsTask{RetentionDays: tt.days}.Retention())
	}
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	t.Run("uses task retention", func(t *testing.T) {
		cleaner := &fakeCleaner{deleted: 4}
		process := CleanupAuditEventsProcessor(cleaner)

		task := CleanupAuditEventsTask{RetentionDays: 7, Trigger: TriggerSchedule}
		require.NoError(t, process(context.Background(), task))
		assert.Equal(t, 7*24*time.Hour, cleaner.retention)
	})

	t.Run("wraps cleaner errors", func(t *testing.T) {
		cleaner := &fakeCleaner{err: errors.New("disk full")}
		process := CleanupAuditEventsProcessor(cleaner)

		err := process(context.Background(), CleanupAuditEventsTask{RetentionDays: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("skips work on a cancelled context", func(t *testing.T) {
		cleaner := &fakeCleaner{}
		process := CleanupAuditEventsProcessor(cleaner)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, process(ctx, CleanupAuditEventsTask{}), context.Canceled)
		assert.Zero(t, cleaner.retention)
	})

	t.Run("fails without cleaner", func(t *testing.T) {
		process := CleanupAuditEventsProcessor(nil)
		assert.ErrorIs(t, process(context.Background(), CleanupAuditEventsTask{}), errNoCleaner)
	})
}

func TestCleanupAuditEventsEnqueue(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	cleaner := &fakeCleaner{calls: make(chan struct{}, 1)}
	client.Register(NewCleanupAuditEventsQueue(cleaner))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Enqueue(CleanupAuditEventsTask{RetentionDays: 3, Trigger: TriggerManual})
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case <-cleaner.calls:
		assert.Equal(t, 3*24*time.Hour, cleaner.retention)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	client.Stop(stopCtx)
}

var _ backlite.Task = CleanupAuditEventsTask{}
