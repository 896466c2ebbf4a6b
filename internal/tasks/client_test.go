package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "app-tasks.db"), TasksDBPath(filepath.Join("data", "app.db")))
	assert.Equal(t, "claritybreak-tasks", TasksDBPath("claritybreak"))
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(filepath.Join(tmpDir, "test-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")

	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close(), "second close should be a no-op")
}

func TestClientStartStop(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)
	assert.Eventually(t, client.Running, time.Second, 10*time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
	assert.False(t, client.Running())
	assert.True(t, client.Stop(stopCtx), "stopping twice should be harmless")
}

// TestTask is a simple task for testing
type TestTask struct {
	Value string `json:"value"`
}

func (t TestTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "test_task",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
	}
}

func TestTaskEnqueue(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	executed := make(chan string, 1)
	client.Register(backlite.NewQueue(func(ctx context.Context, task TestTask) error {
		executed <- task.Value
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(TestTask{Value: "hello"}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case val := <-executed:
		assert.Equal(t, "hello", val)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestBootEventTaskConfig(t *testing.T) {
	cfg := BootEventTask{}.Config()

	assert.Equal(t, "boot", cfg.Name)
	assert.Equal(t, 1, cfg.MaxAttempts, "boot events must not be retried")
	assert.NotNil(t, cfg.Retention)
}

func TestCleanupSearchHistoryTaskConfig(t *testing.T) {
	cfg := CleanupSearchHistoryTask{}.Config()

	assert.Equal(t, "cleanup_search_history", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

type fakeListener struct {
	calls atomic.Int32
	err   error
	done  chan struct{}
}

func (l *fakeListener) OnBootCompleted(ctx context.Context) error {
	l.calls.Add(1)
	if l.done != nil {
		l.done <- struct{}{}
	}
	return l.err
}

func TestBootEventProcessor(t *testing.T) {
	t.Run("calls listener for boot event", func(t *testing.T) {
		l := &fakeListener{}
		err := BootEventProcessor(l)(context.Background(), BootEventTask{Channel: "clarity_break/boot", Event: BootEventName})
		require.NoError(t, err)
		assert.Equal(t, int32(1), l.calls.Load())
	})

	t.Run("ignores unknown events", func(t *testing.T) {
		l := &fakeListener{}
		err := BootEventProcessor(l)(context.Background(), BootEventTask{Event: "onShutdown"})
		require.NoError(t, err)
		assert.Equal(t, int32(0), l.calls.Load())
	})

	t.Run("wraps listener errors", func(t *testing.T) {
		l := &fakeListener{err: errors.New("store locked")}
		err := BootEventProcessor(l)(context.Background(), BootEventTask{Event: BootEventName})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store locked")
	})

	t.Run("fails without listener", func(t *testing.T) {
		err := BootEventProcessor(nil)(context.Background(), BootEventTask{Event: BootEventName})
		assert.Error(t, err)
	})
}

type fakePruner struct {
	retention time.Duration
}

func (p *fakePruner) DeleteOlderThan(retention time.Duration) (int64, error) {
	p.retention = retention
	return 3, nil
}

func TestCleanupSearchHistoryProcessor(t *testing.T) {
	p := &fakePruner{}

	require.NoError(t, CleanupSearchHistoryProcessor(p)(context.Background(), CleanupSearchHistoryTask{RetentionDays: 7}))
	assert.Equal(t, 7*24*time.Hour, p.retention)

	require.NoError(t, CleanupSearchHistoryProcessor(p)(context.Background(), CleanupSearchHistoryTask{}))
	assert.Equal(t, 90*24*time.Hour, p.retention)

	assert.Error(t, CleanupSearchHistoryProcessor(nil)(context.Background(), CleanupSearchHistoryTask{}))
}

// The boot bridge process enqueues through its own short-lived dispatcher;
// the server process picks the event up from the shared queue database.
func TestBootDispatcher_DeliversToListener(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")

	dispatcher, err := OpenBootDispatcher(dbPath, DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, dispatcher.Send(context.Background(), "clarity_break/boot", BootEventName))
	require.NoError(t, dispatcher.Close())
	require.NoError(t, dispatcher.Close())

	assert.Error(t, dispatcher.Send(context.Background(), "clarity_break/boot", BootEventName), "closed dispatcher must refuse to send")

	server, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	defer server.Close()

	listener := &fakeListener{done: make(chan struct{}, 1)}
	server.Register(NewBootEventQueue(listener))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go server.Start(ctx)

	select {
	case <-listener.done:
	case <-time.After(5 * time.Second):
		t.Fatal("boot event was not delivered within timeout")
	}
	assert.Equal(t, int32(1), listener.calls.Load())
}

func TestBootDispatcher_BorrowedClientStaysOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	defer client.Close()
	client.Register(NewBootEventQueue(&fakeListener{}))

	d := NewBootDispatcher(client)
	require.NoError(t, d.Send(context.Background(), "clarity_break/boot", BootEventName))
	require.NoError(t, d.Close())

	// The borrowed client still works after the dispatcher is closed.
	_, err = client.Add(BootEventTask{Event: BootEventName}).Save()
	assert.NoError(t, err)
}

// A boot-completed run while the server is already idle must still reach
// the server's listener.
func TestBootDispatcher_DeliversToRunningServer(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")

	cfg := DefaultConfig()
	cfg.PollInterval = time.Second

	server, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	defer server.Close()

	listener := &fakeListener{done: make(chan struct{}, 1)}
	server.Register(NewBootEventQueue(listener))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	server.Start(ctx)
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer stopCancel()
		server.Stop(stopCtx)
	}()

	// Let the startup fetch drain so the dispatcher goes idle.
	time.Sleep(300 * time.Millisecond)

	dispatcher, err := OpenBootDispatcher(dbPath, DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, dispatcher.Send(context.Background(), "clarity_break/boot", BootEventName))
	require.NoError(t, dispatcher.Close())

	select {
	case <-listener.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("boot event queued by another client never reached the server (calls=%d)", listener.calls.Load())
	}
	assert.Equal(t, int32(1), listener.calls.Load())
}

func TestClientPollingDisabled(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")

	cfg := DefaultConfig()
	cfg.PollInterval = 0

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client.Start(ctx)

	client.mu.RLock()
	assert.Nil(t, client.pollCancel)
	client.mu.RUnlock()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, client.Stop(stopCtx))
}
