package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, path)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func startWatcher(t *testing.T, paths []string, debounce time.Duration, rec *recorder) {
	t.Helper()

	w, err := New(paths, debounce, rec.record)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "catalog.yml")
	require.NoError(t, os.WriteFile(catalog, []byte("serializers: {}\n"), 0600))

	rec := &recorder{}
	startWatcher(t, []string{catalog}, 20*time.Millisecond, rec)

	require.NoError(t, os.WriteFile(catalog, []byte("serializers: {S: {views: {}}}\n"), 0600))

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, 3*time.Second, 10*time.Millisecond)

	abs, _ := filepath.Abs(catalog)
	assert.Equal(t, abs, rec.snapshot()[0])
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "catalog.yml")
	require.NoError(t, os.WriteFile(catalog, []byte(""), 0600))

	rec := &recorder{}
	startWatcher(t, []string{catalog}, 300*time.Millisecond, rec)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(catalog, []byte("serializers: {}\n"), 0600))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) >= 1
	}, 3*time.Second, 20*time.Millisecond)
	time.Sleep(500 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 1)
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "catalog.yml")
	require.NoError(t, os.WriteFile(catalog, []byte(""), 0600))

	rec := &recorder{}
	startWatcher(t, []string{catalog}, 20*time.Millisecond, rec)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))
	time.Sleep(300 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "catalog.yml")}, 0, nil)
	assert.Error(t, err)
}
