package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatchedFile(t *testing.T, debounce time.Duration, callback func(string)) (*FileWatcher, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "points.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\t2\n"), 0o644))

	fw, err := NewFileWatcher(debounce, nil)
	require.NoError(t, err)
	t.Cleanup(func() { fw.Close() })

	require.NoError(t, fw.Watch([]string{path}, callback))

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	return fw, abs
}

func TestDebounce(t *testing.T) {
	var calls atomic.Int32
	fw, path := newWatchedFile(t, 50*time.Millisecond, func(string) { calls.Add(1) })

	for i := 0; i < 5; i++ {
		fw.handleFileChange(path)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestUnwatchedFileIgnored(t *testing.T) {
	var calls atomic.Int32
	fw, _ := newWatchedFile(t, time.Millisecond, func(string) { calls.Add(1) })

	fw.handleFileChange("/not/watched.txt")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestRunDetectsWrite(t *testing.T) {
	changed := make(chan string, 1)
	fw, path := newWatchedFile(t, 20*time.Millisecond, func(p string) {
		select {
		case changed <- p:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fw.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("3\t4\n"), 0o644))

	select {
	case p := <-changed:
		assert.Equal(t, path, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change callback")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRunDetectsReplaceAndLaterWrites(t *testing.T) {
	changed := make(chan string, 10)
	fw, path := newWatchedFile(t, 20*time.Millisecond, func(p string) { changed <- p })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fw.Run(ctx)

	expectChange := func(step string) {
		t.Helper()
		select {
		case p := <-changed:
			assert.Equal(t, path, p)
		case <-time.After(5 * time.Second):
			t.Fatalf("no change callback after %s", step)
		}
	}

	tmp := filepath.Join(filepath.Dir(path), "points.txt.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("5\t6\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	expectChange("rename")

	// let the debounce of the temp file events settle
	time.Sleep(100 * time.Millisecond)
	for len(changed) > 0 {
		<-changed
	}

	require.NoError(t, os.WriteFile(path, []byte("7\t8\n"), 0o644))
	expectChange("write")
}

func TestSiblingFilesIgnored(t *testing.T) {
	var calls atomic.Int32
	fw, path := newWatchedFile(t, 10*time.Millisecond, func(string) { calls.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fw.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("1\t1\n"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
