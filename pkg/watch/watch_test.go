package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	ch chan string
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan string, 16)}
}

func (r *recorder) fn(_ context.Context, changed string) {
	r.ch <- changed
}

func (r *recorder) next(t *testing.T) string {
	t.Helper()
	select {
	case name := <-r.ch:
		return name
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for run")
		return ""
	}
}

func start(t *testing.T, w *Watcher, r *recorder) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, r.fn) }()
	return cancel, done
}

func TestWatcher_RerunsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(file, []byte("checks: []\n"), 0o644))

	r := newRecorder()
	cancel, done := start(t, New([]string{file}, WithDebounce(20*time.Millisecond)), r)

	assert.Equal(t, "", r.next(t), "initial run")

	require.NoError(t, os.WriteFile(file, []byte("checks: [a]\n"), 0o644))
	assert.Equal(t, file, r.next(t))

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	r := newRecorder()
	cancel, done := start(t, New([]string{file}, WithDebounce(200*time.Millisecond)), r)
	r.next(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte{byte('a' + i)}, 0o644))
	}
	assert.Equal(t, file, r.next(t))

	select {
	case name := <-r.ch:
		t.Fatalf("unexpected extra run for %q", name)
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	r := newRecorder()
	cancel, done := start(t, New([]string{file}, WithDebounce(20*time.Millisecond)), r)
	r.next(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case name := <-r.ch:
		t.Fatalf("unexpected run for %q", name)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_Directory(t *testing.T) {
	dir := t.TempDir()

	r := newRecorder()
	cancel, done := start(t, New([]string{dir}, WithDebounce(20*time.Millisecond)), r)
	r.next(t)

	created := filepath.Join(dir, "new")
	require.NoError(t, os.WriteFile(created, nil, 0o644))
	assert.Equal(t, created, r.next(t))

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_NothingWatched(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "file")

	err := New([]string{missing}).Run(context.Background(), func(context.Context, string) {
		t.Fatal("fn must not run")
	})
	assert.ErrorIs(t, err, ErrNothingWatched)
}

func TestRelevant(t *testing.T) {
	targets := map[string]bool{"/a/suite.yaml": true, "/b": true}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"target write", fsnotify.Event{Name: "/a/suite.yaml", Op: fsnotify.Write}, true},
		{"sibling", fsnotify.Event{Name: "/a/other", Op: fsnotify.Write}, false},
		{"inside dir", fsnotify.Event{Name: "/b/x", Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: "/a/suite.yaml", Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: "/a/suite.yaml", Op: fsnotify.Remove}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event, targets))
		})
	}
}
