package live

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_InvokesOnChangeAfterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "execution.txt")
	if err := os.WriteFile(path, []byte("|0|1|NEW|READY|\n"), 0o644); err != nil {
		t.Fatalf("write trace: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 20*time.Millisecond, func() {
			changed <- struct{}{}
		})
	}()

	// Give the watcher a moment to register before the write.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("|5|1|RUNNING|TERMINATED|\n"), 0o644); err != nil {
		t.Fatalf("rewrite trace: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("onChange was not invoked after a write")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after context cancellation")
	}
}

func TestWatch_DebouncesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "execution.txt")
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write trace: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 32)
	go func() {
		_ = Watch(ctx, path, 150*time.Millisecond, func() {
			changed <- struct{}{}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	// A burst of writes well inside the debounce window.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("y\n"), 0o644); err != nil {
			t.Fatalf("rewrite trace: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	// The burst collapses into one invocation.
	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("onChange was not invoked after burst")
	}
	select {
	case <-changed:
		t.Error("burst of writes triggered more than one recomputation")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatch_MissingFile(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := Watch(ctx, filepath.Join(t.TempDir(), "nope.txt"), 20*time.Millisecond, func() {})
	if err == nil {
		t.Fatal("Watch on missing file: got nil error")
	}
}
