package live

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the trace file at path and calls onChange after each
// burst of write or create events, debounced by the given duration. It
// runs until ctx is cancelled.
//
// onChange is invoked from Watch's goroutine; callers that need
// concurrency safety must provide it themselves.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("live: watching trace file", "path", path, "debounce", debounce)

	// timerC is nil while no recomputation is pending.
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only react to write or create events. Editors and simulators
			// often write via rename (atomic save), so also catch Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if timerC != nil && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(debounce)
			timerC = timer.C

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case <-timerC:
			timerC = nil
			slog.Debug("live: trace file changed, recomputing", "path", path)
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("live: watcher error", "err", err)
		}
	}
}
