package live

import (
	"sync"
	"time"

	"github.com/schedlens/schedlens/internal/metrics"
)

// Latest is a thread-safe holder for the most recent computation result.
type Latest struct {
	mu        sync.RWMutex
	name      string
	res       *metrics.Result
	updatedAt time.Time
	now       func() time.Time // injectable for deterministic tests
}

// NewLatest returns an empty holder.
func NewLatest() *Latest {
	return &Latest{now: time.Now}
}

// Set replaces the held result. Callers must not modify res afterwards.
func (l *Latest) Set(name string, res *metrics.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.name = name
	l.res = res
	l.updatedAt = l.now()
}

// Get returns the held result and when it was computed. ok is false until
// the first successful computation.
func (l *Latest) Get() (name string, res *metrics.Result, updatedAt time.Time, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.name, l.res, l.updatedAt, l.res != nil
}
