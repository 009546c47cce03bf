package recovery

import (
	"sync"
	"time"
)

// errorLogCapacity bounds the diagnostic log; oldest entries fall off
// first.
const errorLogCapacity = 50

// ErrorEntry is one recorded recovery event.
type ErrorEntry struct {
	Timestamp time.Time
	ErrorType string
	Input     string
	Action    string
}

// errorLog is a bounded FIFO of recent recovery events, independent of the
// conversation cache.
type errorLog struct {
	mu      sync.Mutex
	entries []ErrorEntry
}

func (l *errorLog) append(entry ErrorEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	if len(l.entries) > errorLogCapacity {
		l.entries = l.entries[len(l.entries)-errorLogCapacity:]
	}
}

func (l *errorLog) snapshot() []ErrorEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]ErrorEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
