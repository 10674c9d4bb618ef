package audit

import (
	"context"
	"sync"
)

// DefaultCapacity is the number of entries the in-memory log retains
const DefaultCapacity = 1000

// subscriberBuffer is the per-subscriber channel depth; entries are
// dropped for a subscriber that falls this far behind
const subscriberBuffer = 16

// Log is an in-memory Recorder. It keeps the most recent entries in a
// ring buffer and broadcasts each recorded entry to subscribers.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
	subs    map[chan Entry]struct{}
}

// Ensure Log implements Recorder
var _ Recorder = (*Log)(nil)

// NewLog creates a Log retaining up to capacity entries.
// A non-positive capacity falls back to DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		entries: make([]Entry, capacity),
		subs:    make(map[chan Entry]struct{}),
	}
}

// Record stores the entry and fans it out to subscribers.
// Slow subscribers miss entries rather than block the gate.
func (l *Log) Record(_ context.Context, entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[l.next] = entry
	l.next++
	if l.next == len(l.entries) {
		l.next = 0
		l.full = true
	}

	for ch := range l.subs {
		select {
		case ch <- entry:
		default:
		}
	}
}

// Recent returns up to n entries, newest first
func (l *Log) Recent(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := l.next
	if l.full {
		count = len(l.entries)
	}
	if n > count {
		n = count
	}
	if n <= 0 {
		return nil
	}

	out := make([]Entry, 0, n)
	idx := l.next
	for i := 0; i < n; i++ {
		idx--
		if idx < 0 {
			idx = len(l.entries) - 1
		}
		out = append(out, l.entries[idx])
	}
	return out
}

// Subscribe registers a listener for future entries. The returned
// cancel function must be called to release the subscription.
func (l *Log) Subscribe() (<-chan Entry, func()) {
	ch := make(chan Entry, subscriberBuffer)

	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		if _, ok := l.subs[ch]; ok {
			delete(l.subs, ch)
			close(ch)
		}
		l.mu.Unlock()
	}
	return ch, cancel
}
