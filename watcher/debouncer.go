package watcher

import (
	"sort"
	"sync"
	"time"
)

// Op is the kind of change seen on disk.
type Op int

const (
	OpCreate Op = iota
	OpWrite
	OpRemove
	OpRename
)

func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	}
	return "unknown"
}

// Event is a change to one file, by slash-separated path relative to the root.
type Event struct {
	Rel string
	Op  Op
}

// Debouncer coalesces events until no new event has arrived for the
// interval, then emits them as one batch sorted by path. Later events for a
// path replace earlier ones.
type Debouncer struct {
	interval time.Duration
	output   chan []Event

	mu      sync.Mutex
	pending map[string]Event
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		output:   make(chan []Event, 16),
		pending:  make(map[string]Event),
	}
}

// Output delivers batches. It is never closed.
func (d *Debouncer) Output() <-chan []Event {
	return d.output
}

// Add records an event and restarts the quiet interval.
func (d *Debouncer) Add(rel string, op Op) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[rel] = Event{Rel: rel, Op: op}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

// Stop discards pending events. Later Adds are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = make(map[string]Event)
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	batch := make([]Event, 0, len(d.pending))
	for _, ev := range d.pending {
		batch = append(batch, ev)
	}
	d.pending = make(map[string]Event)
	d.mu.Unlock()

	sort.Slice(batch, func(i, j int) bool { return batch[i].Rel < batch[j].Rel })
	d.output <- batch
}
