package queue

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/RohithRamesh28/onlycrawls/pkg/models"
)

// Frontier is a thread-safe FIFO queue of work items awaiting dispatch.
// It does not deduplicate internally; the scheduler's visited set decides
// whether a drained entry is actually dispatched, so the same URL may sit
// in the frontier more than once when discovered by concurrent workers.
type Frontier struct {
	mu    sync.Mutex
	items []*models.WorkItem
	log   *logrus.Entry
}

// NewFrontier creates an empty frontier
func NewFrontier(log *logrus.Entry) *Frontier {
	return &Frontier{log: log}
}

// Add appends a work item to the back of the queue
func (f *Frontier) Add(item *models.WorkItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, item)
	f.log.Debugf("Frontier: enqueued %s (depth %d), len=%d", item.URL, item.Depth, len(f.items))
}

// DrainBatch removes and returns up to max items from the front of the
// queue, preserving FIFO order. Returns nil when the frontier is empty.
// One call corresponds to one scheduling round.
func (f *Frontier) DrainBatch(max int) []*models.WorkItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.items) == 0 || max <= 0 {
		return nil
	}
	n := max
	if n > len(f.items) {
		n = len(f.items)
	}
	batch := make([]*models.WorkItem, n)
	copy(batch, f.items[:n])
	remaining := len(f.items) - n
	copy(f.items, f.items[n:])
	for i := remaining; i < len(f.items); i++ {
		f.items[i] = nil // release refs held past the drain
	}
	f.items = f.items[:remaining]
	return batch
}

// Len returns the current number of queued items
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
