// Package dedupe remembers recently delivered update IDs so redelivered
// updates are processed once.
package dedupe

import (
	"container/list"
	"sync"
	"time"
)

type entry struct {
	id     int64
	seenAt time.Time
}

// Window is a size-bounded set of update IDs, each remembered for ttl.
// The oldest ID is evicted when the window is full.
type Window struct {
	mu      sync.Mutex
	ids     map[int64]*list.Element
	order   *list.List
	ttl     time.Duration
	maxSize int
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New returns a Window and starts a sweeper that drops expired IDs every sweep.
func New(ttl time.Duration, maxSize int, sweep time.Duration) *Window {
	w := &Window{
		ids:     make(map[int64]*list.Element),
		order:   list.New(),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if sweep > 0 {
		w.wg.Add(1)
		go w.sweepLoop(sweep)
	}
	return w
}

// Seen reports whether id was already recorded within ttl. A new or expired id
// is recorded and reported as unseen.
func (w *Window) Seen(id int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if el, ok := w.ids[id]; ok {
		e := el.Value.(*entry)
		if now.Sub(e.seenAt) < w.ttl {
			return true
		}
		e.seenAt = now
		w.order.MoveToBack(el)
		return false
	}

	if w.maxSize > 0 && len(w.ids) >= w.maxSize {
		if front := w.order.Front(); front != nil {
			delete(w.ids, front.Value.(*entry).id)
			w.order.Remove(front)
		}
	}
	w.ids[id] = w.order.PushBack(&entry{id: id, seenAt: now})
	return false
}

// Len returns the number of remembered IDs.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.ids)
}

func (w *Window) sweepLoop(every time.Duration) {
	defer w.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.sweep()
		case <-w.stop:
			return
		}
	}
}

// sweep drops expired IDs. The list is in seenAt order, so it stops at the first live one.
func (w *Window) sweep() {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	for el := w.order.Front(); el != nil; {
		e := el.Value.(*entry)
		if now.Sub(e.seenAt) < w.ttl {
			return
		}
		next := el.Next()
		w.order.Remove(el)
		delete(w.ids, e.id)
		el = next
	}
}

// Close stops the sweeper and waits for it to exit. Safe to call more than once.
func (w *Window) Close() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}
