package host

import "sync"

// Tasks queues completions produced off the event loop (asset loads, audio
// synthesis) so they run on the loop between frames.
type Tasks struct {
	mu    sync.Mutex
	queue []func()
}

// Post enqueues fn. Safe to call from any goroutine.
func (q *Tasks) Post(fn func()) {
	q.mu.Lock()
	q.queue = append(q.queue, fn)
	q.mu.Unlock()
}

// Drain runs every queued task and returns how many ran. Tasks posted while
// draining run on the next call.
func (q *Tasks) Drain() int {
	q.mu.Lock()
	batch := q.queue
	q.queue = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Len returns the number of queued tasks.
func (q *Tasks) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}
