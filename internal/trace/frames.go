package trace

// FrameQueue collects animation-frame callbacks until Flush, standing in for
// the browser's frame loop.
type FrameQueue struct {
	pending []func()
}

func (q *FrameQueue) RequestAnimationFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

func (q *FrameQueue) Pending() int { return len(q.pending) }

// Flush runs the callbacks queued so far and returns how many ran. Callbacks
// queued while flushing wait for the next frame.
func (q *FrameQueue) Flush() int {
	pending := q.pending
	q.pending = nil
	for _, fn := range pending {
		fn()
	}
	return len(pending)
}
