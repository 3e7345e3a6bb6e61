package particlefx

import "time"

// FrameHandle identifies a pending frame callback. The zero handle is never
// issued.
type FrameHandle uint64

type FrameCallback func(now time.Time)

type frameRequest struct {
	handle FrameHandle
	cb     FrameCallback
}

// FrameScheduler runs one-shot callbacks once per rendered frame, the way a
// browser runs animation frame callbacks. A callback that wants to keep
// animating requests itself again; that request runs on the next frame.
type FrameScheduler struct {
	next    FrameHandle
	pending []frameRequest
	// handles of the batch being run, cleared when cancelled mid-frame
	running map[FrameHandle]bool
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

func (fs *FrameScheduler) Request(cb FrameCallback) FrameHandle {
	fs.next++
	fs.pending = append(fs.pending, frameRequest{handle: fs.next, cb: cb})
	return fs.next
}

// Cancel drops a pending callback. Unknown or already run handles are ignored.
func (fs *FrameScheduler) Cancel(h FrameHandle) {
	delete(fs.running, h)
	for i, req := range fs.pending {
		if req.handle == h {
			fs.pending = append(fs.pending[:i:i], fs.pending[i+1:]...)
			return
		}
	}
}

// RunFrame runs every callback pending at the start of the call and returns
// how many ran. Callbacks cancelled by an earlier callback of the same frame
// are skipped.
func (fs *FrameScheduler) RunFrame(now time.Time) int {
	batch := fs.pending
	fs.pending = nil
	fs.running = make(map[FrameHandle]bool, len(batch))
	for _, req := range batch {
		fs.running[req.handle] = true
	}
	defer func() { fs.running = nil }()

	ran := 0
	for _, req := range batch {
		if !fs.running[req.handle] {
			continue
		}
		delete(fs.running, req.handle)
		req.cb(now)
		ran++
	}
	return ran
}

func (fs *FrameScheduler) Pending() int {
	return len(fs.pending)
}
