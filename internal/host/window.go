package host

import (
	"sort"
	"time"
)

// FrameFunc is called once on the next frame.
type FrameFunc func(now time.Time)

// FrameID identifies a pending frame request.
type FrameID uint64

// TimerID identifies a timeout or interval.
type TimerID uint64

type frameRequest struct {
	id FrameID
	fn FrameFunc
}

type timer struct {
	id       TimerID
	due      time.Time
	interval time.Duration // zero for one-shot timers
	fn       func()
}

// Window is the global listener namespace (keys, resize, bubbled pointer
// events) plus the frame scheduler and timers, all driven by the host clock.
type Window struct {
	*Target

	now      time.Time
	frameSeq FrameID
	frames   []frameRequest
	running  map[FrameID]struct{} // requests of the frame in progress
	timerSeq TimerID
	timers   map[TimerID]*timer
}

func newWindow(now time.Time) *Window {
	return &Window{
		Target: newTarget("window"),
		now:    now,
		timers: make(map[TimerID]*timer),
	}
}

// Now returns the time of the current frame.
func (w *Window) Now() time.Time {
	return w.now
}

// RequestFrame schedules fn to run once on the next frame.
// Requests made while a frame is running are deferred to the following one.
func (w *Window) RequestFrame(fn FrameFunc) FrameID {
	w.frameSeq++
	w.frames = append(w.frames, frameRequest{id: w.frameSeq, fn: fn})
	return w.frameSeq
}

// CancelFrame removes a pending frame request. Cancellation is immediate:
// a cancelled request never runs, even if the current frame is in progress.
func (w *Window) CancelFrame(id FrameID) {
	delete(w.running, id)
	for i, f := range w.frames {
		if f.id == id {
			w.frames = append(w.frames[:i], w.frames[i+1:]...)
			return
		}
	}
}

// PendingFrames returns the number of outstanding frame requests.
func (w *Window) PendingFrames() int {
	return len(w.frames) + len(w.running)
}

// SetTimeout runs fn once after d has elapsed on the host clock.
func (w *Window) SetTimeout(d time.Duration, fn func()) TimerID {
	return w.addTimer(d, 0, fn)
}

// SetInterval runs fn every d until cleared.
func (w *Window) SetInterval(d time.Duration, fn func()) TimerID {
	if d <= 0 {
		d = time.Millisecond
	}
	return w.addTimer(d, d, fn)
}

func (w *Window) addTimer(d, interval time.Duration, fn func()) TimerID {
	w.timerSeq++
	w.timers[w.timerSeq] = &timer{
		id:       w.timerSeq,
		due:      w.now.Add(d),
		interval: interval,
		fn:       fn,
	}
	return w.timerSeq
}

// ClearTimer cancels a timeout or interval. Clearing twice is harmless.
func (w *Window) ClearTimer(id TimerID) {
	delete(w.timers, id)
}

// ActiveTimers returns the number of timers that have not fired or been
// cleared.
func (w *Window) ActiveTimers() int {
	return len(w.timers)
}

// advance moves the clock to now, fires due timers in deadline order and
// then runs the frame requests that were pending when the frame began.
func (w *Window) advance(now time.Time) {
	if now.After(w.now) {
		w.now = now
	}
	w.fireTimers()

	batch := w.frames
	w.frames = nil
	w.running = make(map[FrameID]struct{}, len(batch))
	for _, f := range batch {
		w.running[f.id] = struct{}{}
	}
	for _, f := range batch {
		if _, ok := w.running[f.id]; !ok {
			continue
		}
		delete(w.running, f.id)
		f.fn(w.now)
	}
	w.running = nil
}

func (w *Window) fireTimers() {
	var due []*timer
	for _, t := range w.timers {
		if !t.due.After(w.now) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].id < due[j].id
		}
		return due[i].due.Before(due[j].due)
	})

	for _, t := range due {
		// an earlier callback may have cleared this timer
		if _, ok := w.timers[t.id]; !ok {
			continue
		}
		if t.interval > 0 {
			t.due = w.now.Add(t.interval)
		} else {
			delete(w.timers, t.id)
		}
		t.fn()
	}
}
