// Copyright 2020 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package timer holds the concrete future.Timer implementations: a single
// background goroutine ordering tasks on a min-heap, a bounded thread pool,
// a synchronous inline timer, and the reference-counting and
// thread-stopping wrappers around any of them.
package timer

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asmsh/future"
)

type wheelTask struct {
	at        time.Time
	period    time.Duration // 0 means one-shot
	thunk     func()
	cancelled atomic.Bool
	index     int
}

func (t *wheelTask) Cancel() { t.cancelled.Store(true) }

type taskHeap []*wheelTask

func (h taskHeap) Len() int            { return len(h) }
func (h taskHeap) Less(i, j int) bool  { return h[i].at.Before(h[j].at) }
func (h taskHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index, h[j].index = i, j }
func (h *taskHeap) Push(x interface{}) { t := x.(*wheelTask); t.index = len(*h); *h = append(*h, t) }
func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// WheelTimer is a future.Timer backed by a single background goroutine and
// a min-heap ordered by fire time, the same shape as the retrieved
// high-precision scheduler: a heap of pending tasks, a notify channel to
// wake the loop when an earlier task is scheduled, and a quit/done channel
// pair for graceful Stop. Repeats use fixed-delay semantics: the next
// firing is scheduled period after the previous one returns, not at fixed
// multiples of the original start time.
type WheelTimer struct {
	mu     sync.Mutex
	q      taskHeap
	notify chan struct{}
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewWheelTimer starts the background goroutine and returns a ready
// WheelTimer.
func NewWheelTimer() *WheelTimer {
	w := &WheelTimer{
		notify: make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *WheelTimer) ScheduleAt(at time.Time, thunk func()) future.Task {
	return w.schedule(at, 0, thunk)
}

func (w *WheelTimer) ScheduleAtEvery(at time.Time, period time.Duration, thunk func()) future.Task {
	return w.schedule(at, period, thunk)
}

func (w *WheelTimer) ScheduleEvery(period time.Duration, thunk func()) future.Task {
	return w.schedule(time.Now().Add(period), period, thunk)
}

func (w *WheelTimer) schedule(at time.Time, period time.Duration, thunk func()) future.Task {
	t := &wheelTask{at: at, period: period, thunk: thunk}
	w.mu.Lock()
	heap.Push(&w.q, t)
	w.mu.Unlock()
	w.wake()
	return t
}

func (w *WheelTimer) wake() {
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// Stop signals the background goroutine to exit and waits for it to do so.
// Pending tasks are abandoned; Stop is idempotent.
func (w *WheelTimer) Stop() {
	w.once.Do(func() { close(w.quit) })
	<-w.done
}

func (w *WheelTimer) run() {
	defer close(w.done)
	for {
		w.mu.Lock()
		hasNext := w.q.Len() > 0
		var wait time.Duration
		if hasNext {
			wait = time.Until(w.q[0].at)
		}
		w.mu.Unlock()

		if hasNext && wait <= 0 {
			w.fireDue()
			continue
		}

		var timerC <-chan time.Time
		var t *time.Timer
		if hasNext {
			t = time.NewTimer(wait)
			timerC = t.C
		}

		select {
		case <-w.quit:
			if t != nil {
				t.Stop()
			}
			return
		case <-w.notify:
			if t != nil {
				t.Stop()
			}
		case <-timerC:
		}
	}
}

// fireDue pops and runs every task whose fire time has arrived, in order,
// re-arming the ones with a repeat period.
func (w *WheelTimer) fireDue() {
	now := time.Now()

	w.mu.Lock()
	var due []*wheelTask
	for w.q.Len() > 0 {
		next := w.q[0]
		if next.cancelled.Load() {
			heap.Pop(&w.q)
			continue
		}
		if next.at.After(now) {
			break
		}
		due = append(due, heap.Pop(&w.q).(*wheelTask))
	}
	w.mu.Unlock()

	for _, t := range due {
		if t.cancelled.Load() {
			continue
		}
		runThunk(t.thunk)
		if t.period > 0 && !t.cancelled.Load() {
			t.at = time.Now().Add(t.period)
			w.mu.Lock()
			heap.Push(&w.q, t)
			w.mu.Unlock()
		}
	}
}

// runThunk isolates a scheduled callback's panic from the timer loop; the
// future package already captures panics from the thunks it schedules
// (DoLater, DoAt, Within), so this is a last line of defense for callers
// that hand a Timer a raw thunk directly.
func runThunk(thunk func()) {
	defer func() {
		if r := recover(); r != nil {
			future.DefaultLogger.Warn("timer callback panicked", "panic", r)
		}
	}()
	thunk()
}
