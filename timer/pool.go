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

package timer

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asmsh/future"
)

type poolTask struct {
	at        time.Time
	period    time.Duration
	thunk     func()
	cancelled atomic.Bool
	index     int
}

func (t *poolTask) Cancel() { t.cancelled.Store(true) }

// PoolTimer is a future.Timer whose dispatcher goroutine never runs a
// scheduled thunk itself: it hands each due task to a bounded pool of
// worker goroutines, the same reserve/free semaphore shape as this
// module's Group. That keeps one slow thunk from delaying every other
// task's firing time, at the cost of running thunks concurrently with
// each other. Repeats use fixed-rate semantics: the next firing is
// computed as the previous at plus period, regardless of how long the
// thunk took to run, so a slow handler doesn't drift the schedule (though
// it can cause overlapping runs).
type PoolTimer struct {
	mu     sync.Mutex
	q      poolHeap
	notify chan struct{}
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once
	sem    chan struct{}
	wg     sync.WaitGroup
}

// NewPoolTimer starts the dispatcher goroutine and returns a ready
// PoolTimer backed by at most workers concurrently-running thunks. A
// workers of 0 means unbounded.
func NewPoolTimer(workers int) *PoolTimer {
	p := &PoolTimer{
		notify: make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	if workers > 0 {
		p.sem = make(chan struct{}, workers)
	}
	go p.run()
	return p
}

func (p *PoolTimer) ScheduleAt(at time.Time, thunk func()) future.Task {
	return p.schedule(at, 0, thunk)
}

func (p *PoolTimer) ScheduleAtEvery(at time.Time, period time.Duration, thunk func()) future.Task {
	return p.schedule(at, period, thunk)
}

func (p *PoolTimer) ScheduleEvery(period time.Duration, thunk func()) future.Task {
	return p.schedule(time.Now().Add(period), period, thunk)
}

func (p *PoolTimer) schedule(at time.Time, period time.Duration, thunk func()) future.Task {
	t := &poolTask{at: at, period: period, thunk: thunk}
	p.mu.Lock()
	heap.Push(&p.q, t)
	p.mu.Unlock()
	p.wake()
	return t
}

func (p *PoolTimer) wake() {
	select {
	case p.notify <- struct{}{}:
	default:
	}
}

// Stop signals the dispatcher to exit and waits for every in-flight thunk
// to return. Pending (not-yet-due) tasks are abandoned; Stop is
// idempotent.
func (p *PoolTimer) Stop() {
	p.once.Do(func() { close(p.quit) })
	<-p.done
	p.wg.Wait()
}

func (p *PoolTimer) run() {
	defer close(p.done)
	for {
		p.mu.Lock()
		hasNext := p.q.Len() > 0
		var wait time.Duration
		if hasNext {
			wait = time.Until(p.q[0].at)
		}
		p.mu.Unlock()

		if hasNext && wait <= 0 {
			p.dispatchDue()
			continue
		}

		var timerC <-chan time.Time
		var timer *time.Timer
		if hasNext {
			timer = time.NewTimer(wait)
			timerC = timer.C
		}

		select {
		case <-p.quit:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-p.notify:
			if timer != nil {
				timer.Stop()
			}
		case <-timerC:
		}
	}
}

func (p *PoolTimer) dispatchDue() {
	now := time.Now()

	p.mu.Lock()
	var due []*poolTask
	for p.q.Len() > 0 {
		next := p.q[0]
		if next.cancelled.Load() {
			heap.Pop(&p.q)
			continue
		}
		if next.at.After(now) {
			break
		}
		due = append(due, heap.Pop(&p.q).(*poolTask))
		if next.period > 0 {
			next.at = next.at.Add(next.period)
			heap.Push(&p.q, next)
		}
	}
	p.mu.Unlock()

	for _, t := range due {
		if t.cancelled.Load() {
			continue
		}
		p.run1(t.thunk)
	}
}

func (p *PoolTimer) run1(thunk func()) {
	if p.sem != nil {
		p.sem <- struct{}{}
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if p.sem != nil {
			defer func() { <-p.sem }()
		}
		runThunk(thunk)
	}()
}

type poolHeap []*poolTask

func (h poolHeap) Len() int            { return len(h) }
func (h poolHeap) Less(i, j int) bool  { return h[i].at.Before(h[j].at) }
func (h poolHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index, h[j].index = i, j }
func (h *poolHeap) Push(x interface{}) { t := x.(*poolTask); t.index = len(*h); *h = append(*h, t) }
func (h *poolHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
