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
	"sync"
	"time"

	"github.com/asmsh/future"
)

// RefCounted lazily constructs an underlying future.Timer on the first
// Acquire and tears it down on the matching Stop, so several independent
// owners can share one background scheduler without any of them knowing
// about the others. Stop without a matching Acquire is a no-op: it logs a
// warning rather than panicking, since an extra Stop from a component
// that double-releases its reference shouldn't bring down its siblings'
// scheduler.
type RefCounted struct {
	new func() future.Timer

	mu    sync.Mutex
	count int
	inner future.Timer
}

// NewRefCounted returns a RefCounted wrapper. new is called to construct
// the underlying Timer the first time a reference is acquired, and again
// if all references are released and then re-acquired.
func NewRefCounted(new func() future.Timer) *RefCounted {
	return &RefCounted{new: new}
}

// Acquire increments the reference count, constructing the underlying
// Timer on a 0-to-1 transition, and returns this RefCounted (so it can be
// used wherever a future.Timer is expected).
func (r *RefCounted) Acquire() *RefCounted {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	if r.count == 1 {
		r.inner = r.new()
	}
	return r
}

func (r *RefCounted) get() future.Timer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner
}

func (r *RefCounted) ScheduleAt(at time.Time, thunk func()) future.Task {
	return r.get().ScheduleAt(at, thunk)
}

func (r *RefCounted) ScheduleAtEvery(at time.Time, period time.Duration, thunk func()) future.Task {
	return r.get().ScheduleAtEvery(at, period, thunk)
}

func (r *RefCounted) ScheduleEvery(period time.Duration, thunk func()) future.Task {
	return r.get().ScheduleEvery(period, thunk)
}

// Stop decrements the reference count, tearing down the underlying Timer
// on a 1-to-0 transition. Calling Stop more times than Acquire was called
// is a no-op, logged as a warning.
func (r *RefCounted) Stop() {
	r.mu.Lock()
	if r.count == 0 {
		r.mu.Unlock()
		future.DefaultLogger.Warn("Stop called with no matching Acquire", "component", "timer.RefCounted")
		return
	}
	r.count--
	var toClose future.Timer
	if r.count == 0 {
		toClose = r.inner
		r.inner = nil
	}
	r.mu.Unlock()

	if toClose != nil {
		toClose.Stop()
	}
}
