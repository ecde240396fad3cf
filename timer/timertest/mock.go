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

// Package timertest provides a deterministic future.Timer for tests: time
// only advances when the test calls Tick, so assertions about ordering
// and timeout races don't depend on wall-clock scheduling.
package timertest

import (
	"sort"
	"time"

	"github.com/asmsh/future"
	"github.com/eapache/queue"
)

type mockTask struct {
	firesAt time.Time
	thunk   func()
	done    bool
	cancelled bool
}

func (t *mockTask) Cancel() { t.cancelled = true }

// Mock is a future.Timer whose clock is advanced explicitly by the test
// calling Tick, rather than by wall-clock time. It supports only one-shot
// scheduling; ScheduleAtEvery and ScheduleEvery panic, since a fixed
// notion of "now" makes an indefinite repeat meaningless without a test
// driving every tick forever.
type Mock struct {
	now     time.Time
	pending *queue.Queue // of *mockTask, insertion order
	stopped bool
}

// NewMock returns a Mock whose clock starts at now.
func NewMock(now time.Time) *Mock {
	return &Mock{now: now, pending: queue.New()}
}

// Now returns the Mock's current simulated time.
func (m *Mock) Now() time.Time { return m.now }

func (m *Mock) ScheduleAt(at time.Time, thunk func()) future.Task {
	if m.stopped {
		panic("future/timer/timertest: Mock already stopped")
	}
	t := &mockTask{firesAt: at, thunk: thunk}
	m.pending.Add(t)
	return t
}

// ScheduleAtEvery panics: Mock has no notion of an indefinite repeat.
func (m *Mock) ScheduleAtEvery(at time.Time, period time.Duration, thunk func()) future.Task {
	panic("future/timer/timertest: Mock does not support repeating schedules")
}

// ScheduleEvery panics, for the same reason as ScheduleAtEvery.
func (m *Mock) ScheduleEvery(period time.Duration, thunk func()) future.Task {
	panic("future/timer/timertest: Mock does not support repeating schedules")
}

// Tick advances the Mock's clock to now and runs every pending,
// non-cancelled task whose fire time is at or before now, in fire-time
// order; tasks with equal fire times run in the order they were scheduled.
// Tasks that remain pending stay queued for a later Tick.
func (m *Mock) Tick(now time.Time) {
	if m.stopped {
		panic("future/timer/timertest: Mock already stopped")
	}
	m.now = now

	var due []*mockTask
	still := queue.New()
	for m.pending.Length() > 0 {
		t := m.pending.Remove().(*mockTask)
		switch {
		case t.cancelled || t.done:
			// drop
		case !t.firesAt.After(now):
			due = append(due, t)
		default:
			still.Add(t)
		}
	}
	m.pending = still
	sort.SliceStable(due, func(i, j int) bool { return due[i].firesAt.Before(due[j].firesAt) })

	for _, t := range due {
		if t.cancelled {
			continue
		}
		t.done = true
		t.thunk()
	}
}

// Pending returns the number of tasks still waiting for a future Tick.
func (m *Mock) Pending() int { return m.pending.Length() }

// Stop marks the Mock stopped; any further ScheduleAt or Tick call
// panics.
func (m *Mock) Stop() { m.stopped = true }
