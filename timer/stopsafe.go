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
	"time"

	"github.com/asmsh/future"
)

// StopSafe wraps a future.Timer whose Stop blocks until its background
// goroutine exits (WheelTimer and PoolTimer both do). Calling that Stop
// from inside one of the Timer's own scheduled thunks would join the
// goroutine to itself and deadlock, so StopSafe dispatches Stop to a
// fresh goroutine and returns immediately, without waiting for it.
type StopSafe struct {
	inner future.Timer
}

// WrapStopSafe returns a StopSafe wrapping inner.
func WrapStopSafe(inner future.Timer) *StopSafe {
	return &StopSafe{inner: inner}
}

func (s *StopSafe) ScheduleAt(at time.Time, thunk func()) future.Task {
	return s.inner.ScheduleAt(at, thunk)
}

func (s *StopSafe) ScheduleAtEvery(at time.Time, period time.Duration, thunk func()) future.Task {
	return s.inner.ScheduleAtEvery(at, period, thunk)
}

func (s *StopSafe) ScheduleEvery(period time.Duration, thunk func()) future.Task {
	return s.inner.ScheduleEvery(period, thunk)
}

// Stop runs the inner Timer's Stop on a new goroutine and returns without
// waiting for it to finish, since the caller might itself be running on
// the very goroutine that Stop needs to join.
func (s *StopSafe) Stop() {
	go s.inner.Stop()
}
