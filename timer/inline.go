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

type inlineTask struct {
	cancelled bool
}

func (t *inlineTask) Cancel() { t.cancelled = true }

// InlineTimer is a future.Timer with no clock and no goroutine of its own:
// ScheduleAt blocks the calling goroutine until at, then runs thunk
// synchronously before returning. It exists for tests and for tiny
// programs that want DoLater/DoAt/Within's shape without paying for a
// scheduler.
type InlineTimer struct{}

// NewInlineTimer returns an InlineTimer. The zero value is also usable.
func NewInlineTimer() InlineTimer { return InlineTimer{} }

func (InlineTimer) ScheduleAt(at time.Time, thunk func()) future.Task {
	if d := time.Until(at); d > 0 {
		time.Sleep(d)
	}
	thunk()
	return &inlineTask{}
}

// ScheduleAtEvery panics: InlineTimer has no background goroutine to keep
// a repeating schedule alive after the call that started it returns.
func (InlineTimer) ScheduleAtEvery(at time.Time, period time.Duration, thunk func()) future.Task {
	panic("future/timer: InlineTimer does not support repeating schedules")
}

// ScheduleEvery panics, for the same reason as ScheduleAtEvery.
func (InlineTimer) ScheduleEvery(period time.Duration, thunk func()) future.Task {
	panic("future/timer: InlineTimer does not support repeating schedules")
}

func (InlineTimer) Stop() {}
