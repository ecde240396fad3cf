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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInlineTimerRunsThunkSynchronously(t *testing.T) {
	in := NewInlineTimer()
	ran := false
	in.ScheduleAt(time.Now(), func() { ran = true })
	assert.True(t, ran)
}

func TestInlineTimerWaitsUntilScheduledTime(t *testing.T) {
	in := NewInlineTimer()
	start := time.Now()
	in.ScheduleAt(start.Add(20*time.Millisecond), func() {})
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestInlineTimerScheduleAtEveryPanics(t *testing.T) {
	in := NewInlineTimer()
	assert.Panics(t, func() {
		in.ScheduleAtEvery(time.Now(), time.Second, func() {})
	})
}

func TestInlineTimerStopIsNoop(t *testing.T) {
	in := NewInlineTimer()
	assert.NotPanics(t, func() { in.Stop() })
}
