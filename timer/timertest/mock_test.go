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

package timertest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestTickOrdering schedules three tasks at t=10,20,30 and ticks at t=25,
// expecting the first two to fire in scheduled order and the third to
// remain pending.
func TestTickOrdering(t *testing.T) {
	base := time.Unix(0, 0)
	m := NewMock(base)

	var fired []int
	m.ScheduleAt(base.Add(10*time.Millisecond), func() { fired = append(fired, 10) })
	m.ScheduleAt(base.Add(20*time.Millisecond), func() { fired = append(fired, 20) })
	m.ScheduleAt(base.Add(30*time.Millisecond), func() { fired = append(fired, 30) })

	m.Tick(base.Add(25 * time.Millisecond))

	assert.Equal(t, []int{10, 20}, fired)
	assert.Equal(t, 1, m.Pending())
}

func TestCancelledTaskDoesNotFire(t *testing.T) {
	base := time.Unix(0, 0)
	m := NewMock(base)

	ran := false
	task := m.ScheduleAt(base.Add(10*time.Millisecond), func() { ran = true })
	task.Cancel()

	m.Tick(base.Add(10 * time.Millisecond))
	assert.False(t, ran)
	assert.Equal(t, 0, m.Pending())
}

func TestScheduleAtEveryPanics(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	assert.Panics(t, func() {
		m.ScheduleAtEvery(time.Unix(0, 0), time.Second, func() {})
	})
}

func TestScheduleEveryPanics(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	assert.Panics(t, func() {
		m.ScheduleEvery(time.Second, func() {})
	})
}

func TestStopThenTickPanics(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	m.Stop()
	assert.Panics(t, func() { m.Tick(time.Unix(1, 0)) })
}

func TestStopThenScheduleAtPanics(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	m.Stop()
	assert.Panics(t, func() { m.ScheduleAt(time.Unix(1, 0), func() {}) })
}

func TestNowReflectsLastTick(t *testing.T) {
	base := time.Unix(0, 0)
	m := NewMock(base)
	require.Equal(t, base, m.Now())
	next := base.Add(5 * time.Second)
	m.Tick(next)
	assert.Equal(t, next, m.Now())
}
