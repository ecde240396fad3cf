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
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolTimerFiresAtScheduledTime(t *testing.T) {
	p := NewPoolTimer(4)
	defer p.Stop()

	done := make(chan struct{})
	p.ScheduleAt(time.Now().Add(10*time.Millisecond), func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never fired")
	}
}

func TestPoolTimerRunsConcurrentThunks(t *testing.T) {
	p := NewPoolTimer(4)
	defer p.Stop()

	const n = 4
	var wg sync.WaitGroup
	wg.Add(n)
	release := make(chan struct{})
	at := time.Now().Add(5 * time.Millisecond)
	for i := 0; i < n; i++ {
		p.ScheduleAt(at, func() {
			defer wg.Done()
			<-release
		})
	}
	close(release)

	waitDone := make(chan struct{})
	go func() { wg.Wait(); close(waitDone) }()
	select {
	case <-waitDone:
	case <-time.After(time.Second):
		t.Fatal("thunks did not all complete concurrently")
	}
}

func TestPoolTimerBoundsWorkers(t *testing.T) {
	p := NewPoolTimer(2)
	defer p.Stop()

	var running, maxRunning atomic.Int32
	release := make(chan struct{})
	var wg sync.WaitGroup
	at := time.Now().Add(5 * time.Millisecond)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		p.ScheduleAt(at, func() {
			defer wg.Done()
			n := running.Add(1)
			for {
				old := maxRunning.Load()
				if n <= old || maxRunning.CompareAndSwap(old, n) {
					break
				}
			}
			<-release
			running.Add(-1)
		})
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	assert.LessOrEqual(t, int(maxRunning.Load()), 2)
}

func TestPoolTimerCancelPreventsFire(t *testing.T) {
	p := NewPoolTimer(0)
	defer p.Stop()

	ran := false
	task := p.ScheduleAt(time.Now().Add(20*time.Millisecond), func() { ran = true })
	task.Cancel()

	time.Sleep(40 * time.Millisecond)
	assert.False(t, ran)
}

func TestPoolTimerStopWaitsForInFlight(t *testing.T) {
	p := NewPoolTimer(0)
	var finished atomic.Bool
	p.ScheduleAt(time.Now().Add(5*time.Millisecond), func() {
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
	})
	time.Sleep(10 * time.Millisecond)
	p.Stop()
	assert.True(t, finished.Load())
}

func TestPoolTimerStopIsIdempotent(t *testing.T) {
	p := NewPoolTimer(0)
	require.NotPanics(t, func() {
		p.Stop()
		p.Stop()
	})
}
