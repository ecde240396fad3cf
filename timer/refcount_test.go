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

	"github.com/asmsh/future"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefCountedConstructsOnFirstAcquire(t *testing.T) {
	constructed := 0
	r := NewRefCounted(func() future.Timer {
		constructed++
		return NewWheelTimer()
	})

	r.Acquire()
	r.Acquire()
	assert.Equal(t, 1, constructed)

	r.Stop()
	r.Stop()
}

func TestRefCountedDestroysOnLastRelease(t *testing.T) {
	var underlying *WheelTimer
	r := NewRefCounted(func() future.Timer {
		underlying = NewWheelTimer()
		return underlying
	})

	r.Acquire()
	r.Acquire()
	r.Stop() // count 2 -> 1, underlying stays alive

	done := make(chan struct{})
	r.ScheduleAt(time.Now().Add(5*time.Millisecond), func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("underlying timer should still be running after one release")
	}

	r.Stop() // count 1 -> 0, underlying is stopped
}

func TestRefCountedReconstructsAfterFullRelease(t *testing.T) {
	constructed := 0
	r := NewRefCounted(func() future.Timer {
		constructed++
		return NewWheelTimer()
	})

	r.Acquire()
	r.Stop()
	require.Equal(t, 1, constructed)

	r.Acquire()
	assert.Equal(t, 2, constructed)
	r.Stop()
}

func TestRefCountedStopWithoutAcquireIsNoop(t *testing.T) {
	r := NewRefCounted(func() future.Timer { return NewWheelTimer() })
	assert.NotPanics(t, func() { r.Stop() })
}
