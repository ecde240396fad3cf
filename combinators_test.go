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

package future

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapTransformsValue(t *testing.T) {
	f := Map(Value(2), func(v int) int { return v * 10 })
	tr, ok := f.Get(time.Second)
	require.True(t, ok)
	assert.Equal(t, 20, tr.Val())
}

func TestMapPropagatesThrow(t *testing.T) {
	sentinel := errors.New("boom")
	f := Map(Exception[int](sentinel), func(v int) int { return v * 10 })
	tr, ok := f.Get(time.Second)
	require.True(t, ok)
	assert.Equal(t, sentinel, tr.Err())
}

func TestMapCapturesPanic(t *testing.T) {
	f := Map(Value(1), func(int) int { panic("nope") })
	tr, ok := f.Get(time.Second)
	require.True(t, ok)
	var failure *UserThunkFailure
	require.ErrorAs(t, tr.Err(), &failure)
}

func TestFlatMapSequencesAsyncStages(t *testing.T) {
	f := FlatMap(Value(2), func(v int) Future[int] {
		return Apply(func() (int, error) { return v + 1, nil })
	})
	tr, ok := f.Get(time.Second)
	require.True(t, ok)
	assert.Equal(t, 3, tr.Val())
}

func TestFlatMapChainStaysO1PerLink(t *testing.T) {
	const depth = 5000
	var loop func(i int) Future[int]
	loop = func(i int) Future[int] {
		if i >= depth {
			return Value(i)
		}
		return FlatMap(Value(i), func(x int) Future[int] {
			return loop(x + 1)
		})
	}
	f := loop(0)
	tr, ok := f.Get(5 * time.Second)
	require.True(t, ok)
	assert.Equal(t, depth, tr.Val())
}

func TestCancellationPropagatesThroughFlatMap(t *testing.T) {
	a := NewPromise[int]()

	var inner *Promise[int]
	b := FlatMap(a.Future(), func(x int) Future[int] {
		inner = NewPromise[int]()
		return inner.Future()
	})

	b.Cancel()
	assert.True(t, a.IsCancelled(), "cancelling b must cancel the still-pending parent a")

	a.SetValue(0)
	require.NotNil(t, inner)
	assert.True(t, inner.IsCancelled(), "once a resolves, the already-cancelled b must cancel the inner promise")

	// a further Cancel call is idempotent and must not panic or double-fire.
	assert.NotPanics(t, func() { b.Cancel() })
}

func TestFlatMapWithoutCancelLeavesInnerUntouched(t *testing.T) {
	a := NewPromise[int]()
	var inner *Promise[int]
	b := FlatMap(a.Future(), func(x int) Future[int] {
		inner = NewPromise[int]()
		return inner.Future()
	})

	_ = b
	a.SetValue(1)
	require.NotNil(t, inner)
	assert.False(t, inner.IsCancelled(), "no cancellation was requested, so the inner promise must be untouched")
}

func TestRescueRecoversMatchedError(t *testing.T) {
	sentinel := errors.New("boom")
	f := Rescue(Exception[int](sentinel), func(err error) (Future[int], bool) {
		if errors.Is(err, sentinel) {
			return Value(99), true
		}
		return Future[int]{}, false
	})
	tr, ok := f.Get(time.Second)
	require.True(t, ok)
	assert.Equal(t, 99, tr.Val())
}

func TestRescuePassesThroughUnmatchedError(t *testing.T) {
	sentinel := errors.New("boom")
	f := Rescue(Exception[int](sentinel), func(err error) (Future[int], bool) {
		return Future[int]{}, false
	})
	tr, ok := f.Get(time.Second)
	require.True(t, ok)
	assert.Equal(t, sentinel, tr.Err())
}

func TestRescueDoesNotRunOnSuccess(t *testing.T) {
	called := false
	f := Rescue(Value(1), func(err error) (Future[int], bool) {
		called = true
		return Future[int]{}, false
	})
	tr, ok := f.Get(time.Second)
	require.True(t, ok)
	assert.Equal(t, 1, tr.Val())
	assert.False(t, called)
}

func TestFilterKeepsMatchingValue(t *testing.T) {
	f := Filter(Value(4), func(v int) bool { return v%2 == 0 })
	tr, ok := f.Get(time.Second)
	require.True(t, ok)
	assert.Equal(t, 4, tr.Val())
}

func TestFilterRejectsNonMatchingValue(t *testing.T) {
	f := Filter(Value(3), func(v int) bool { return v%2 == 0 })
	tr, ok := f.Get(time.Second)
	require.True(t, ok)
	assert.ErrorIs(t, tr.Err(), ErrFilterRejected)
}

func TestFilterDistinguishesPanicFromRejection(t *testing.T) {
	f := Filter(Value(3), func(v int) bool { panic("bad predicate") })
	tr, ok := f.Get(time.Second)
	require.True(t, ok)
	var failure *UserThunkFailure
	require.ErrorAs(t, tr.Err(), &failure)
	assert.NotErrorIs(t, tr.Err(), ErrFilterRejected)
}
