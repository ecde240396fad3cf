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

import "time"

// Future is the read-facing capability set over a Promise: Respond, Poll,
// IsDefined, Get, Cancel, IsCancelled, LinkTo, OnCancellation, and the
// derived combinators in combinators.go, group_combinators.go,
// iteration.go, and within.go.
//
// The zero value is not usable; obtain a Future from Promise.Future, or
// from one of the constructors below (Value, Exception, Apply, UnitFuture).
type Future[T any] struct {
	p *Promise[T]
}

// Value returns an already-successful Future.
func Value[T any](v T) Future[T] {
	return PromiseOf(Return(v)).Future()
}

// Exception returns an already-failed Future.
func Exception[T any](err error) Future[T] {
	return PromiseOf(Throw[T](err)).Future()
}

// UnitFuture returns an already-successful Future carrying no value.
func UnitFuture() Future[struct{}] {
	return Value(struct{}{})
}

// Apply runs thunk and returns a Future of its outcome. A panic inside
// thunk is captured into a Throw, wrapped as *UserThunkFailure, rather than
// propagating to the caller.
func Apply[T any](thunk func() (T, error)) Future[T] {
	return PromiseOf(tryOf(thunk)).Future()
}

// Respond registers k to run, exactly once, with this Future's result. It
// returns a chained Future so further combinators can be attached; that
// chained Future's result cell is obtained via Cell.Chained (collapsing
// long Respond chains to O(1) per link), and it shares this Future's
// cancellation state. The chained Future carries this Future's own result
// and is defined as soon as that result is set; it does not wait for k to
// run or return.
func (f Future[T]) Respond(k func(Try[T])) Future[T] {
	f.p.observed.Store(true)
	next := &Promise[T]{
		result:    f.p.result.Chained(),
		cancelled: f.p.cancelled,
	}
	snap := Snapshot.Snapshot()
	f.p.result.Get(func(t Try[T]) {
		undo := snap.Restore()
		defer undo()
		k(t)
	})
	return next.Future()
}

// Poll performs a non-blocking read of the result.
func (f Future[T]) Poll() (Try[T], bool) {
	return f.p.Poll()
}

// IsDefined reports whether the result has been set.
func (f Future[T]) IsDefined() bool {
	return f.p.IsDefined()
}

// Get blocks until the result is set or timeout elapses, whichever comes
// first.
func (f Future[T]) Get(timeout time.Duration) (Try[T], bool) {
	t, ok := f.p.result.Wait(timeout)
	if ok {
		f.p.observed.Store(true)
	}
	return t, ok
}

// Cancel sets the cancellation signal on the underlying Promise.
func (f Future[T]) Cancel() {
	f.p.Cancel()
}

// IsCancelled reports whether Cancel has been called.
func (f Future[T]) IsCancelled() bool {
	return f.p.IsCancelled()
}

// LinkTo arranges for other.Cancel to run when f is cancelled.
func (f Future[T]) LinkTo(other Cancellable) {
	f.p.LinkTo(other)
}

// OnCancellation registers thunk to run when f is cancelled.
func (f Future[T]) OnCancellation(thunk func()) {
	f.p.OnCancellation(thunk)
}
