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
	"runtime"
	"sync/atomic"

	"github.com/asmsh/future/internal/cell"
)

// Cancellable is the capability shared by Promise and Future: an
// idempotent Cancel, an observable IsCancelled, and a LinkTo relation.
// Task is a narrower, Cancel-only capability (a scheduled task has
// no cancellation signal of its own to observe or link from), so it
// doesn't implement Cancellable.
//
// LinkTo(other) means: when this is cancelled, other is cancelled too. The
// relation isn't symmetric, and it's never transitively materialised into
// a graph structure; it's implemented as a single waiter registered on
// the cancelled once-cell.
type Cancellable interface {
	Cancel()
	IsCancelled() bool
	LinkTo(other Cancellable)
}

// Promise is the writable end of a Future. It owns two once-cells: result,
// the computation's eventual outcome, and cancelled, the cancellation
// signal. Cancelling a Promise never completes its result on its own; it
// only propagates to linked Cancellables (see LinkTo).
type Promise[T any] struct {
	result    *cell.Cell[Try[T]]
	cancelled *cell.Cell[struct{}]
	observed  atomic.Bool
}

// NewPromise returns an empty Promise: both its result and its cancellation
// signal are unset.
//
// A Promise whose result is a Throw, and that is garbage collected before
// anything ever read, waited on, or responded to that result, is logged
// as an uncaught error (or uncaught panic, for a Throw wrapping a
// *UserThunkFailure) via DefaultLogger, so a dropped rejection doesn't
// disappear silently.
func NewPromise[T any]() *Promise[T] {
	p := &Promise[T]{
		result:    cell.New[Try[T]](),
		cancelled: cell.New[struct{}](),
	}
	runtime.SetFinalizer(p, (*Promise[T]).warnIfUncaught)
	return p
}

func (p *Promise[T]) warnIfUncaught() {
	if p.observed.Load() {
		return
	}
	t, ok := p.result.Poll()
	if !ok || t.IsReturn() {
		return
	}
	if uf, isPanic := t.Err().(*UserThunkFailure); isPanic {
		DefaultLogger.Warn("future garbage collected with an unobserved panic",
			"error", newUncaughtPanic(uf.cause).Error())
		return
	}
	DefaultLogger.Warn("future garbage collected with an unobserved error",
		"error", newUncaughtError(t.Err()).Error())
}

// PromiseOf returns a Promise whose result is already set to t.
func PromiseOf[T any](t Try[T]) *Promise[T] {
	p := NewPromise[T]()
	p.result.Set(t)
	return p
}

// Future returns the read-facing view over p.
func (p *Promise[T]) Future() Future[T] {
	return Future[T]{p: p}
}

// SetValue fills the result with a success, failing with
// ErrImmutableResult if the result was already set.
func (p *Promise[T]) SetValue(v T) error {
	return p.Update(Return(v))
}

// SetException fills the result with a failure, failing with
// ErrImmutableResult if the result was already set.
func (p *Promise[T]) SetException(err error) error {
	return p.Update(Throw[T](err))
}

// Update fills the result exactly once; a second call returns
// ErrImmutableResult and leaves the stored result untouched.
func (p *Promise[T]) Update(t Try[T]) error {
	if !p.result.Set(t) {
		held, _ := p.result.Poll()
		return wrapErrors(ErrImmutableResult, "Promise.Update: already holds %s", held)
	}
	return nil
}

// UpdateIfEmpty is like Update, but reports success via its return value
// instead of an error. Exactly one concurrent caller observes true.
func (p *Promise[T]) UpdateIfEmpty(t Try[T]) bool {
	return p.result.Set(t)
}

// IsDefined reports whether the result has been set.
func (p *Promise[T]) IsDefined() bool {
	return p.result.IsDefined()
}

// Poll performs a non-blocking read of the result.
func (p *Promise[T]) Poll() (Try[T], bool) {
	t, ok := p.result.Poll()
	if ok {
		p.observed.Store(true)
	}
	return t, ok
}

// Cancel sets the cancellation signal. It's idempotent: calling it again
// after the first call has no further effect. It never touches result.
func (p *Promise[T]) Cancel() {
	p.cancelled.Set(struct{}{})
}

// IsCancelled reports whether Cancel has been called.
func (p *Promise[T]) IsCancelled() bool {
	return p.cancelled.IsDefined()
}

// LinkTo arranges for other.Cancel to run when p is cancelled. If p is
// already cancelled, other.Cancel runs synchronously, on the calling
// goroutine, before LinkTo returns.
func (p *Promise[T]) LinkTo(other Cancellable) {
	p.cancelled.Get(func(struct{}) { other.Cancel() })
}

// OnCancellation registers thunk to run when p is cancelled; it's
// equivalent to linking a Cancellable whose Cancel runs thunk.
func (p *Promise[T]) OnCancellation(thunk func()) {
	p.cancelled.Get(func(struct{}) { thunk() })
}
