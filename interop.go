// Copyright 2024 Ahmad Sameh(asmsh)
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

// PlatformFuture adapts a Future[T] to the java.util.concurrent.Future
// shape (cancel/isDone/get) for callers that expect a platform-native
// cancellable future rather than this package's cooperative-cancellation
// Future.
type PlatformFuture[T any] struct {
	f Future[T]
}

// AsPlatformFuture wraps f for interop.
func AsPlatformFuture[T any](f Future[T]) PlatformFuture[T] {
	return PlatformFuture[T]{f: f}
}

// Cancel sets f's cancellation signal and reports whether it did anything:
// false if f was already done or already cancelled, true otherwise.
// mayInterrupt is accepted for interface compatibility only; this
// package's cancellation is always cooperative, never preemptive, so it
// has no effect either way.
func (pf PlatformFuture[T]) Cancel(mayInterrupt bool) bool {
	if pf.f.IsDefined() || pf.f.IsCancelled() {
		return false
	}
	pf.f.Cancel()
	return true
}

// IsDone reports whether f has a result or has been cancelled.
func (pf PlatformFuture[T]) IsDone() bool {
	return pf.f.IsDefined() || pf.f.IsCancelled()
}

// Get blocks up to timeout for f's result: a Return yields (value, nil); a
// Throw is rethrown as (zero, err); an elapsed timeout yields (zero, a
// *Timeout). Cancelling f doesn't make Get return early or fail on its
// own — cancellation here is only a signal, so Get still waits for
// whichever party observes IsCancelled to actually settle the result.
func (pf PlatformFuture[T]) Get(timeout time.Duration) (T, error) {
	t, ok := pf.f.Get(timeout)
	if !ok {
		var zero T
		return zero, newTimeout(timeout)
	}
	return t.Get()
}
