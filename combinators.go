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
	"github.com/asmsh/future/internal/cell"
	"github.com/pkg/errors"
)

// ErrFilterRejected is the error a Filter-ed Future throws when its
// predicate returns false for the value.
var ErrFilterRejected = errors.New("future: value rejected by filter")

// FlatMap is the sequencing combinator: it waits for f, and if f succeeded,
// runs fn on the value to obtain the next Future, then forwards that
// Future's eventual result into the returned Future.
//
// Cancellation follows the "parent cancellation" policy described in the
// component design: while f is still pending, cancelling the returned
// Future cancels f; once f has returned and fn's Future is known, the
// waiter on f is detached (via Unget) and a fresh one is installed that
// cancels fn's Future instead.
//
// The returned Future's result is merged (internal/cell.Merge), not just
// forwarded, from fn's Future: that's what keeps an iterated chain of
// FlatMap calls O(1) per link instead of accumulating one waiter per call.
func FlatMap[A, B any](f Future[A], fn func(A) Future[B]) Future[B] {
	p := NewPromise[B]()

	w := p.cancelled.Get(func(struct{}) { f.Cancel() })
	f.p.result.Get(func(t Try[A]) {
		p.cancelled.Unget(w)

		if t.IsThrow() {
			p.Update(Throw[B](t.Err()))
			return
		}

		next := safeCall(fn, t.Val())
		cell.Merge[Try[B]](next.p.result, p.result)
		p.cancelled.Get(func(struct{}) { next.Cancel() })
	})

	return p.Future()
}

// safeCall runs fn(a) and captures any panic into a failed Future, so a
// misbehaving callback can never escape a combinator onto the thread that
// happens to be draining waiters (typically the producer's thread, or a
// timer thread).
func safeCall[A, B any](fn func(A) Future[B], a A) Future[B] {
	var result Future[B]
	func() {
		defer func() {
			if r := recover(); r != nil {
				result = Exception[B](newUserThunkPanic(r))
			}
		}()
		result = fn(a)
	}()
	return result
}

// Map transforms a successful result with fn; exceptions raised by fn
// (via panic) become a Throw, per Map's equivalence to
// FlatMap(a => Future(fn(a))).
func Map[A, B any](f Future[A], fn func(A) B) Future[B] {
	return FlatMap(f, func(a A) Future[B] {
		return Apply(func() (B, error) { return fn(a), nil })
	})
}

// Rescue gives pf a chance to convert a failure back into a success. pf
// returns ok = false to let an unmatched error pass through unchanged.
func Rescue[A any](f Future[A], pf func(err error) (Future[A], bool)) Future[A] {
	p := NewPromise[A]()

	w := p.cancelled.Get(func(struct{}) { f.Cancel() })
	f.p.result.Get(func(t Try[A]) {
		p.cancelled.Unget(w)

		if t.IsReturn() {
			p.Update(t)
			return
		}

		next, matched := safeRescue(pf, t.Err())
		if !matched {
			p.Update(t)
			return
		}
		cell.Merge[Try[A]](next.p.result, p.result)
		p.cancelled.Get(func(struct{}) { next.Cancel() })
	})

	return p.Future()
}

func safeRescue[A any](pf func(error) (Future[A], bool), err error) (next Future[A], matched bool) {
	defer func() {
		if r := recover(); r != nil {
			next, matched = Exception[A](newUserThunkPanic(r)), true
		}
	}()
	return pf(err)
}

// Filter keeps a successful value only if pred(value) is true; otherwise
// it throws ErrFilterRejected.
func Filter[A any](f Future[A], pred func(A) bool) Future[A] {
	return FlatMap(f, func(a A) Future[A] {
		ok, err := safePred(pred, a)
		if err != nil {
			return Exception[A](err)
		}
		if ok {
			return Value(a)
		}
		return Exception[A](wrapErrors(ErrFilterRejected, "Filter: value %v", a))
	})
}

func safePred[A any](pred func(A) bool, a A) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, newUserThunkPanic(r)
		}
	}()
	return pred(a), nil
}
