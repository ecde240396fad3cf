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

import "fmt"

// Try is the result of a computation that may have failed: either a
// Return(value) or a Throw(error), never both.
type Try[T any] struct {
	val T
	err error
}

// Return wraps a successful result.
func Return[T any](v T) Try[T] {
	return Try[T]{val: v}
}

// Throw wraps a failure. Passing a nil error still produces a Try that
// reports IsThrow() == false; callers that need a guaranteed failure should
// pass a non-nil error.
func Throw[T any](err error) Try[T] {
	return Try[T]{err: err}
}

// Get returns the value and error pair. Exactly one of them is meaningful:
// a non-nil error means the zero value is returned alongside it.
func (t Try[T]) Get() (T, error) {
	return t.val, t.err
}

// Val returns the wrapped value, or the zero value if this is a Throw.
func (t Try[T]) Val() T {
	return t.val
}

// Err returns the wrapped error, or nil if this is a Return.
func (t Try[T]) Err() error {
	return t.err
}

// IsReturn reports whether this Try holds a value.
func (t Try[T]) IsReturn() bool {
	return t.err == nil
}

// IsThrow reports whether this Try holds an error.
func (t Try[T]) IsThrow() bool {
	return t.err != nil
}

func (t Try[T]) String() string {
	if t.IsThrow() {
		return fmt.Sprintf("Throw(%s)", t.err)
	}
	return fmt.Sprintf("Return(%v)", t.val)
}

// tryOf runs thunk and captures any error it returns, or any panic it
// raises, into a Throw. Apply (and Map through it), Group.Go, DoLater and
// DoAt are built on this; FlatMap, Rescue and Filter use their own recover
// wrappers (safeCall, safeRescue, safePred) to the same effect.
func tryOf[T any](thunk func() (T, error)) (t Try[T]) {
	defer func() {
		if r := recover(); r != nil {
			t = Throw[T](newUserThunkPanic(r))
		}
	}()
	v, err := thunk()
	if err != nil {
		return Throw[T](err)
	}
	return Return(v)
}
