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
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrImmutableResult is returned by Promise.Update when the result cell is
// already full; the second writer loses.
var ErrImmutableResult = errors.New("future: result already set")

// wrapErrors attaches call-site context to err via github.com/pkg/errors,
// preserving errors.Is/errors.As compatibility with err itself (pkg/errors'
// wrapped error type implements Unwrap).
func wrapErrors(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// Timeout is the error kind emitted by PlatformFuture.Get and Within when a
// deadline elapses before the underlying computation completes. Future.Get
// reports an elapsed deadline as ok = false instead.
type Timeout struct {
	d time.Duration
}

func newTimeout(d time.Duration) *Timeout {
	return &Timeout{d: d}
}

func (e *Timeout) Error() string {
	return fmt.Sprintf("future: timeout after %s", e.d)
}

func (e *Timeout) Duration() time.Duration {
	return e.d
}

// UserThunkFailure wraps a panic captured from a user-supplied callback
// (Apply, Map, FlatMap, Filter, or a Timer task). The original panic value
// is preserved verbatim and reachable via Cause.
type UserThunkFailure struct {
	cause any
}

func newUserThunkPanic(v any) *UserThunkFailure {
	return &UserThunkFailure{cause: v}
}

func (e *UserThunkFailure) Error() string {
	return fmt.Sprintf("future: callback panicked: %v", e.cause)
}

func (e *UserThunkFailure) Cause() any {
	return e.cause
}

// Unwrap returns the captured panic value if it's itself an error, so a
// panic(someError) reached through a *UserThunkFailure is still reachable
// via errors.Is/errors.As. It returns nil when the panic value wasn't an
// error (e.g. a panic(string) or panic(int)).
func (e *UserThunkFailure) Unwrap() error {
	err, _ := e.cause.(error)
	return err
}

// UncaughtPanic wraps a panic that happened in a promise chain, but hasn't
// been caught, by the end of that chain.
type UncaughtPanic struct {
	v any
}

func (e *UncaughtPanic) Error() string {
	return fmt.Sprintf("future: uncaught panic in chain: %v", e.v)
}

func (e *UncaughtPanic) V() any {
	return e.v
}

func newUncaughtPanic(v any) *UncaughtPanic {
	return &UncaughtPanic{v: v}
}

// UncaughtError wraps an error that happened in a promise chain, but hasn't
// been caught, by the end of that chain.
type UncaughtError struct {
	err error
}

func (e *UncaughtError) Error() string {
	return fmt.Sprintf("future: uncaught error in chain: %s", e.err)
}

func (e *UncaughtError) Unwrap() error {
	return e.err
}

func newUncaughtError(err error) *UncaughtError {
	return &UncaughtError{err: err}
}
