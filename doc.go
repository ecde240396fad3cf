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

// Package future provides a composable, non-blocking Future/Promise pair
// whose callbacks run exactly once, whose combinators don't leak memory
// under deep iterative composition, and whose cancellation signal flows
// across chained stages and into scheduled timer tasks.
//
// A Promise owns two once-cells: a result, and a cancellation signal. A
// Future is the read-facing view over a Promise: Respond attaches a
// continuation and returns a fresh, chained Future that carries the same
// result and is defined as soon as that result is set, without waiting for
// the continuation.
//
// Combinators:
//
// * Map and FlatMap transform a successful result, possibly into a new
// asynchronous computation. A panic inside a callback is captured into a
// failed result rather than propagating to the caller.
//
// * Rescue gives a failure a chance to be converted back into a success;
// an unmatched error passes through unchanged.
//
// * Filter throws ErrFilterRejected for values that don't satisfy a
// predicate.
//
// * Join2/JoinAll/CollectAll/Select2/SelectAll combine several Futures;
// cancelling the combined Future cancels every input.
//
// * Within races a Future against a Timer-scheduled timeout.
//
// * Times and WhileDo run their steps from a loop that polls each step's
// Future and only registers a continuation when a step is still pending,
// so an N-step run over synchronously resolving steps does not grow the
// call stack with N.
//
// PlatformFuture adapts a Future to the cancel/isDone/get shape expected by
// callers coming from a platform-native future type.
//
// Cancellation is cooperative: Cancel only sets the cancellation signal,
// it never touches the result. Whether a cancelled computation's result
// ever reflects that is up to whichever party (a combinator, a Timer, the
// producer) chooses to observe IsCancelled and write a failure.
package future
