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

// Task is the handle returned by a Timer's scheduling methods. Cancel is
// idempotent: cancelling after the task has already fired is a no-op.
type Task interface {
	Cancel()
}

// Timer is the scheduling side channel that a Promise's timeout and
// delayed-work combinators (Within, DoLater, DoAt) ride on. It's declared
// here, rather than in the timer subpackage, so that generic code in this
// package (which can't appear in an interface's method set) can be layered
// on top without an import cycle; the timer subpackage's concrete
// implementations (inline, a single background thread, a thread pool, and
// the reference-counting and thread-stopping wrappers around them) import
// this package for the interface, not the other way around.
type Timer interface {
	// ScheduleAt runs thunk once, at the given wall-clock instant.
	ScheduleAt(at time.Time, thunk func()) Task

	// ScheduleAtEvery runs thunk repeatedly, first at at and then every
	// period thereafter, until the returned Task is cancelled or Stop is
	// called. Whether repeats use fixed-delay or fixed-rate semantics is
	// documented per Timer implementation.
	ScheduleAtEvery(at time.Time, period time.Duration, thunk func()) Task

	// ScheduleEvery runs thunk repeatedly, first one period from now.
	ScheduleEvery(period time.Duration, thunk func()) Task

	// Stop drains the Timer. Scheduling after Stop may fail silently
	// (the implementation decides); existing pending tasks may or may not
	// still fire, per implementation.
	Stop()
}
