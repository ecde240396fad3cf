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

// Within races f against a timeout scheduled on t. If f completes first,
// the scheduled timeout task is cancelled and the returned Future carries
// f's result; otherwise the returned Future throws a *Timeout wrapping d.
//
// Cancelling the returned Future cancels f.
func Within[T any](f Future[T], t Timer, d time.Duration) Future[T] {
	p := NewPromise[T]()
	p.LinkTo(f)

	task := t.ScheduleAt(timerNow(t).Add(d), func() {
		p.UpdateIfEmpty(Throw[T](newTimeout(d)))
	})

	f.Respond(func(tr Try[T]) {
		task.Cancel()
		p.UpdateIfEmpty(tr)
	})

	return p.Future()
}

// DoLater schedules thunk to run once, after delay, on t, and returns a
// Future of its outcome. A panic inside thunk is captured into a Throw.
// Cancelling the returned Future cancels the scheduled task.
func DoLater[T any](t Timer, delay time.Duration, thunk func() (T, error)) Future[T] {
	return doAt(t, timerNow(t).Add(delay), thunk)
}

// timerNow returns t's own current time when t exposes one through a
// Now() time.Time method (as timertest.Mock does), and the wall clock
// otherwise.
func timerNow(t Timer) time.Time {
	if c, ok := t.(interface{ Now() time.Time }); ok {
		return c.Now()
	}
	return time.Now()
}

// DoAt schedules thunk to run once, at the given wall-clock instant, on t,
// and returns a Future of its outcome. Cancelling the returned Future
// cancels the scheduled task.
func DoAt[T any](t Timer, at time.Time, thunk func() (T, error)) Future[T] {
	return doAt(t, at, thunk)
}

func doAt[T any](t Timer, at time.Time, thunk func() (T, error)) Future[T] {
	p := NewPromise[T]()
	task := t.ScheduleAt(at, func() {
		p.UpdateIfEmpty(tryOf(thunk))
	})
	p.OnCancellation(func() { task.Cancel() })
	return p.Future()
}
