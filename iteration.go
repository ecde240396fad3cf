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

// Times runs fn n times, sequentially, each iteration waiting for the
// previous one's Future before starting the next.
//
// The driving loop below never recurses through a chain of already-resolved
// iterations: it polls each fn() result directly and keeps looping on the
// calling goroutine as long as results are already in, so a fn that
// resolves synchronously (e.g. returns UnitFuture()) costs one native call
// frame for the whole run, not one per iteration. Only when an iteration is
// still pending does it register a continuation and return, resuming the
// loop from a fresh call frame once that iteration completes.
func Times(n int, fn func() Future[struct{}]) Future[struct{}] {
	p := NewPromise[struct{}]()
	driveTimes(n, fn, p)
	return p.Future()
}

func driveTimes(n int, fn func() Future[struct{}], p *Promise[struct{}]) {
	for n > 0 {
		f := fn()
		t, ok := f.Poll()
		if !ok {
			remaining := n - 1
			f.Respond(func(t Try[struct{}]) {
				if t.IsThrow() {
					p.UpdateIfEmpty(Throw[struct{}](t.Err()))
					return
				}
				driveTimes(remaining, fn, p)
			})
			return
		}
		if t.IsThrow() {
			p.UpdateIfEmpty(Throw[struct{}](t.Err()))
			return
		}
		n--
	}
	p.UpdateIfEmpty(Return(struct{}{}))
}

// WhileDo repeatedly runs fn as long as cond returns true, each iteration
// waiting for the previous one's Future before re-checking cond. It uses
// the same poll-then-drive loop as Times, for the same reason: an
// unbounded run over a synchronously-resolving fn must not grow the call
// stack with iteration count.
func WhileDo(cond func() bool, fn func() Future[struct{}]) Future[struct{}] {
	p := NewPromise[struct{}]()
	driveWhileDo(cond, fn, p)
	return p.Future()
}

func driveWhileDo(cond func() bool, fn func() Future[struct{}], p *Promise[struct{}]) {
	for cond() {
		f := fn()
		t, ok := f.Poll()
		if !ok {
			f.Respond(func(t Try[struct{}]) {
				if t.IsThrow() {
					p.UpdateIfEmpty(Throw[struct{}](t.Err()))
					return
				}
				driveWhileDo(cond, fn, p)
			})
			return
		}
		if t.IsThrow() {
			p.UpdateIfEmpty(Throw[struct{}](t.Err()))
			return
		}
	}
	p.UpdateIfEmpty(Return(struct{}{}))
}
