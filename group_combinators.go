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
	"sync"
	"sync/atomic"
)

// Pair is the result of Join2: the two inputs' values, once both have
// succeeded.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Join2 completes with both fa's and fb's values once both succeed; it
// throws as soon as either one does, whichever arrives first. Cancelling
// the returned Future cancels both fa and fb.
func Join2[A, B any](fa Future[A], fb Future[B]) Future[Pair[A, B]] {
	p := NewPromise[Pair[A, B]]()
	p.LinkTo(fa)
	p.LinkTo(fb)

	var mu sync.Mutex
	var av A
	var bv B
	var aDone, bDone bool

	maybeComplete := func() {
		mu.Lock()
		ready := aDone && bDone
		a, b := av, bv
		mu.Unlock()
		if ready {
			p.UpdateIfEmpty(Return(Pair[A, B]{First: a, Second: b}))
		}
	}

	fa.Respond(func(t Try[A]) {
		if t.IsThrow() {
			p.UpdateIfEmpty(Throw[Pair[A, B]](t.Err()))
			return
		}
		mu.Lock()
		av, aDone = t.Val(), true
		mu.Unlock()
		maybeComplete()
	})
	fb.Respond(func(t Try[B]) {
		if t.IsThrow() {
			p.UpdateIfEmpty(Throw[Pair[A, B]](t.Err()))
			return
		}
		mu.Lock()
		bv, bDone = t.Val(), true
		mu.Unlock()
		maybeComplete()
	})

	return p.Future()
}

// JoinAll completes with no value once every Future in fs has succeeded,
// or throws as soon as any one of them does. It links the returned Future
// to every input, so cancelling it cancels all of them.
func JoinAll[T any](fs []Future[T]) Future[struct{}] {
	p := NewPromise[struct{}]()
	for _, f := range fs {
		p.LinkTo(f)
	}
	if len(fs) == 0 {
		p.UpdateIfEmpty(Return(struct{}{}))
		return p.Future()
	}

	remaining := int64(len(fs))
	for _, f := range fs {
		f.Respond(func(t Try[T]) {
			if t.IsThrow() {
				p.UpdateIfEmpty(Throw[struct{}](t.Err()))
				return
			}
			if atomic.AddInt64(&remaining, -1) == 0 {
				p.UpdateIfEmpty(Return(struct{}{}))
			}
		})
	}
	return p.Future()
}

// CollectAll completes with every Future's value, in the same order as
// fs, once all of them have succeeded; it throws as soon as any one of
// them does. It links the returned Future to every input.
func CollectAll[T any](fs []Future[T]) Future[[]T] {
	p := NewPromise[[]T]()
	for _, f := range fs {
		p.LinkTo(f)
	}
	n := len(fs)
	if n == 0 {
		p.UpdateIfEmpty(Return([]T{}))
		return p.Future()
	}

	results := make([]T, n)
	remaining := int64(n)
	for idx, f := range fs {
		i := idx
		f.Respond(func(t Try[T]) {
			if t.IsThrow() {
				p.UpdateIfEmpty(Throw[[]T](t.Err()))
				return
			}
			results[i] = t.Val()
			if atomic.AddInt64(&remaining, -1) == 0 {
				p.UpdateIfEmpty(Return(results))
			}
		})
	}
	return p.Future()
}

// Select2 completes with whichever of fa, fb completes first, success or
// failure. Cancelling the returned Future cancels both inputs.
func Select2[T any](fa, fb Future[T]) Future[T] {
	p := NewPromise[T]()
	p.LinkTo(fa)
	p.LinkTo(fb)
	fa.Respond(func(t Try[T]) { p.UpdateIfEmpty(t) })
	fb.Respond(func(t Try[T]) { p.UpdateIfEmpty(t) })
	return p.Future()
}

// SelectResult is the outcome of SelectAll: the first input to complete,
// and the remaining inputs, in their original order, excluding the
// winner.
type SelectResult[T any] struct {
	Winner    Try[T]
	Remaining []Future[T]
}

// SelectAll completes with the first Future in fs to complete (success or
// failure) paired with the rest of fs, order preserved, winner excluded.
// Linking each input costs O(N). SelectAll of an empty slice never
// completes, mirroring select-on-nothing in any other Future library.
func SelectAll[T any](fs []Future[T]) Future[SelectResult[T]] {
	p := NewPromise[SelectResult[T]]()
	for _, f := range fs {
		p.LinkTo(f)
	}
	if len(fs) == 0 {
		return p.Future()
	}

	var once sync.Once
	for idx, f := range fs {
		i := idx
		f.Respond(func(t Try[T]) {
			once.Do(func() {
				remaining := make([]Future[T], 0, len(fs)-1)
				for j, other := range fs {
					if j != i {
						remaining = append(remaining, other)
					}
				}
				p.UpdateIfEmpty(Return(SelectResult[T]{Winner: t, Remaining: remaining}))
			})
		})
	}
	return p.Future()
}
