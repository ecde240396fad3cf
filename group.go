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

import "sync"

// Group bounds how many goroutines its Go method may have running at
// once; a size of 0 means unlimited. It exists so that spawning the
// producer side of a Future doesn't let an unbounded fan-out (e.g. a big
// CollectAll) start thousands of goroutines at once.
type Group[T any] struct {
	wg  sync.WaitGroup
	sem chan struct{}
}

// NewGroup returns a Group. If size > 0, at most size goroutines started
// through Go will be running at once; further calls block until one frees
// up.
func NewGroup[T any](size int) *Group[T] {
	g := &Group[T]{}
	if size > 0 {
		g.sem = make(chan struct{}, size)
	}
	return g
}

// Go runs fn on a new goroutine, subject to this Group's size limit, and
// returns a Future of its outcome. A panic inside fn is captured into a
// Throw rather than crashing the goroutine.
func (g *Group[T]) Go(fn func() (T, error)) Future[T] {
	g.reserve()
	p := NewPromise[T]()
	go func() {
		defer g.free()
		p.Update(tryOf(fn))
	}()
	return p.Future()
}

// Wait blocks until every goroutine started through Go has returned.
func (g *Group[T]) Wait() {
	g.wg.Wait()
}

func (g *Group[T]) reserve() {
	g.wg.Add(1)
	if g.sem != nil {
		g.sem <- struct{}{}
	}
}

func (g *Group[T]) free() {
	g.wg.Done()
	if g.sem != nil {
		<-g.sem
	}
}
