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

// Snapshotter is a pluggable context-snapshot capability: it captures
// whatever a host application considers its
// thread-local bundle (request-scoped values, a tracing span, ...) at the
// moment Respond is called, and restores it for the duration of the
// continuation's dispatch, wherever that dispatch ends up running (the
// producer's goroutine, a combinator's goroutine, or a timer thread).
//
// The set of keys captured is entirely up to the host; this package only
// defines the capture/restore boundary.
type Snapshotter interface {
	Snapshot() Restorer
}

// Restorer installs a previously captured snapshot for the duration of a
// callback, returning an undo function that must be called once the
// callback returns.
type Restorer interface {
	Restore() (undo func())
}

// Snapshot is used by Respond (and every combinator built on it) to wrap
// continuations. It defaults to a no-op snapshotter; host applications that
// need thread-local propagation across asynchronous boundaries replace it
// at process startup.
var Snapshot Snapshotter = noopSnapshotter{}

type noopSnapshotter struct{}

func (noopSnapshotter) Snapshot() Restorer { return noopRestorer{} }

type noopRestorer struct{}

func (noopRestorer) Restore() (undo func()) { return func() {} }
