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
	"os"

	"github.com/hashicorp/go-hclog"
)

// DefaultLogger is used by the package, and by the timer variants, to
// report conditions that the caller has no direct way to observe: an
// uncaught panic or error at the end of a promise chain (the caller never
// called Respond to find out), a panic inside a Timer-driven callback
// (which must not escape the timer thread, per the error handling design),
// and a timer.RefCounted.Stop call with no matching Acquire.
//
// It's a variable, not a constant, so a host application can replace it
// (e.g. to route through its own hclog.Logger) before using the package.
var DefaultLogger hclog.Logger = hclog.New(&hclog.LoggerOptions{
	Name:   "future",
	Level:  hclog.Warn,
	Output: os.Stderr,
})
