// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package timertools provides various timer tools
package timertools

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Trigger calls into a single tick on C.
// Each Trigger restarts the quiet-period timer; the tick is delivered
// once the configured delay passes without another Trigger. Filesystem
// watchers use this to turn an editor's save burst into one rescan.
type Debouncer struct {
	C chan time.Time // The channel on which the ticks are delivered.

	mu      sync.Mutex
	timer   *time.Timer
	delay   time.Duration
	stopped bool
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		panic("timertools: non-positive delay for NewDebouncer")
	}
	return &Debouncer{
		C:     make(chan time.Time, 1),
		delay: delay,
	}
}

// Trigger records an event and restarts the quiet-period timer.
// Safe to call from multiple goroutines.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Stop turns the debouncer off. After Stop, no more ticks will be sent.
// Stop does not close the channel, to prevent a concurrent goroutine
// reading from the channel from seeing an erroneous "tick".
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire delivers the tick once the quiet period elapses.
func (d *Debouncer) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.timer = nil

	// Send tick (non-blocking)
	select {
	case d.C <- time.Now():
	default:
	}
}
