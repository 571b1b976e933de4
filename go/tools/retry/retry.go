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

// Package retry implements exponential backoff with full jitter for
// retry loops.
package retry

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Retry paces the attempts of a retry loop. The first StartAttempt call
// returns immediately; each later call sleeps for an exponentially
// growing, fully jittered delay before returning.
//
// Example usage:
//
//	r := retry.New(100*time.Millisecond, 30*time.Second)
//	for {
//	    if err := r.StartAttempt(ctx); err != nil {
//	        return err // Context cancelled or timed out
//	    }
//	    if err := establishWatch(); err == nil {
//	        return nil
//	    }
//	    // Will back off before the next attempt.
//	}
type Retry struct {
	base time.Duration
	max  time.Duration

	mu       sync.Mutex
	rng      *rand.Rand
	step     int // delay exponent, reset by Reset
	attempt  int // total attempts, never reset
	noJitter bool
}

// New creates a Retry with the given base and maximum delay. Invalid
// parameters are a coding error and panic.
func New(base, max time.Duration) *Retry {
	if base <= 0 {
		panic("retry: base delay must be positive")
	}
	if max < base {
		panic("retry: max delay must be >= base delay")
	}
	return &Retry{
		base: base,
		max:  max,
		rng:  rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().UnixNano()))),
	}
}

// StartAttempt waits for the current backoff delay, or returns the
// context error if ctx ends first. A nil return means the caller should
// perform the next attempt.
func (r *Retry) StartAttempt(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	first := r.attempt == 0
	r.attempt++
	var delay time.Duration
	if !first {
		delay = r.nextDelayLocked()
	}
	r.mu.Unlock()

	if !first && delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Attempt returns the number of StartAttempt calls that have returned
// nil or started waiting. It is never reset.
func (r *Retry) Attempt() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempt
}

// Reset drops the backoff back to the base delay. Call it after the
// retried operation has been healthy for a while, so a later failure
// starts from a short delay instead of the accumulated one.
func (r *Retry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.step = 0
}

// nextDelayLocked computes base * 2^step capped at max, applies full
// jitter (random in [0, delay)), and advances step. Full jitter spreads
// concurrent retriers across time at the cost of occasionally very short
// delays.
func (r *Retry) nextDelayLocked() time.Duration {
	step := r.step
	if step > 62 {
		step = 62
	}

	delay := r.max
	multiplier := int64(1) << step
	if int64(r.base) <= math.MaxInt64/multiplier {
		delay = time.Duration(int64(r.base) * multiplier)
		if delay > r.max {
			delay = r.max
		}
	}

	if !r.noJitter && r.rng != nil {
		delay = time.Duration(float64(delay) * r.rng.Float64())
	}

	r.step++
	return delay
}
