// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"sync"
	"time"
)

// Time is a timestamp in the engine's external time domain: strictly
// positive nanoseconds on a monotonic timeline shared by the engine and
// its callers. Zero is never a valid Time.
type Time int64

// Sub returns the duration t-u.
func (t Time) Sub(u Time) time.Duration {
	return time.Duration(int64(t) - int64(u))
}

// Clock is the engine's time source. It separates the internal monotonic
// domain, which compositors pace in, from the external Time domain that
// callers see in frame states and display deadlines.
type Clock interface {
	// Now returns the current internal monotonic time in nanoseconds.
	// Successive calls never return the same or a smaller value.
	Now() int64

	// ToTime converts an internal monotonic timestamp to the external
	// Time domain.
	ToTime(mono int64) Time
}

// SystemClock is a Clock backed by the process monotonic clock. The
// external domain is anchored to the wall clock at construction so that
// Times are large, positive, and comparable across sessions sharing the
// clock.
//
// SystemClock is safe for concurrent use.
type SystemClock struct {
	mu     sync.Mutex
	start  time.Time
	offset int64
	last   int64
}

// NewSystemClock returns a SystemClock anchored at the current instant.
func NewSystemClock() *SystemClock {
	now := time.Now()
	return &SystemClock{
		start:  now,
		offset: now.UnixNano(),
	}
}

// Now implements Clock. It enforces strict monotonicity even if the
// underlying clock reports the same nanosecond twice.
func (c *SystemClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	mono := time.Since(c.start).Nanoseconds() + 1
	if mono <= c.last {
		mono = c.last + 1
	}
	c.last = mono
	return mono
}

// ToTime implements Clock.
func (c *SystemClock) ToTime(mono int64) Time {
	return Time(c.offset + mono)
}
