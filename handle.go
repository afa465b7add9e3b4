// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

// Handles are opaque 64-bit ids into runtime-owned arenas. The low 32
// bits are a 1-based slot index; the high 32 bits are the slot's
// generation at the time the handle was issued. A destroyed slot bumps
// its generation, so handles to freed objects fail lookup instead of
// aliasing whatever reuses the slot. The zero value of every handle type
// is always invalid.

// SpaceHandle refers to a Space registered with a Runtime.
type SpaceHandle uint64

// SwapchainHandle refers to a Swapchain registered with a Runtime.
type SwapchainHandle uint64

// SessionHandle refers to a Session created from a Runtime's system.
type SessionHandle uint64

type arenaSlot[T any] struct {
	value      T
	generation uint32
	live       bool
}

// arena is a generation-checked slot allocator. It is not safe for
// concurrent use; the Runtime guards each arena with its own lock.
type arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint32
	count int
}

func packHandle(index, generation uint32) uint64 {
	return uint64(generation)<<32 | uint64(index+1)
}

func unpackHandle(h uint64) (index, generation uint32, ok bool) {
	index = uint32(h)
	if index == 0 {
		return 0, 0, false
	}
	return index - 1, uint32(h >> 32), true
}

// insert stores v and returns its handle.
func (a *arena[T]) insert(v T) uint64 {
	a.count++
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		slot := &a.slots[index]
		slot.value = v
		slot.live = true
		return packHandle(index, slot.generation)
	}
	a.slots = append(a.slots, arenaSlot[T]{value: v, live: true})
	return packHandle(uint32(len(a.slots)-1), 0)
}

// lookup resolves h, failing for zero, stale, and out-of-range handles.
func (a *arena[T]) lookup(h uint64) (T, bool) {
	var zero T
	index, generation, ok := unpackHandle(h)
	if !ok || int(index) >= len(a.slots) {
		return zero, false
	}
	slot := &a.slots[index]
	if !slot.live || slot.generation != generation {
		return zero, false
	}
	return slot.value, true
}

// remove frees the slot behind h. Removing a stale or unknown handle is
// a no-op that reports false.
func (a *arena[T]) remove(h uint64) bool {
	index, generation, ok := unpackHandle(h)
	if !ok || int(index) >= len(a.slots) {
		return false
	}
	slot := &a.slots[index]
	if !slot.live || slot.generation != generation {
		return false
	}
	var zero T
	slot.value = zero
	slot.live = false
	slot.generation++
	a.free = append(a.free, index)
	a.count--
	return true
}

// len returns the number of live slots.
func (a *arena[T]) len() int { return a.count }
