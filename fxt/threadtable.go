// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

import (
	"encoding/binary"

	farm "github.com/dgryski/go-farm"
)

// DefaultThreadTableCapacity is the capacity spec section 4.4 names for
// the thread intern table.
const DefaultThreadTableCapacity = 128

// threadTable is structurally identical to stringTable (spec section
// 4.4: "Identical structure to section 4.3 with capacity 128"); it is
// kept as a separate type rather than a generic instantiation because
// its key is a (process-id, thread-id) pair and its handle width is 8
// bits, not 16.
type threadTable struct {
	capacity  int
	hashes    []uint64
	nextIndex int
}

func newThreadTable(capacity int) *threadTable {
	return &threadTable{capacity: capacity, hashes: make([]uint64, capacity)}
}

func (t *threadTable) probeLimit() int {
	if t.nextIndex < t.capacity {
		return t.nextIndex
	}
	return t.capacity
}

func (t *threadTable) lookup(hash uint64) (slot int, found bool) {
	limit := t.probeLimit()
	for i := 0; i < limit; i++ {
		if t.hashes[i] == hash {
			return i, true
		}
	}
	return 0, false
}

func (t *threadTable) insert(hash uint64) int {
	slot := t.nextIndex % t.capacity
	t.hashes[slot] = hash
	t.nextIndex++
	return slot
}

func (t *threadTable) len() int {
	return t.probeLimit()
}

func threadKeyHash(pid, tid uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], pid)
	binary.LittleEndian.PutUint64(buf[8:16], tid)
	return farm.Hash64(buf[:])
}

// internThread returns the 1-based handle bound to (pid, tid), interning
// it (and emitting a Thread record) on a miss.
func (w *Writer) internThread(pid, tid uint64) (uint8, error) {
	hash := threadKeyHash(pid, tid)
	if slot, ok := w.threads.lookup(hash); ok {
		return uint8(slot + 1), nil
	}
	slot := w.threads.insert(hash)
	handle := uint8(slot + 1)
	if err := w.writeThreadRecord(handle, pid, tid); err != nil {
		return 0, err
	}
	return handle, nil
}
