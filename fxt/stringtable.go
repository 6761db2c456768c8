// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

import farm "github.com/dgryski/go-farm"

// DefaultStringTableCapacity is the capacity spec section 4.3 names for
// the string intern table. It is a free parameter (changing it only
// affects hit rate, never correctness) and can be overridden with
// WithStringTableCapacity.
const DefaultStringTableCapacity = 512

// maxInternedStringLen is the format limit spec section 4.3 places on a
// string accepted by the intern table: one byte short of the 15-bit
// StringLength field's maximum, matching the source behavior the spec
// calls out rather than the field's raw capacity.
const maxInternedStringLen = 0x7FFE

// stringTable is the bounded hash-indexed table described in spec
// section 4.3: it remembers only a 64-bit content hash per slot, never
// the string bytes, and hands out 1-based handles that wrap once the
// table fills.
type stringTable struct {
	capacity  int
	hashes    []uint64
	nextIndex int
}

func newStringTable(capacity int) *stringTable {
	return &stringTable{capacity: capacity, hashes: make([]uint64, capacity)}
}

// probeLimit returns how many slots currently hold a real binding.
func (t *stringTable) probeLimit() int {
	if t.nextIndex < t.capacity {
		return t.nextIndex
	}
	return t.capacity
}

// lookup returns the slot holding hash, if any slot in use currently
// does.
func (t *stringTable) lookup(hash uint64) (slot int, found bool) {
	limit := t.probeLimit()
	for i := 0; i < limit; i++ {
		if t.hashes[i] == hash {
			return i, true
		}
	}
	return 0, false
}

// insert claims the next slot (wrapping over the oldest binding once the
// table is full) for hash and returns it.
func (t *stringTable) insert(hash uint64) int {
	slot := t.nextIndex % t.capacity
	t.hashes[slot] = hash
	t.nextIndex++
	return slot
}

func (t *stringTable) len() int {
	return t.probeLimit()
}

func stringContentHash(s []byte) uint64 {
	return farm.Hash64(s)
}

// internString returns the 1-based handle bound to s, interning it (and
// emitting a String record through writeStringRecord) on a miss. It is
// the sole caller of writeStringRecord: every String record on the wire
// is a side effect of a get-or-intern call, which is what guarantees
// spec invariant 5 — the binding always appears before any record that
// can reference the handle.
func (w *Writer) internString(s string) (uint16, error) {
	if len(s) > maxInternedStringLen {
		return 0, wrap(ErrStrTooLong, "string of length %d exceeds %d byte intern limit", len(s), maxInternedStringLen)
	}
	hash := stringContentHash([]byte(s))
	if slot, ok := w.strings.lookup(hash); ok {
		return uint16(slot + 1), nil
	}
	slot := w.strings.insert(hash)
	handle := uint16(slot + 1)
	if err := w.writeStringRecord(handle, []byte(s)); err != nil {
		return 0, err
	}
	return handle, nil
}
