// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

import "github.com/golang/glog"

// Every FXT record and argument header is a 64-bit word built out of
// named bit ranges. packField, readField, and setField are the only
// primitives the rest of the encoder uses to touch those ranges; keeping
// them in one place means the bit arithmetic is tested once instead of
// once per record kind.

func fieldMask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// packField returns value shifted into the inclusive bit range
// [begin, end] of a 64-bit word, with all other bits zero. A value wider
// than the range is silently masked to fit rather than rejected: callers
// are expected to pass enum constants and small counters, and the format
// itself defines the field widths, so a masking truncation here would
// only ever mask a genuine caller bug. When glog verbosity is 3 or
// higher the truncation is logged so those bugs are still visible.
func packField(value uint64, begin, end uint) uint64 {
	width := end - begin + 1
	masked := value & fieldMask(width)
	if glog.V(3) && masked != value {
		glog.Warningf("fxt: value %#x does not fit in bits [%d:%d], truncated to %#x", value, begin, end, masked)
	}
	return masked << begin
}

// readField extracts the inclusive bit range [begin, end] from word.
func readField(word uint64, begin, end uint) uint64 {
	width := end - begin + 1
	return (word >> begin) & fieldMask(width)
}

// setField overwrites the inclusive bit range [begin, end] of word with
// value, leaving every other bit untouched.
func setField(word uint64, begin, end uint, value uint64) uint64 {
	width := end - begin + 1
	mask := fieldMask(width) << begin
	return (word &^ mask) | ((value << begin) & mask)
}

// alignWords returns the number of 8-byte words needed to hold n bytes.
func alignWords(n int) int {
	return (n + 7) / 8
}

// zeroPadLen returns how many zero bytes must follow n bytes of content
// to reach the next 8-byte boundary.
func zeroPadLen(n int) int {
	return alignWords(n)*8 - n
}
