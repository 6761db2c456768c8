// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

import "testing"

func TestPackField(t *testing.T) {
	cases := []struct {
		name        string
		value       uint64
		begin, end  uint
		want        uint64
	}{
		{"low nibble", 0xF, 0, 3, 0xF},
		{"shifted byte", 0xFF, 8, 15, 0xFF00},
		{"full word", ^uint64(0), 0, 63, ^uint64(0)},
		{"truncated overflow", 0x1F, 0, 3, 0xF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := packField(tc.value, tc.begin, tc.end); got != tc.want {
				t.Errorf("packField(%#x, %d, %d) = %#x, want %#x", tc.value, tc.begin, tc.end, got, tc.want)
			}
		})
	}
}

func TestReadFieldRoundTrip(t *testing.T) {
	word := packField(7, 0, 3) | packField(0x1234, 16, 31) | packField(1, 63, 63)
	if got := readField(word, 0, 3); got != 7 {
		t.Errorf("readField low nibble = %#x, want 7", got)
	}
	if got := readField(word, 16, 31); got != 0x1234 {
		t.Errorf("readField middle = %#x, want 0x1234", got)
	}
	if got := readField(word, 63, 63); got != 1 {
		t.Errorf("readField top bit = %#x, want 1", got)
	}
}

func TestSetFieldPreservesOtherBits(t *testing.T) {
	word := packField(0xFF, 0, 7) | packField(0xFF, 56, 63)
	word = setField(word, 0, 7, 0)
	if got := readField(word, 0, 7); got != 0 {
		t.Errorf("low byte = %#x, want 0", got)
	}
	if got := readField(word, 56, 63); got != 0xFF {
		t.Errorf("high byte = %#x, want 0xFF, setField clobbered an unrelated range", got)
	}
}

func TestAlignWords(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 7: 1, 8: 1, 9: 2, 16: 2, 17: 3}
	for n, want := range cases {
		if got := alignWords(n); got != want {
			t.Errorf("alignWords(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestZeroPadLen(t *testing.T) {
	cases := map[int]int{0: 0, 1: 7, 7: 1, 8: 0, 9: 7}
	for n, want := range cases {
		if got := zeroPadLen(n); got != want {
			t.Errorf("zeroPadLen(%d) = %d, want %d", n, got, want)
		}
	}
}
