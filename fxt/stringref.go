// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

// A string reference packs into 16 bits: the top bit distinguishes an
// indexed handle (a previously-interned string) from an inline string
// (whose bytes immediately follow the current word). Spec section 3
// reserves reference 0; it never appears because intern-table handles
// are always slot+1.
const stringRefInlineFlag = uint16(0x8000)

func indexedStringRef(handle uint16) uint16 {
	return handle
}

func inlineStringRef(length int) uint16 {
	return stringRefInlineFlag | uint16(length)
}
