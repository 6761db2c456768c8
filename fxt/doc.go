// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package fxt implements a producer-side encoder for the Fuchsia Trace
// Format (FXT). Callers invoke named operations ("record an instant
// event", "declare a process name", "record a context switch") and the
// package translates each call into one or more 64-bit-word-aligned
// records written through a caller-supplied Sink.
//
// The package does not open files, sockets, or threads, and it does not
// parse traces back; it is the write side only. Output is byte-for-byte
// compatible with existing FXT readers such as the Perfetto UI.
package fxt
