// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

import (
	"bytes"
	"context"
)

// memSink is a Sink backed by an in-memory buffer, used throughout the
// package's tests in place of a real trace-buffer or file transport.
type memSink struct {
	buf bytes.Buffer
}

func (m *memSink) Write(_ context.Context, p []byte) error {
	m.buf.Write(p)
	return nil
}

func (m *memSink) Bytes() []byte {
	return m.buf.Bytes()
}

// failingSink always returns err, simulating a rejected Sink.Write call.
type failingSink struct {
	err error
}

func (f failingSink) Write(_ context.Context, _ []byte) error {
	return f.err
}

// newTestWriter builds a Writer and writes its magic-number record, the
// way a real caller is expected to start a stream, so the rest of the
// package's tests can assume the 8-byte magic record is already on the
// wire and skip past it.
func newTestWriter() (*Writer, *memSink) {
	sink := &memSink{}
	w, err := New(context.Background(), sink)
	if err != nil {
		panic(err)
	}
	if err := w.WriteMagic(); err != nil {
		panic(err)
	}
	return w, sink
}
