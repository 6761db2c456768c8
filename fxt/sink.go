// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

import (
	"context"
	"encoding/binary"
)

// Sink is the byte-writing capability a Writer emits through. It is the
// only external resource the package touches: no files, sockets, or
// background goroutines are created on a caller's behalf. Buffering,
// flushing, and file or network transport are the Sink implementation's
// concern, not the encoder's.
//
// Write must accept the full slice or fail; a Writer never retries or
// reorders a write, and a non-nil error aborts the record in progress
// mid-stream, leaving the underlying stream truncated.
type Sink interface {
	Write(ctx context.Context, p []byte) error
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(ctx context.Context, p []byte) error

// Write implements Sink.
func (f SinkFunc) Write(ctx context.Context, p []byte) error {
	return f(ctx, p)
}

// emitter wraps a Sink with the three primitive operations the record
// encoder needs: a little-endian word, a raw byte range, and a run of
// zero padding. It performs no buffering of its own and returns on the
// first failure, mirroring the byte-sink adapter contract in spec
// section 4.1. The little-endian word framing and alignment padding
// follow the same idiom as garnet/go/src/far/far.go's archive writer.
type emitter struct {
	sink    Sink
	ctx     context.Context
	written uint64
}

func newEmitter(ctx context.Context, sink Sink) *emitter {
	return &emitter{sink: sink, ctx: ctx}
}

func (e *emitter) emitWord(w uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], w)
	return e.emitBytes(buf[:])
}

func (e *emitter) emitBytes(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := e.sink.Write(e.ctx, p); err != nil {
		return wrap(ErrWriteToStreamFailed, "sink rejected %d bytes: %v", len(p), err)
	}
	e.written += uint64(len(p))
	return nil
}

func (e *emitter) emitZeros(count int) error {
	if count <= 0 {
		return nil
	}
	return e.emitBytes(make([]byte, count))
}

// emitPadded writes p followed by zero bytes out to the next 8-byte
// boundary.
func (e *emitter) emitPadded(p []byte) error {
	if err := e.emitBytes(p); err != nil {
		return err
	}
	return e.emitZeros(zeroPadLen(len(p)))
}
