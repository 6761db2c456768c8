// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors returned by the encoder. A caller that needs to branch
// on failure class should compare with errors.Is against one of these;
// the package always wraps them with record-specific context before
// returning.
var (
	// ErrWriteToStreamFailed indicates the caller's sink returned an error.
	ErrWriteToStreamFailed = errors.New("fxt: write to stream failed")

	// ErrStrTooLong indicates a record-level string exceeded its
	// format-defined maximum length.
	ErrStrTooLong = errors.New("fxt: string exceeds format maximum length")

	// ErrWriteLengthMismatch indicates the post-emission word count
	// disagreed with the pre-computed size of a record or argument. This
	// is an encoder bug and signals the output stream is corrupt.
	ErrWriteLengthMismatch = errors.New("fxt: internal encoder bug: word count mismatch")

	// ErrDataTooLong indicates a blob exceeded the 15-bit size field.
	ErrDataTooLong = errors.New("fxt: blob exceeds 15-bit size field")

	// ErrInvalidOutgoingThreadState indicates a context-switch outgoing
	// state exceeded 4 bits.
	ErrInvalidOutgoingThreadState = errors.New("fxt: outgoing thread state exceeds 4 bits")

	// ErrRecordSizeTooLarge indicates the computed record size exceeded
	// the 12-bit size field shared by every record kind.
	ErrRecordSizeTooLarge = errors.New("fxt: record size exceeds 12-bit size field")

	// ErrInvalidArgType indicates an argument type tag outside the
	// defined range.
	ErrInvalidArgType = errors.New("fxt: argument type tag out of range")

	// ErrArgNameTooLong indicates an inline argument name exceeded
	// 0x7FFF bytes.
	ErrArgNameTooLong = errors.New("fxt: argument name exceeds 0x7FFF bytes")

	// ErrArgStrValueTooLong indicates an inline argument string value
	// (or hex-rendered byte slice) exceeded 0x7FFF bytes.
	ErrArgStrValueTooLong = errors.New("fxt: argument string value exceeds 0x7FFF bytes")

	// ErrTooManyArgs indicates an argument count exceeded 15, the
	// maximum representable in a 4-bit record field.
	ErrTooManyArgs = errors.New("fxt: argument count exceeds 15")
)

// wrap attaches op-specific context to a sentinel error while keeping it
// discoverable through errors.Is / errors.Cause.
func wrap(sentinel error, format string, args ...interface{}) error {
	return errors.Wrap(sentinel, fmt.Sprintf(format, args...))
}
