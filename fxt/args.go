// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

import (
	"encoding/binary"
	"encoding/hex"
	"math"
)

// maxInlineArgBytes is the format limit on an inline argument name or
// string value: the 15-bit length field's maximum.
const maxInlineArgBytes = 0x7FFF

// argValue is the sum type over the ten argument payload kinds spec
// section 9 describes. Go has no built-in discriminated union, so this
// follows the canonical approach for a closed, compile-time-known set of
// kinds: an unexported interface implemented by one value type per kind,
// with no dynamic dispatch beyond the type switch in encodeArgValue.
type argValue interface {
	argType() ArgumentType
}

type nullValue struct{}

func (nullValue) argType() ArgumentType { return ArgumentTypeNull }

type int32Value int32

func (int32Value) argType() ArgumentType { return ArgumentTypeInt32 }

type uint32Value uint32

func (uint32Value) argType() ArgumentType { return ArgumentTypeUInt32 }

type int64Value int64

func (int64Value) argType() ArgumentType { return ArgumentTypeInt64 }

type uint64Value uint64

func (uint64Value) argType() ArgumentType { return ArgumentTypeUInt64 }

type doubleValue float64

func (doubleValue) argType() ArgumentType { return ArgumentTypeDouble }

type stringValue struct {
	value     string
	indexed   bool
	hexEncode bool
}

func (stringValue) argType() ArgumentType { return ArgumentTypeString }

type pointerValue uint64

func (pointerValue) argType() ArgumentType { return ArgumentTypePointer }

type koidValue uint64

func (koidValue) argType() ArgumentType { return ArgumentTypeKOID }

type boolValue bool

func (boolValue) argType() ArgumentType { return ArgumentTypeBool }

// Argument is a name/value pair attached to a record. Build one with
// NullArg, Int32Arg, UInt32Arg, Int64Arg, UInt64Arg, DoubleArg, StringArg,
// IndexedStringArg, HexStringArg, PointerArg, KOIDArg, or BoolArg.
type Argument struct {
	name       string
	nameInline bool
	value      argValue
}

// ArgOption customizes how an Argument's name is encoded.
type ArgOption func(*Argument)

// InlineName requests the argument's name be emitted inline rather than
// interned through the string table. The default is to intern it, which
// is cheaper on the wire for names repeated across many records.
func InlineName() ArgOption {
	return func(a *Argument) { a.nameInline = true }
}

func newArgument(name string, v argValue, opts ...ArgOption) Argument {
	a := Argument{name: name, value: v}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func NullArg(name string, opts ...ArgOption) Argument { return newArgument(name, nullValue{}, opts...) }

func Int32Arg(name string, v int32, opts ...ArgOption) Argument {
	return newArgument(name, int32Value(v), opts...)
}

func UInt32Arg(name string, v uint32, opts ...ArgOption) Argument {
	return newArgument(name, uint32Value(v), opts...)
}

func Int64Arg(name string, v int64, opts ...ArgOption) Argument {
	return newArgument(name, int64Value(v), opts...)
}

func UInt64Arg(name string, v uint64, opts ...ArgOption) Argument {
	return newArgument(name, uint64Value(v), opts...)
}

func DoubleArg(name string, v float64, opts ...ArgOption) Argument {
	return newArgument(name, doubleValue(v), opts...)
}

// StringArg builds a String argument whose value is emitted inline.
func StringArg(name, value string, opts ...ArgOption) Argument {
	return newArgument(name, stringValue{value: value}, opts...)
}

// IndexedStringArg builds a String argument whose value is interned
// through the string table instead of written inline.
func IndexedStringArg(name, value string, opts ...ArgOption) Argument {
	return newArgument(name, stringValue{value: value, indexed: true}, opts...)
}

// HexStringArg builds a String argument whose bytes are rendered as
// lowercase inline hex, e.g. for opaque binary blobs a reader should
// display rather than interpret as text. Hex encoding forces the inline
// form; it cannot be interned.
func HexStringArg(name string, data []byte, opts ...ArgOption) Argument {
	return newArgument(name, stringValue{value: string(data), hexEncode: true}, opts...)
}

func PointerArg(name string, v uint64, opts ...ArgOption) Argument {
	return newArgument(name, pointerValue(v), opts...)
}

func KOIDArg(name string, v uint64, opts ...ArgOption) Argument {
	return newArgument(name, koidValue(v), opts...)
}

func BoolArg(name string, v bool, opts ...ArgOption) Argument {
	return newArgument(name, boolValue(v), opts...)
}

// encodedArg is the result of argument encoder Phase A (spec section
// 4.5): everything needed to emit the argument is already computed, so
// the record encoder can sum totalWords across every argument before it
// commits to a record's header.
type encodedArg struct {
	kind       ArgumentType
	totalWords int
	nameRef    uint16
	nameInline []byte // padded to an 8-byte boundary; nil if the name is indexed
	valueBits  uint64 // raw contents of header bits [32..63]
	payload    []byte // padded to an 8-byte boundary; nil if the value has no trailing payload
}

// preprocessArg runs argument encoder Phase A for a single argument:
// name resolution plus a size computation, with no bytes written yet.
func (w *Writer) preprocessArg(a Argument) (encodedArg, error) {
	e := encodedArg{kind: a.value.argType()}

	nameWords := 0
	if a.nameInline {
		if len(a.name) > maxInlineArgBytes {
			return encodedArg{}, wrap(ErrArgNameTooLong, "argument name %q is %d bytes", a.name, len(a.name))
		}
		e.nameRef = inlineStringRef(len(a.name))
		e.nameInline = padBytes([]byte(a.name))
		nameWords = alignWords(len(a.name))
	} else {
		handle, err := w.internString(a.name)
		if err != nil {
			return encodedArg{}, err
		}
		e.nameRef = indexedStringRef(handle)
	}

	headerAndValueWords, err := encodeArgValue(&e, a.value, w)
	if err != nil {
		return encodedArg{}, err
	}

	e.totalWords = nameWords + headerAndValueWords
	return e, nil
}

// encodeArgValue fills in e.valueBits/e.payload for a.value and returns
// the header-and-value word count (spec section 4.5's size table).
func encodeArgValue(e *encodedArg, v argValue, w *Writer) (int, error) {
	switch val := v.(type) {
	case nullValue:
		return 1, nil
	case int32Value:
		e.valueBits = uint64(uint32(val))
		return 1, nil
	case uint32Value:
		e.valueBits = uint64(val)
		return 1, nil
	case int64Value:
		e.payload = le64(uint64(val))
		return 2, nil
	case uint64Value:
		e.payload = le64(uint64(val))
		return 2, nil
	case doubleValue:
		e.payload = le64(math.Float64bits(float64(val)))
		return 2, nil
	case pointerValue:
		e.payload = le64(uint64(val))
		return 2, nil
	case koidValue:
		e.payload = le64(uint64(val))
		return 2, nil
	case boolValue:
		if val {
			e.valueBits = 1
		}
		return 1, nil
	case stringValue:
		return encodeStringArgValue(e, val, w)
	default:
		return 0, wrap(ErrInvalidArgType, "unrecognized argument value type %T", v)
	}
}

func encodeStringArgValue(e *encodedArg, val stringValue, w *Writer) (int, error) {
	if val.hexEncode {
		hexStr := hex.EncodeToString([]byte(val.value))
		if len(hexStr) > maxInlineArgBytes {
			return 0, wrap(ErrArgStrValueTooLong, "hex-encoded argument value is %d bytes", len(hexStr))
		}
		e.valueBits = uint64(inlineStringRef(len(hexStr)))
		e.payload = padBytes([]byte(hexStr))
		return 1 + alignWords(len(hexStr)), nil
	}
	if val.indexed {
		handle, err := w.internString(val.value)
		if err != nil {
			return 0, err
		}
		e.valueBits = uint64(indexedStringRef(handle))
		return 1, nil
	}
	if len(val.value) > maxInlineArgBytes {
		return 0, wrap(ErrArgStrValueTooLong, "argument string value is %d bytes", len(val.value))
	}
	e.valueBits = uint64(inlineStringRef(len(val.value)))
	e.payload = padBytes([]byte(val.value))
	return 1 + alignWords(len(val.value)), nil
}

func le64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

func padBytes(p []byte) []byte {
	if zeroPadLen(len(p)) == 0 {
		return p
	}
	out := make([]byte, len(p)+zeroPadLen(len(p)))
	copy(out, p)
	return out
}

// emit runs argument encoder Phase B: write the packed header, then any
// inline name bytes, then the value payload, in that fixed order.
func (e *encodedArg) emit(em *emitter) error {
	header := packField(uint64(e.kind), 0, 3) |
		packField(uint64(e.totalWords), 4, 15) |
		packField(uint64(e.nameRef), 16, 31) |
		packField(e.valueBits, 32, 63)
	if err := em.emitWord(header); err != nil {
		return err
	}
	before := em.written
	if err := em.emitBytes(e.nameInline); err != nil {
		return err
	}
	if err := em.emitBytes(e.payload); err != nil {
		return err
	}
	wantBytes := uint64(e.totalWords-1) * 8
	if gotBytes := em.written - before; gotBytes != wantBytes {
		return wrap(ErrWriteLengthMismatch, "argument wrote %d trailing bytes, expected %d", gotBytes, wantBytes)
	}
	return nil
}
