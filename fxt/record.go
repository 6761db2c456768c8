// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

import "github.com/golang/glog"

// magicNumberWord is the 8-byte little-endian word spec section 4.6
// mandates as the first word of every well-formed stream.
const magicNumberWord uint64 = 0x0016547846040010

// checkRecordSize enforces the 12-bit sizeInWords field every record
// header shares (spec section 3: "Record size includes the header word
// itself"; section 4.6 calls the overflow RecordSizeTooLarge out
// explicitly for kernel-object records, but the field is the same width
// for every kind).
func checkRecordSize(words int) error {
	if words > 0xFFF {
		return wrap(ErrRecordSizeTooLarge, "record is %d words, field holds at most %d", words, 0xFFF)
	}
	return nil
}

// preprocessArgs runs Phase A for every argument in order and sums the
// resulting word counts, enforcing the 15-argument ceiling the 4-bit
// ArgumentCount field imposes everywhere it appears.
func (w *Writer) preprocessArgs(args []Argument) ([]encodedArg, int, error) {
	if len(args) > 15 {
		return nil, 0, wrap(ErrTooManyArgs, "%d arguments, field holds at most 15", len(args))
	}
	encoded := make([]encodedArg, len(args))
	total := 0
	for i, a := range args {
		e, err := w.preprocessArg(a)
		if err != nil {
			return nil, 0, err
		}
		encoded[i] = e
		total += e.totalWords
	}
	return encoded, total, nil
}

// emitArgsAndVerify emits every preprocessed argument and checks, per
// spec section 4.6's "Emit args" contract, that the bytes actually
// written match the pre-computed total. A mismatch can only mean an
// encoder bug, never a caller error, so it is logged before being
// returned.
func emitArgsAndVerify(em *emitter, encoded []encodedArg, wantWords int) error {
	before := em.written
	for i := range encoded {
		if err := encoded[i].emit(em); err != nil {
			return err
		}
	}
	if got := em.written - before; got != uint64(wantWords)*8 {
		glog.Errorf("fxt: argument list wrote %d bytes, expected %d (%d words)", got, wantWords*8, wantWords)
		return wrap(ErrWriteLengthMismatch, "argument list wrote %d bytes, expected %d", got, wantWords*8)
	}
	return nil
}

// writeMagicRecord emits the stream's leading magic-number record.
func (w *Writer) writeMagicRecord() error {
	return w.em.emitWord(magicNumberWord)
}

func (w *Writer) writeProviderInfoRecord(providerID uint32, name string) error {
	if len(name) >= 256 {
		return wrap(ErrStrTooLong, "provider name is %d bytes, must be < 256", len(name))
	}
	sizeWords := 1 + alignWords(len(name))
	if err := checkRecordSize(sizeWords); err != nil {
		return err
	}
	header := packField(uint64(recordTypeMetadata), 0, 3) |
		packField(uint64(sizeWords), 4, 15) |
		packField(uint64(metadataTypeProviderInfo), 16, 19) |
		packField(uint64(providerID), 20, 51) |
		packField(uint64(len(name)), 52, 59)
	if err := w.em.emitWord(header); err != nil {
		return err
	}
	return w.em.emitPadded([]byte(name))
}

func (w *Writer) writeProviderSectionRecord(providerID uint32) error {
	header := packField(uint64(recordTypeMetadata), 0, 3) |
		packField(1, 4, 15) |
		packField(uint64(metadataTypeProviderSection), 16, 19) |
		packField(uint64(providerID), 20, 51)
	return w.em.emitWord(header)
}

func (w *Writer) writeProviderEventRecord(providerID uint32, event uint8) error {
	header := packField(uint64(recordTypeMetadata), 0, 3) |
		packField(1, 4, 15) |
		packField(uint64(metadataTypeProviderEvent), 16, 19) |
		packField(uint64(providerID), 20, 51) |
		packField(uint64(event), 52, 55)
	return w.em.emitWord(header)
}

func (w *Writer) writeInitializationRecord(ticksPerSecond uint64) error {
	header := packField(uint64(recordTypeInitialization), 0, 3) | packField(2, 4, 15)
	if err := w.em.emitWord(header); err != nil {
		return err
	}
	return w.em.emitWord(ticksPerSecond)
}

// writeStringRecord is called exclusively by the string table on a
// miss; it must never be invoked directly by the public surface, which
// is what guarantees the binding precedes every later reference.
func (w *Writer) writeStringRecord(index uint16, data []byte) error {
	sizeWords := 1 + alignWords(len(data))
	if err := checkRecordSize(sizeWords); err != nil {
		return err
	}
	header := packField(uint64(recordTypeString), 0, 3) |
		packField(uint64(sizeWords), 4, 15) |
		packField(uint64(index), 16, 30) |
		packField(uint64(len(data)), 32, 46)
	if err := w.em.emitWord(header); err != nil {
		return err
	}
	return w.em.emitPadded(data)
}

// writeThreadRecord is called exclusively by the thread table on a miss.
func (w *Writer) writeThreadRecord(index uint8, pid, tid uint64) error {
	header := packField(uint64(recordTypeThread), 0, 3) |
		packField(3, 4, 15) |
		packField(uint64(index), 16, 23)
	if err := w.em.emitWord(header); err != nil {
		return err
	}
	if err := w.em.emitWord(pid); err != nil {
		return err
	}
	return w.em.emitWord(tid)
}

// eventExtra is the subtype-specific trailing word(s) spec section 4.6's
// table describes (counter id, end timestamp, async/flow correlation
// id). Instant/DurationBegin/DurationEnd carry none.
type eventExtra struct {
	words []uint64
}

// writeEventRecord implements the single generic event-record routine
// spec section 9 calls for in place of the one-routine-per-subtype
// duplication in the source: every event subtype differs only in its
// EventType tag and its extra trailing words.
func (w *Writer) writeEventRecord(subtype EventType, category, name string, pid, tid, ts uint64, extra eventExtra, args []Argument) error {
	categoryRef, err := w.internString(category)
	if err != nil {
		return err
	}
	nameRef, err := w.internString(name)
	if err != nil {
		return err
	}
	threadRef, err := w.internThread(pid, tid)
	if err != nil {
		return err
	}
	encodedArgs, argWords, err := w.preprocessArgs(args)
	if err != nil {
		return err
	}

	sizeWords := 1 + 1 + len(extra.words) + argWords
	if err := checkRecordSize(sizeWords); err != nil {
		return err
	}

	header := packField(uint64(recordTypeEvent), 0, 3) |
		packField(uint64(sizeWords), 4, 15) |
		packField(uint64(subtype), 16, 19) |
		packField(uint64(len(args)), 20, 23) |
		packField(uint64(threadRef), 24, 31) |
		packField(uint64(indexedStringRef(categoryRef)), 32, 47) |
		packField(uint64(indexedStringRef(nameRef)), 48, 63)
	if err := w.em.emitWord(header); err != nil {
		return err
	}
	if err := w.em.emitWord(ts); err != nil {
		return err
	}
	if err := emitArgsAndVerify(w.em, encodedArgs, argWords); err != nil {
		return err
	}
	for _, word := range extra.words {
		if err := w.em.emitWord(word); err != nil {
			return err
		}
	}
	return nil
}

// maxBlobBytes is the 15-bit BlobSize field's maximum. Spec section
// 4.6 states both a [32..46] field range (15 bits) and a 0x7FFFFF
// ceiling for BlobSize; the two are incompatible (0x7FFFFF needs 23
// bits, which would collide with BlobType at [48..55]). The field
// range is authoritative here since it fixes the rest of the header
// layout, so the ceiling follows from it rather than being taken
// literally.
const maxBlobBytes = 0x7FFF

func (w *Writer) writeBlobRecord(name string, blobType BlobType, data []byte) error {
	if len(data) > maxBlobBytes {
		return wrap(ErrDataTooLong, "blob is %d bytes, field holds at most %d", len(data), maxBlobBytes)
	}
	nameRef, err := w.internString(name)
	if err != nil {
		return err
	}
	sizeWords := 1 + alignWords(len(data))
	if err := checkRecordSize(sizeWords); err != nil {
		return err
	}
	header := packField(uint64(recordTypeBlob), 0, 3) |
		packField(uint64(sizeWords), 4, 15) |
		packField(uint64(indexedStringRef(nameRef)), 16, 31) |
		packField(uint64(len(data)), 32, 46) |
		packField(uint64(blobType), 48, 55)
	if err := w.em.emitWord(header); err != nil {
		return err
	}
	return w.em.emitPadded(data)
}

func (w *Writer) writeUserspaceObjectRecord(pid, tid uint64, name string, pointer uint64, args []Argument) error {
	nameRef, err := w.internString(name)
	if err != nil {
		return err
	}
	threadRef, err := w.internThread(pid, tid)
	if err != nil {
		return err
	}
	encodedArgs, argWords, err := w.preprocessArgs(args)
	if err != nil {
		return err
	}
	sizeWords := 1 + 1 + argWords
	if err := checkRecordSize(sizeWords); err != nil {
		return err
	}
	header := packField(uint64(recordTypeUserspaceObject), 0, 3) |
		packField(uint64(sizeWords), 4, 15) |
		packField(uint64(threadRef), 16, 23) |
		packField(uint64(indexedStringRef(nameRef)), 24, 39) |
		packField(uint64(len(args)), 40, 43)
	if err := w.em.emitWord(header); err != nil {
		return err
	}
	if err := w.em.emitWord(pointer); err != nil {
		return err
	}
	return emitArgsAndVerify(w.em, encodedArgs, argWords)
}

func (w *Writer) writeKernelObjectRecord(objType KernelObjectType, name string, objectID uint64, args []Argument) error {
	nameRef, err := w.internString(name)
	if err != nil {
		return err
	}
	encodedArgs, argWords, err := w.preprocessArgs(args)
	if err != nil {
		return err
	}
	sizeWords := 1 + 1 + argWords
	if err := checkRecordSize(sizeWords); err != nil {
		return err
	}
	header := packField(uint64(recordTypeKernelObject), 0, 3) |
		packField(uint64(sizeWords), 4, 15) |
		packField(uint64(objType), 16, 23) |
		packField(uint64(indexedStringRef(nameRef)), 24, 39) |
		packField(uint64(len(args)), 40, 43)
	if err := w.em.emitWord(header); err != nil {
		return err
	}
	if err := w.em.emitWord(objectID); err != nil {
		return err
	}
	return emitArgsAndVerify(w.em, encodedArgs, argWords)
}

const maxOutgoingThreadState = 0xF

func (w *Writer) writeContextSwitchRecord(cpu uint16, outgoingState uint8, outgoingTid, incomingTid, ts uint64, args []Argument) error {
	if outgoingState > maxOutgoingThreadState {
		return wrap(ErrInvalidOutgoingThreadState, "outgoing thread state %d exceeds 4 bits", outgoingState)
	}
	encodedArgs, argWords, err := w.preprocessArgs(args)
	if err != nil {
		return err
	}
	sizeWords := 1 + 3 + argWords
	if err := checkRecordSize(sizeWords); err != nil {
		return err
	}
	header := packField(uint64(recordTypeScheduling), 0, 3) |
		packField(uint64(sizeWords), 4, 15) |
		packField(uint64(len(args)), 16, 19) |
		packField(uint64(cpu), 20, 35) |
		packField(uint64(outgoingState), 36, 39) |
		packField(uint64(schedulingTypeContextSwitch), 60, 63)
	if err := w.em.emitWord(header); err != nil {
		return err
	}
	if err := w.em.emitWord(ts); err != nil {
		return err
	}
	if err := w.em.emitWord(outgoingTid); err != nil {
		return err
	}
	if err := w.em.emitWord(incomingTid); err != nil {
		return err
	}
	return emitArgsAndVerify(w.em, encodedArgs, argWords)
}

func (w *Writer) writeThreadWakeupRecord(cpu uint16, wakingTid, ts uint64, args []Argument) error {
	encodedArgs, argWords, err := w.preprocessArgs(args)
	if err != nil {
		return err
	}
	sizeWords := 1 + 2 + argWords
	if err := checkRecordSize(sizeWords); err != nil {
		return err
	}
	header := packField(uint64(recordTypeScheduling), 0, 3) |
		packField(uint64(sizeWords), 4, 15) |
		packField(uint64(len(args)), 16, 19) |
		packField(uint64(cpu), 20, 35) |
		packField(uint64(schedulingTypeThreadWakeup), 60, 63)
	if err := w.em.emitWord(header); err != nil {
		return err
	}
	if err := w.em.emitWord(ts); err != nil {
		return err
	}
	if err := w.em.emitWord(wakingTid); err != nil {
		return err
	}
	return emitArgsAndVerify(w.em, encodedArgs, argWords)
}
