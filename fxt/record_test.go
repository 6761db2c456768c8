// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

import (
	"errors"
	"strings"
	"testing"
)

func TestProviderInfoRecord(t *testing.T) {
	w, sink := newTestWriter()
	if err := w.AddProviderInfo(7, "my-provider"); err != nil {
		t.Fatal(err)
	}
	header := wordAt(sink.Bytes()[8:], 0)
	if got := readField(header, 0, 3); got != uint64(recordTypeMetadata) {
		t.Errorf("record type = %d, want Metadata", got)
	}
	if got := readField(header, 16, 19); got != uint64(metadataTypeProviderInfo) {
		t.Errorf("MetadataType = %d, want ProviderInfo", got)
	}
	if got := readField(header, 20, 51); got != 7 {
		t.Errorf("ProviderID = %d, want 7", got)
	}
	if got := readField(header, 52, 59); got != uint64(len("my-provider")) {
		t.Errorf("NameLength = %d, want %d", got, len("my-provider"))
	}
}

func TestProviderInfoNameTooLongFails(t *testing.T) {
	w, _ := newTestWriter()
	err := w.AddProviderInfo(1, strings.Repeat("x", 256))
	if !errors.Is(err, ErrStrTooLong) {
		t.Fatalf("err = %v, want ErrStrTooLong", err)
	}
}

func TestProviderSectionRecord(t *testing.T) {
	w, sink := newTestWriter()
	if err := w.AddProviderSection(9); err != nil {
		t.Fatal(err)
	}
	header := wordAt(sink.Bytes()[8:], 0)
	if got := readField(header, 16, 19); got != uint64(metadataTypeProviderSection) {
		t.Errorf("MetadataType = %d, want ProviderSection", got)
	}
	if got := readField(header, 20, 51); got != 9 {
		t.Errorf("ProviderID = %d, want 9", got)
	}
}

func TestProviderEventRecord(t *testing.T) {
	w, sink := newTestWriter()
	if err := w.AddProviderEvent(3, 5); err != nil {
		t.Fatal(err)
	}
	header := wordAt(sink.Bytes()[8:], 0)
	if got := readField(header, 16, 19); got != uint64(metadataTypeProviderEvent) {
		t.Errorf("MetadataType = %d, want ProviderEvent", got)
	}
	if got := readField(header, 52, 55); got != 5 {
		t.Errorf("Event = %d, want 5", got)
	}
}

func TestInitializationRecord(t *testing.T) {
	w, sink := newTestWriter()
	if err := w.AddInitialization(1_000_000_000); err != nil {
		t.Fatal(err)
	}
	data := sink.Bytes()[8:]
	header := wordAt(data, 0)
	if got := readField(header, 0, 3); got != uint64(recordTypeInitialization) {
		t.Errorf("record type = %d, want Initialization", got)
	}
	if got := readField(header, 4, 15); got != 2 {
		t.Errorf("sizeInWords = %d, want 2", got)
	}
	if got := wordAt(data, 1); got != 1_000_000_000 {
		t.Errorf("ticks-per-second payload = %d, want 1000000000", got)
	}
}

func TestSetProcessNameEmitsKOIDArgFreeKernelObject(t *testing.T) {
	w, sink := newTestWriter()
	if err := w.SetProcessName(99, "init"); err != nil {
		t.Fatal(err)
	}
	data := sink.Bytes()[8+16:] // skip magic + the interned "init" String record
	header := wordAt(data, 0)
	if got := readField(header, 0, 3); got != uint64(recordTypeKernelObject) {
		t.Errorf("record type = %d, want KernelObject", got)
	}
	if got := readField(header, 16, 23); got != uint64(KernelObjectTypeProcess) {
		t.Errorf("ObjectType = %d, want Process", got)
	}
	if got := readField(header, 40, 43); got != 0 {
		t.Errorf("ArgumentCount = %d, want 0", got)
	}
	if got := wordAt(data, 1); got != 99 {
		t.Errorf("object id payload = %d, want 99", got)
	}
}

func TestAddBlobRoundTrip(t *testing.T) {
	w, sink := newTestWriter()
	payload := []byte{1, 2, 3}
	if err := w.AddBlob("sym", BlobTypeData, payload); err != nil {
		t.Fatal(err)
	}
	data := sink.Bytes()[8+16:] // skip magic + the interned "sym" String record
	header := wordAt(data, 0)
	if got := readField(header, 0, 3); got != uint64(recordTypeBlob) {
		t.Errorf("record type = %d, want Blob", got)
	}
	if got := readField(header, 32, 46); got != uint64(len(payload)) {
		t.Errorf("BlobSize = %d, want %d", got, len(payload))
	}
	if got := readField(header, 48, 55); got != uint64(BlobTypeData) {
		t.Errorf("BlobType = %d, want Data", got)
	}
}

func TestBlobRecordSizeOverflowFails(t *testing.T) {
	w, _ := newTestWriter()
	// Within the 15-bit BlobSize field's range but large enough that
	// 1+alignWords(n) exceeds the 12-bit sizeInWords ceiling.
	err := w.AddBlob("sym", BlobTypeData, make([]byte, 32753))
	if !errors.Is(err, ErrRecordSizeTooLarge) {
		t.Fatalf("err = %v, want ErrRecordSizeTooLarge", err)
	}
}

// TestInternStringRecordSizeOverflowFails checks that a string within
// the intern table's own length limit (maxInternedStringLen = 0x7FFE)
// but large enough to push the String record's sizeInWords past the
// 12-bit field ceiling is rejected rather than silently truncated by
// packField, matching the same boundary already exercised for blobs in
// TestBlobRecordSizeOverflowFails.
func TestInternStringRecordSizeOverflowFails(t *testing.T) {
	w, _ := newTestWriter()
	_, err := w.GetOrInternString(strings.Repeat("x", 32753))
	if !errors.Is(err, ErrRecordSizeTooLarge) {
		t.Fatalf("err = %v, want ErrRecordSizeTooLarge", err)
	}
}

func TestAddUserspaceObjectRecord(t *testing.T) {
	w, sink := newTestWriter()
	if err := w.AddUserspaceObject(1, 2, "obj", 0xDEADBEEF); err != nil {
		t.Fatal(err)
	}
	data := sink.Bytes()[8+16+24:] // skip magic + "obj" String record + Thread record
	header := wordAt(data, 0)
	if got := readField(header, 0, 3); got != uint64(recordTypeUserspaceObject) {
		t.Errorf("record type = %d, want UserspaceObject", got)
	}
	if got := wordAt(data, 1); got != 0xDEADBEEF {
		t.Errorf("pointer payload = %#x, want 0xDEADBEEF", got)
	}
}

func TestThreadWakeupRecord(t *testing.T) {
	w, sink := newTestWriter()
	if err := w.AddThreadWakeup(2, 55, 1000); err != nil {
		t.Fatal(err)
	}
	header := wordAt(sink.Bytes()[8:], 0)
	if got := readField(header, 0, 3); got != uint64(recordTypeScheduling) {
		t.Errorf("record type = %d, want Scheduling", got)
	}
	if got := readField(header, 60, 63); got != uint64(schedulingTypeThreadWakeup) {
		t.Errorf("scheduling subtype = %d, want ThreadWakeup", got)
	}
	if got := readField(header, 20, 35); got != 2 {
		t.Errorf("CpuNumber = %d, want 2", got)
	}
}
