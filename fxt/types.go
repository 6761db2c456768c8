// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

// recordType identifies the kind of record occupying bits [0..3] of
// every record header.
type recordType uint8

const (
	recordTypeMetadata        recordType = 0
	recordTypeInitialization  recordType = 1
	recordTypeString          recordType = 2
	recordTypeThread          recordType = 3
	recordTypeEvent           recordType = 4
	recordTypeBlob            recordType = 5
	recordTypeUserspaceObject recordType = 6
	recordTypeKernelObject    recordType = 7
	recordTypeScheduling      recordType = 8
)

// metadataType distinguishes the three metadata record shapes, all of
// which share recordTypeMetadata.
type metadataType uint8

const (
	metadataTypeProviderInfo    metadataType = 1
	metadataTypeProviderSection metadataType = 2
	metadataTypeProviderEvent   metadataType = 3
)

// ArgumentType discriminates the ten argument payload kinds. Callers never
// construct one directly (use the Int32Arg/StringArg/... constructors in
// args.go); Argument has no exported accessor that returns it.
type ArgumentType uint8

const (
	ArgumentTypeNull    ArgumentType = 0
	ArgumentTypeInt32   ArgumentType = 1
	ArgumentTypeUInt32  ArgumentType = 2
	ArgumentTypeInt64   ArgumentType = 3
	ArgumentTypeUInt64  ArgumentType = 4
	ArgumentTypeDouble  ArgumentType = 5
	ArgumentTypeString  ArgumentType = 6
	ArgumentTypePointer ArgumentType = 7
	ArgumentTypeKOID    ArgumentType = 8
	ArgumentTypeBool    ArgumentType = 9
)

// EventType names the eleven event-record subtypes from spec section 4.6.
// Naming follows the EventType taxonomy used by the Fuchsia benchmarking
// trace model (DurationEvent/AsyncEvent/InstantEvent/FlowEvent/CounterEvent),
// split into the begin/step/end variants the wire format actually carries.
type EventType uint8

const (
	EventTypeInstant          EventType = 0
	EventTypeCounter          EventType = 1
	EventTypeDurationBegin    EventType = 2
	EventTypeDurationEnd      EventType = 3
	EventTypeDurationComplete EventType = 4
	EventTypeAsyncBegin       EventType = 5
	EventTypeAsyncInstant     EventType = 6
	EventTypeAsyncEnd         EventType = 7
	EventTypeFlowBegin        EventType = 8
	EventTypeFlowStep         EventType = 9
	EventTypeFlowEnd          EventType = 10
)

// schedulingType selects between the two scheduling record shapes, both
// of which share recordTypeScheduling and are distinguished by bits
// [60..63] of the header.
type schedulingType uint8

const (
	schedulingTypeContextSwitch schedulingType = 1
	schedulingTypeThreadWakeup  schedulingType = 2
)

// KernelObjectType selects the kernel-object record's subject. Only
// Process and Thread are produced by the public surface (set-process-name
// and set-thread-name); the type is exported so callers writing a custom
// kernel-object record (AddKernelObject) can name other Zircon object
// kinds.
type KernelObjectType uint8

const (
	KernelObjectTypeProcess KernelObjectType = 1
	KernelObjectTypeThread  KernelObjectType = 2
)

// BlobType selects the interpretation of a blob record's payload, per
// the FXT format's blob-type enumeration.
type BlobType uint8

const (
	BlobTypeData       BlobType = 1
	BlobTypeLastBranch BlobType = 2
	BlobTypePerfetto   BlobType = 3
)
