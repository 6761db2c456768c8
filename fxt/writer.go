// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

import "context"

// Writer encodes Fuchsia Trace Format records onto a caller-supplied
// Sink. A Writer owns two bounded intern tables (strings and threads)
// and the single context.Context bound at construction; it performs no
// I/O of its own beyond calls to the Sink, and is not safe for
// concurrent use by multiple goroutines (spec section 4: one Writer per
// trace stream, the same way a single provider owns a trace buffer).
type Writer struct {
	em      *emitter
	strings *stringTable
	threads *threadTable
}

// Option customizes a Writer at construction time.
type Option func(*config)

type config struct {
	stringTableCapacity int
	threadTableCapacity int
}

// WithStringTableCapacity overrides the default 512-entry string intern
// table. A smaller capacity wraps sooner, which costs extra String
// records (but never correctness); a larger one trades memory for fewer
// rebindings in a long trace with many distinct strings.
func WithStringTableCapacity(capacity int) Option {
	return func(c *config) { c.stringTableCapacity = capacity }
}

// WithThreadTableCapacity overrides the default 128-entry thread intern
// table, for traces with an unusually large number of distinct threads.
func WithThreadTableCapacity(capacity int) Option {
	return func(c *config) { c.threadTableCapacity = capacity }
}

// New constructs a Writer that emits through sink using ctx for every
// Sink.Write call. A freshly constructed Writer holds no output of its
// own; per spec section 6, write-magic is a caller-invoked stream-framing
// operation like any other, so callers write the magic-number record
// themselves with WriteMagic before any other call.
func New(ctx context.Context, sink Sink, opts ...Option) (*Writer, error) {
	c := config{
		stringTableCapacity: DefaultStringTableCapacity,
		threadTableCapacity: DefaultThreadTableCapacity,
	}
	for _, opt := range opts {
		opt(&c)
	}

	w := &Writer{
		em:      newEmitter(ctx, sink),
		strings: newStringTable(c.stringTableCapacity),
		threads: newThreadTable(c.threadTableCapacity),
	}
	return w, nil
}

// WriteMagic emits the stream's leading magic-number record. A
// well-formed stream has this as its first record; the Writer does not
// enforce that ordering itself, matching spec section 6's note that the
// caller chooses the order of its own calls.
func (w *Writer) WriteMagic() error {
	return w.writeMagicRecord()
}

// AddProviderInfo emits a ProviderInfo metadata record, binding
// providerID to name for the remainder of the stream.
func (w *Writer) AddProviderInfo(providerID uint32, name string) error {
	return w.writeProviderInfoRecord(providerID, name)
}

// AddProviderSection emits a ProviderSection metadata record, marking
// the start of the named provider's records within a multi-provider
// stream.
func (w *Writer) AddProviderSection(providerID uint32) error {
	return w.writeProviderSectionRecord(providerID)
}

// AddProviderEvent emits a ProviderEvent metadata record. event is the
// provider-defined event code (spec section 9 resolves this to a fixed
// tag value of 3 at the MetadataType level, not a per-call choice of
// metadata type).
func (w *Writer) AddProviderEvent(providerID uint32, event uint8) error {
	return w.writeProviderEventRecord(providerID, event)
}

// AddInitialization emits the Initialization record, establishing the
// ticks-per-second conversion factor every subsequent timestamp in the
// stream is measured against.
func (w *Writer) AddInitialization(ticksPerSecond uint64) error {
	return w.writeInitializationRecord(ticksPerSecond)
}

// SetProcessName binds a human-readable name to a process id via a
// KernelObject record.
func (w *Writer) SetProcessName(pid uint64, name string, args ...Argument) error {
	return w.writeKernelObjectRecord(KernelObjectTypeProcess, name, pid, args)
}

// SetThreadName binds a human-readable name to a (process, thread) pair
// via a KernelObject record. Per the format, the record always carries a
// KOID-typed "process" argument identifying the owning process, ahead of
// any caller-supplied args.
func (w *Writer) SetThreadName(pid, tid uint64, name string, args ...Argument) error {
	allArgs := make([]Argument, 0, len(args)+1)
	allArgs = append(allArgs, KOIDArg("process", pid))
	allArgs = append(allArgs, args...)
	return w.writeKernelObjectRecord(KernelObjectTypeThread, name, tid, allArgs)
}

// AddKernelObject emits a KernelObject record for an arbitrary Zircon
// object kind, for callers that need a kind beyond the process/thread
// pair SetProcessName/SetThreadName cover.
func (w *Writer) AddKernelObject(objType KernelObjectType, name string, objectID uint64, args ...Argument) error {
	return w.writeKernelObjectRecord(objType, name, objectID, args)
}

// AddInstantEvent emits an Instant event, a single point in time with no
// duration or correlation id.
func (w *Writer) AddInstantEvent(category, name string, pid, tid, ts uint64, args ...Argument) error {
	return w.writeEventRecord(EventTypeInstant, category, name, pid, tid, ts, eventExtra{}, args)
}

// AddCounterEvent emits a Counter event; counterID distinguishes
// independent counter series sharing the same name.
func (w *Writer) AddCounterEvent(category, name string, pid, tid, ts, counterID uint64, args ...Argument) error {
	return w.writeEventRecord(EventTypeCounter, category, name, pid, tid, ts, eventExtra{words: []uint64{counterID}}, args)
}

// AddDurationBeginEvent emits the opening half of a nestable duration.
func (w *Writer) AddDurationBeginEvent(category, name string, pid, tid, ts uint64, args ...Argument) error {
	return w.writeEventRecord(EventTypeDurationBegin, category, name, pid, tid, ts, eventExtra{}, args)
}

// AddDurationEndEvent emits the closing half of a nestable duration.
func (w *Writer) AddDurationEndEvent(category, name string, pid, tid, ts uint64, args ...Argument) error {
	return w.writeEventRecord(EventTypeDurationEnd, category, name, pid, tid, ts, eventExtra{}, args)
}

// AddDurationCompleteEvent emits a single record spanning an entire
// duration whose end timestamp is already known.
func (w *Writer) AddDurationCompleteEvent(category, name string, pid, tid, ts, endTs uint64, args ...Argument) error {
	return w.writeEventRecord(EventTypeDurationComplete, category, name, pid, tid, ts, eventExtra{words: []uint64{endTs}}, args)
}

// AddAsyncBeginEvent emits the opening record of an async event whose
// scope is an arbitrary correlation id rather than stack nesting.
func (w *Writer) AddAsyncBeginEvent(category, name string, pid, tid, ts, asyncCorrelationID uint64, args ...Argument) error {
	return w.writeEventRecord(EventTypeAsyncBegin, category, name, pid, tid, ts, eventExtra{words: []uint64{asyncCorrelationID}}, args)
}

// AddAsyncInstantEvent emits a point-in-time record nested within an
// in-progress async event.
func (w *Writer) AddAsyncInstantEvent(category, name string, pid, tid, ts, asyncCorrelationID uint64, args ...Argument) error {
	return w.writeEventRecord(EventTypeAsyncInstant, category, name, pid, tid, ts, eventExtra{words: []uint64{asyncCorrelationID}}, args)
}

// AddAsyncEndEvent emits the closing record of an async event.
func (w *Writer) AddAsyncEndEvent(category, name string, pid, tid, ts, asyncCorrelationID uint64, args ...Argument) error {
	return w.writeEventRecord(EventTypeAsyncEnd, category, name, pid, tid, ts, eventExtra{words: []uint64{asyncCorrelationID}}, args)
}

// AddFlowBeginEvent emits the start of a flow connecting events across
// threads or processes.
func (w *Writer) AddFlowBeginEvent(category, name string, pid, tid, ts, flowID uint64, args ...Argument) error {
	return w.writeEventRecord(EventTypeFlowBegin, category, name, pid, tid, ts, eventExtra{words: []uint64{flowID}}, args)
}

// AddFlowStepEvent emits an intermediate point along a flow.
func (w *Writer) AddFlowStepEvent(category, name string, pid, tid, ts, flowID uint64, args ...Argument) error {
	return w.writeEventRecord(EventTypeFlowStep, category, name, pid, tid, ts, eventExtra{words: []uint64{flowID}}, args)
}

// AddFlowEndEvent emits the end of a flow.
func (w *Writer) AddFlowEndEvent(category, name string, pid, tid, ts, flowID uint64, args ...Argument) error {
	return w.writeEventRecord(EventTypeFlowEnd, category, name, pid, tid, ts, eventExtra{words: []uint64{flowID}}, args)
}

// AddBlob attaches an out-of-band byte payload to the stream, named and
// typed for a reader to interpret (e.g. a symbol table or a Perfetto
// protobuf packet).
func (w *Writer) AddBlob(name string, blobType BlobType, data []byte) error {
	return w.writeBlobRecord(name, blobType, data)
}

// AddUserspaceObject records a userspace-defined object's identity
// (pointer) and name, for objects a reader should track across the
// records that reference them by pointer.
func (w *Writer) AddUserspaceObject(pid, tid uint64, name string, pointer uint64, args ...Argument) error {
	return w.writeUserspaceObjectRecord(pid, tid, name, pointer, args)
}

// AddContextSwitch records the kernel scheduler switching cpu from one
// thread to another. outgoingState is the outgoing thread's Zircon
// thread state at the moment of the switch and must fit in 4 bits.
func (w *Writer) AddContextSwitch(cpu uint16, outgoingState uint8, outgoingTid, incomingTid, ts uint64, args ...Argument) error {
	return w.writeContextSwitchRecord(cpu, outgoingState, outgoingTid, incomingTid, ts, args)
}

// AddThreadWakeup records the kernel scheduler waking a thread on cpu
// without yet switching to it.
func (w *Writer) AddThreadWakeup(cpu uint16, wakingTid, ts uint64, args ...Argument) error {
	return w.writeThreadWakeupRecord(cpu, wakingTid, ts, args)
}

// GetOrInternString returns the handle bound to s in the string intern
// table, emitting a binding record on first use. Callers normally never
// need this directly — every record-emitting method interns its own
// string fields — but it is exposed for building custom arguments or
// records that reference a string by handle.
func (w *Writer) GetOrInternString(s string) (uint16, error) {
	return w.internString(s)
}

// GetOrInternThread returns the handle bound to (pid, tid) in the thread
// intern table, emitting a binding record on first use.
func (w *Writer) GetOrInternThread(pid, tid uint64) (uint8, error) {
	return w.internThread(pid, tid)
}

// Stats reports how much of each Writer resource is in use.
func (w *Writer) Stats() Stats {
	return Stats{
		BytesWritten:    w.em.written,
		InternedStrings: w.strings.len(),
		StringCapacity:  w.strings.capacity,
		InternedThreads: w.threads.len(),
		ThreadCapacity:  w.threads.capacity,
	}
}
