// Copyright 2026 The fxt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package fxt

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
)

// Stats summarizes a Writer's resource usage: bytes emitted so far and
// how full each intern table is. It is a point-in-time snapshot, not a
// live view.
type Stats struct {
	BytesWritten    uint64
	InternedStrings int
	StringCapacity  int
	InternedThreads int
	ThreadCapacity  int
}

// String renders Stats for logs and diagnostics, matching the
// human-readable-byte-count style the source's tally tool uses.
func (s Stats) String() string {
	return fmt.Sprintf(
		"%s written, %d/%d strings interned, %d/%d threads interned",
		humanize.Bytes(s.BytesWritten),
		s.InternedStrings, s.StringCapacity,
		s.InternedThreads, s.ThreadCapacity,
	)
}
