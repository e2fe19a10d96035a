// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllpump

import (
	"fmt"
	"io"
	"sync"
)

// StreamDump is a debugging helper, it implements the Stream interface
// and dumps every chunk read from or written to RW.
//
// The dump format is:
//
//	R|W:ChunkSize\nChunk\n\n
type StreamDump struct {
	RW   Stream
	Dump io.Writer

	// Filter can be nil. If nil, dump all chunks.
	Filter func(p []byte, read bool) bool

	mu sync.Mutex
}

func (d *StreamDump) needDump(p []byte, read bool) bool {
	if d.Filter != nil {
		return d.Filter(p, read)
	}
	return true
}

func (d *StreamDump) dump(tag string, p []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintf(d.Dump, "%v:%v\n", tag, len(p))
	d.Dump.Write(p)
	fmt.Fprintf(d.Dump, "\n\n")
}

func (d *StreamDump) Read(p []byte) (n int, err error) {
	n, err = d.RW.Read(p)
	if n > 0 && d.needDump(p[:n], true) {
		d.dump("R", p[:n])
	}
	return
}

func (d *StreamDump) Write(p []byte) (n int, err error) {
	n, err = d.RW.Write(p)
	if n > 0 && d.needDump(p[:n], false) {
		d.dump("W", p[:n])
	}
	return
}

func (d *StreamDump) Close() error {
	return d.RW.Close()
}
