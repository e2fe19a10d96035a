// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllpump

import "sync/atomic"

type Statistics struct {
	// from Stream
	ReadBytes      int64
	FramesReceived int64
	Resyncs        int64

	// to Stream
	WrittenBytes int64
	FramesSent   int64
}

type statistics struct {
	readBytes      atomic.Int64
	framesReceived atomic.Int64
	resyncs        atomic.Int64
	writtenBytes   atomic.Int64
	framesSent     atomic.Int64
}

func (s *statistics) snapshot() Statistics {
	return Statistics{
		ReadBytes:      s.readBytes.Load(),
		FramesReceived: s.framesReceived.Load(),
		Resyncs:        s.resyncs.Load(),
		WrittenBytes:   s.writtenBytes.Load(),
		FramesSent:     s.framesSent.Load(),
	}
}
