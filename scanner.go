// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllpump

import "bytes"

// Envelope markers.
const (
	StartBlock     = 0x0B
	EndBlock       = 0x1C
	CarriageReturn = 0x0D
)

// ScanState is the state of a Scanner.
type ScanState uint8

const (
	AwaitingStart ScanState = iota
	AccumulatingPayload
	AwaitingTrailerConfirm
	Faulted
)

func (s ScanState) String() string {
	switch s {
	case AwaitingStart:
		return "awaiting-start"
	case AccumulatingPayload:
		return "accumulating-payload"
	case AwaitingTrailerConfirm:
		return "awaiting-trailer-confirm"
	case Faulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Scanner rebuilds frames from an arbitrarily chunked byte stream.
//
// State persists across Feed calls, so a frame may span any number of
// chunks. A Scanner is not safe for concurrent use; it belongs to the
// goroutine reading its connection.
type Scanner struct {
	state   ScanState
	buf     []byte
	max     int
	resyncs int64
}

// NewScanner returns a scanner refusing payloads longer than maxFrameSize.
// Zero or a negative value means no limit.
func NewScanner(maxFrameSize int) *Scanner {
	return &Scanner{max: maxFrameSize}
}

// Feed consumes p and returns the frames it completed, in wire order.
//
// A lone EndBlock not followed by CarriageReturn is kept as payload data,
// together with the byte after it. On ErrFrameTooLarge the frames completed
// before the offending byte are still returned.
func (s *Scanner) Feed(p []byte) ([]Frame, error) {
	if s.state == Faulted {
		return nil, ErrFaulted
	}

	var frames []Frame
	for _, b := range p {
		switch s.state {
		case AwaitingStart:
			if b == StartBlock {
				s.state = AccumulatingPayload
			}
		case AccumulatingPayload:
			if b == EndBlock {
				s.state = AwaitingTrailerConfirm
				continue
			}
			if !s.push(b) {
				return frames, ErrFrameTooLarge
			}
		case AwaitingTrailerConfirm:
			if b == CarriageReturn {
				frames = append(frames, Frame(bytes.Clone(s.buf)))
				s.buf = s.buf[:0]
				s.state = AwaitingStart
				continue
			}
			s.resyncs++
			s.state = AccumulatingPayload
			if !s.push(EndBlock) || !s.push(b) {
				return frames, ErrFrameTooLarge
			}
		}
	}
	return frames, nil
}

func (s *Scanner) push(b byte) bool {
	if s.max > 0 && len(s.buf) >= s.max {
		return false
	}
	s.buf = append(s.buf, b)
	return true
}

// State returns the current state.
func (s *Scanner) State() ScanState {
	return s.state
}

// Fault moves the scanner to the terminal Faulted state and drops the
// partial payload.
func (s *Scanner) Fault() {
	s.state = Faulted
	s.buf = nil
}

// Reset discards the partial payload and waits for a new start marker.
func (s *Scanner) Reset() {
	s.state = AwaitingStart
	s.buf = s.buf[:0]
}

// Buffered returns the length of the partial payload.
func (s *Scanner) Buffered() int {
	return len(s.buf)
}

// Resyncs returns how many false trailers were folded back into payloads.
func (s *Scanner) Resyncs() int64 {
	return s.resyncs
}
