// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllpump

import (
	"context"
	"io"
)

// Frame is one payload extracted between the envelope markers.
type Frame []byte

// Stream is the duplex byte stream a session owns.
//
// Read returning (0, io.EOF) means the peer closed the connection.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
}

// Acker produces the acknowledgement for a received frame.
//
// The frame is not valid after Ack returns.
type Acker interface {
	Ack(ctx context.Context, f Frame, peer string) (Frame, error)
}

// The AckerFunc type is an adapter to allow the use of
// ordinary functions as ack producers.
type AckerFunc func(ctx context.Context, f Frame, peer string) (Frame, error)

// Ack calls f(ctx, fr, peer).
func (f AckerFunc) Ack(ctx context.Context, fr Frame, peer string) (Frame, error) {
	return f(ctx, fr, peer)
}
