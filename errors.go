// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllpump

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout        = errors.New("mllp: ack timeout")
	ErrConnClosed     = errors.New("mllp: connection closed by peer")
	ErrFaulted        = errors.New("mllp: session faulted")
	ErrFrameTooLarge  = errors.New("mllp: frame too large")
	ErrQueueClosed    = errors.New("mllp: frame queue closed")
	ErrQueueOverflow  = errors.New("mllp: frame queue overflow")
	ErrRoleMismatch   = errors.New("mllp: session already bound to another role")
	ErrSessionClosed  = errors.New("mllp: session closed")
	ErrInvalidConfig  = errors.New("mllp: invalid config")
	ErrUnknownCharset = errors.New("mllp: unknown charset")
)

// ProtocolError is the single failure type a session reports to its caller.
// Err keeps the original cause; use errors.Is to classify it.
type ProtocolError struct {
	Op      string
	Session string
	Err     error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("mllp %s (session %s): %v", e.Op, e.Session, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
