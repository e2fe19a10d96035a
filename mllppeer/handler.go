// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllppeer

import (
	"context"
	"errors"
	"time"
)

var ErrHandlerTimeout = errors.New("mllppeer: handler timeout")

type result struct {
	ack string
	err error
}

type timeoutHandler struct {
	h       Handler
	timeout time.Duration
}

// TimeoutHandler bounds the time h may spend on one message. When it runs
// out, the context passed to h is canceled and ErrHandlerTimeout is
// returned, which ends the connection.
func TimeoutHandler(h Handler, timeout time.Duration) Handler {
	return &timeoutHandler{h: h, timeout: timeout}
}

func (h *timeoutHandler) Process(ctx context.Context, peer string, msg string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resC := make(chan result, 1)
	go func() {
		ack, err := h.h.Process(ctx, peer, msg)
		resC <- result{ack, err}
	}()

	t := time.NewTimer(h.timeout)
	defer t.Stop()

	select {
	case r := <-resC:
		return r.ack, r.err
	case <-t.C:
		return "", ErrHandlerTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
