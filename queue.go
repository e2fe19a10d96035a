// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllpump

import (
	"context"
	"sync"
)

// DefaultQueueCapacity is the frame queue capacity used when none is configured.
const DefaultQueueCapacity = 10

// FrameQueue is the bounded, order-preserving handoff between a scanner
// and the loop consuming its frames.
//
// Put blocks while the queue is full. There must be a single producer;
// only the producer may call Close.
type FrameQueue struct {
	c         chan Frame
	closeOnce sync.Once
}

// NewFrameQueue allocates and returns a new FrameQueue.
func NewFrameQueue(capacity int) *FrameQueue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &FrameQueue{c: make(chan Frame, capacity)}
}

// Put adds f to the queue, waiting for room if needed.
func (q *FrameQueue) Put(ctx context.Context, f Frame) error {
	select {
	case q.c <- f:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryPut tries to add f without waiting.
func (q *FrameQueue) TryPut(f Frame) bool {
	select {
	case q.c <- f:
		return true
	default:
		return false
	}
}

// Get removes the oldest frame, waiting for one if needed. It returns
// ErrQueueClosed once the queue is closed and drained.
func (q *FrameQueue) Get(ctx context.Context) (Frame, error) {
	select {
	case f, ok := <-q.c:
		if !ok {
			return nil, ErrQueueClosed
		}
		return f, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryGet removes the oldest frame if one is available.
func (q *FrameQueue) TryGet() (Frame, bool) {
	select {
	case f, ok := <-q.c:
		return f, ok
	default:
		return nil, false
	}
}

// Close marks the end of the producer side. Queued frames can still be read.
func (q *FrameQueue) Close() {
	q.closeOnce.Do(func() { close(q.c) })
}

func (q *FrameQueue) Len() int {
	return len(q.c)
}

func (q *FrameQueue) Cap() int {
	return cap(q.c)
}
