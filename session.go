// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllpump

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/someonegg/gox/syncx"
)

var errAckPanic = errors.New("mllp: ack producer panic")

// Role is the part a session plays on its connection.
type Role int32

const (
	RoleUnbound Role = iota
	RoleReceiver
	RoleSender
)

func (r Role) String() string {
	switch r {
	case RoleReceiver:
		return "receiver"
	case RoleSender:
		return "sender"
	default:
		return "unbound"
	}
}

// Session binds one duplex stream to its scanner, frame queue and codec.
//
// A session plays exactly one role, fixed by the first call to Receive or
// Send. Send calls are serialized, a session never has more than one frame
// waiting for its ack.
type Session struct {
	id   string
	peer string
	cfg  Config

	rw    Stream
	w     *bufio.Writer
	codec *Codec
	scan  *Scanner
	queue *FrameQueue
	rbuf  []byte

	role      atomic.Int32
	faulted   atomic.Bool
	receiving atomic.Bool
	sendMu    sync.Mutex

	err       error
	errOnce   sync.Once
	closeErr  error
	closeOnce sync.Once
	stopD     syncx.DoneChan

	stat statistics
	log  zerolog.Logger
}

// NewSession allocates and returns a new Session over rw.
//
// peer identifies the remote end for the ack producer and the logs. Zero
// fields of cfg take their defaults.
func NewSession(rw Stream, peer string, cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	codec, err := NewCodec(cfg.Charset)
	if err != nil {
		return nil, err
	}

	RegisterMetrics()

	id := uuid.NewString()
	return &Session{
		id:   id,
		peer: peer,
		cfg:  cfg,

		rw:    rw,
		w:     bufio.NewWriter(rw),
		codec: codec,
		scan:  NewScanner(cfg.MaxFrameSize),
		queue: NewFrameQueue(cfg.QueueCapacity),
		rbuf:  make([]byte, cfg.ReadBufferSize),

		stopD: syncx.NewDoneChan(),

		log: log.Logger.With().Str("session", id).Str("peer", peer).Logger(),
	}, nil
}

// SetLogger is optional, the default is the global zerolog logger.
func (s *Session) SetLogger(l zerolog.Logger) {
	s.log = l.With().Str("session", s.id).Str("peer", s.peer).Logger()
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Peer() string {
	return s.peer
}

func (s *Session) Role() Role {
	return Role(s.role.Load())
}

func (s *Session) Codec() *Codec {
	return s.codec
}

// Faulted reports whether the session was torn down by a failure.
func (s *Session) Faulted() bool {
	return s.faulted.Load()
}

func (s *Session) begin(r Role) error {
	if !s.role.CompareAndSwap(int32(RoleUnbound), int32(r)) && s.Role() != r {
		return ErrRoleMismatch
	}
	if s.Faulted() {
		return ErrFaulted
	}
	if s.Stopped() {
		return ErrSessionClosed
	}
	return nil
}

// Receive runs the receive and acknowledge loop until the peer closes the
// connection, ctx is done or a failure happens. The stream is closed on
// every exit path.
//
// It returns nil when the peer closed the connection, ctx.Err() when ctx
// is done, and a *ProtocolError otherwise.
//
// Cancellation closes the stream, so a read in flight is interrupted
// instead of being waited for. Receive runs once per session.
func (s *Session) Receive(ctx context.Context, a Acker) error {
	if err := s.begin(RoleReceiver); err != nil {
		return err
	}
	if !s.receiving.CompareAndSwap(false, true) {
		return ErrSessionClosed
	}

	rctx, cancel := context.WithCancel(ctx)
	rD := syncx.NewDoneChan()
	var rerr error
	go func() {
		defer rD.SetDone()
		rerr = s.reading(rctx)
	}()

	aerr := s.acking(rctx, a)

	cancel()
	s.Close()
	<-rD

	switch {
	case aerr != nil && ctx.Err() == nil:
		return s.fail("ack", aerr)
	case ctx.Err() != nil:
		s.log.Info().Str("role", RoleReceiver.String()).Msg("receive canceled")
		return ctx.Err()
	case rerr != nil:
		return s.fail("read", rerr)
	}
	s.log.Debug().Str("role", RoleReceiver.String()).Msg("peer closed connection")
	return nil
}

// reading owns the scanner in the receiver role. It closes the queue when
// it exits, so the ack loop drains what is left and stops.
func (s *Session) reading(ctx context.Context) error {
	defer s.queue.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := s.rw.Read(s.rbuf)
		if n > 0 {
			frames, ferr := s.feed(s.rbuf[:n])
			for _, f := range frames {
				if perr := s.queue.Put(ctx, f); perr != nil {
					return perr
				}
			}
			if ferr != nil {
				return ferr
			}
		}
		if err == io.EOF || (n == 0 && err == nil) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) acking(ctx context.Context, a Acker) error {
	for {
		f, err := s.queue.Get(ctx)
		if err == ErrQueueClosed {
			return nil
		}
		if err != nil {
			return err
		}

		ack, err := s.produceAck(ctx, a, f)
		if err != nil {
			return err
		}
		if err := s.writeFrame(ack); err != nil {
			return err
		}
	}
}

func (s *Session) produceAck(ctx context.Context, a Acker, f Frame) (ack Frame, err error) {
	defer func() {
		if e := recover(); e != nil {
			s.log.Error().Interface("panic", e).Bytes("stack", debug.Stack()).Msg("ack producer panic")
			err = fmt.Errorf("%w: %v", errAckPanic, e)
		}
	}()
	return a.Ack(ctx, f, s.peer)
}

// Send writes f and waits for the single frame acknowledging it.
//
// Every read made while waiting is bounded by Config.AckTimeout; the wait
// as a whole is not. Any failure faults the session, closes the stream and
// is returned as a *ProtocolError wrapping ErrTimeout, ErrConnClosed,
// ctx.Err() or the I/O error.
func (s *Session) Send(ctx context.Context, f Frame) (Frame, error) {
	if err := s.begin(RoleSender); err != nil {
		return nil, err
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if s.Faulted() {
		return nil, ErrFaulted
	}
	if s.Stopped() {
		return nil, ErrSessionClosed
	}

	start := time.Now()
	if err := s.writeFrame(f); err != nil {
		return nil, s.fail("send", err)
	}

	ack, err := s.awaitAck(ctx)
	if err != nil {
		return nil, s.fail("send", err)
	}
	recordAckRoundTrip(time.Now().Sub(start))
	return ack, nil
}

type readResult struct {
	n   int
	err error
}

func (s *Session) awaitAck(ctx context.Context) (Frame, error) {
	// a frame left over from a previous read
	if f, ok := s.queue.TryGet(); ok {
		return f, nil
	}

	readC := make(chan readResult, 1)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		go func() {
			n, err := s.rw.Read(s.rbuf)
			readC <- readResult{n, err}
		}()

		timer := time.NewTimer(s.cfg.AckTimeout)
		var r readResult
		select {
		case <-timer.C:
			return nil, ErrTimeout
		case r = <-readC:
			timer.Stop()
		}

		if r.n > 0 {
			frames, err := s.feed(s.rbuf[:r.n])
			for _, f := range frames {
				if !s.queue.TryPut(f) {
					return nil, ErrQueueOverflow
				}
			}
			if err != nil {
				return nil, err
			}
		}

		if f, ok := s.queue.TryGet(); ok {
			return f, nil
		}
		if r.err == io.EOF || (r.n == 0 && r.err == nil) {
			return nil, ErrConnClosed
		}
		if r.err != nil {
			return nil, r.err
		}
	}
}

// feed runs p through the scanner, called only by the goroutine owning it.
func (s *Session) feed(p []byte) ([]Frame, error) {
	s.stat.readBytes.Add(int64(len(p)))
	resyncs := s.scan.Resyncs()

	frames, err := s.scan.Feed(p)

	s.stat.resyncs.Add(s.scan.Resyncs() - resyncs)
	s.stat.framesReceived.Add(int64(len(frames)))
	for range frames {
		recordFrame(s.Role(), "in")
	}
	return frames, err
}

func (s *Session) writeFrame(f Frame) error {
	if err := s.codec.WriteFrame(s.w, f); err != nil {
		return err
	}
	s.stat.writtenBytes.Add(int64(len(f) + 3))
	s.stat.framesSent.Add(1)
	recordFrame(s.Role(), "out")
	return nil
}

// fail tears the session down after a failure. The scanner must not be in
// use by another goroutine.
func (s *Session) fail(op string, err error) error {
	s.faulted.Store(true)
	s.scan.Fault()
	s.errOnce.Do(func() { s.err = err })
	recordFault(s.Role(), err)
	s.log.Error().Err(err).Str("role", s.Role().String()).Str("op", op).Msg("session faulted")
	s.Close()
	return &ProtocolError{Op: op, Session: s.id, Err: err}
}

func faultReason(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrConnClosed):
		return "closed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrFrameTooLarge):
		return "frame_too_large"
	case errors.Is(err, ErrQueueOverflow):
		return "queue_overflow"
	case errors.Is(err, errAckPanic):
		return "ack_panic"
	default:
		return "io"
	}
}

// Close closes the stream, once. It is safe to call concurrently and
// more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.rw.Close()
		s.stopD.SetDone()
	})
	return s.closeErr
}

// StopD returns a done channel, it will be signaled when the session is closed.
func (s *Session) StopD() syncx.DoneChanR {
	return s.stopD.R()
}

func (s *Session) Stopped() bool {
	return s.stopD.R().Done()
}

// Err returns the failure that faulted the session, if any.
// It can only be called after Receive or a failed Send returned.
func (s *Session) Err() error {
	return s.err
}

func (s *Session) Statistics() Statistics {
	return s.stat.snapshot()
}

// UnderlyingStream returns the stream the session owns.
func (s *Session) UnderlyingStream() Stream {
	return s.rw
}
