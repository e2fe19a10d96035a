package mllpump

import (
	"bytes"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockStream serves every chunk sent on readC as one Read result.
// Closing readC makes Read report io.EOF.
type mockStream struct {
	readC  chan []byte
	wroteC chan struct{}

	reads  atomic.Int32
	closes atomic.Int32
	closeD chan struct{}
	once   sync.Once

	mu sync.Mutex
	wb bytes.Buffer
}

func newMockStream() *mockStream {
	return &mockStream{
		readC:  make(chan []byte),
		wroteC: make(chan struct{}, 16),
		closeD: make(chan struct{}),
	}
}

func (m *mockStream) Read(p []byte) (int, error) {
	m.reads.Add(1)
	select {
	case b, ok := <-m.readC:
		if !ok {
			return 0, io.EOF
		}
		return copy(p, b), nil
	case <-m.closeD:
		return 0, io.ErrClosedPipe
	}
}

func (m *mockStream) Write(p []byte) (int, error) {
	select {
	case <-m.closeD:
		return 0, io.ErrClosedPipe
	default:
	}
	m.mu.Lock()
	n, err := m.wb.Write(p)
	m.mu.Unlock()
	select {
	case m.wroteC <- struct{}{}:
	default:
	}
	return n, err
}

func (m *mockStream) Close() error {
	m.closes.Add(1)
	m.once.Do(func() { close(m.closeD) })
	return nil
}

func (m *mockStream) written(t *testing.T) []Frame {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	frames, err := NewScanner(0).Feed(m.wb.Bytes())
	require.NoError(t, err)
	return frames
}

func newTestSession(t *testing.T, rw Stream, cfg Config) *Session {
	t.Helper()
	s, err := NewSession(rw, "test-peer", cfg)
	require.NoError(t, err)
	return s
}
