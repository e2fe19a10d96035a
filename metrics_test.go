package mllpump

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetricsIsIdempotent(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()
}

func TestSessionMetrics(t *testing.T) {
	out := testutil.ToFloat64(framesTotal.WithLabelValues("sender", "out"))
	in := testutil.ToFloat64(framesTotal.WithLabelValues("sender", "in"))
	timeouts := testutil.ToFloat64(sessionFaults.WithLabelValues("sender", "timeout"))

	rw := newMockStream()
	s := newTestSession(t, rw, Config{AckTimeout: 50 * time.Millisecond})
	go func() {
		<-rw.wroteC
		rw.readC <- AppendFrame(nil, []byte("ack"))
	}()
	_, err := s.Send(context.Background(), Frame("m1"))
	require.NoError(t, err)
	_, err = s.Send(context.Background(), Frame("m2"))
	require.Error(t, err)

	assert.Equal(t, out+2, testutil.ToFloat64(framesTotal.WithLabelValues("sender", "out")))
	assert.Equal(t, in+1, testutil.ToFloat64(framesTotal.WithLabelValues("sender", "in")))
	assert.Equal(t, timeouts+1, testutil.ToFloat64(sessionFaults.WithLabelValues("sender", "timeout")))
}

func TestFaultReason(t *testing.T) {
	assert.Equal(t, "timeout", faultReason(ErrTimeout))
	assert.Equal(t, "closed", faultReason(ErrConnClosed))
	assert.Equal(t, "canceled", faultReason(context.Canceled))
	assert.Equal(t, "frame_too_large", faultReason(ErrFrameTooLarge))
	assert.Equal(t, "io", faultReason(assert.AnError))
}
