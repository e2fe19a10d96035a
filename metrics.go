// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllpump

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mllp",
			Name:      "frames_total",
			Help:      "Frames moved by MLLP sessions.",
		},
		[]string{"role", "direction"},
	)
	sessionFaults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mllp",
			Name:      "session_faults_total",
			Help:      "Sessions torn down by a fault.",
		},
		[]string{"role", "reason"},
	)
	ackRoundTrip = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mllp",
			Name:      "ack_roundtrip_seconds",
			Help:      "Time from sending a frame to receiving its ack.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// RegisterMetrics registers the session collectors with the default
// prometheus registry. It is safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesTotal, sessionFaults, ackRoundTrip)
	})
}

func recordFrame(role Role, direction string) {
	framesTotal.WithLabelValues(role.String(), direction).Inc()
}

func recordFault(role Role, err error) {
	sessionFaults.WithLabelValues(role.String(), faultReason(err)).Inc()
}

func recordAckRoundTrip(d time.Duration) {
	ackRoundTrip.Observe(d.Seconds())
}
