// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mllpump provides the framing and acknowledgement engine for
// healthcare messages carried over a raw duplex connection with the MLLP
// envelope.
//
// In the transport layer, frame's layout is:
//
//	0x0B Payload 0x1C 0x0D
//
// A Scanner rebuilds frames from an arbitrarily chunked byte stream. A lone
// 0x1C not followed by 0x0D is kept as payload data.
//
// A Session owns one connection and plays one of two roles:
//
//	Receive  reads frames continuously and answers each one with the
//	         frame produced by an Acker.
//	Send     writes one frame and waits for the single frame acknowledging it.
//
// Frames scanned but not yet consumed wait in a bounded FrameQueue; a slow
// consumer stalls the reads instead of losing frames.
//
// Here is a quick example, includes sender and receiver.
//
// Sender
//
//	func send(msg []byte) ([]byte, error) {
//		s, err := mllpump.DialSession(context.Background(), "tcp", TheAddr, mllpump.Config{
//			AckTimeout: 5 * time.Second,
//		})
//		if err != nil {
//			return nil, err
//		}
//		defer s.Close()
//
//		return s.Send(context.Background(), msg)
//	}
//
// Receiver
//
//	func receiver() {
//		l, err := net.Listen("tcp", TheAddr)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer l.Close()
//
//		acker := mllpump.AckerFunc(func(ctx context.Context, f mllpump.Frame, peer string) (mllpump.Frame, error) {
//			log.Printf("receive frame from %v: %q", peer, f)
//			return mllpump.Frame("MSA|AA"), nil
//		})
//
//		for {
//			conn, err := l.Accept()
//			if err != nil {
//				log.Fatal(err)
//			}
//
//			s, err := mllpump.NetconnSession(conn, mllpump.DefaultConfig())
//			if err != nil {
//				conn.Close()
//				continue
//			}
//			go func() {
//				err := s.Receive(context.Background(), acker)
//				log.Printf("receiver stop, error: %v", err)
//			}()
//		}
//	}
package mllpump
