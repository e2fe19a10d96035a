// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mllppeer implements a text level request/ack model over mllpump
// sessions. Messages are converted with the session charset.
//
// Here is a quick example, includes client and server.
//
// Client
//
//	func client() {
//		c, err := mllppeer.Dial(context.Background(), "tcp", TheAddr, mllpump.DefaultConfig())
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer c.Close()
//
//		ack, err := c.Do(context.Background(), "MSH|^~\\&|SENDER|...")
//		log.Printf("ack: %q, %v", ack, err)
//	}
//
// Server
//
//	func server() {
//		l, err := net.Listen("tcp", TheAddr)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer l.Close()
//
//		h := mllppeer.TimeoutHandler(mllppeer.HandlerFunc(
//			func(ctx context.Context, peer string, msg string) (string, error) {
//				log.Printf("server receive message from %v: %q", peer, msg)
//				return "MSH|^~\\&|RECEIVER|...\rMSA|AA", nil
//			}), 5*time.Second)
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
//				err := mllppeer.Serve(context.Background(), s, h)
//				log.Printf("server peer stop, error: %v", err)
//			}()
//		}
//	}
package mllppeer
