// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllppeer_test

import (
	"context"
	"log"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/someonegg/gox/syncx"
	"github.com/someonegg/mllpump"
	"github.com/someonegg/mllpump/mllppeer"
)

const ackTemplate = "MSH|^~\\&|RECEIVER|HOSP\rMSA|AA|"

func controlID(msg string) string {
	fields := strings.Split(msg, "|")
	if len(fields) < 10 {
		return ""
	}
	return fields[9]
}

func client(t *testing.T, addr string) {
	c, err := mllppeer.Dial(context.Background(), "tcp", addr, mllpump.Config{
		AckTimeout: time.Second,
		Charset:    "iso-8859-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	for _, id := range []string{"1001", "1002", "1003"} {
		msg := "MSH|^~\\&|SENDER|LAB|RECEIVER|HOSP|20260101||ADT^A01|" + id + "|P|2.5\rPID|1||42||Müller"
		ack, err := c.Do(context.Background(), msg)
		if err != nil {
			t.Fatal(err)
		}
		log.Printf("client receive ack: %q", ack)
		if ack != ackTemplate+id {
			t.Fatalf("unexpected ack %q", ack)
		}
	}
}

func server(listenD syncx.DoneChan, addrC chan<- string, stopD syncx.DoneChan) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatal(err)
	}
	defer l.Close()

	addrC <- l.Addr().String()
	listenD.SetDone()

	h := mllppeer.TimeoutHandler(mllppeer.HandlerFunc(
		func(ctx context.Context, peer string, msg string) (string, error) {
			log.Printf("server receive message from %v: %q", peer, msg)
			if !strings.Contains(msg, "Müller") {
				log.Print("charset mismatch")
			}
			return ackTemplate + controlID(msg), nil
		}), time.Second)

	conn, err := l.Accept()
	if err != nil {
		log.Fatal(err)
	}

	s, err := mllpump.NetconnSession(conn, mllpump.Config{Charset: "iso-8859-1"})
	if err != nil {
		log.Fatal(err)
	}
	err = mllppeer.Serve(context.Background(), s, h)
	log.Printf("server peer stop, error: %v", err)
	stopD.SetDone()
}

func TestExample(t *testing.T) {
	listenD := syncx.NewDoneChan()
	stopD := syncx.NewDoneChan()
	addrC := make(chan string, 1)
	go server(listenD, addrC, stopD)
	<-listenD

	client(t, <-addrC)

	select {
	case <-stopD:
	case <-time.After(time.Second):
		t.Fatal("server peer did not stop")
	}
}
