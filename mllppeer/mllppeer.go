// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllppeer

import (
	"context"

	"github.com/someonegg/mllpump"
)

// Handler is the message processor of a receiving peer.
//
// The returned ack is sent back to the peer before the next message is
// processed. Returning an error ends the connection.
type Handler interface {
	Process(ctx context.Context, peer string, msg string) (ack string, err error)
}

// The HandlerFunc type is an adapter to allow the use of
// ordinary functions as message handlers.
type HandlerFunc func(ctx context.Context, peer string, msg string) (string, error)

// Process calls f(ctx, peer, msg).
func (f HandlerFunc) Process(ctx context.Context, peer string, msg string) (string, error) {
	return f(ctx, peer, msg)
}

// Serve runs the receive loop of s, decoding every frame with the session
// charset before handing it to h.
func Serve(ctx context.Context, s *mllpump.Session, h Handler) error {
	codec := s.Codec()
	return s.Receive(ctx, mllpump.AckerFunc(
		func(ctx context.Context, f mllpump.Frame, peer string) (mllpump.Frame, error) {
			msg, err := codec.DecodeText(f)
			if err != nil {
				return nil, err
			}
			ack, err := h.Process(ctx, peer, msg)
			if err != nil {
				return nil, err
			}
			return codec.EncodeText(ack)
		}))
}

// Client is the sending peer, it exchanges text messages for their acks.
type Client struct {
	s *mllpump.Session
}

// NewClient creates a client over s, s must not be used for receiving.
func NewClient(s *mllpump.Session) *Client {
	return &Client{s: s}
}

// Dial connects to address and creates a client over the connection.
func Dial(ctx context.Context, network, address string, cfg mllpump.Config) (*Client, error) {
	s, err := mllpump.DialSession(ctx, network, address, cfg)
	if err != nil {
		return nil, err
	}
	return NewClient(s), nil
}

// Do will send the message and wait for its ack.
//
// After a failure the client is unusable, see mllpump.Session.Send.
func (c *Client) Do(ctx context.Context, msg string) (string, error) {
	codec := c.s.Codec()
	f, err := codec.EncodeText(msg)
	if err != nil {
		return "", err
	}
	ack, err := c.s.Send(ctx, f)
	if err != nil {
		return "", err
	}
	return codec.DecodeText(ack)
}

func (c *Client) Close() error {
	return c.s.Close()
}

// Session returns the underlying session.
func (c *Client) Session() *mllpump.Session {
	return c.s
}
