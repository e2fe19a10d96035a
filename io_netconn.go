// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllpump

import (
	"context"
	"net"
)

// NetconnSession creates a session over a net.Conn, the peer is
// identified by the remote address.
func NetconnSession(conn net.Conn, cfg Config) (*Session, error) {
	peer := ""
	if addr := conn.RemoteAddr(); addr != nil {
		peer = addr.String()
	}
	return NewSession(conn, peer, cfg)
}

// DialSession connects to address and creates a session over the connection.
func DialSession(ctx context.Context, network, address string, cfg Config) (*Session, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}
	s, err := NetconnSession(conn, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}
