// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllpump

import (
	"bufio"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCharset is the charset used when none is configured.
const DefaultCharset = "utf-8"

// AppendFrame appends the enveloped payload to dst.
//
// In the transport layer, frame's layout is:
//
//	StartBlock Payload EndBlock CarriageReturn
func AppendFrame(dst []byte, payload []byte) []byte {
	dst = append(dst, StartBlock)
	dst = append(dst, payload...)
	return append(dst, EndBlock, CarriageReturn)
}

// Codec writes enveloped frames and converts text payloads using the
// session's fixed charset.
type Codec struct {
	charset string
	enc     encoding.Encoding
}

// NewCodec returns a codec for the named charset.
func NewCodec(charset string) (*Codec, error) {
	enc, err := lookupCharset(charset)
	if err != nil {
		return nil, err
	}
	return &Codec{charset: charset, enc: enc}, nil
}

func lookupCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	return enc, nil
}

// Charset returns the charset name the codec was created with.
func (c *Codec) Charset() string {
	return c.charset
}

// WriteFrame envelopes f, writes it to w and flushes.
func (c *Codec) WriteFrame(w *bufio.Writer, f Frame) error {
	w.WriteByte(StartBlock)
	w.Write(f)
	w.WriteByte(EndBlock)
	w.WriteByte(CarriageReturn)
	return w.Flush()
}

// EncodeText converts s to a frame payload in the codec's charset.
func (c *Codec) EncodeText(s string) (Frame, error) {
	b, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	return Frame(b), nil
}

// DecodeText converts a frame payload in the codec's charset to a string.
func (c *Codec) DecodeText(f Frame) (string, error) {
	b, err := c.enc.NewDecoder().Bytes(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
