package mllpump

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendFrame(t *testing.T) {
	assert.Equal(t, []byte("\x0bMSH|1\x1c\x0d"), AppendFrame(nil, []byte("MSH|1")))
	assert.Equal(t, []byte("\x0b\x1c\x0d"), AppendFrame(nil, nil))
	assert.Equal(t, []byte("\x0ba\x1c\x0d\x0bb\x1c\x0d"), AppendFrame(AppendFrame(nil, []byte("a")), []byte("b")))
}

func TestCodecWriteFrameFlushes(t *testing.T) {
	c, err := NewCodec(DefaultCharset)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, c.WriteFrame(w, Frame("MSA|AA")))
	assert.Equal(t, []byte("\x0bMSA|AA\x1c\x0d"), buf.Bytes())
	assert.Zero(t, w.Buffered())
}

func TestCodecWriteFrameScansBack(t *testing.T) {
	c, err := NewCodec(DefaultCharset)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, c.WriteFrame(w, Frame("PID|1\rOBX|2")))

	frames, err := NewScanner(0).Feed(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, "PID|1\rOBX|2", string(frames[0]))
}

func TestCodecLatin1Text(t *testing.T) {
	c, err := NewCodec("ISO-8859-1")
	require.NoError(t, err)

	f, err := c.EncodeText("PID|Müller")
	require.NoError(t, err)
	assert.Equal(t, []byte("PID|M\xfcller"), []byte(f))

	s, err := c.DecodeText(f)
	require.NoError(t, err)
	assert.Equal(t, "PID|Müller", s)
}

func TestCodecUTF8Text(t *testing.T) {
	c, err := NewCodec("")
	require.NoError(t, err)

	f, err := c.EncodeText("PID|Müller")
	require.NoError(t, err)
	assert.Equal(t, "PID|Müller", string(f))
}

func TestCodecUnknownCharset(t *testing.T) {
	_, err := NewCodec("klingon-1")
	assert.ErrorIs(t, err, ErrUnknownCharset)
}
