// Copyright 2026 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mllpump

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults for Config fields left at zero.
const (
	DefaultReadBufferSize = 2048
	DefaultAckTimeout     = 30 * time.Second
	DefaultMaxFrameSize   = 32 * 1024 * 1024
)

// Config holds the per-session protocol settings.
type Config struct {
	// QueueCapacity bounds the frames scanned but not yet consumed.
	QueueCapacity int `toml:"queue_capacity"`
	// ReadBufferSize is the size of one stream read.
	ReadBufferSize int `toml:"read_buffer_size"`
	// AckTimeout bounds each read while a sender waits for its ack. It is
	// restarted by every read that does not complete a frame, so it is not
	// a deadline for the whole wait.
	AckTimeout time.Duration `toml:"ack_timeout"`
	// MaxFrameSize limits one payload, a negative value disables the limit.
	MaxFrameSize int `toml:"max_frame_size"`
	// Charset is used by the text helpers of the codec.
	Charset string `toml:"charset"`
}

// DefaultConfig returns the reference protocol settings.
func DefaultConfig() Config {
	return Config{
		QueueCapacity:  DefaultQueueCapacity,
		ReadBufferSize: DefaultReadBufferSize,
		AckTimeout:     DefaultAckTimeout,
		MaxFrameSize:   DefaultMaxFrameSize,
		Charset:        DefaultCharset,
	}
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	return cfg.finish()
}

// ParseConfig parses TOML config text.
func ParseConfig(data string) (Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	return cfg.finish()
}

func (c Config) finish() (Config, error) {
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.QueueCapacity == 0 {
		c.QueueCapacity = d.QueueCapacity
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.AckTimeout == 0 {
		c.AckTimeout = d.AckTimeout
	}
	if c.MaxFrameSize == 0 {
		c.MaxFrameSize = d.MaxFrameSize
	}
	if c.Charset == "" {
		c.Charset = d.Charset
	}
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.QueueCapacity < 1 {
		return fmt.Errorf("%w: queue_capacity must be positive", ErrInvalidConfig)
	}
	if c.ReadBufferSize < 1 {
		return fmt.Errorf("%w: read_buffer_size must be positive", ErrInvalidConfig)
	}
	if c.AckTimeout <= 0 {
		return fmt.Errorf("%w: ack_timeout must be positive", ErrInvalidConfig)
	}
	if _, err := lookupCharset(c.Charset); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
