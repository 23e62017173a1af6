// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package inisocket

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"zombiezen.com/go/log"
)

// DialOptions holds optional parameters for Dial.
type DialOptions struct {
	// Dialer is used to open connections. If nil, websocket.DefaultDialer is
	// used.
	Dialer *websocket.Dialer

	// Header is sent with the opening handshake.
	Header http.Header

	// InitialBackoff is the wait after the first failed attempt. Each
	// subsequent wait doubles, up to MaxBackoff. Zero values select 100ms
	// and 5s respectively.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// MaxAttempts limits the number of connection attempts. Zero means keep
	// trying until the Context is done.
	MaxAttempts int
}

// Dial opens a WebSocket connection to the given ws:// or wss:// URL,
// retrying with exponential backoff until it succeeds, the attempts are used
// up, or the Context is done. Nil options are treated identically as passing
// the zero value.
func Dial(ctx context.Context, urlstr string, opts *DialOptions) (*websocket.Conn, error) {
	if opts == nil {
		opts = new(DialOptions)
	}
	u, err := url.Parse(urlstr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", urlstr, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("dial %s: scheme must be ws or wss", urlstr)
	}
	dialer := opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	b := &backoff{next: opts.InitialBackoff, max: opts.MaxBackoff}
	if b.next <= 0 {
		b.next = 100 * time.Millisecond
	}
	if b.max <= 0 {
		b.max = 5 * time.Second
	}

	var conn *websocket.Conn
	attempts := 0
	err = retry(ctx, "dialing "+urlstr, b, opts.MaxAttempts, func() error {
		attempts++
		c, resp, err := dialer.DialContext(ctx, urlstr, opts.Header)
		if err != nil {
			if resp != nil {
				return fmt.Errorf("%w (HTTP %s)", err, resp.Status)
			}
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", urlstr, err)
	}
	log.Infof(ctx, "Connected to %s after %d attempt(s)", urlstr, attempts)
	return conn, nil
}

type backoff struct {
	next time.Duration
	max  time.Duration
}

// Duration returns the current wait and doubles it for the next call.
func (b *backoff) Duration() time.Duration {
	d := b.next
	b.next *= 2
	if b.next > b.max {
		b.next = b.max
	}
	return d
}

// retry calls f until it returns nil, maxAttempts calls have been made
// (if positive), or ctx is done. It returns the last error from f. f is
// always called at least once.
//
// The operation should be a verb phrase like "dialing Alice" for logging.
func retry(ctx context.Context, operation string, b *backoff, maxAttempts int, f func() error) error {
	var t *time.Timer
	for n := 1; ; n++ {
		err := f()
		if err == nil {
			return nil
		}
		if maxAttempts > 0 && n >= maxAttempts {
			return err
		}
		d := b.Duration()
		log.Warnf(ctx, "Error %s (will retry in %v): %v", operation, d, err)
		if t == nil {
			t = time.NewTimer(d)
			defer t.Stop()
		} else {
			t.Reset(d)
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return err
		}
	}
}
