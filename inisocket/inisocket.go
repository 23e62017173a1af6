// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package inisocket exchanges INI documents over WebSockets. Each document is
// sent as a single text message holding its canonical serialization.
//
// All functions take a Context. If the Context is done before the underlying
// I/O completes, the I/O is interrupted by moving the connection's deadline
// into the past, which leaves the connection unusable in that direction.
package inisocket

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yourbase/iniconf/ini"
	"zombiezen.com/go/log"
)

// Send writes m to the connection as one text message.
func Send(ctx context.Context, conn *websocket.Conn, m *ini.Map) error {
	data := []byte(ini.Serialize(m))
	// XXX This is racy because WriteMessage will unconditionally call
	// SetWriteDeadline.
	err := interruptible(ctx, conn.UnderlyingConn().SetWriteDeadline, func() error {
		return conn.WriteMessage(websocket.TextMessage, data)
	})
	if err != nil {
		return fmt.Errorf("send ini document: %w", err)
	}
	log.Debugf(ctx, "Sent INI document with %d sections (%d bytes)", len(m.Sections()), len(data))
	return nil
}

// Receive reads the next message from the connection and parses it as an INI
// document. Binary messages are rejected. Syntax errors in the document can be
// retrieved with errors.As.
func Receive(ctx context.Context, conn *websocket.Conn) (*ini.Map, error) {
	var (
		messageType int
		p           []byte
	)
	err := interruptible(ctx, conn.SetReadDeadline, func() error {
		var err error
		messageType, p, err = conn.ReadMessage()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("receive ini document: %w", err)
	}
	if messageType != websocket.TextMessage {
		return nil, fmt.Errorf("receive ini document: got message type %d, want text", messageType)
	}
	m, err := ini.ParseText(string(p))
	if err != nil {
		return nil, fmt.Errorf("receive ini document: %w", err)
	}
	log.Debugf(ctx, "Received INI document with %d sections (%d bytes)", len(m.Sections()), len(p))
	return m, nil
}

// Ping writes a ping message to the connection. It is safe to call concurrently
// with Send on the same connection.
func Ping(ctx context.Context, conn *websocket.Conn, data []byte) error {
	// XXX This is racy because WriteControl will unconditionally call
	// SetWriteDeadline.
	err := interruptible(ctx, conn.UnderlyingConn().SetWriteDeadline, func() error {
		return conn.WriteControl(websocket.PingMessage, data, time.Time{})
	})
	if err != nil {
		return fmt.Errorf("ping websocket: %w", err)
	}
	return nil
}

// interruptible runs op. If ctx is done before op returns, it calls
// setDeadline with the current time to unblock op and reports ctx.Err().
func interruptible(ctx context.Context, setDeadline func(time.Time) error, op func() error) error {
	ctxDone := ctx.Done()
	if ctxDone == nil {
		return op()
	}
	select {
	case <-ctxDone:
		return ctx.Err()
	default:
	}
	finished := make(chan struct{})
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		select {
		case <-finished:
		case <-ctxDone:
			setDeadline(time.Now())
		}
	}()
	err := op()
	close(finished)
	<-watchDone
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
