// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"zombiezen.com/go/log"
)

// cliLogger writes log entries at or above a minimum level to a writer, one
// per line, prefixed with the program name.
type cliLogger struct {
	min log.Level

	mu sync.Mutex
	w  io.Writer
}

func (l *cliLogger) LogEnabled(entry log.Entry) bool {
	return entry.Level >= l.min
}

func (l *cliLogger) Log(ctx context.Context, entry log.Entry) {
	if !l.LogEnabled(entry) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "inifmt: %s\n", entry.Msg)
}
