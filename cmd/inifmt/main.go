// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// inifmt rewrites INI files in canonical form.
//
// Usage:
//
//	inifmt [flags] [path ...]
//
// With no paths, inifmt reads standard input. By default the canonical form
// of each input is printed to standard output.
//
// Defaults for -push and -v are read from the [inifmt] section of
// $HOME/.inifmt.ini (or the file named by INIFMT_CONFIG), then from the
// INIFMT_PUSH_URL and INIFMT_VERBOSE environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/repr"
	"github.com/gorilla/websocket"
	"github.com/yourbase/iniconf/ini"
	"github.com/yourbase/iniconf/inisocket"
	"zombiezen.com/go/log"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
	}
	code := a.run(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	write  bool
	list   bool
	check  bool
	tokens bool
	dump   bool
	push   string

	conn *websocket.Conn
}

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func (a *app) run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("inifmt", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: inifmt [flags] [path ...]")
		fs.PrintDefaults()
	}
	fs.BoolVar(&a.write, "w", false, "write result to (source) file instead of stdout")
	fs.BoolVar(&a.list, "l", false, "list files whose formatting differs from inifmt's")
	fs.BoolVar(&a.check, "check", false, "only report syntax errors")
	fs.BoolVar(&a.tokens, "tokens", false, "dump the token stream of each input")
	fs.BoolVar(&a.dump, "dump", false, "dump the parsed sections of each input")
	fs.StringVar(&a.push, "push", "", "send each parsed document to this ws:// or wss:// `URL` (default from config)")
	verbose := fs.Bool("v", false, "log progress (default from config)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	paths := fs.Args()
	if a.write && len(paths) == 0 {
		fmt.Fprintln(a.stderr, "inifmt: cannot use -w with standard input")
		return exitUsage
	}

	// Settings only fill in flags that were not given.
	s, err := loadSettings(a.getenv)
	if err != nil {
		fmt.Fprintf(a.stderr, "inifmt: %v\n", err)
		return exitError
	}
	given := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { given[f.Name] = true })
	if !given["push"] {
		a.push = s.pushURL
	}
	if !given["v"] {
		*verbose = s.verbose
	}

	logger := &cliLogger{min: log.Warn, w: a.stderr}
	if *verbose {
		logger.min = log.Debug
	}
	log.SetDefault(logger)

	if a.push != "" {
		conn, err := inisocket.Dial(ctx, a.push, &inisocket.DialOptions{MaxAttempts: 5})
		if err != nil {
			log.Errorf(ctx, "%v", err)
			return exitError
		}
		defer conn.Close()
		a.conn = conn
	}

	code := exitOK
	if len(paths) == 0 {
		text, err := io.ReadAll(a.stdin)
		if err != nil {
			log.Errorf(ctx, "read standard input: %v", err)
			return exitError
		}
		if err := a.process(ctx, "<standard input>", string(text)); err != nil {
			log.Errorf(ctx, "%v", err)
			code = exitError
		}
		return code
	}
	for _, path := range paths {
		text, err := ini.ReadText(path)
		if err == nil {
			err = a.process(ctx, path, text)
		}
		if err != nil {
			log.Errorf(ctx, "%v", err)
			code = exitError
		}
	}
	return code
}

// process handles one input according to the flags.
func (a *app) process(ctx context.Context, name, text string) error {
	if a.tokens {
		toks, err := ini.Tokenize(text)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintln(a.stdout, repr.String(toks, repr.Indent("  ")))
	}
	m, err := ini.ParseText(text)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	log.Debugf(ctx, "Parsed %s: %d sections", name, len(m.Sections()))
	if a.dump {
		fmt.Fprintln(a.stdout, repr.String(m.Values(), repr.Indent("  ")))
	}
	if a.conn != nil {
		if err := inisocket.Send(ctx, a.conn, m); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		log.Infof(ctx, "Pushed %s to %s", name, a.push)
	}
	if a.check || a.tokens || a.dump {
		return nil
	}

	out := ini.Serialize(m)
	changed := out != text
	if a.list && changed {
		fmt.Fprintln(a.stdout, name)
	}
	if a.write {
		if changed {
			if err := ini.WriteText(name, out); err != nil {
				return err
			}
			log.Debugf(ctx, "Rewrote %s", name)
		}
		return nil
	}
	if !a.list {
		io.WriteString(a.stdout, out)
	}
	return nil
}
