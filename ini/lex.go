// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strings"
)

// Tokenize splits INI source text into tokens. The returned slice always ends
// with exactly one EndOfInput token, even for empty input.
//
// The only lexical error is a section header that is not closed by ']' on the
// same line, which is reported as a *SyntaxError.
func Tokenize(text string) ([]Token, error) {
	lx := &lexer{
		src: text,
		pos: Position{Line: 1, Column: 1},
	}
	for {
		lx.skipBlanks()
		if lx.off >= len(lx.src) {
			break
		}
		start := lx.pos
		switch c := lx.src[lx.off]; c {
		case '\n':
			lx.advance(1)
			lx.emit(LineBreak, "\n", start)
		case '#', ';':
			lx.advance(1)
			lx.emit(Comment, trimBlanks(lx.scanUntil("\n")), start)
		case '[':
			if err := lx.sectionHeader(); err != nil {
				return nil, err
			}
		case '=', ':':
			lx.advance(1)
			lx.emit(Assign, string(c), start)
			lx.skipBlanks()
			if lx.valueFollows() {
				lx.value()
			}
		default:
			lx.key()
		}
	}
	lx.emit(EndOfInput, "", lx.pos)
	return lx.toks, nil
}

type lexer struct {
	src  string
	off  int // byte offset of the next unread character
	pos  Position
	toks []Token
}

func (lx *lexer) emit(kind TokenKind, text string, pos Position) {
	lx.toks = append(lx.toks, Token{Kind: kind, Text: text, Pos: pos})
}

// advance moves forward n bytes, keeping pos in step.
func (lx *lexer) advance(n int) {
	for i := lx.off; i < lx.off+n; i++ {
		switch c := lx.src[i]; {
		case c == '\n':
			lx.pos.Line++
			lx.pos.Column = 1
		case c&0xc0 != 0x80:
			// Only count the first byte of a UTF-8 sequence.
			lx.pos.Column++
		}
	}
	lx.off += n
}

// skipBlanks skips horizontal whitespace. Line breaks are never skipped.
func (lx *lexer) skipBlanks() {
	n := 0
	for lx.off+n < len(lx.src) && isBlank(lx.src[lx.off+n]) {
		n++
	}
	lx.advance(n)
}

// blanks is the horizontal whitespace skipped between tokens and trimmed
// from token text. Other Unicode spaces are ordinary characters.
const blanks = " \t\r"

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func trimBlanks(s string) string {
	return strings.Trim(s, blanks)
}

// scanUntil consumes characters up to, but not including, the first byte in
// stops or the end of input, and returns what it consumed.
func (lx *lexer) scanUntil(stops string) string {
	rest := lx.src[lx.off:]
	n := strings.IndexAny(rest, stops)
	if n == -1 {
		n = len(rest)
	}
	lx.advance(n)
	return rest[:n]
}

func (lx *lexer) sectionHeader() error {
	start := lx.pos
	lx.advance(1) // '['
	rest := lx.src[lx.off:]
	n := strings.IndexAny(rest, "]\n")
	if n == -1 {
		return &SyntaxError{Pos: start, AtEOF: true, Msg: "unclosed section header"}
	}
	if rest[n] == '\n' {
		return &SyntaxError{Pos: start, Msg: "unclosed section header"}
	}
	lx.advance(n + 1)
	lx.emit(SectionHeader, trimBlanks(rest[:n]), start)
	return nil
}

// valueFollows reports whether the character after an Assign (and any blanks)
// starts a value. A line break, an inline comment or the end of input means
// the value is absent.
func (lx *lexer) valueFollows() bool {
	if lx.off >= len(lx.src) {
		return false
	}
	switch lx.src[lx.off] {
	case '\n', '#', ';':
		return false
	default:
		return true
	}
}

func (lx *lexer) value() {
	start := lx.pos
	lx.emit(Value, trimBlanks(lx.scanUntil("\n#;")), start)
}

func (lx *lexer) key() {
	start := lx.pos
	lx.emit(Key, trimBlanks(lx.scanUntil("=:\n")), start)
}
