// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "fmt"

// Position is a location in INI source text. Lines and columns start at 1.
// Columns count Unicode code points, not bytes.
type Position struct {
	Line   int
	Column int
}

func (pos Position) String() string {
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

// TokenKind is the lexical category of a Token.
type TokenKind int

// Token kinds produced by Tokenize. Square brackets never appear as
// tokens of their own: they are consumed while scanning a SectionHeader.
const (
	EndOfInput TokenKind = iota
	LineBreak
	Comment
	SectionHeader
	Key
	Value
	Assign
)

var tokenKindNames = [...]string{
	EndOfInput:    "end of input",
	LineBreak:     "line break",
	Comment:       "comment",
	SectionHeader: "section header",
	Key:           "key",
	Value:         "value",
	Assign:        "assign",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenKindNames[k]
}

// A Token is a single lexical unit of INI source.
//
// Text holds the token's content with delimiters removed: a Comment does not
// include its leading '#' or ';', a SectionHeader does not include its
// brackets, and Key, Value, Comment and SectionHeader text is trimmed of
// surrounding spaces, tabs and carriage returns. A LineBreak's text is "\n"
// and an Assign's text is the separator character that was used.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Position
}

func (tok Token) String() string {
	if tok.Kind == EndOfInput || tok.Kind == LineBreak {
		return fmt.Sprintf("%v: %v", tok.Pos, tok.Kind)
	}
	return fmt.Sprintf("%v: %v %q", tok.Pos, tok.Kind, tok.Text)
}
