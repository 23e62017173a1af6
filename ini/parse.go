// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "fmt"

// ParseText parses INI source text into a Map. It is equivalent to calling
// Tokenize followed by Parse; errors from either step are returned unchanged.
//
// See the Syntax section in the package documentation for the format
// recognized by ParseText.
func ParseText(text string) (*Map, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse builds a Map from a token sequence produced by Tokenize. Properties
// before the first section header belong to the default section. A section
// header naming a section seen earlier continues that section.
//
// Parse stops at the first EndOfInput token or at the end of the slice.
// Line breaks, comments and tokens that cannot start a statement are skipped.
func Parse(tokens []Token) (*Map, error) {
	p := &parser{
		tokens: tokens,
		m:      NewMap(),
	}
	p.sect = p.m.Section("")
	for p.more() {
		switch tok := p.tokens[p.i]; tok.Kind {
		case SectionHeader:
			p.sect = p.m.addSection(tok.Text)
			p.i++
		case Key:
			if err := p.property(); err != nil {
				return nil, err
			}
		default:
			p.i++
		}
	}
	return p.m, nil
}

type parser struct {
	tokens []Token
	i      int
	m      *Map
	sect   *Section
}

func (p *parser) more() bool {
	return p.i < len(p.tokens) && p.tokens[p.i].Kind != EndOfInput
}

// got consumes the next token if it is of the given kind.
func (p *parser) got(kind TokenKind) (Token, bool) {
	if p.i < len(p.tokens) && p.tokens[p.i].Kind == kind {
		p.i++
		return p.tokens[p.i-1], true
	}
	return Token{}, false
}

// property parses a Key Assign [Value] statement.
func (p *parser) property() error {
	key, _ := p.got(Key)
	if _, ok := p.got(Assign); !ok {
		return &SyntaxError{
			Pos: key.Pos,
			Msg: fmt.Sprintf("expected '=' after key '%s'", key.Text),
		}
	}
	val, ok := p.got(Value)
	if !ok {
		// An absent value overwrites without a duplicate check.
		p.sect.set(key.Text, "")
		return nil
	}
	if _, dup := p.sect.Lookup(key.Text); dup {
		return &SyntaxError{
			Pos: key.Pos,
			Msg: fmt.Sprintf("duplicate key '%s' in section [%s]", key.Text, p.sect.name),
		}
	}
	p.sect.set(key.Text, val.Text)
	return nil
}
