// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "fmt"

// SyntaxError is returned by Tokenize, Parse and ParseText when the input is
// not a well-formed INI document. A SyntaxError rejects the whole document:
// no partial results accompany it.
type SyntaxError struct {
	// Pos is where the offending construct starts.
	Pos Position
	// AtEOF is true if the input ended before the construct was complete.
	AtEOF bool
	// Msg describes the problem without position information.
	Msg string
}

// Line returns the line number the error was reported at.
func (e *SyntaxError) Line() int {
	return e.Pos.Line
}

func (e *SyntaxError) Error() string {
	if e.AtEOF {
		return fmt.Sprintf("ini: %s at end of file (started at line %d)", e.Msg, e.Pos.Line)
	}
	return fmt.Sprintf("ini: %s at line %d", e.Msg, e.Pos.Line)
}
