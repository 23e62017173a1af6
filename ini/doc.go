// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides a parser and serializer for the INI file format.
See https://en.wikipedia.org/wiki/INI_file.

Parsing happens in two stages: Tokenize splits text into a sequence of Tokens,
and Parse folds the tokens into a Map. ParseText does both. Serialize turns a
Map back into text. Serialization is structural: parsing the output of
Serialize yields the same sections, keys and values, but comments, blank
lines and the original separators are not preserved.

Syntax

An INI file is Unicode text. The text is not canonicalized, and there are no
escape sequences: every character between delimiters is taken literally.

An INI file consists of zero or more properties. A property is a key and
value written on a single line, separated by an equals sign ('=') or a colon
(':'):

	key = value
	key: value

The value may be omitted, in which case it is the empty string:

	key =

Properties may be grouped into sections. A section is started by writing its
name in square brackets ('[' and ']') and ends at the next section name or the
end of file. The closing bracket must appear on the same line:

	[section]
	key1 = value1
	key2 = value2

Properties encountered before a section name are permitted. They are
considered part of the default section, identified by the empty string ("").
The default section is always present in a parsed Map, even if it is empty.

Spaces, tabs and carriage returns around section names, keys and values are
ignored. Other whitespace, such as a vertical tab or a no-break space, is part
of the text. A hash ('#') or semicolon (';') starts a comment that runs to the
end of the line. Comments may appear on their own line or after a value:

	; a comment
	host = localhost # also a comment

Repeated names

A key may only appear once in a section; repeating it with a value is a
syntax error. A section name may appear more than once: the later
occurrences continue the earlier section.
*/
package ini
