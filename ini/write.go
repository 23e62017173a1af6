// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "strings"

// Serialize renders m as canonical INI text. Properties in the default section
// come first without a header, followed by each named section in order. Every
// property is written as "key = value" regardless of the separator it was
// parsed with. Comments and blank lines from the source are not preserved.
//
// Serialize(nil) returns the empty string.
func Serialize(m *Map) string {
	if m == nil {
		return ""
	}
	sb := new(strings.Builder)
	named := 0
	for _, s := range m.sections {
		if s.name == "" {
			writeProperties(sb, s)
			if len(m.sections) > 1 {
				// Separates the default section from the named ones, even when
				// the default section is empty.
				sb.WriteByte('\n')
			}
			continue
		}
		if named > 0 {
			sb.WriteByte('\n')
		}
		named++
		sb.WriteByte('[')
		sb.WriteString(s.name)
		sb.WriteString("]\n")
		writeProperties(sb, s)
	}
	return sb.String()
}

func writeProperties(sb *strings.Builder, s *Section) {
	for _, k := range s.keys {
		sb.WriteString(k)
		sb.WriteString(" = ")
		sb.WriteString(s.values[k])
		sb.WriteByte('\n')
	}
}
