// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"os"
)

// ReadText returns the contents of the file at path as a string.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read ini file: %w", err)
	}
	return string(data), nil
}

// WriteText replaces the contents of the file at path, creating it if needed.
func WriteText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o666); err != nil {
		return fmt.Errorf("write ini file: %w", err)
	}
	return nil
}

// ParseFile reads and parses the INI file at path. Syntax errors are wrapped
// with the file name and can be retrieved with errors.As.
func ParseFile(path string) (*Map, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseText(text)
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %s: %w", path, err)
	}
	return m, nil
}

// WriteFile serializes m and writes it to the file at path.
func WriteFile(path string, m *Map) error {
	return WriteText(path, Serialize(m))
}
