// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "strings"

// A Map is a parsed INI document: an ordered collection of sections, each an
// ordered collection of unique keys with string values.
//
// The default section, named by the empty string, is always the first
// section. Maps returned by NewMap and ParseText always contain it; a zero Map
// gains it on first write.
//
// Maps can be read by multiple concurrent goroutines. Writers must be
// synchronized by the caller.
type Map struct {
	sections []*Section
	index    map[string]*Section
}

// A Section is a named group of properties within a Map.
type Section struct {
	name   string
	keys   []string
	values map[string]string
}

// NewMap returns a Map that only holds an empty default section.
func NewMap() *Map {
	m := new(Map)
	m.init()
	return m
}

func (m *Map) init() {
	if m.index != nil {
		return
	}
	def := newSection("")
	m.sections = []*Section{def}
	m.index = map[string]*Section{"": def}
}

func newSection(name string) *Section {
	return &Section{name: name, values: make(map[string]string)}
}

// addSection returns the named section, appending it if it does not exist.
func (m *Map) addSection(name string) *Section {
	m.init()
	if s := m.index[name]; s != nil {
		return s
	}
	s := newSection(name)
	m.sections = append(m.sections, s)
	m.index[name] = s
	return s
}

// Section returns the named section or nil if the map has no such section.
// Section("") returns the default section.
func (m *Map) Section(name string) *Section {
	if m == nil {
		return nil
	}
	return m.index[name]
}

// HasSection reports whether the map contains the named section, even if it
// has no properties.
func (m *Map) HasSection(name string) bool {
	return m.Section(name) != nil
}

// Sections returns the names of the map's sections in the order they were
// first seen. The default section comes first.
func (m *Map) Sections() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.sections))
	for _, s := range m.sections {
		names = append(names, s.name)
	}
	return names
}

// Get returns the value of the given key in the given section, or the empty
// string if it is not set. Use Lookup to distinguish an empty value from a
// missing key.
func (m *Map) Get(section, key string) string {
	v, _ := m.Lookup(section, key)
	return v
}

// Lookup returns the value of the given key in the given section and whether
// the key is present.
func (m *Map) Lookup(section, key string) (_ string, ok bool) {
	return m.Section(section).Lookup(key)
}

// Set sets the property to the given value, creating the section at the end
// of the map if necessary. An existing key keeps its position. Set panics if
// IsValidSection(section), IsValidKey(key) or IsValidValue(value) report
// false, since such a property could not be read back from serialized text.
func (m *Map) Set(section, key, value string) {
	if !IsValidSection(section) {
		panic("Map.Set invalid section: " + section)
	}
	if !IsValidKey(key) {
		panic("Map.Set invalid key: " + key)
	}
	if !IsValidValue(value) {
		panic("Map.Set invalid value: " + value)
	}
	m.addSection(section).set(key, value)
}

// Delete removes the key from the named section. The section itself is kept
// even if it becomes empty.
func (m *Map) Delete(section, key string) {
	m.Section(section).Delete(key)
}

// Values returns a copy of the map's contents as plain Go maps.
func (m *Map) Values() map[string]map[string]string {
	if m == nil {
		return nil
	}
	v := make(map[string]map[string]string, len(m.sections))
	for _, s := range m.sections {
		props := make(map[string]string, len(s.keys))
		for k, val := range s.values {
			props[k] = val
		}
		v[s.name] = props
	}
	return v
}

// MarshalText serializes the map in canonical INI format.
func (m *Map) MarshalText() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return []byte(Serialize(m)), nil
}

// UnmarshalText parses INI text, replacing the contents of m.
func (m *Map) UnmarshalText(data []byte) error {
	parsed, err := ParseText(string(data))
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}

// Name returns the section's name. The default section's name is empty.
func (s *Section) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Len returns the number of properties in the section.
func (s *Section) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the section's keys in insertion order.
func (s *Section) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Get returns the value of the key or the empty string if it is not set.
func (s *Section) Get(key string) string {
	v, _ := s.Lookup(key)
	return v
}

// Lookup returns the value of the key and whether it is present.
func (s *Section) Lookup(key string) (_ string, ok bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// Set sets the key to the given value. A new key is appended to the end of the
// section; an existing key keeps its position. Set panics if IsValidKey(key)
// or IsValidValue(value) report false.
func (s *Section) Set(key, value string) {
	if !IsValidKey(key) {
		panic("Section.Set invalid key: " + key)
	}
	if !IsValidValue(value) {
		panic("Section.Set invalid value: " + value)
	}
	s.set(key, value)
}

func (s *Section) set(key, value string) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Delete removes the key from the section if present.
func (s *Section) Delete(key string) {
	if s == nil {
		return
	}
	if _, exists := s.values[key]; !exists {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			copy(s.keys[i:], s.keys[i+1:])
			s.keys[len(s.keys)-1] = ""
			s.keys = s.keys[:len(s.keys)-1]
			break
		}
	}
}

// IsValidSection reports whether a string can be used as a section name.
func IsValidSection(name string) bool {
	if name == "" {
		// Special case: default section.
		return true
	}
	if hasSurroundingSpace(name) {
		return false
	}
	return !strings.ContainsAny(name, "]\n")
}

// IsValidKey reports whether a string can be used as a property key.
func IsValidKey(key string) bool {
	if key == "" || hasSurroundingSpace(key) {
		return false
	}
	switch key[0] {
	case '[', '#', ';':
		return false
	}
	return !strings.ContainsAny(key, "=:\n")
}

// IsValidValue reports whether a string can be used as a property value.
// Values are written literally, so they cannot contain line breaks or the
// characters that start an inline comment.
func IsValidValue(value string) bool {
	if hasSurroundingSpace(value) {
		return false
	}
	return !strings.ContainsAny(value, "\n#;")
}

// hasSurroundingSpace reports whether s starts or ends with a character the
// lexer would trim.
func hasSurroundingSpace(s string) bool {
	return s != "" && (isBlank(s[0]) || isBlank(s[len(s)-1]))
}
