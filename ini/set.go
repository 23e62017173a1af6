// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
	"io/fs"
)

// FileSet is a list of maps to obtain configuration from in descending order
// of precedence. Nil elements are treated as empty maps.
type FileSet []*Map

// ParseFiles parses the files at the given paths and returns a FileSet.
// If the returned error is nil, the returned file set's length will be the same
// as the number of arguments. ParseFiles will stop on the first error, but
// ignores missing file errors, instead filling the corresponding element of the
// set with a nil *Map.
func ParseFiles(paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		m, err := ParseFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("parse ini files: %w", err)
		}
		fset = append(fset, m)
	}
	return fset, nil
}

// Get returns the value of the key in the first map that sets it, or the
// empty string if none do.
func (fset FileSet) Get(section, key string) string {
	v, _ := fset.Lookup(section, key)
	return v
}

// Lookup returns the value of the key in the first map that sets it and
// whether any map does.
func (fset FileSet) Lookup(section, key string) (_ string, ok bool) {
	for _, m := range fset {
		if v, ok := m.Lookup(section, key); ok {
			return v, true
		}
	}
	return "", false
}

// Sections returns the names of sections present in any map, in the order
// they are first seen when walking the set from highest precedence.
func (fset FileSet) Sections() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, m := range fset {
		for _, name := range m.Sections() {
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	return names
}

// Section returns the merged properties of the named section. Where several
// maps set the same key, the one with the highest precedence wins.
func (fset FileSet) Section(name string) map[string]string {
	merged := make(map[string]string)
	for i := len(fset) - 1; i >= 0; i-- {
		s := fset[i].Section(name)
		for _, k := range s.Keys() {
			merged[k] = s.Get(k)
		}
	}
	return merged
}

// Set sets the property on the first map and deletes the property in all
// subsequent maps. Set will panic if len(fset) == 0 or if the property is not
// valid as described in Map.Set.
//
// If fset[0] == nil, Set allocates a new Map. Any other nil maps in the set
// will be ignored.
func (fset FileSet) Set(section, key, value string) {
	if fset[0] == nil {
		fset[0] = NewMap()
	}
	fset[0].Set(section, key, value)
	fset[1:].Delete(section, key)
}

// Delete deletes the key from the named section in every map.
func (fset FileSet) Delete(section, key string) {
	for _, m := range fset {
		m.Delete(section, key)
	}
}
