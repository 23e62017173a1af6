// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"path/filepath"
	"strconv"

	"github.com/yourbase/iniconf/ini"
)

// Environment variables read by inifmt.
const (
	envConfig  = "INIFMT_CONFIG"
	envPushURL = "INIFMT_PUSH_URL"
	envVerbose = "INIFMT_VERBOSE"
)

// configSection is the section of the config file inifmt reads.
const configSection = "inifmt"

// settings are the defaults for command-line flags.
type settings struct {
	pushURL string
	verbose bool
}

// loadSettings reads settings from the config file, then overrides them with
// any environment variables that are set. A missing config file is not an
// error.
func loadSettings(getenv func(string) string) (settings, error) {
	var s settings
	path := getenv(envConfig)
	if path == "" {
		if home := getenv("HOME"); home != "" {
			path = filepath.Join(home, ".inifmt.ini")
		}
	}
	if path != "" {
		fset, err := ini.ParseFiles(path)
		if err != nil {
			return settings{}, err
		}
		s.pushURL = fset.Get(configSection, "push_url")
		s.verbose = parseBool(fset.Get(configSection, "verbose"))
	}
	if v := getenv(envPushURL); v != "" {
		s.pushURL = v
	}
	if v := getenv(envVerbose); v != "" {
		s.verbose = parseBool(v)
	}
	return s, nil
}

// parseBool returns false for anything strconv.ParseBool does not accept.
func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
