package parser

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// SourceType selects between module and script goal symbols.
type SourceType uint8

const (
	SourceModule SourceType = iota
	SourceScript
	// SourceAuto parses as a module when the program contains a top-level
	// import or export declaration or uses import.meta, and as a script
	// otherwise.
	SourceAuto
)

var sourceTypeNames = map[SourceType]string{
	SourceModule: "module",
	SourceScript: "script",
	SourceAuto:   "auto",
}

func (s SourceType) String() string {
	if name, ok := sourceTypeNames[s]; ok {
		return name
	}
	return "SourceType(" + strconv.Itoa(int(s)) + ")"
}

func (s *SourceType) Set(v string) error {
	for k, name := range sourceTypeNames {
		if name == v {
			*s = k
			return nil
		}
	}
	return &ConfigError{Option: "source_type", Value: v, Valid: "module, script, auto"}
}

func (s *SourceType) Type() string { return "sourceType" }

func (s *SourceType) UnmarshalText(b []byte) error { return s.Set(string(b)) }

func (s SourceType) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Language selects the dialect.
type Language uint8

const (
	LangJS Language = iota
	LangJSX
	LangTS
	LangTSX
)

var languageNames = map[Language]string{
	LangJS:  "js",
	LangJSX: "jsx",
	LangTS:  "ts",
	LangTSX: "tsx",
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return "Language(" + strconv.Itoa(int(l)) + ")"
}

// IsTypeScript reports whether l accepts type annotations.
func (l Language) IsTypeScript() bool { return l == LangTS || l == LangTSX }

// HasJSX reports whether l accepts JSX.
func (l Language) HasJSX() bool { return l == LangJSX || l == LangTSX }

func (l *Language) Set(v string) error {
	for k, name := range languageNames {
		if name == v {
			*l = k
			return nil
		}
	}
	return &ConfigError{Option: "language", Value: v, Valid: "js, jsx, ts, tsx"}
}

func (l *Language) Type() string { return "language" }

func (l *Language) UnmarshalText(b []byte) error { return l.Set(string(b)) }

func (l Language) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// ECMAVersion is an ECMAScript edition, stored as its year. The zero value
// is the latest edition.
type ECMAVersion int

const (
	ESLatest ECMAVersion = 0
	ES3      ECMAVersion = 3
	ES5      ECMAVersion = 5
	ES2015   ECMAVersion = 2015
	ES2016   ECMAVersion = 2016
	ES2017   ECMAVersion = 2017
	ES2018   ECMAVersion = 2018
	ES2019   ECMAVersion = 2019
	ES2020   ECMAVersion = 2020
	ES2021   ECMAVersion = 2021
	ES2022   ECMAVersion = 2022
	ES2023   ECMAVersion = 2023
	ES2024   ECMAVersion = 2024
	ES2025   ECMAVersion = 2025
)

// year returns the edition's year, with Latest ranking above every edition.
func (v ECMAVersion) year() int {
	if v == ESLatest {
		return 1 << 30
	}
	return int(v)
}

// Less reports whether v is an older edition than w.
func (v ECMAVersion) Less(w ECMAVersion) bool {
	return v.year() < w.year()
}

func (v ECMAVersion) String() string {
	if v == ESLatest {
		return "latest"
	}
	return "es" + strconv.Itoa(int(v))
}

// ParseECMAVersion accepts "latest", an edition number (3, 5, 6 to 16), a
// year (2015 to 2025) and the same with an "es" prefix.
func ParseECMAVersion(s string) (ECMAVersion, error) {
	if s == "latest" {
		return ESLatest, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "es"))
	if err != nil {
		return 0, &ConfigError{Option: "ecma_version", Value: s, Valid: "latest, 3, 5, 6-16, 2015-2025"}
	}
	switch {
	case n == 3 || n == 5:
		return ECMAVersion(n), nil
	case n >= 6 && n <= 16:
		return ECMAVersion(2009 + n), nil
	case n >= 2015 && n <= 2025:
		return ECMAVersion(n), nil
	}
	return 0, &ConfigError{Option: "ecma_version", Value: s, Valid: "latest, 3, 5, 6-16, 2015-2025"}
}

func (v *ECMAVersion) Set(s string) error {
	parsed, err := ParseECMAVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v *ECMAVersion) Type() string { return "ecmaVersion" }

func (v *ECMAVersion) UnmarshalText(b []byte) error { return v.Set(string(b)) }

func (v ECMAVersion) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// Config selects how source text is parsed. The zero value parses a
// JavaScript module at the latest ECMAScript edition.
type Config struct {
	SourceType  SourceType  `yaml:"source_type"`
	Language    Language    `yaml:"language"`
	ECMAVersion ECMAVersion `yaml:"ecma_version"`
	// Strict overrides whether top-level code starts in strict mode. By
	// default modules are strict and scripts are not.
	Strict *bool `yaml:"strict,omitempty"`
}

// Validate reports a *ConfigError for values outside the known sets.
func (c Config) Validate() error {
	if _, ok := sourceTypeNames[c.SourceType]; !ok {
		return &ConfigError{Option: "source_type", Value: c.SourceType.String(), Valid: "module, script, auto"}
	}
	if _, ok := languageNames[c.Language]; !ok {
		return &ConfigError{Option: "language", Value: c.Language.String(), Valid: "js, jsx, ts, tsx"}
	}
	switch v := c.ECMAVersion; {
	case v == ESLatest, v == ES3, v == ES5, v >= ES2015 && v <= ES2025:
	default:
		return &ConfigError{Option: "ecma_version", Value: strconv.Itoa(int(v)), Valid: "latest, 3, 5, 2015-2025"}
	}
	return nil
}

func (c Config) String() string {
	s := fmt.Sprintf("%s %s %s", c.Language, c.SourceType, c.ECMAVersion)
	if c.Strict != nil {
		s += fmt.Sprintf(" strict=%t", *c.Strict)
	}
	return s
}

// ConfigForPath infers the language and source type from a file name.
// Unknown extensions yield the zero Config.
func ConfigForPath(path string) Config {
	var c Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mjs":
		c.SourceType = SourceModule
	case ".cjs":
		c.SourceType = SourceScript
	case ".js":
		c.SourceType = SourceAuto
	case ".jsx":
		c.Language = LangJSX
	case ".ts", ".mts":
		c.Language = LangTS
	case ".cts":
		c.Language = LangTS
		c.SourceType = SourceScript
	case ".tsx":
		c.Language = LangTSX
	}
	return c
}
