// Package color provides configuration for coloring unified diffs using ANSI escape sequences.
//
// Specifying colors uses [Select Graphic Rendition parameters]. For example the code below
// presents the hunk header in bold yellow:
//
//	HunkHeaders(1, 33)
//
// This is equivalent to the raw ANSI sequence \033[1;33m.
//
// It's the caller's responsibility to ensure that the parameters are correct and supported by the
// underlying terminal; this package does no TTY detection of its own.
//
// [Select Graphic Rendition parameters]: https://en.wikipedia.org/wiki/ANSI_escape_code#SGR
package color

import (
	"fmt"
	"strings"
)

// Reset is the SGR sequence that ends any coloring started by a Config field.
const Reset = "\033[0m"

// Config holds the escape sequences the printer uses for each part of a rendered diff. The zero
// value disables coloring (every field is the empty string).
type Config struct {
	HunkHeader    string
	Match         string
	Delete        string
	Insert        string
	InlineDelete  string
	InlineInsert  string
}

// Option configures a [Config].
type Option func(*Config)

// HunkHeaders colors hunk headers, the "@@ ... @@" part of the unified diff.
func HunkHeaders(params ...int) Option {
	code := format(params)
	return func(cc *Config) { cc.HunkHeader = code }
}

// Matches colors matching (context) lines.
func Matches(params ...int) Option {
	code := format(params)
	return func(cc *Config) { cc.Match = code }
}

// Deletes colors deleted lines.
func Deletes(params ...int) Option {
	code := format(params)
	return func(cc *Config) { cc.Delete = code }
}

// Inserts colors inserted lines.
func Inserts(params ...int) Option {
	code := format(params)
	return func(cc *Config) { cc.Insert = code }
}

// InlineDeletes colors the deleted chunks inside a refined Replace line.
func InlineDeletes(params ...int) Option {
	code := format(params)
	return func(cc *Config) { cc.InlineDelete = code }
}

// InlineInserts colors the inserted chunks inside a refined Replace line.
func InlineInserts(params ...int) Option {
	code := format(params)
	return func(cc *Config) { cc.InlineInsert = code }
}

// New builds a Config from a set of Options.
func New(opts ...Option) Config {
	var cc Config
	for _, opt := range opts {
		opt(&cc)
	}
	return cc
}

func format(params []int) string {
	var sb strings.Builder
	sb.WriteString("\033[")
	for i, v := range params {
		if i > 0 {
			sb.WriteRune(';')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteRune('m')
	return sb.String()
}
