// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lhe

import "fmt"

// LineRole identifies which kind of numeric line a parse error refers to.
type LineRole string

const (
	RoleRun      LineRole = "run"      // the run line of the <init> block
	RoleProcess  LineRole = "process"  // a per-process line of the <init> block
	RoleEvent    LineRole = "event"    // the summary line of an <event> block
	RoleParticle LineRole = "particle" // a particle row of an <event> block
)

// arity of each line role, in whitespace-separated fields.
const (
	runArity      = 10
	procArity     = 4
	eventArity    = 6
	particleArity = 13
)

// MalformedLineError reports a numeric line with the wrong number of
// whitespace-separated fields.
type MalformedLineError struct {
	Line int      // 1-based line number in the input stream
	Role LineRole // role of the offending line
	Got  int      // number of fields found
	Want int      // number of fields required by the role
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("lhe: malformed %s line %d: got %d fields, want %d",
		e.Role, e.Line, e.Got, e.Want,
	)
}

// MalformedNumberError reports a field that could not be parsed as the
// expected numeric type.
type MalformedNumberError struct {
	Line  int    // 1-based line number in the input stream
	Token string // the offending field
	Err   error  // underlying strconv error
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("lhe: line %d: invalid number %q: %v", e.Line, e.Token, e.Err)
}

func (e *MalformedNumberError) Unwrap() error { return e.Err }

// MalformedStructureError reports an unexpected, missing or unclosed tag.
type MalformedStructureError struct {
	Line   int    // 1-based line number in the input stream
	Tag    string // tag involved, if any
	Reason string
}

func (e *MalformedStructureError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("lhe: line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("lhe: line %d: tag %q: %s", e.Line, e.Tag, e.Reason)
}

// UnsupportedFormatError reports a failed narrowing of a generic record
// to a generator-specific one: expected extra columns were absent or
// malformed.
type UnsupportedFormatError struct {
	Reason string
	Err    error // underlying parse error, if any
}

func (e *UnsupportedFormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("lhe: unsupported format: %s", e.Reason)
	}
	return fmt.Sprintf("lhe: unsupported format: %s: %v", e.Reason, e.Err)
}

func (e *UnsupportedFormatError) Unwrap() error { return e.Err }
