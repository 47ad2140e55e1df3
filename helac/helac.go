// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package helac maps the extra information HELAC-NLO appends to
// generic LHE records onto typed values.
//
// HELAC-NLO writes one "# KEY ..." line per section into the free-form
// trailer of the <init> and <event> blocks. Four file flavours exist,
// one per contribution: real-subtracted (RS), integrated dipoles (I),
// collinear remnants (KP) and virtual corrections (OneLoop). Each
// flavour is a narrowing/widening pair over the generic lhe model:
// narrowing parses the trailers and fails with
// *lhe.UnsupportedFormatError when a section is missing or malformed,
// widening regenerates them losslessly.
package helac // import "github.com/go-lpc/lhe/helac"

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-lpc/lhe"
)

// section keywords of the HELAC-NLO trailers.
const (
	kwPdfSum  = "SUMPDF"
	kwDipMap  = "DIPMAP"
	kwJetAlgo = "JETALGO"
	kwNorm    = "NORM"
	kwPdf     = "pdf"
	kwME      = "me"
	kwJet     = "jet"
)

// sections splits the extra trailer of a generic record into its
// "# KEY args..." lines, keyed by KEY. Section order is free, each
// keyword may appear at most once.
func sections(extra string) (map[string][]string, error) {
	secs := make(map[string][]string)
	if strings.TrimSpace(extra) == "" {
		return secs, nil
	}
	for _, line := range strings.Split(extra, "\n") {
		toks := strings.Fields(line)
		if len(toks) == 0 {
			continue
		}
		switch {
		case toks[0] == "#":
			toks = toks[1:]
		case strings.HasPrefix(toks[0], "#"):
			toks[0] = strings.TrimPrefix(toks[0], "#")
		default:
			return nil, fmt.Errorf("unexpected extra line %q", line)
		}
		if len(toks) == 0 {
			return nil, fmt.Errorf("missing section keyword in %q", line)
		}
		key := toks[0]
		if _, dup := secs[key]; dup {
			return nil, fmt.Errorf("duplicate %q section", key)
		}
		secs[key] = toks[1:]
	}
	return secs, nil
}

// section extracts and removes the named section from secs.
func section(secs map[string][]string, key string) ([]string, error) {
	args, ok := secs[key]
	if !ok {
		return nil, fmt.Errorf("missing %q section", key)
	}
	delete(secs, key)
	return args, nil
}

// leftover reports sections that no parser claimed.
func leftover(secs map[string][]string) error {
	for key := range secs {
		return fmt.Errorf("unexpected %q section", key)
	}
	return nil
}

// soleComment extracts the single comment block HELAC-NLO files carry
// in their prolog.
func soleComment(blocks []lhe.Block) (string, error) {
	if len(blocks) != 1 || blocks[0].Tag != lhe.CommentTag {
		return "", fmt.Errorf("want exactly one comment block, got %d blocks", len(blocks))
	}
	return blocks[0].Body, nil
}

func unsupported(what string, err error) error {
	return &lhe.UnsupportedFormatError{Reason: "helac " + what, Err: err}
}

// scanner walks the fields of one section with a sticky error, the
// way the lhe decoder walks its lines.
type scanner struct {
	toks []string
	pos  int
	err  error
}

func newScanner(toks []string) *scanner {
	return &scanner{toks: toks}
}

func (s *scanner) next() string {
	if s.err != nil {
		return ""
	}
	if s.pos >= len(s.toks) {
		s.err = fmt.Errorf("missing field %d", s.pos+1)
		return ""
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok
}

func (s *scanner) int64() int64 {
	tok := s.next()
	if s.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		s.err = fmt.Errorf("invalid integer %q", tok)
	}
	return v
}

func (s *scanner) int8() int8 {
	tok := s.next()
	if s.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(tok, 10, 8)
	if err != nil {
		s.err = fmt.Errorf("invalid integer %q", tok)
	}
	return int8(v)
}

func (s *scanner) uint8() uint8 {
	tok := s.next()
	if s.err != nil {
		return 0
	}
	v, err := strconv.ParseUint(tok, 10, 8)
	if err != nil {
		s.err = fmt.Errorf("invalid integer %q", tok)
	}
	return uint8(v)
}

func (s *scanner) uint64() uint64 {
	tok := s.next()
	if s.err != nil {
		return 0
	}
	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		s.err = fmt.Errorf("invalid integer %q", tok)
	}
	return v
}

func (s *scanner) float() float64 {
	tok := s.next()
	if s.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		s.err = fmt.Errorf("invalid number %q", tok)
	}
	return v
}

func (s *scanner) pdg() lhe.PdgID {
	return lhe.PdgID(s.int64())
}

// flag scans a Fortran-style logical field.
func (s *scanner) flag() bool {
	tok := s.next()
	if s.err != nil {
		return false
	}
	switch tok {
	case "T":
		return true
	case "F":
		return false
	default:
		s.err = fmt.Errorf("invalid logical %q", tok)
		return false
	}
}

// done returns the sticky error, or complains about unparsed fields.
func (s *scanner) done() error {
	if s.err != nil {
		return s.err
	}
	if s.pos != len(s.toks) {
		return fmt.Errorf("trailing fields %v", s.toks[s.pos:])
	}
	return nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'e', -1, 64)
}
