// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helac

import (
	"fmt"
	"strings"

	"github.com/go-lpc/lhe"
)

// InitI is the run header of an integrated-dipoles HELAC-NLO file.
type InitI struct {
	Run    lhe.RunHeader // generic run header, Extra cleared
	PdfSum PdfSum
}

// NarrowInitI parses the I run-level trailer of a generic run header.
func NarrowInitI(run lhe.RunHeader) (InitI, error) {
	const what = "I init"
	secs, err := sections(run.Extra)
	if err != nil {
		return InitI{}, unsupported(what, err)
	}
	ini := InitI{Run: run}
	ini.Run.Extra = ""

	args, err := section(secs, kwPdfSum)
	if err != nil {
		return InitI{}, unsupported(what, err)
	}
	ini.PdfSum, err = parsePdfSum(args)
	if err != nil {
		return InitI{}, unsupported(what+" SUMPDF section", err)
	}

	if err := leftover(secs); err != nil {
		return InitI{}, unsupported(what, err)
	}
	return ini, nil
}

// Widen rebuilds the generic run header, trailer included.
func (ini InitI) Widen() lhe.RunHeader {
	run := ini.Run
	run.Extra = ini.PdfSum.line()
	return run
}

// EventI is one integrated-dipoles HELAC-NLO event.
type EventI struct {
	Event lhe.Event // generic event record, Extra cleared
	Pdf   PdfInfo
	ME    MeInfoI
}

// NarrowEventI parses the I trailer of a generic event.
func NarrowEventI(evt lhe.Event) (EventI, error) {
	const what = "I event"
	secs, err := sections(evt.Extra)
	if err != nil {
		return EventI{}, unsupported(what, err)
	}
	out := EventI{Event: evt}
	out.Event.Extra = ""

	args, err := section(secs, kwPdf)
	if err != nil {
		return EventI{}, unsupported(what, err)
	}
	out.Pdf, err = parsePdfInfo(args)
	if err != nil {
		return EventI{}, unsupported(what+" pdf section", err)
	}

	args, err = section(secs, kwME)
	if err != nil {
		return EventI{}, unsupported(what, err)
	}
	out.ME, err = parseMeInfoI(args)
	if err != nil {
		return EventI{}, unsupported(what+" me section", err)
	}

	if err := leftover(secs); err != nil {
		return EventI{}, unsupported(what, err)
	}
	return out, nil
}

// Widen rebuilds the generic event, trailer included.
func (evt EventI) Widen() lhe.Event {
	out := evt.Event
	out.Extra = strings.Join([]string{
		evt.Pdf.line(),
		evt.ME.line(),
	}, "\n")
	return out
}

// FileI is a fully narrowed integrated-dipoles HELAC-NLO file.
type FileI struct {
	Version string
	Comment string
	Init    InitI
	Events  []EventI
}

// NarrowFileI narrows a generic LHE file to the I flavour.
func NarrowFileI(f *lhe.File) (*FileI, error) {
	comment, err := soleComment(f.Blocks)
	if err != nil {
		return nil, unsupported("I file", err)
	}
	ini, err := NarrowInitI(f.Run)
	if err != nil {
		return nil, err
	}
	out := &FileI{
		Version: f.Version,
		Comment: comment,
		Init:    ini,
	}
	for i := range f.Events {
		evt, err := NarrowEventI(f.Events[i])
		if err != nil {
			return nil, fmt.Errorf("helac: could not narrow event %d: %w", i+1, err)
		}
		out.Events = append(out.Events, evt)
	}
	return out, nil
}

// Widen rebuilds the generic LHE file.
func (f *FileI) Widen() *lhe.File {
	out := &lhe.File{
		Version: f.Version,
		Blocks:  []lhe.Block{{Tag: lhe.CommentTag, Body: f.Comment}},
		Run:     f.Init.Widen(),
	}
	for i := range f.Events {
		out.Events = append(out.Events, f.Events[i].Widen())
	}
	return out
}
