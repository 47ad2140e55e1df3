// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helac

import (
	"fmt"
	"strings"

	"github.com/go-lpc/lhe"
)

// InitKP is the run header of a collinear-remnants HELAC-NLO file.
type InitKP struct {
	Run    lhe.RunHeader // generic run header, Extra cleared
	PdfSum PdfSumKP
}

// NarrowInitKP parses the KP run-level trailer of a generic run header.
func NarrowInitKP(run lhe.RunHeader) (InitKP, error) {
	const what = "KP init"
	secs, err := sections(run.Extra)
	if err != nil {
		return InitKP{}, unsupported(what, err)
	}
	ini := InitKP{Run: run}
	ini.Run.Extra = ""

	args, err := section(secs, kwPdfSum)
	if err != nil {
		return InitKP{}, unsupported(what, err)
	}
	ini.PdfSum, err = parsePdfSumKP(args)
	if err != nil {
		return InitKP{}, unsupported(what+" SUMPDF section", err)
	}

	if err := leftover(secs); err != nil {
		return InitKP{}, unsupported(what, err)
	}
	return ini, nil
}

// Widen rebuilds the generic run header, trailer included.
func (ini InitKP) Widen() lhe.RunHeader {
	run := ini.Run
	run.Extra = ini.PdfSum.line()
	return run
}

// EventKP is one collinear-remnants HELAC-NLO event.
type EventKP struct {
	Event lhe.Event // generic event record, Extra cleared
	Pdf   PdfInfo
	ME    MeInfoKP
}

// NarrowEventKP parses the KP trailer of a generic event.
func NarrowEventKP(evt lhe.Event) (EventKP, error) {
	const what = "KP event"
	secs, err := sections(evt.Extra)
	if err != nil {
		return EventKP{}, unsupported(what, err)
	}
	out := EventKP{Event: evt}
	out.Event.Extra = ""

	args, err := section(secs, kwPdf)
	if err != nil {
		return EventKP{}, unsupported(what, err)
	}
	out.Pdf, err = parsePdfInfo(args)
	if err != nil {
		return EventKP{}, unsupported(what+" pdf section", err)
	}

	args, err = section(secs, kwME)
	if err != nil {
		return EventKP{}, unsupported(what, err)
	}
	out.ME, err = parseMeInfoKP(args)
	if err != nil {
		return EventKP{}, unsupported(what+" me section", err)
	}

	if err := leftover(secs); err != nil {
		return EventKP{}, unsupported(what, err)
	}
	return out, nil
}

// Widen rebuilds the generic event, trailer included.
func (evt EventKP) Widen() lhe.Event {
	out := evt.Event
	out.Extra = strings.Join([]string{
		evt.Pdf.line(),
		evt.ME.line(),
	}, "\n")
	return out
}

// FileKP is a fully narrowed collinear-remnants HELAC-NLO file.
type FileKP struct {
	Version string
	Comment string
	Init    InitKP
	Events  []EventKP
}

// NarrowFileKP narrows a generic LHE file to the KP flavour.
func NarrowFileKP(f *lhe.File) (*FileKP, error) {
	comment, err := soleComment(f.Blocks)
	if err != nil {
		return nil, unsupported("KP file", err)
	}
	ini, err := NarrowInitKP(f.Run)
	if err != nil {
		return nil, err
	}
	out := &FileKP{
		Version: f.Version,
		Comment: comment,
		Init:    ini,
	}
	for i := range f.Events {
		evt, err := NarrowEventKP(f.Events[i])
		if err != nil {
			return nil, fmt.Errorf("helac: could not narrow event %d: %w", i+1, err)
		}
		out.Events = append(out.Events, evt)
	}
	return out, nil
}

// Widen rebuilds the generic LHE file.
func (f *FileKP) Widen() *lhe.File {
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
