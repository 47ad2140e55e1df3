// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helac

import (
	"fmt"
	"strings"

	"github.com/go-lpc/lhe"
)

// InitOneLoop is the run header of a virtual-corrections HELAC-NLO
// file.
type InitOneLoop struct {
	Run    lhe.RunHeader // generic run header, Extra cleared
	PdfSum PdfSum
	Norm   Norm
}

// NarrowInitOneLoop parses the OneLoop run-level trailer of a generic
// run header.
func NarrowInitOneLoop(run lhe.RunHeader) (InitOneLoop, error) {
	const what = "OneLoop init"
	secs, err := sections(run.Extra)
	if err != nil {
		return InitOneLoop{}, unsupported(what, err)
	}
	ini := InitOneLoop{Run: run}
	ini.Run.Extra = ""

	args, err := section(secs, kwPdfSum)
	if err != nil {
		return InitOneLoop{}, unsupported(what, err)
	}
	ini.PdfSum, err = parsePdfSum(args)
	if err != nil {
		return InitOneLoop{}, unsupported(what+" SUMPDF section", err)
	}

	args, err = section(secs, kwNorm)
	if err != nil {
		return InitOneLoop{}, unsupported(what, err)
	}
	ini.Norm, err = parseNorm(args)
	if err != nil {
		return InitOneLoop{}, unsupported(what+" NORM section", err)
	}

	if err := leftover(secs); err != nil {
		return InitOneLoop{}, unsupported(what, err)
	}
	return ini, nil
}

// Widen rebuilds the generic run header, trailer included. The NORM
// section is emitted first, matching the HELAC-NLO writer.
func (ini InitOneLoop) Widen() lhe.RunHeader {
	run := ini.Run
	run.Extra = strings.Join([]string{
		ini.Norm.line(),
		ini.PdfSum.line(),
	}, "\n")
	return run
}

// EventOneLoop is one virtual-corrections HELAC-NLO event.
type EventOneLoop struct {
	Event lhe.Event // generic event record, Extra cleared
	Pdf   PdfInfo
	ME    MeInfoOneLoop
}

// NarrowEventOneLoop parses the OneLoop trailer of a generic event.
func NarrowEventOneLoop(evt lhe.Event) (EventOneLoop, error) {
	const what = "OneLoop event"
	secs, err := sections(evt.Extra)
	if err != nil {
		return EventOneLoop{}, unsupported(what, err)
	}
	out := EventOneLoop{Event: evt}
	out.Event.Extra = ""

	args, err := section(secs, kwPdf)
	if err != nil {
		return EventOneLoop{}, unsupported(what, err)
	}
	out.Pdf, err = parsePdfInfo(args)
	if err != nil {
		return EventOneLoop{}, unsupported(what+" pdf section", err)
	}

	args, err = section(secs, kwME)
	if err != nil {
		return EventOneLoop{}, unsupported(what, err)
	}
	out.ME, err = parseMeInfoOneLoop(args)
	if err != nil {
		return EventOneLoop{}, unsupported(what+" me section", err)
	}

	if err := leftover(secs); err != nil {
		return EventOneLoop{}, unsupported(what, err)
	}
	return out, nil
}

// Widen rebuilds the generic event, trailer included.
func (evt EventOneLoop) Widen() lhe.Event {
	out := evt.Event
	out.Extra = strings.Join([]string{
		evt.Pdf.line(),
		evt.ME.line(),
	}, "\n")
	return out
}

// FileOneLoop is a fully narrowed virtual-corrections HELAC-NLO file.
type FileOneLoop struct {
	Version string
	Comment string
	Init    InitOneLoop
	Events  []EventOneLoop
}

// NarrowFileOneLoop narrows a generic LHE file to the OneLoop flavour.
func NarrowFileOneLoop(f *lhe.File) (*FileOneLoop, error) {
	comment, err := soleComment(f.Blocks)
	if err != nil {
		return nil, unsupported("OneLoop file", err)
	}
	ini, err := NarrowInitOneLoop(f.Run)
	if err != nil {
		return nil, err
	}
	out := &FileOneLoop{
		Version: f.Version,
		Comment: comment,
		Init:    ini,
	}
	for i := range f.Events {
		evt, err := NarrowEventOneLoop(f.Events[i])
		if err != nil {
			return nil, fmt.Errorf("helac: could not narrow event %d: %w", i+1, err)
		}
		out.Events = append(out.Events, evt)
	}
	return out, nil
}

// Widen rebuilds the generic LHE file.
func (f *FileOneLoop) Widen() *lhe.File {
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
