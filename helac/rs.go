// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helac

import (
	"fmt"
	"strings"

	"github.com/go-lpc/lhe"
)

// InitRS is the run header of a real-subtracted HELAC-NLO file.
type InitRS struct {
	Run     lhe.RunHeader // generic run header, Extra cleared
	PdfSum  PdfSum
	DipMap  DipMapInfo
	JetAlgo JetAlgoInfo
}

// NarrowInitRS parses the RS run-level trailer of a generic run header.
func NarrowInitRS(run lhe.RunHeader) (InitRS, error) {
	const what = "RS init"
	secs, err := sections(run.Extra)
	if err != nil {
		return InitRS{}, unsupported(what, err)
	}
	ini := InitRS{Run: run}
	ini.Run.Extra = ""

	args, err := section(secs, kwPdfSum)
	if err != nil {
		return InitRS{}, unsupported(what, err)
	}
	ini.PdfSum, err = parsePdfSum(args)
	if err != nil {
		return InitRS{}, unsupported(what+" SUMPDF section", err)
	}

	args, err = section(secs, kwDipMap)
	if err != nil {
		return InitRS{}, unsupported(what, err)
	}
	ini.DipMap, err = parseDipMapInfo(args)
	if err != nil {
		return InitRS{}, unsupported(what+" DIPMAP section", err)
	}

	args, err = section(secs, kwJetAlgo)
	if err != nil {
		return InitRS{}, unsupported(what, err)
	}
	ini.JetAlgo, err = parseJetAlgoInfo(args)
	if err != nil {
		return InitRS{}, unsupported(what+" JETALGO section", err)
	}

	if err := leftover(secs); err != nil {
		return InitRS{}, unsupported(what, err)
	}
	return ini, nil
}

// Widen rebuilds the generic run header, trailer included. Widening
// never fails and loses no information.
func (ini InitRS) Widen() lhe.RunHeader {
	run := ini.Run
	run.Extra = strings.Join([]string{
		ini.PdfSum.line(),
		ini.DipMap.line(),
		ini.JetAlgo.line(),
	}, "\n")
	return run
}

// EventRS is one real-subtracted HELAC-NLO event.
type EventRS struct {
	Event lhe.Event // generic event record, Extra cleared
	Pdf   PdfInfo
	ME    MeInfoRS
	Jet   JetInfo
}

// NarrowEventRS parses the RS trailer of a generic event.
func NarrowEventRS(evt lhe.Event) (EventRS, error) {
	const what = "RS event"
	secs, err := sections(evt.Extra)
	if err != nil {
		return EventRS{}, unsupported(what, err)
	}
	out := EventRS{Event: evt}
	out.Event.Extra = ""

	args, err := section(secs, kwPdf)
	if err != nil {
		return EventRS{}, unsupported(what, err)
	}
	out.Pdf, err = parsePdfInfo(args)
	if err != nil {
		return EventRS{}, unsupported(what+" pdf section", err)
	}

	args, err = section(secs, kwME)
	if err != nil {
		return EventRS{}, unsupported(what, err)
	}
	out.ME, err = parseMeInfoRS(args)
	if err != nil {
		return EventRS{}, unsupported(what+" me section", err)
	}

	args, err = section(secs, kwJet)
	if err != nil {
		return EventRS{}, unsupported(what, err)
	}
	out.Jet, err = parseJetInfo(args)
	if err != nil {
		return EventRS{}, unsupported(what+" jet section", err)
	}

	if err := leftover(secs); err != nil {
		return EventRS{}, unsupported(what, err)
	}
	return out, nil
}

// Widen rebuilds the generic event, trailer included.
func (evt EventRS) Widen() lhe.Event {
	out := evt.Event
	out.Extra = strings.Join([]string{
		evt.Pdf.line(),
		evt.ME.line(),
		evt.Jet.line(),
	}, "\n")
	return out
}

// FileRS is a fully narrowed real-subtracted HELAC-NLO file.
type FileRS struct {
	Version string
	Comment string
	Init    InitRS
	Events  []EventRS
}

// NarrowFileRS narrows a generic LHE file to the RS flavour.
func NarrowFileRS(f *lhe.File) (*FileRS, error) {
	comment, err := soleComment(f.Blocks)
	if err != nil {
		return nil, unsupported("RS file", err)
	}
	ini, err := NarrowInitRS(f.Run)
	if err != nil {
		return nil, err
	}
	out := &FileRS{
		Version: f.Version,
		Comment: comment,
		Init:    ini,
	}
	for i := range f.Events {
		evt, err := NarrowEventRS(f.Events[i])
		if err != nil {
			return nil, fmt.Errorf("helac: could not narrow event %d: %w", i+1, err)
		}
		out.Events = append(out.Events, evt)
	}
	return out, nil
}

// Widen rebuilds the generic LHE file.
func (f *FileRS) Widen() *lhe.File {
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
