// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lhe

import (
	"fmt"

	"go-hep.org/x/hep/fmom"
)

// PdgID is the Particle Data Group identifier of a particle species.
type PdgID int64

// Standard particle status codes.
const (
	StIncoming     int64 = -1 // incoming beam particle
	StOutgoing     int64 = +1 // outgoing final-state particle
	StIntermediate int64 = +2 // intermediate resonance, mass preserved
)

// RunHeader holds the run-level initialization of an LHE file:
// beam identities and energies, PDF identifiers, the event-weighting
// strategy and the list of subprocesses the file may contain.
type RunHeader struct {
	Beam1ID       PdgID // PDG ID of beam 1
	Beam2ID       PdgID // PDG ID of beam 2
	Beam1Energy   float64
	Beam2Energy   float64
	Beam1PDFGroup int64 // PDF author group of beam 1
	Beam2PDFGroup int64 // PDF author group of beam 2
	Beam1PDFSet   int64 // PDF set of beam 1
	Beam2PDFSet   int64 // PDF set of beam 2

	// WeightStrategy encodes how event weights are to be
	// interpreted (+-1, +-2, +-3, +-4 in the LHE accord).
	WeightStrategy int64

	Procs []ProcInfo

	// Extra holds the free-form lines trailing the process table
	// inside the <init> block (whitespace-trimmed, newline-joined),
	// for round-trip fidelity. Generators such as HELAC-NLO store
	// additional run-level information there.
	Extra string
}

// ProcInfo describes one subprocess declared in the run header.
type ProcInfo struct {
	XSect     float64 // cross section, in pb
	XSectErr  float64 // statistical error on the cross section, in pb
	MaxWeight float64 // maximum event weight of the subprocess
	ProcID    int64
}

// Event is one parton-level event record.
type Event struct {
	ProcID   int64   // subprocess this event belongs to
	Weight   float64 // event weight
	Scale    float64 // factorization/renormalization scale, in GeV
	AlphaQED float64 // QED coupling used for this event
	AlphaQCD float64 // QCD coupling used for this event

	// Particles are indexed 1-based on the wire: particle i of the
	// event block is Particles[i-1]. Mother references use these
	// wire positions.
	Particles []Particle

	// Extra holds the free-form lines trailing the particle rows
	// inside the <event> block (whitespace-trimmed, newline-joined),
	// for round-trip fidelity.
	Extra string
}

// Validate checks the positional invariants of the event: mother
// indices must be zero ("no mother") or reference an earlier particle
// of the same event. The decoder tolerates violations, Validate is for
// callers that want to enforce well-formedness.
func (evt *Event) Validate() error {
	for i, p := range evt.Particles {
		pos := int64(i + 1)
		for _, mo := range [2]int64{p.Mother1, p.Mother2} {
			switch {
			case mo == 0:
				// no mother
			case mo < 0 || mo > int64(len(evt.Particles)):
				return fmt.Errorf("lhe: particle %d: mother index %d out of range [0, %d]",
					pos, mo, len(evt.Particles),
				)
			case mo >= pos:
				return fmt.Errorf("lhe: particle %d: forward mother reference %d", pos, mo)
			}
		}
	}
	return nil
}

// Particle is one row of an event block.
type Particle struct {
	PDGID   PdgID
	Status  int64 // status code (StIncoming, StOutgoing, ...)
	Mother1 int64 // 1-based position of the first mother, 0 if none
	Mother2 int64 // 1-based position of the last mother, 0 if none
	Color1  int64 // color-flow line of the particle
	Color2  int64 // anticolor-flow line of the particle

	P        fmom.PxPyPzE // 4-momentum (px,py,pz,E), in GeV
	Mass     float64      // invariant mass, in GeV
	Lifetime float64      // proper lifetime, in mm
	Spin     float64      // cosine of the spin-projection angle
}

// Block is an opaque metadata block of the file prolog (a comment or
// a tagged section such as <header>), preserved verbatim so unknown
// generator metadata survives a read/write round trip.
type Block struct {
	Tag  string // tag name; CommentTag for <!-- --> comments
	Body string // interior text, surrounding whitespace trimmed
}

// CommentTag is the Block tag used for <!-- --> comment blocks.
const CommentTag = "!--"

// File is a fully decoded LHE file.
type File struct {
	Version string  // value of the version attribute of the root tag
	Blocks  []Block // prolog metadata blocks, in file order
	Run     RunHeader
	Events  []Event
}
