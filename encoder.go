// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lhe

import (
	"fmt"
	"io"
	"strconv"
)

// Encoder writes LHE data to an output stream, one event at a time.
// The usual sequence is WriteHeader once, Encode per event, then Close
// to emit the closing root tag.
type Encoder struct {
	w      io.Writer
	err    error
	header bool
	closed bool
}

// NewEncoder returns a new Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteHeader emits the root tag with the given version attribute, the
// prolog metadata blocks and the <init> run header.
func (enc *Encoder) WriteHeader(version string, blocks []Block, run *RunHeader) error {
	if enc.header {
		return fmt.Errorf("lhe: header already written")
	}
	enc.header = true

	enc.printf("<%s version=%q>\n", rootTag, version)
	for _, blk := range blocks {
		enc.block(blk)
	}
	enc.printf("<%s>\n", initTag)
	enc.printf("%d %d %s %s %d %d %d %d %d %d\n",
		run.Beam1ID, run.Beam2ID,
		ftoa(run.Beam1Energy), ftoa(run.Beam2Energy),
		run.Beam1PDFGroup, run.Beam2PDFGroup,
		run.Beam1PDFSet, run.Beam2PDFSet,
		run.WeightStrategy, len(run.Procs),
	)
	for _, p := range run.Procs {
		enc.printf("%s %s %s %d\n", ftoa(p.XSect), ftoa(p.XSectErr), ftoa(p.MaxWeight), p.ProcID)
	}
	if run.Extra != "" {
		enc.printf("%s\n", run.Extra)
	}
	enc.printf("</%s>\n", initTag)

	if enc.err != nil {
		return fmt.Errorf("lhe: could not write file header: %w", enc.err)
	}
	return nil
}

// Encode writes one event block to the stream.
func (enc *Encoder) Encode(evt *Event) error {
	switch {
	case !enc.header:
		return fmt.Errorf("lhe: could not encode event: header not written")
	case enc.closed:
		return fmt.Errorf("lhe: could not encode event: encoder is closed")
	case enc.err != nil:
		return enc.err
	}

	enc.printf("<%s>\n", eventTag)
	enc.printf("%d %d %s %s %s %s\n",
		len(evt.Particles), evt.ProcID,
		ftoa(evt.Weight), ftoa(evt.Scale),
		ftoa(evt.AlphaQED), ftoa(evt.AlphaQCD),
	)
	for i := range evt.Particles {
		p := &evt.Particles[i]
		enc.printf("%d %d %d %d %d %d %s %s %s %s %s %s %s\n",
			p.PDGID, p.Status, p.Mother1, p.Mother2, p.Color1, p.Color2,
			ftoa(p.P.Px()), ftoa(p.P.Py()), ftoa(p.P.Pz()), ftoa(p.P.E()),
			ftoa(p.Mass), ftoa(p.Lifetime), ftoa(p.Spin),
		)
	}
	if evt.Extra != "" {
		enc.printf("%s\n", evt.Extra)
	}
	enc.printf("</%s>\n", eventTag)

	if enc.err != nil {
		return fmt.Errorf("lhe: could not encode event: %w", enc.err)
	}
	return nil
}

// Close emits the closing root tag. It does not close the underlying
// writer.
func (enc *Encoder) Close() error {
	if enc.closed {
		return nil
	}
	if !enc.header {
		return fmt.Errorf("lhe: could not close stream: header not written")
	}
	enc.closed = true
	enc.printf("</%s>\n", rootTag)
	if enc.err != nil {
		return fmt.Errorf("lhe: could not write closing tag: %w", enc.err)
	}
	return nil
}

func (enc *Encoder) block(blk Block) {
	switch blk.Tag {
	case CommentTag:
		enc.printf("<!--\n")
		if blk.Body != "" {
			enc.printf("%s\n", blk.Body)
		}
		enc.printf("-->\n")
	default:
		enc.printf("<%s>\n", blk.Tag)
		if blk.Body != "" {
			enc.printf("%s\n", blk.Body)
		}
		enc.printf("</%s>\n", blk.Tag)
	}
}

func (enc *Encoder) printf(format string, args ...interface{}) {
	if enc.err != nil {
		return
	}
	_, enc.err = fmt.Fprintf(enc.w, format, args...)
}

// ftoa formats a float the way LHE files spell them: scientific
// notation with the shortest representation that survives a round
// trip through the decoder.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'e', -1, 64)
}
