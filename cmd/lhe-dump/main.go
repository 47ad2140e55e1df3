// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// lhe-dump decodes and displays LHE event files.
//
// Usage: lhe-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//  $> lhe-dump ./testdata/events.lhe
//  === run (version "1.0") ===
//  beams:    2212/2212 @ 6500/6500 GeV
//  pdf:      group -1/-1, set 10042/10042
//  strategy: 3
//  process 1: xsect=0.001 +/- 0.0001 pb, max-weight=0.002
//  === event 1 ===
//  proc=1 weight=0.104 scale=1000 aqed=0.00754 aqcd=0.0868
//    [ 1] pdg=-11 (e+) st=-1 mo=0,0 col=0,0 p=(0,0,500,500) m=0
//  [...]
package main

import (
	"bufio"
	"compress/gzip"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-lpc/lhe"
	"go-hep.org/x/hep/heppdt"
)

func main() {
	log.SetPrefix("lhe-dump: ")
	log.SetFlags(0)

	nmax := flag.Int("n", 0, "maximum number of events to display (0: all)")

	flag.Usage = func() {
		fmt.Printf(`lhe-dump decodes and displays LHE event files.

Usage: lhe-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> lhe-dump ./testdata/events.lhe
 === run (version "1.0") ===
 beams:    2212/2212 @ 6500/6500 GeV
 pdf:      group -1/-1, set 10042/10042
 strategy: 3
 process 1: xsect=0.001 +/- 0.0001 pb, max-weight=0.002
 === event 1 ===
 proc=1 weight=0.104 scale=1000 aqed=0.00754 aqcd=0.0868
   [ 1] pdg=-11 (e+) st=-1 mo=0,0 col=0,0 p=(0,0,500,500) m=0
 [...]

options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		log.Fatalf("missing path to input LHE file")
	}

	for _, fname := range flag.Args() {
		err := process(os.Stdout, fname, *nmax)
		if err != nil {
			log.Fatalf("could not dump file %q: %+v", fname, err)
		}
	}
}

func process(w io.Writer, fname string, nmax int) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	r, err := openInput(fname)
	if err != nil {
		return err
	}
	defer r.Close()

	dec, err := lhe.NewDecoder(r)
	if err != nil {
		return fmt.Errorf("could not decode header: %w", err)
	}

	run := &dec.Run
	fmt.Fprintf(wbuf, "=== run (version %q) ===\n", dec.Version)
	fmt.Fprintf(wbuf, "beams:    %d/%d @ %v/%v GeV\n",
		run.Beam1ID, run.Beam2ID, run.Beam1Energy, run.Beam2Energy,
	)
	fmt.Fprintf(wbuf, "pdf:      group %d/%d, set %d/%d\n",
		run.Beam1PDFGroup, run.Beam2PDFGroup, run.Beam1PDFSet, run.Beam2PDFSet,
	)
	fmt.Fprintf(wbuf, "strategy: %d\n", run.WeightStrategy)
	for _, p := range run.Procs {
		fmt.Fprintf(wbuf, "process %d: xsect=%v +/- %v pb, max-weight=%v\n",
			p.ProcID, p.XSect, p.XSectErr, p.MaxWeight,
		)
	}

	for iev := 1; ; iev++ {
		var evt lhe.Event
		err := dec.Decode(&evt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("could not decode event %d: %w", iev, err)
		}
		fmt.Fprintf(wbuf, "=== event %d ===\n", iev)
		fmt.Fprintf(wbuf, "proc=%d weight=%v scale=%v aqed=%v aqcd=%v\n",
			evt.ProcID, evt.Weight, evt.Scale, evt.AlphaQED, evt.AlphaQCD,
		)
		for i, p := range evt.Particles {
			fmt.Fprintf(wbuf, "  [%2d] pdg=%d (%s) st=%d mo=%d,%d col=%d,%d p=(%v,%v,%v,%v) m=%v\n",
				i+1, p.PDGID, nameOf(p.PDGID), p.Status,
				p.Mother1, p.Mother2, p.Color1, p.Color2,
				p.P.Px(), p.P.Py(), p.P.Pz(), p.P.E(), p.Mass,
			)
		}
		if evt.Extra != "" {
			fmt.Fprintf(wbuf, "  extra: %q\n", evt.Extra)
		}
		if nmax > 0 && iev == nmax {
			break
		}
	}

	return nil
}

// nameOf resolves a PDG ID to a particle name via the default particle
// data table.
func nameOf(id lhe.PdgID) string {
	p := heppdt.ParticleByID(heppdt.PID(id))
	if p == nil {
		return "?"
	}
	return p.Name
}

// openInput opens an LHE file, decompressing it on the fly when it
// carries a .gz extension.
func openInput(fname string) (io.ReadCloser, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", fname, err)
	}
	if !strings.HasSuffix(fname, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("could not open gzip stream of %q: %w", fname, err)
	}
	return &gzipReadCloser{gz: gz, f: f}, nil
}

type gzipReadCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (r *gzipReadCloser) Read(p []byte) (int, error) { return r.gz.Read(p) }

func (r *gzipReadCloser) Close() error {
	err := r.gz.Close()
	if e := r.f.Close(); err == nil {
		err = e
	}
	return err
}
