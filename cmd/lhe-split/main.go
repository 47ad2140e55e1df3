// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lhe-split splits an LHE event file into n files, each
// carrying a copy of the run header and a round-robin share of the
// events.
package main // import "github.com/go-lpc/lhe/cmd/lhe-split"

import (
	"compress/gzip"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-lpc/lhe"
)

var (
	msg = log.New(os.Stdout, "lhe-split: ", 0)
)

func main() {
	xmain(os.Args[1:])
}

func xmain(args []string) {
	var (
		fset = flag.NewFlagSet("lhe", flag.ExitOnError)

		oname = fset.String("o", "out", "prefix of the output LHE files")
		n     = fset.Int("n", 2, "number of output files")
	)

	fset.Usage = func() {
		fmt.Printf(`Usage: lhe-split [OPTIONS] file.lhe

ex:
 $> lhe-split -n 4 -o out ./events.lhe

options:
`)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		log.Fatalf("could not parse input arguments: %+v", err)
	}

	if fset.NArg() != 1 {
		fset.Usage()
		msg.Fatalf("missing input LHE file")
	}

	if *oname == "" {
		fset.Usage()
		msg.Fatalf("invalid output prefix")
	}

	if *n < 1 {
		fset.Usage()
		msg.Fatalf("invalid number of output files (got=%d)", *n)
	}

	for _, arg := range fset.Args() {
		err := process(*oname, *n, arg)
		if err != nil {
			msg.Fatalf("could not split LHE file %q: %+v", arg, err)
		}
	}
}

func process(oname string, n int, fname string) error {
	r, err := openInput(fname)
	if err != nil {
		return err
	}
	defer r.Close()

	dec, err := lhe.NewDecoder(r)
	if err != nil {
		return fmt.Errorf("could not decode header of %q: %w", fname, err)
	}

	var (
		files = make([]*os.File, n)
		encs  = make([]*lhe.Encoder, n)
	)
	for i := range encs {
		name := fmt.Sprintf("%s-%03d.lhe", oname, i)
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("could not create output file %q: %w", name, err)
		}
		defer f.Close()
		files[i] = f
		encs[i] = lhe.NewEncoder(f)
		err = encs[i].WriteHeader(dec.Version, dec.Blocks, &dec.Run)
		if err != nil {
			return fmt.Errorf("could not write header to %q: %w", name, err)
		}
	}

	nevts := 0
loop:
	for {
		var evt lhe.Event
		err := dec.Decode(&evt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break loop
			}
			return fmt.Errorf("could not decode event %d: %w", nevts+1, err)
		}
		err = encs[nevts%n].Encode(&evt)
		if err != nil {
			return fmt.Errorf("could not encode event %d: %w", nevts+1, err)
		}
		nevts++
	}

	for i, enc := range encs {
		err := enc.Close()
		if err != nil {
			return fmt.Errorf("could not close output stream %q: %w", files[i].Name(), err)
		}
		err = files[i].Close()
		if err != nil {
			return fmt.Errorf("could not close output file %q: %w", files[i].Name(), err)
		}
	}

	msg.Printf("split %q: %d events over %d files", fname, nevts, n)
	return nil
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
