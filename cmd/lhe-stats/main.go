// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lhe-stats summarizes LHE event files: declared cross
// sections, event counts and weight sums. Files are processed
// concurrently.
package main // import "github.com/go-lpc/lhe/cmd/lhe-stats"

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
	"golang.org/x/sync/errgroup"
)

func main() {
	log.SetPrefix("lhe-stats: ")
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Printf(`lhe-stats summarizes LHE event files.

Usage: lhe-stats FILE1 [FILE2 [FILE3 ...]]

Example:

 $> lhe-stats run1.lhe run2.lhe.gz
 run1.lhe: procs=1 xsect=0.001 pb events=1000 sum-w=104.2
 run2.lhe.gz: procs=2 xsect=0.003 pb events=500 sum-w=51.8

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		log.Fatalf("missing path to input LHE file")
	}

	err := process(os.Stdout, flag.Args())
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

type stats struct {
	name  string
	nproc int
	xsect float64 // sum of the declared per-process cross sections
	nevts int
	sumw  float64
}

func process(w io.Writer, fnames []string) error {
	var (
		grp errgroup.Group
		out = make([]stats, len(fnames))
	)
	for i, fname := range fnames {
		i, fname := i, fname
		grp.Go(func() error {
			st, err := statsOf(fname)
			if err != nil {
				return fmt.Errorf("could not process %q: %w", fname, err)
			}
			out[i] = st
			return nil
		})
	}
	err := grp.Wait()
	if err != nil {
		return err
	}

	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()
	for _, st := range out {
		fmt.Fprintf(wbuf, "%s: procs=%d xsect=%v pb events=%d sum-w=%v\n",
			st.name, st.nproc, st.xsect, st.nevts, st.sumw,
		)
	}
	return nil
}

func statsOf(fname string) (stats, error) {
	st := stats{name: fname}

	r, err := openInput(fname)
	if err != nil {
		return st, err
	}
	defer r.Close()

	dec, err := lhe.NewDecoder(r)
	if err != nil {
		return st, fmt.Errorf("could not decode header: %w", err)
	}

	st.nproc = len(dec.Run.Procs)
	for _, p := range dec.Run.Procs {
		st.xsect += p.XSect
	}

	for {
		var evt lhe.Event
		err := dec.Decode(&evt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return st, nil
			}
			return st, fmt.Errorf("could not decode event %d: %w", st.nevts+1, err)
		}
		st.nevts++
		st.sumw += evt.Weight
	}
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
