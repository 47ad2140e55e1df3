// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-lpc/lhe"
	"go-hep.org/x/hep/fmom"
)

func TestProcess(t *testing.T) {
	tmp, err := os.MkdirTemp("", "lhe-split-")
	if err != nil {
		t.Fatalf("could not create tmp dir: %+v", err)
	}
	defer os.RemoveAll(tmp)

	file := lhe.File{
		Version: "1.0",
		Blocks: []lhe.Block{
			{Tag: lhe.CommentTag, Body: "split me"},
		},
		Run: lhe.RunHeader{
			Beam1ID: 2212, Beam2ID: 2212,
			Beam1Energy: 6500, Beam2Energy: 6500,
			WeightStrategy: 3,
			Procs: []lhe.ProcInfo{
				{XSect: 0.001, XSectErr: 0.0001, MaxWeight: 0.002, ProcID: 1},
			},
		},
	}
	for i := 0; i < 5; i++ {
		file.Events = append(file.Events, lhe.Event{
			ProcID: 1, Weight: float64(i + 1), Scale: 91.2,
			Particles: []lhe.Particle{
				{
					PDGID: 21, Status: lhe.StIncoming,
					P: fmom.NewPxPyPzE(0, 0, float64(i), float64(i)),
				},
			},
		})
	}

	fname := filepath.Join(tmp, "events.lhe")
	f, err := os.Create(fname)
	if err != nil {
		t.Fatalf("could not create LHE file: %+v", err)
	}
	defer f.Close()
	err = file.Write(f)
	if err != nil {
		t.Fatalf("could not encode LHE file: %+v", err)
	}
	err = f.Close()
	if err != nil {
		t.Fatalf("could not close LHE file: %+v", err)
	}

	const n = 2
	oname := filepath.Join(tmp, "out")
	err = process(oname, n, fname)
	if err != nil {
		t.Fatalf("could not split LHE file: %+v", err)
	}

	var nevts int
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s-%03d.lhe", oname, i)
		chunk, err := os.Open(name)
		if err != nil {
			t.Fatalf("could not open chunk %q: %+v", name, err)
		}
		defer chunk.Close()

		got, err := lhe.Read(chunk)
		if err != nil {
			t.Fatalf("could not decode chunk %q: %+v", name, err)
		}
		if got, want := got.Version, file.Version; got != want {
			t.Fatalf("chunk %q: invalid version: got=%q, want=%q", name, got, want)
		}
		if got, want := got.Blocks, file.Blocks; !reflect.DeepEqual(got, want) {
			t.Fatalf("chunk %q: invalid blocks:\ngot= %#v\nwant=%#v", name, got, want)
		}
		if got, want := got.Run, file.Run; !reflect.DeepEqual(got, want) {
			t.Fatalf("chunk %q: invalid run header:\ngot= %#v\nwant=%#v", name, got, want)
		}

		for j, evt := range got.Events {
			if got, want := evt, file.Events[j*n+i]; !reflect.DeepEqual(got, want) {
				t.Fatalf("chunk %q: invalid event %d:\ngot= %#v\nwant=%#v", name, j, got, want)
			}
		}
		nevts += len(got.Events)
	}

	if got, want := nevts, len(file.Events); got != want {
		t.Fatalf("invalid total number of events: got=%d, want=%d", got, want)
	}
}

func TestProcessBadInput(t *testing.T) {
	tmp, err := os.MkdirTemp("", "lhe-split-")
	if err != nil {
		t.Fatalf("could not create tmp dir: %+v", err)
	}
	defer os.RemoveAll(tmp)

	err = process(filepath.Join(tmp, "out"), 2, filepath.Join(tmp, "not-there.lhe"))
	if err == nil {
		t.Fatalf("expected an error, got nil")
	}
}
