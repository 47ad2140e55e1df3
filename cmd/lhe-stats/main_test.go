// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-lpc/lhe"
)

func TestProcess(t *testing.T) {
	tmp, err := os.MkdirTemp("", "lhe-stats-")
	if err != nil {
		t.Fatalf("could not create tmp dir: %+v", err)
	}
	defer os.RemoveAll(tmp)

	mkfile := func(name string, procs []lhe.ProcInfo, weights []float64) string {
		file := lhe.File{
			Version: "1.0",
			Run: lhe.RunHeader{
				Beam1ID: 2212, Beam2ID: 2212,
				Beam1Energy: 6500, Beam2Energy: 6500,
				WeightStrategy: 3,
				Procs:          procs,
			},
		}
		for _, w := range weights {
			file.Events = append(file.Events, lhe.Event{
				ProcID: 1, Weight: w, Scale: 91.2,
			})
		}
		fname := filepath.Join(tmp, name)
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
		return fname
	}

	f1 := mkfile("run1.lhe",
		[]lhe.ProcInfo{{XSect: 0.5, XSectErr: 0.0625, MaxWeight: 1, ProcID: 1}},
		[]float64{0.5, 0.25, 0.25},
	)
	f2 := mkfile("run2.lhe",
		[]lhe.ProcInfo{
			{XSect: 0.5, XSectErr: 0.0625, MaxWeight: 1, ProcID: 1},
			{XSect: 0.25, XSectErr: 0.0625, MaxWeight: 0.5, ProcID: 2},
		},
		[]float64{1.5},
	)

	buf := new(bytes.Buffer)
	err = process(buf, []string{f1, f2})
	if err != nil {
		t.Fatalf("could not process files: %+v", err)
	}

	want := fmt.Sprintf(
		"%s: procs=1 xsect=0.5 pb events=3 sum-w=1\n%s: procs=2 xsect=0.75 pb events=1 sum-w=1.5\n",
		f1, f2,
	)
	if got := buf.String(); got != want {
		t.Fatalf("invalid output:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestProcessBadInput(t *testing.T) {
	tmp, err := os.MkdirTemp("", "lhe-stats-")
	if err != nil {
		t.Fatalf("could not create tmp dir: %+v", err)
	}
	defer os.RemoveAll(tmp)

	buf := new(bytes.Buffer)
	err = process(buf, []string{filepath.Join(tmp, "not-there.lhe")})
	if err == nil {
		t.Fatalf("expected an error, got nil")
	}
}
