// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lhe

import (
	"bytes"
	"fmt"
	"io"
	"testing"
)

func TestEncoder(t *testing.T) {
	run := RunHeader{
		Beam1ID: 2212, Beam2ID: 2212,
		Beam1Energy: 6500, Beam2Energy: 6500,
		Beam1PDFSet: 10042, Beam2PDFSet: 10042,
		WeightStrategy: 3,
		Procs: []ProcInfo{
			{XSect: 0.001, XSectErr: 0.0001, MaxWeight: 0.002, ProcID: 1},
		},
	}

	t.Run("golden", func(t *testing.T) {
		buf := new(bytes.Buffer)
		enc := NewEncoder(buf)
		err := enc.WriteHeader("1.0", []Block{{Tag: CommentTag, Body: "hello"}}, &run)
		if err != nil {
			t.Fatalf("could not write header: %+v", err)
		}
		err = enc.Encode(&Event{
			ProcID: 1, Weight: 0.5, Scale: 91.2,
			AlphaQED: 0.0078125, AlphaQCD: 0.125,
			Extra:    "# trailer",
		})
		if err != nil {
			t.Fatalf("could not encode event: %+v", err)
		}
		err = enc.Close()
		if err != nil {
			t.Fatalf("could not close encoder: %+v", err)
		}

		want := `<LesHouchesEvents version="1.0">
<!--
hello
-->
<init>
2212 2212 6.5e+03 6.5e+03 0 0 10042 10042 3 1
1e-03 1e-04 2e-03 1
</init>
<event>
0 1 5e-01 9.12e+01 7.8125e-03 1.25e-01
# trailer
</event>
</LesHouchesEvents>
`
		if got := buf.String(); got != want {
			t.Fatalf("invalid output:\ngot:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("encode-before-header", func(t *testing.T) {
		enc := NewEncoder(new(bytes.Buffer))
		got := enc.Encode(&Event{})
		want := fmt.Errorf("lhe: could not encode event: header not written")
		if got == nil || got.Error() != want.Error() {
			t.Fatalf("invalid error:\ngot= %v\nwant=%v", got, want)
		}
	})

	t.Run("close-before-header", func(t *testing.T) {
		enc := NewEncoder(new(bytes.Buffer))
		got := enc.Close()
		want := fmt.Errorf("lhe: could not close stream: header not written")
		if got == nil || got.Error() != want.Error() {
			t.Fatalf("invalid error:\ngot= %v\nwant=%v", got, want)
		}
	})

	t.Run("header-twice", func(t *testing.T) {
		enc := NewEncoder(new(bytes.Buffer))
		err := enc.WriteHeader("1.0", nil, &run)
		if err != nil {
			t.Fatalf("could not write header: %+v", err)
		}
		got := enc.WriteHeader("1.0", nil, &run)
		want := fmt.Errorf("lhe: header already written")
		if got == nil || got.Error() != want.Error() {
			t.Fatalf("invalid error:\ngot= %v\nwant=%v", got, want)
		}
	})

	t.Run("encode-after-close", func(t *testing.T) {
		enc := NewEncoder(new(bytes.Buffer))
		err := enc.WriteHeader("1.0", nil, &run)
		if err != nil {
			t.Fatalf("could not write header: %+v", err)
		}
		err = enc.Close()
		if err != nil {
			t.Fatalf("could not close encoder: %+v", err)
		}
		if err := enc.Close(); err != nil {
			t.Fatalf("second Close is not idempotent: %+v", err)
		}
		got := enc.Encode(&Event{})
		want := fmt.Errorf("lhe: could not encode event: encoder is closed")
		if got == nil || got.Error() != want.Error() {
			t.Fatalf("invalid error:\ngot= %v\nwant=%v", got, want)
		}
	})

	t.Run("failing-writer", func(t *testing.T) {
		enc := NewEncoder(&failingWriter{n: 0})
		got := enc.WriteHeader("1.0", nil, &run)
		want := fmt.Errorf("lhe: could not write file header: %w", io.ErrUnexpectedEOF)
		if got == nil || got.Error() != want.Error() {
			t.Fatalf("invalid error:\ngot= %v\nwant=%v", got, want)
		}
	})
}

func TestFloatFormat(t *testing.T) {
	for _, tc := range []struct {
		v    float64
		want string
	}{
		{0, "0e+00"},
		{1, "1e+00"},
		{-0.25, "-2.5e-01"},
		{6500, "6.5e+03"},
		{0.1171875, "1.171875e-01"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			if got := ftoa(tc.v); got != tc.want {
				t.Fatalf("invalid float format: got=%q, want=%q", got, tc.want)
			}
		})
	}
}

type failingWriter struct {
	n   int
	cur int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.cur += len(p)
	if w.cur >= w.n {
		return 0, io.ErrUnexpectedEOF
	}
	return len(p), nil
}
