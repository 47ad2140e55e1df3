// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lhe

import "io"

// Read decodes a complete LHE file from r.
//
// For large event samples, prefer driving a Decoder directly: Read
// keeps every event in memory.
func Read(r io.Reader) (*File, error) {
	dec, err := NewDecoder(r)
	if err != nil {
		return nil, err
	}
	f := &File{
		Version: dec.Version,
		Blocks:  dec.Blocks,
		Run:     dec.Run,
	}
	for {
		var evt Event
		err := dec.Decode(&evt)
		if err != nil {
			if err == io.EOF {
				return f, nil
			}
			return nil, err
		}
		f.Events = append(f.Events, evt)
	}
}

// Write encodes the complete LHE file f to w.
func (f *File) Write(w io.Writer) error {
	enc := NewEncoder(w)
	err := enc.WriteHeader(f.Version, f.Blocks, &f.Run)
	if err != nil {
		return err
	}
	for i := range f.Events {
		err = enc.Encode(&f.Events[i])
		if err != nil {
			return err
		}
	}
	return enc.Close()
}
