// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lhe

import (
	"bytes"
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"go-hep.org/x/hep/fmom"
)

func TestCodec(t *testing.T) {
	for _, tc := range []struct {
		name string
		file File
	}{
		{
			name: "no-events",
			file: File{
				Version: "1.0",
				Run: RunHeader{
					Beam1ID: 2212, Beam2ID: 2212,
					Beam1Energy: 6500, Beam2Energy: 6500,
					Beam1PDFGroup: -1, Beam2PDFGroup: -1,
					Beam1PDFSet: 10042, Beam2PDFSet: 10042,
					WeightStrategy: 3,
					Procs: []ProcInfo{
						{XSect: 0.001, XSectErr: 0.0001, MaxWeight: 0.002, ProcID: 1},
					},
				},
			},
		},
		{
			name: "blocks-and-events",
			file: File{
				Version: "2.0",
				Blocks: []Block{
					{Tag: CommentTag, Body: "generated for testing"},
					{Tag: "header", Body: "some header text\nspanning two lines"},
				},
				Run: RunHeader{
					Beam1ID: 2212, Beam2ID: -2212,
					Beam1Energy: 4000, Beam2Energy: 4000,
					Beam1PDFGroup: 1, Beam2PDFGroup: 1,
					Beam1PDFSet: 21100, Beam2PDFSet: 21100,
					WeightStrategy: -4,
					Procs: []ProcInfo{
						{XSect: 12.5, XSectErr: 0.25, MaxWeight: 1.5, ProcID: 1},
						{XSect: 3.75, XSectErr: 0.1, MaxWeight: 0.5, ProcID: 2},
					},
					Extra: "# SUMPDF 1 2 -2",
				},
				Events: []Event{
					{
						ProcID: 1, Weight: 0.5, Scale: 91.2,
						AlphaQED: 0.0078125, AlphaQCD: 0.1171875,
						Particles: []Particle{
							{
								PDGID: 21, Status: StIncoming,
								Color1: 501, Color2: 502,
								P:    fmom.NewPxPyPzE(0, 0, 250, 250),
								Spin: -1,
							},
							{
								PDGID: 21, Status: StIncoming,
								Color1: 502, Color2: 501,
								P:    fmom.NewPxPyPzE(0, 0, -250, 250),
								Spin: 1,
							},
							{
								PDGID: 25, Status: StOutgoing,
								Mother1: 1, Mother2: 2,
								P:    fmom.NewPxPyPzE(0, 0, 0, 500),
								Mass: 125, Spin: 9,
							},
						},
						Extra: "# pdf 0.5 0.25 125.0",
					},
					{
						ProcID: 2, Weight: -0.25, Scale: 172.5,
						AlphaQED: 0.0078125, AlphaQCD: 0.109375,
						Particles: []Particle{
							{
								PDGID: 1, Status: StIncoming,
								Color1: 501,
								P:      fmom.NewPxPyPzE(0, 0, 125.5, 125.5),
								Spin:   -1,
							},
						},
					},
				},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			err := tc.file.Write(buf)
			if err != nil {
				t.Fatalf("could not encode file: %+v", err)
			}

			got, err := Read(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("could not decode file: %+v", err)
			}

			if want := &tc.file; !reflect.DeepEqual(got, want) {
				t.Fatalf("invalid r/w round-trip:\ngot= %#v\nwant=%#v", got, want)
			}
		})
	}
}

func TestCodecQuick(t *testing.T) {
	rt := func(f File) bool {
		buf := new(bytes.Buffer)
		err := f.Write(buf)
		if err != nil {
			t.Logf("could not encode file: %+v", err)
			return false
		}
		got, err := Read(buf)
		if err != nil {
			t.Logf("could not decode file: %+v", err)
			return false
		}
		return reflect.DeepEqual(got, &f)
	}
	if err := quick.Check(rt, &quick.Config{MaxCount: 100}); err != nil {
		t.Fatalf("r/w round-trip property failed: %+v", err)
	}
}

// Generate produces a random but well-formed file: finite floats,
// trimmed trailer lines and metadata bodies free of tag look-alikes.
func (File) Generate(rng *rand.Rand, size int) reflect.Value {
	f := File{
		Version: genVersions[rng.Intn(len(genVersions))],
		Run:     genRun(rng),
	}
	for i, n := 0, rng.Intn(3); i < n; i++ {
		f.Blocks = append(f.Blocks, genBlock(rng))
	}
	for i, n := 0, rng.Intn(4); i < n; i++ {
		f.Events = append(f.Events, genEvent(rng))
	}
	return reflect.ValueOf(f)
}

var (
	genVersions = []string{"1.0", "2.0", "3.0"}
	genLines    = []string{
		"# SUMPDF 2 1 -1",
		"# pdf 0.5 0.25 91.2",
		"alpha = 0.25",
		"some free-form trailer text",
	}
	genTags = []string{CommentTag, "header", "slha"}
)

func genRun(rng *rand.Rand) RunHeader {
	run := RunHeader{
		Beam1ID:        PdgID(rng.Int63n(5000) - 2500),
		Beam2ID:        PdgID(rng.Int63n(5000) - 2500),
		Beam1Energy:    genFloat(rng),
		Beam2Energy:    genFloat(rng),
		Beam1PDFGroup:  rng.Int63n(10) - 5,
		Beam2PDFGroup:  rng.Int63n(10) - 5,
		Beam1PDFSet:    rng.Int63n(100000),
		Beam2PDFSet:    rng.Int63n(100000),
		WeightStrategy: rng.Int63n(9) - 4,
		Extra:          genExtra(rng),
	}
	for i, n := 0, rng.Intn(3); i < n; i++ {
		run.Procs = append(run.Procs, ProcInfo{
			XSect:     genFloat(rng),
			XSectErr:  genFloat(rng),
			MaxWeight: genFloat(rng),
			ProcID:    rng.Int63n(10) + 1,
		})
	}
	return run
}

func genEvent(rng *rand.Rand) Event {
	evt := Event{
		ProcID:   rng.Int63n(10) + 1,
		Weight:   genFloat(rng),
		Scale:    genFloat(rng),
		AlphaQED: genFloat(rng),
		AlphaQCD: genFloat(rng),
		Extra:    genExtra(rng),
	}
	for i, n := 0, rng.Intn(5); i < n; i++ {
		evt.Particles = append(evt.Particles, Particle{
			PDGID:    PdgID(rng.Int63n(5000) - 2500),
			Status:   rng.Int63n(5) - 2,
			Mother1:  rng.Int63n(int64(i) + 1),
			Mother2:  rng.Int63n(int64(i) + 1),
			Color1:   rng.Int63n(600),
			Color2:   rng.Int63n(600),
			P:        fmom.NewPxPyPzE(genFloat(rng), genFloat(rng), genFloat(rng), genFloat(rng)),
			Mass:     genFloat(rng),
			Lifetime: genFloat(rng),
			Spin:     genFloat(rng),
		})
	}
	return evt
}

func genBlock(rng *rand.Rand) Block {
	return Block{
		Tag:  genTags[rng.Intn(len(genTags))],
		Body: genLines[rng.Intn(len(genLines))],
	}
}

func genExtra(rng *rand.Rand) string {
	switch rng.Intn(3) {
	case 0:
		return ""
	case 1:
		return genLines[rng.Intn(len(genLines))]
	default:
		return genLines[rng.Intn(len(genLines))] + "\n" + genLines[rng.Intn(len(genLines))]
	}
}

func genFloat(rng *rand.Rand) float64 {
	return rng.NormFloat64() * 1e3
}
