// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helac

import (
	"fmt"
	"strings"

	"github.com/go-lpc/lhe"
)

// PdfInfo is the per-event "# pdf" section: momentum fractions of the
// incoming partons and the PDF evaluation scale.
type PdfInfo struct {
	X1    float64
	X2    float64
	Scale float64
}

func parsePdfInfo(args []string) (PdfInfo, error) {
	s := newScanner(args)
	v := PdfInfo{
		X1:    s.float(),
		X2:    s.float(),
		Scale: s.float(),
	}
	return v, s.done()
}

func (p PdfInfo) line() string {
	return fmt.Sprintf("# pdf %s %s %s", ftoa(p.X1), ftoa(p.X2), ftoa(p.Scale))
}

// PdfSum is the run-level "# SUMPDF" section of the RS, I and OneLoop
// flavours: the parton pairs summed over in the PDF convolution.
type PdfSum struct {
	Pairs [][2]lhe.PdgID
}

func parsePdfSum(args []string) (PdfSum, error) {
	s := newScanner(args)
	n := s.uint64()
	var v PdfSum
	for i := uint64(0); i < n && s.err == nil; i++ {
		v.Pairs = append(v.Pairs, [2]lhe.PdgID{s.pdg(), s.pdg()})
	}
	return v, s.done()
}

func (p PdfSum) line() string {
	w := new(strings.Builder)
	fmt.Fprintf(w, "# SUMPDF %d", len(p.Pairs))
	for _, pair := range p.Pairs {
		fmt.Fprintf(w, " %d %d", pair[0], pair[1])
	}
	return w.String()
}

// PdfSumKP is the run-level "# SUMPDF" section of the KP flavour:
// per-beam gluon and quark parton content.
type PdfSumKP struct {
	HasBeam1Gluon bool
	Beam1GluonID  lhe.PdgID // meaningful only when HasBeam1Gluon
	HasBeam2Gluon bool
	Beam2GluonID  lhe.PdgID // meaningful only when HasBeam2Gluon
	Beam1QuarkIDs []lhe.PdgID
	Beam2QuarkIDs []lhe.PdgID
}

func parsePdfSumKP(args []string) (PdfSumKP, error) {
	s := newScanner(args)
	var (
		ng1 = s.uint64()
		nq1 = s.uint64()
		ng2 = s.uint64()
		nq2 = s.uint64()
		v   PdfSumKP
	)
	g1 := s.pdg()
	for i := uint64(0); i < nq1 && s.err == nil; i++ {
		v.Beam1QuarkIDs = append(v.Beam1QuarkIDs, s.pdg())
	}
	g2 := s.pdg()
	for i := uint64(0); i < nq2 && s.err == nil; i++ {
		v.Beam2QuarkIDs = append(v.Beam2QuarkIDs, s.pdg())
	}
	if ng1 != 0 {
		v.HasBeam1Gluon = true
		v.Beam1GluonID = g1
	}
	if ng2 != 0 {
		v.HasBeam2Gluon = true
		v.Beam2GluonID = g2
	}
	return v, s.done()
}

func (p PdfSumKP) line() string {
	w := new(strings.Builder)
	ng := func(has bool) int {
		if has {
			return 1
		}
		return 0
	}
	fmt.Fprintf(w, "# SUMPDF %d %d %d %d",
		ng(p.HasBeam1Gluon), len(p.Beam1QuarkIDs),
		ng(p.HasBeam2Gluon), len(p.Beam2QuarkIDs),
	)
	fmt.Fprintf(w, " %d", p.Beam1GluonID)
	for _, id := range p.Beam1QuarkIDs {
		fmt.Fprintf(w, " %d", id)
	}
	fmt.Fprintf(w, " %d", p.Beam2GluonID)
	for _, id := range p.Beam2QuarkIDs {
		fmt.Fprintf(w, " %d", id)
	}
	return w.String()
}

// JetAlgoInfo is the run-level "# JETALGO" section of the RS flavour.
type JetAlgoInfo struct {
	AlgorithmID int8
	NBJets      uint8
	EtaMax      float64
	DR          float64
	HasPtVeto   bool
	PtVeto      float64 // zero when HasPtVeto is false
}

func parseJetAlgoInfo(args []string) (JetAlgoInfo, error) {
	s := newScanner(args)
	v := JetAlgoInfo{
		AlgorithmID: s.int8(),
		NBJets:      s.uint8(),
		EtaMax:      s.float(),
		DR:          s.float(),
		HasPtVeto:   s.flag(),
	}
	veto := s.float()
	if v.HasPtVeto {
		v.PtVeto = veto
	}
	return v, s.done()
}

func (j JetAlgoInfo) line() string {
	veto := "F"
	if j.HasPtVeto {
		veto = "T"
	}
	return fmt.Sprintf("# JETALGO %d %d %s %s %s %s",
		j.AlgorithmID, j.NBJets, ftoa(j.EtaMax), ftoa(j.DR), veto, ftoa(j.PtVeto),
	)
}

// DipMapInfo is the run-level "# DIPMAP" section of the RS flavour:
// the subtraction-dipole emitter/spectator map.
type DipMapInfo struct {
	DipoleType int8
	Map        [][2]int8
}

func parseDipMapInfo(args []string) (DipMapInfo, error) {
	s := newScanner(args)
	v := DipMapInfo{DipoleType: s.int8()}
	n := s.uint8()
	for i := uint8(0); i < n && s.err == nil; i++ {
		v.Map = append(v.Map, [2]int8{s.int8(), s.int8()})
	}
	return v, s.done()
}

func (d DipMapInfo) line() string {
	w := new(strings.Builder)
	fmt.Fprintf(w, "# DIPMAP %d %d", d.DipoleType, len(d.Map))
	for _, dip := range d.Map {
		fmt.Fprintf(w, " %d %d", dip[0], dip[1])
	}
	return w.String()
}

// JetInfo is the per-event "# jet" section of the RS flavour.
type JetInfo struct {
	IBVJet1   int8
	IBVJet2   int8
	IBVFlReco int8
}

func parseJetInfo(args []string) (JetInfo, error) {
	s := newScanner(args)
	v := JetInfo{
		IBVJet1:   s.int8(),
		IBVJet2:   s.int8(),
		IBVFlReco: s.int8(),
	}
	return v, s.done()
}

func (j JetInfo) line() string {
	return fmt.Sprintf("# jet %d %d %d", j.IBVJet1, j.IBVJet2, j.IBVFlReco)
}

// Norm is the run-level "# NORM" section of the OneLoop flavour.
type Norm struct {
	NUnweighted uint64
	Alpha       float64
	AlphaErr    float64
}

func parseNorm(args []string) (Norm, error) {
	s := newScanner(args)
	v := Norm{
		NUnweighted: s.uint64(),
		Alpha:       s.float(),
		AlphaErr:    s.float(),
	}
	return v, s.done()
}

func (n Norm) line() string {
	return fmt.Sprintf("# NORM %d %s %s", n.NUnweighted, ftoa(n.Alpha), ftoa(n.AlphaErr))
}

// MeInfoRS is the per-event "# me" section of the RS flavour:
// matrix-element weight plus the per-dipole subtraction weights.
type MeInfoRS struct {
	Weight     float64
	MaxEW      uint8
	MaxQCD     uint8
	RealWeight float64
	Scale      float64

	DipoleIDs     []int8
	DipoleWeights []float64

	// DipoleMuRs holds the per-dipole renormalization scales when
	// the run stores them (nil otherwise).
	DipoleMuRs []float64
}

func parseMeInfoRS(args []string) (MeInfoRS, error) {
	s := newScanner(args)
	v := MeInfoRS{
		Weight:     s.float(),
		MaxEW:      s.uint8(),
		MaxQCD:     s.uint8(),
		RealWeight: s.float(),
		Scale:      s.float(),
	}
	var (
		irun = s.uint8()
		ndip = s.uint8()
	)
	for i := uint8(0); i < ndip && s.err == nil; i++ {
		v.DipoleIDs = append(v.DipoleIDs, s.int8())
	}
	for i := uint8(0); i < ndip && s.err == nil; i++ {
		v.DipoleWeights = append(v.DipoleWeights, s.float())
	}
	if irun > 0 {
		v.DipoleMuRs = make([]float64, 0, ndip)
		for i := uint8(0); i < ndip && s.err == nil; i++ {
			v.DipoleMuRs = append(v.DipoleMuRs, s.float())
		}
	}
	return v, s.done()
}

func (m MeInfoRS) line() string {
	irun := 0
	if m.DipoleMuRs != nil {
		irun = 1
	}
	w := new(strings.Builder)
	fmt.Fprintf(w, "# me %s %d %d %s %s %d %d",
		ftoa(m.Weight), m.MaxEW, m.MaxQCD,
		ftoa(m.RealWeight), ftoa(m.Scale),
		irun, len(m.DipoleIDs),
	)
	for _, id := range m.DipoleIDs {
		fmt.Fprintf(w, " %d", id)
	}
	for _, dw := range m.DipoleWeights {
		fmt.Fprintf(w, " %s", ftoa(dw))
	}
	for _, mu := range m.DipoleMuRs {
		fmt.Fprintf(w, " %s", ftoa(mu))
	}
	return w.String()
}

// MeInfoI is the per-event "# me" section of the I flavour:
// integrated-dipole weight and its scale-dependence coefficients.
type MeInfoI struct {
	MaxEW   uint8
	MaxQCD  uint8
	Weight  float64
	CoeffA  float64
	CoeffB  float64
	CoeffC  float64
	LogTerm int8
}

func parseMeInfoI(args []string) (MeInfoI, error) {
	s := newScanner(args)
	v := MeInfoI{
		MaxEW:   s.uint8(),
		MaxQCD:  s.uint8(),
		Weight:  s.float(),
		CoeffA:  s.float(),
		CoeffB:  s.float(),
		CoeffC:  s.float(),
		LogTerm: s.int8(),
	}
	return v, s.done()
}

func (m MeInfoI) line() string {
	return fmt.Sprintf("# me %d %d %s %s %s %s %d",
		m.MaxEW, m.MaxQCD,
		ftoa(m.Weight), ftoa(m.CoeffA), ftoa(m.CoeffB), ftoa(m.CoeffC),
		m.LogTerm,
	)
}

// KPWeights are the sixteen convolution weights of a KP event, one per
// beam (1,2), radiator class (A,B), parton type (gluon, quark) and
// logarithm power (L0, L1).
type KPWeights struct {
	A1gL0, A1gL1, A1qL0, A1qL1 float64
	B1gL0, B1gL1, B1qL0, B1qL1 float64
	A2gL0, A2gL1, A2qL0, A2qL1 float64
	B2gL0, B2gL1, B2qL0, B2qL1 float64
}

// MeInfoKP is the per-event "# me" section of the KP flavour.
type MeInfoKP struct {
	MaxEW   uint8
	MaxQCD  uint8
	Weight  float64
	X1Prime float64
	X2Prime float64
	W       KPWeights
}

func parseMeInfoKP(args []string) (MeInfoKP, error) {
	s := newScanner(args)
	v := MeInfoKP{
		MaxEW:   s.uint8(),
		MaxQCD:  s.uint8(),
		Weight:  s.float(),
		X1Prime: s.float(),
		X2Prime: s.float(),
		W: KPWeights{
			A1gL0: s.float(), A1gL1: s.float(), A1qL0: s.float(), A1qL1: s.float(),
			B1gL0: s.float(), B1gL1: s.float(), B1qL0: s.float(), B1qL1: s.float(),
			A2gL0: s.float(), A2gL1: s.float(), A2qL0: s.float(), A2qL1: s.float(),
			B2gL0: s.float(), B2gL1: s.float(), B2qL0: s.float(), B2qL1: s.float(),
		},
	}
	return v, s.done()
}

func (m MeInfoKP) line() string {
	w := new(strings.Builder)
	fmt.Fprintf(w, "# me %d %d %s %s %s",
		m.MaxEW, m.MaxQCD, ftoa(m.Weight), ftoa(m.X1Prime), ftoa(m.X2Prime),
	)
	for _, v := range []float64{
		m.W.A1gL0, m.W.A1gL1, m.W.A1qL0, m.W.A1qL1,
		m.W.B1gL0, m.W.B1gL1, m.W.B1qL0, m.W.B1qL1,
		m.W.A2gL0, m.W.A2gL1, m.W.A2qL0, m.W.A2qL1,
		m.W.B2gL0, m.W.B2gL1, m.W.B2qL0, m.W.B2qL1,
	} {
		fmt.Fprintf(w, " %s", ftoa(v))
	}
	return w.String()
}

// MeInfoOneLoop is the per-event "# me" section of the OneLoop
// flavour: Born and one-loop weights with the pole coefficients.
type MeInfoOneLoop struct {
	MaxEWLO    int64
	MaxQCDLO   int64
	WeightLO   float64
	MaxEWLoop  int64
	MaxQCDLoop int64
	WeightLoop float64
	CoeffA     float64
	CoeffB     float64
	CoeffC     float64
}

func parseMeInfoOneLoop(args []string) (MeInfoOneLoop, error) {
	s := newScanner(args)
	v := MeInfoOneLoop{
		MaxEWLO:    s.int64(),
		MaxQCDLO:   s.int64(),
		WeightLO:   s.float(),
		MaxEWLoop:  s.int64(),
		MaxQCDLoop: s.int64(),
		WeightLoop: s.float(),
		CoeffA:     s.float(),
		CoeffB:     s.float(),
		CoeffC:     s.float(),
	}
	return v, s.done()
}

func (m MeInfoOneLoop) line() string {
	return fmt.Sprintf("# me %d %d %s %d %d %s %s %s %s",
		m.MaxEWLO, m.MaxQCDLO, ftoa(m.WeightLO),
		m.MaxEWLoop, m.MaxQCDLoop, ftoa(m.WeightLoop),
		ftoa(m.CoeffA), ftoa(m.CoeffB), ftoa(m.CoeffC),
	)
}
