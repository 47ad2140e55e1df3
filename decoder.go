// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lhe

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"go-hep.org/x/hep/fmom"
	"golang.org/x/xerrors"
)

const (
	rootTag  = "LesHouchesEvents"
	initTag  = "init"
	eventTag = "event"
)

// Decoder reads LHE data from an underlying stream, one event at a
// time. The file prolog (metadata blocks and the <init> run header) is
// consumed when the Decoder is created; events are then pulled with
// Decode until io.EOF.
//
// A Decoder holds a mutable cursor over its stream and is not safe for
// concurrent use. It never re-reads bytes of already decoded events.
type Decoder struct {
	r    *bufio.Reader
	line int  // 1-based number of the last line read
	done bool // closing root tag consumed
	err  error

	Version string  // value of the version attribute of the root tag
	Blocks  []Block // prolog metadata blocks, in file order
	Run     RunHeader
}

// NewDecoder creates a Decoder reading from r and consumes the file
// prolog up to and including the </init> tag.
func NewDecoder(r io.Reader) (*Decoder, error) {
	dec := &Decoder{r: bufio.NewReader(r)}
	dec.readProlog()
	switch dec.err.(type) {
	case nil:
		return dec, nil
	case *MalformedLineError, *MalformedNumberError, *MalformedStructureError:
		return nil, dec.err
	default:
		return nil, xerrors.Errorf("lhe: could not decode file header: %w", dec.err)
	}
}

// Decode reads the next event block into evt. It returns io.EOF once
// the closing </LesHouchesEvents> tag has been consumed. Any other
// error is terminal: subsequent calls return the same error, but
// events decoded by earlier calls remain valid.
func (dec *Decoder) Decode(evt *Event) error {
	if dec.done {
		return io.EOF
	}
	if dec.err != nil {
		return dec.err
	}

	line, ok := dec.nextLine()
	if !ok {
		if dec.err == io.EOF {
			dec.err = &MalformedStructureError{
				Line: dec.line, Tag: rootTag,
				Reason: "unexpected end of stream, tag not closed",
			}
			return dec.err
		}
		dec.err = xerrors.Errorf("lhe: could not read event block: %w", dec.err)
		return dec.err
	}

	switch txt := strings.TrimSpace(line); txt {
	case "</" + rootTag + ">":
		dec.done = true
		return io.EOF
	case "<" + eventTag + ">":
		dec.readEvent(evt)
		if dec.err != nil {
			return dec.err
		}
		return nil
	default:
		dec.err = &MalformedStructureError{
			Line: dec.line, Tag: tagName(txt),
			Reason: "unexpected content, want <event> or </" + rootTag + ">",
		}
		return dec.err
	}
}

func (dec *Decoder) readEvent(evt *Event) {
	line := dec.contentLine(eventTag)
	toks := dec.fields(RoleEvent, eventArity, line)
	if dec.err != nil {
		return
	}

	n := dec.pint(toks[0])
	evt.ProcID = dec.pint(toks[1])
	evt.Weight = dec.pfloat(toks[2])
	evt.Scale = dec.pfloat(toks[3])
	evt.AlphaQED = dec.pfloat(toks[4])
	evt.AlphaQCD = dec.pfloat(toks[5])
	if dec.err != nil {
		return
	}
	if n < 0 {
		dec.err = &MalformedStructureError{
			Line: dec.line, Tag: eventTag,
			Reason: "negative particle count",
		}
		return
	}

	evt.Particles = evt.Particles[:0]
	for i := int64(0); i < n; i++ {
		line = dec.contentLine(eventTag)
		if dec.err != nil {
			return
		}
		if strings.TrimSpace(line) == "</"+eventTag+">" {
			dec.err = &MalformedStructureError{
				Line: dec.line, Tag: eventTag,
				Reason: "tag closed before all declared particle lines",
			}
			return
		}
		var p Particle
		dec.readParticle(&p, line)
		if dec.err != nil {
			return
		}
		evt.Particles = append(evt.Particles, p)
	}

	evt.Extra = dec.trailer(eventTag)
}

func (dec *Decoder) readParticle(p *Particle, line string) {
	toks := dec.fields(RoleParticle, particleArity, line)
	if dec.err != nil {
		return
	}
	p.PDGID = PdgID(dec.pint(toks[0]))
	p.Status = dec.pint(toks[1])
	p.Mother1 = dec.pint(toks[2])
	p.Mother2 = dec.pint(toks[3])
	p.Color1 = dec.pint(toks[4])
	p.Color2 = dec.pint(toks[5])
	var (
		px = dec.pfloat(toks[6])
		py = dec.pfloat(toks[7])
		pz = dec.pfloat(toks[8])
		e  = dec.pfloat(toks[9])
	)
	p.P = fmom.NewPxPyPzE(px, py, pz, e)
	p.Mass = dec.pfloat(toks[10])
	p.Lifetime = dec.pfloat(toks[11])
	p.Spin = dec.pfloat(toks[12])
}

// readProlog consumes everything up to and including </init>: leading
// comments, the root tag, metadata blocks in any order and the run
// header.
func (dec *Decoder) readProlog() {
	// comments may precede the root tag.
	var open string
loop:
	for {
		line, ok := dec.nextLine()
		if !ok {
			dec.eofStructure(rootTag, "unexpected end of stream, missing root tag")
			return
		}
		txt := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(txt, "<!--"):
			dec.readComment(txt)
		case strings.HasPrefix(txt, "<"+rootTag):
			open = txt
			break loop
		default:
			dec.err = &MalformedStructureError{
				Line: dec.line, Tag: tagName(txt),
				Reason: "unexpected content, want <" + rootTag + ">",
			}
		}
		if dec.err != nil {
			return
		}
	}

	dec.Version = dec.version(open)

	for {
		if dec.err != nil {
			return
		}
		line, ok := dec.nextLine()
		if !ok {
			dec.eofStructure(initTag, "unexpected end of stream, missing <"+initTag+"> block")
			return
		}
		txt := strings.TrimSpace(line)
		switch {
		case txt == "<"+initTag+">":
			dec.readInit()
			return
		case strings.HasPrefix(txt, "<!--"):
			dec.readComment(txt)
		case strings.HasPrefix(txt, "<") && !strings.HasPrefix(txt, "</"):
			dec.readBlock(txt)
		default:
			dec.err = &MalformedStructureError{
				Line: dec.line, Tag: tagName(txt),
				Reason: "unexpected content in file prolog",
			}
		}
	}
}

func (dec *Decoder) readInit() {
	line := dec.contentLine(initTag)
	toks := dec.fields(RoleRun, runArity, line)
	if dec.err != nil {
		return
	}

	run := &dec.Run
	run.Beam1ID = PdgID(dec.pint(toks[0]))
	run.Beam2ID = PdgID(dec.pint(toks[1]))
	run.Beam1Energy = dec.pfloat(toks[2])
	run.Beam2Energy = dec.pfloat(toks[3])
	run.Beam1PDFGroup = dec.pint(toks[4])
	run.Beam2PDFGroup = dec.pint(toks[5])
	run.Beam1PDFSet = dec.pint(toks[6])
	run.Beam2PDFSet = dec.pint(toks[7])
	run.WeightStrategy = dec.pint(toks[8])
	nproc := dec.pint(toks[9])
	if dec.err != nil {
		return
	}
	if nproc < 0 {
		dec.err = &MalformedStructureError{
			Line: dec.line, Tag: initTag,
			Reason: "negative process count",
		}
		return
	}

	for i := int64(0); i < nproc; i++ {
		line = dec.contentLine(initTag)
		if dec.err != nil {
			return
		}
		if strings.TrimSpace(line) == "</"+initTag+">" {
			dec.err = &MalformedStructureError{
				Line: dec.line, Tag: initTag,
				Reason: "tag closed before all declared process lines",
			}
			return
		}
		toks = dec.fields(RoleProcess, procArity, line)
		if dec.err != nil {
			return
		}
		run.Procs = append(run.Procs, ProcInfo{
			XSect:     dec.pfloat(toks[0]),
			XSectErr:  dec.pfloat(toks[1]),
			MaxWeight: dec.pfloat(toks[2]),
			ProcID:    dec.pint(toks[3]),
		})
	}

	run.Extra = dec.trailer(initTag)
}

// trailer collects the free-form lines before the closing tag of the
// current block. Lines are whitespace-trimmed, blank lines dropped.
func (dec *Decoder) trailer(tag string) string {
	var lines []string
	for {
		line := dec.contentLine(tag)
		if dec.err != nil {
			return ""
		}
		txt := strings.TrimSpace(line)
		if txt == "</"+tag+">" {
			return strings.Join(lines, "\n")
		}
		lines = append(lines, txt)
	}
}

// readComment consumes a <!-- --> block whose opening line is txt.
func (dec *Decoder) readComment(txt string) {
	body := strings.TrimPrefix(txt, "<!--")
	if i := strings.Index(body, "-->"); i >= 0 {
		dec.addBlock(CommentTag, body[:i])
		return
	}
	lines := []string{body}
	for {
		line, ok := dec.nextLine()
		if !ok {
			dec.eofStructure(CommentTag, "unexpected end of stream, comment not closed")
			return
		}
		if i := strings.Index(line, "-->"); i >= 0 {
			lines = append(lines, line[:i])
			dec.addBlock(CommentTag, strings.Join(lines, "\n"))
			return
		}
		lines = append(lines, line)
	}
}

// readBlock consumes an opaque tagged metadata block (such as
// <header>) whose opening line is txt. Nested occurrences of the same
// tag are not supported: the first matching close tag ends the block.
func (dec *Decoder) readBlock(txt string) {
	tag := tagName(txt)
	if tag == "" {
		dec.err = &MalformedStructureError{
			Line: dec.line, Reason: "malformed tag " + strconv.Quote(txt),
		}
		return
	}
	var (
		opening = "<" + tag + ">"
		closing = "</" + tag + ">"
	)
	body := strings.TrimPrefix(txt, opening)
	if i := strings.Index(body, closing); i >= 0 {
		dec.addBlock(tag, body[:i])
		return
	}
	lines := []string{body}
	for {
		line, ok := dec.nextLine()
		if !ok {
			dec.eofStructure(tag, "unexpected end of stream, tag not closed")
			return
		}
		if strings.TrimSpace(line) == closing {
			dec.addBlock(tag, strings.Join(lines, "\n"))
			return
		}
		lines = append(lines, line)
	}
}

func (dec *Decoder) addBlock(tag, body string) {
	dec.Blocks = append(dec.Blocks, Block{Tag: tag, Body: strings.TrimSpace(body)})
}

// version extracts the version attribute from the root tag line.
func (dec *Decoder) version(txt string) string {
	rest := strings.TrimPrefix(txt, "<"+rootTag)
	rest = strings.TrimSpace(rest)
	if !strings.HasSuffix(rest, ">") {
		dec.err = &MalformedStructureError{
			Line: dec.line, Tag: rootTag,
			Reason: "malformed root tag",
		}
		return ""
	}
	rest = strings.TrimSpace(strings.TrimSuffix(rest, ">"))
	if !strings.HasPrefix(rest, `version="`) || !strings.HasSuffix(rest, `"`) {
		dec.err = &MalformedStructureError{
			Line: dec.line, Tag: rootTag,
			Reason: "missing version attribute",
		}
		return ""
	}
	rest = strings.TrimPrefix(rest, `version="`)
	return strings.TrimSuffix(rest, `"`)
}

// contentLine returns the next non-blank line, mapping end-of-stream
// to an unclosed-tag structure error.
func (dec *Decoder) contentLine(tag string) string {
	line, ok := dec.nextLine()
	if !ok {
		dec.eofStructure(tag, "unexpected end of stream, tag not closed")
		return ""
	}
	return line
}

func (dec *Decoder) eofStructure(tag, reason string) {
	if dec.err == io.EOF {
		dec.err = &MalformedStructureError{Line: dec.line, Tag: tag, Reason: reason}
	}
}

// nextLine returns the next non-blank line of the stream.
func (dec *Decoder) nextLine() (string, bool) {
	if dec.err != nil {
		return "", false
	}
	for {
		s, err := dec.r.ReadString('\n')
		if err != nil && !(err == io.EOF && s != "") {
			dec.err = err
			return "", false
		}
		dec.line++
		s = strings.TrimRight(s, "\r\n")
		if strings.TrimSpace(s) != "" {
			return s, true
		}
		if err == io.EOF {
			dec.err = io.EOF
			return "", false
		}
	}
}

// fields tokenizes a numeric line and enforces its arity.
func (dec *Decoder) fields(role LineRole, want int, line string) []string {
	if dec.err != nil {
		return nil
	}
	toks := strings.Fields(line)
	if len(toks) != want {
		dec.err = &MalformedLineError{Line: dec.line, Role: role, Got: len(toks), Want: want}
		return nil
	}
	return toks
}

func (dec *Decoder) pint(tok string) int64 {
	if dec.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		dec.err = &MalformedNumberError{Line: dec.line, Token: tok, Err: err}
		return 0
	}
	return v
}

func (dec *Decoder) pfloat(tok string) float64 {
	if dec.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		dec.err = &MalformedNumberError{Line: dec.line, Token: tok, Err: err}
		return 0
	}
	return v
}

// tagName extracts the name of the tag opening the given line, or ""
// if the line does not start with a tag.
func tagName(txt string) string {
	if !strings.HasPrefix(txt, "<") {
		return ""
	}
	end := strings.IndexAny(txt, "> \t")
	if end < 0 {
		return ""
	}
	return strings.TrimPrefix(txt[1:end], "/")
}
