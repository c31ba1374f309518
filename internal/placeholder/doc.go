package placeholder

import "strings"

// Doc is an in-memory paragraph → run → text tree. It backs plain-text
// templates and is handy for building trees by hand.
type Doc struct {
	Paras []*Para
}

// Para is a paragraph of runs.
type Para struct {
	Runs []*Run
}

// Run groups text segments that share formatting.
type Run struct {
	Texts []*Text
	para  *Para
}

// Text is a single segment.
type Text struct {
	Value string
	run   *Run
}

// NewDoc creates an empty document.
func NewDoc() *Doc {
	return &Doc{}
}

// ParseText builds a document with one single-run paragraph per line.
func ParseText(s string) *Doc {
	d := NewDoc()
	for _, line := range strings.Split(s, "\n") {
		p := d.AddParagraph()
		if line != "" {
			p.AddRun(line)
		}
	}
	return d
}

// AddParagraph appends an empty paragraph.
func (d *Doc) AddParagraph() *Para {
	p := &Para{}
	d.Paras = append(d.Paras, p)
	return p
}

// Paragraphs implements Tree.
func (d *Doc) Paragraphs() []Paragraph {
	out := make([]Paragraph, len(d.Paras))
	for i, p := range d.Paras {
		out[i] = p
	}
	return out
}

// String joins the paragraphs with newlines.
func (d *Doc) String() string {
	lines := make([]string, len(d.Paras))
	for i, p := range d.Paras {
		lines[i] = p.String()
	}
	return strings.Join(lines, "\n")
}

// AddRun appends a run holding one segment per text.
func (p *Para) AddRun(texts ...string) *Run {
	r := &Run{para: p}
	for _, t := range texts {
		r.Texts = append(r.Texts, &Text{Value: t, run: r})
	}
	p.Runs = append(p.Runs, r)
	return r
}

// Segments implements Paragraph.
func (p *Para) Segments() []Segment {
	var out []Segment
	for _, r := range p.Runs {
		for _, t := range r.Texts {
			out = append(out, t)
		}
	}
	return out
}

// String returns the visible text of the paragraph.
func (p *Para) String() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Texts {
			sb.WriteString(t.Value)
		}
	}
	return sb.String()
}

func (p *Para) removeRun(r *Run) {
	for i, cur := range p.Runs {
		if cur == r {
			p.Runs = append(p.Runs[:i], p.Runs[i+1:]...)
			return
		}
	}
}

// Text implements Segment.
func (t *Text) Text() string { return t.Value }

// SetText implements Segment.
func (t *Text) SetText(s string) { t.Value = s }

// Remove implements Segment.
func (t *Text) Remove() {
	r := t.run
	if r == nil {
		return
	}
	t.run = nil
	for i, cur := range r.Texts {
		if cur == t {
			r.Texts = append(r.Texts[:i], r.Texts[i+1:]...)
			break
		}
	}
	if len(r.Texts) == 0 && r.para != nil {
		r.para.removeRun(r)
		r.para = nil
	}
}
