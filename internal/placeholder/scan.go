package placeholder

import (
	"io"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Result summarizes a Replace pass.
type Result struct {
	// Replaced counts substituted markers.
	Replaced int
	// Missing lists mapped names whose marker was never found, sorted.
	Missing []string
	// Unmapped lists marker names found without a mapping, in document order.
	Unmapped []string
}

// match is what a handler decides for one complete marker.
type match struct {
	replace bool   // excise the marker and put text in its place
	text    string // replacement text
	stop    bool   // end the whole scan after this marker
}

type handler func(p Paragraph, name string) match

// Replace substitutes every marker whose name is mapped in values. Markers
// without a mapping are left byte-for-byte unchanged. Names are compared in
// Unicode NFC form.
func Replace(tree Tree, values map[string]string, logger *slog.Logger) Result {
	log := orDiscard(logger)

	normalized := make(map[string]string, len(values))
	keys := make(map[string]string, len(values))
	for k, v := range values {
		nk := normalize(k)
		normalized[nk] = v
		keys[nk] = k
	}

	var res Result
	found := make(map[string]bool, len(values))
	scan(tree, log, func(_ Paragraph, name string) match {
		key := normalize(name)
		text, ok := normalized[key]
		if !ok {
			log.Debug("placeholder has no value", "name", name)
			res.Unmapped = append(res.Unmapped, name)
			return match{}
		}
		found[key] = true
		res.Replaced++
		return match{replace: true, text: text}
	})

	for nk, k := range keys {
		if !found[nk] {
			res.Missing = append(res.Missing, k)
		}
	}
	sort.Strings(res.Missing)
	for _, k := range res.Missing {
		log.Warn("placeholder not found in template", "name", k)
	}
	return res
}

// FindAndRemove excises the first marker named name and returns the
// paragraph that held it. Scanning stops at that first match.
func FindAndRemove(tree Tree, name string, logger *slog.Logger) (Paragraph, bool) {
	log := orDiscard(logger)
	want := normalize(name)

	var owner Paragraph
	scan(tree, log, func(p Paragraph, got string) match {
		if normalize(got) != want {
			return match{}
		}
		owner = p
		return match{replace: true, stop: true}
	})

	if owner == nil {
		log.Warn("placeholder not found in template", "name", name)
		return nil, false
	}
	return owner, true
}

// scan walks every paragraph, stopping early when the handler asks to.
func scan(tree Tree, log *slog.Logger, h handler) {
	for _, p := range tree.Paragraphs() {
		if scanParagraph(p, log, h) {
			return
		}
	}
}

// scanner is the per-paragraph state machine. It is idle until a '<' is
// seen and then accumulates the name until a '>' completes it. A newer '<'
// abandons the marker being accumulated.
type scanner struct {
	segs []Segment
	log  *slog.Logger

	inside   bool
	startSeg int
	startOff int // byte offset of '<' in segs[startSeg]
	name     strings.Builder
}

// scanParagraph reports whether the handler stopped the scan.
func scanParagraph(p Paragraph, log *slog.Logger, h handler) bool {
	s := &scanner{segs: p.Segments(), log: log}

	for i := 0; i < len(s.segs); i++ {
		text := s.segs[i].Text()
		pos := 0
		// from is where the current segment starts contributing to the name.
		from := 0

		for {
			j := strings.IndexAny(text[pos:], "<>")
			if j < 0 {
				break
			}
			j += pos

			if text[j] == '<' {
				if s.inside {
					s.log.Debug("abandoning unterminated placeholder", "partial", s.name.String())
				}
				s.inside = true
				s.startSeg, s.startOff = i, j
				s.name.Reset()
				pos, from = j+1, j+1
				continue
			}

			if !s.inside {
				pos = j + 1
				continue
			}

			s.name.WriteString(text[from:j])
			s.inside = false
			m := h(p, s.name.String())
			if !m.replace {
				pos = j + 1
				continue
			}

			var removed bool
			text, pos, removed = s.splice(i, j, m.text)
			if m.stop {
				return true
			}
			if removed {
				break
			}
			from = pos
		}

		if s.inside {
			s.name.WriteString(text[from:])
		}
	}

	if s.inside {
		s.log.Warn("unterminated placeholder", "partial", s.name.String())
	}
	return false
}

// splice replaces the marker that ends at byte end of segment i with text.
// It returns the current text of segment i, the offset to resume scanning
// at, and whether segment i was removed.
func (s *scanner) splice(i, end int, text string) (string, int, bool) {
	cur := s.segs[i].Text()

	if s.startSeg == i {
		updated := cur[:s.startOff] + text + cur[end+1:]
		if updated == "" {
			s.segs[i].Remove()
			return "", 0, true
		}
		s.segs[i].SetText(updated)
		return updated, s.startOff + len(text), false
	}

	start := s.segs[s.startSeg]
	head := start.Text()[:s.startOff] + text
	if head == "" {
		start.Remove()
	} else {
		start.SetText(head)
	}
	for k := s.startSeg + 1; k < i; k++ {
		s.segs[k].Remove()
	}

	tail := cur[end+1:]
	if tail == "" {
		s.segs[i].Remove()
		return "", 0, true
	}
	s.segs[i].SetText(tail)
	return tail, 0, false
}

func normalize(name string) string {
	return norm.NFC.String(name)
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
