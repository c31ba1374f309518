// Package doxygen reads Doxygen's XML output: the index.xml compound list
// and the per-compound files it points at.
package doxygen

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/canton7/Dox2Word-sub000/internal/parser"
)

// ErrNotFound is returned for a compound id the index does not list.
var ErrNotFound = errors.New("compound not found")

// Index represents index.xml.
type Index struct {
	XMLName   xml.Name   `xml:"doxygenindex"`
	Version   string     `xml:"version,attr"`
	Compounds []Compound `xml:"compound"`

	byID map[string]entry
}

// Compound is one <compound> entry of the index.
type Compound struct {
	RefID   string   `xml:"refid,attr"`
	Kind    string   `xml:"kind,attr"`
	Name    string   `xml:"name"`
	Members []Member `xml:"member"`
}

// Member is one <member> entry of a compound.
type Member struct {
	RefID string `xml:"refid,attr"`
	Kind  string `xml:"kind,attr"`
	Name  string `xml:"name"`
}

type entry struct {
	name  string
	owner *Compound
}

// documentedKinds are the compound kinds converted when no ids are given.
var documentedKinds = map[string]bool{
	"class":     true,
	"struct":    true,
	"union":     true,
	"interface": true,
	"namespace": true,
	"file":      true,
	"group":     true,
	"page":      true,
}

// ParseIndex parses index.xml data.
func ParseIndex(data []byte) (*Index, error) {
	var idx Index
	if err := xml.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	idx.build()
	return &idx, nil
}

// LoadIndex reads index.xml from a Doxygen XML output directory.
func LoadIndex(dir string) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(dir, parser.IndexFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	idx, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index: %w", err)
	}
	return idx, nil
}

func (idx *Index) build() {
	idx.byID = make(map[string]entry)
	for i := range idx.Compounds {
		c := &idx.Compounds[i]
		idx.byID[c.RefID] = entry{name: c.Name, owner: c}
		for _, m := range c.Members {
			// A member listed under several compounds (a function in its
			// file and its group) keeps the first owner.
			if _, seen := idx.byID[m.RefID]; !seen {
				idx.byID[m.RefID] = entry{name: m.Name, owner: c}
			}
		}
	}
}

// CompoundKind returns the kind of the compound refid names, or of the
// compound owning the member refid names.
func (idx *Index) CompoundKind(refid string) (string, bool) {
	e, ok := idx.byID[refid]
	if !ok {
		return "", false
	}
	return e.owner.Kind, true
}

// Name returns the name of a compound or member.
func (idx *Index) Name(refid string) (string, bool) {
	e, ok := idx.byID[refid]
	if !ok {
		return "", false
	}
	return e.name, true
}

// Lookup returns the compound with the given id.
func (idx *Index) Lookup(refid string) (*Compound, error) {
	e, ok := idx.byID[refid]
	if !ok || e.owner.RefID != refid {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, refid)
	}
	return e.owner, nil
}

// Documented returns the compounds converted by default, in index order.
func (idx *Index) Documented() []Compound {
	var out []Compound
	for _, c := range idx.Compounds {
		if documentedKinds[c.Kind] {
			out = append(out, c)
		}
	}
	return out
}

// CompoundPath returns the path of a compound's XML file.
func CompoundPath(dir, refid string) string {
	return filepath.Join(dir, refid+".xml")
}
