package doxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoCompound is returned when a compound file has no <compounddef>.
var ErrNoCompound = errors.New("no compounddef element")

// LoadCompound reads a Doxygen compound file (<doxygen><compounddef ..>)
// and returns its compounddef element.
func LoadCompound(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if root.Name != "doxygen" {
		return nil, fmt.Errorf("%s: unexpected root element <%s>", path, root.Name)
	}
	def := root.Child("compounddef")
	if def == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoCompound)
	}
	return def, nil
}

// Decode reads one XML document and returns its root element as a Node tree.
func Decode(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, errors.New("no root element")
		}
		if err != nil {
			return nil, fmt.Errorf("XML parse error: %w", err)
		}
		if start, ok := token.(xml.StartElement); ok {
			return DecodeElement(decoder, start)
		}
	}
}

// DecodeString is Decode over a string, convenient for fragments.
func DecodeString(s string) (*Node, error) {
	return Decode(strings.NewReader(s))
}

// DecodeElement decodes the element opened by start, consuming tokens up to
// and including its end element.
func DecodeElement(decoder *xml.Decoder, start xml.StartElement) (*Node, error) {
	node := &Node{
		Kind: KindOf(start.Name.Local),
		Name: start.Name.Local,
	}
	if len(start.Attr) > 0 {
		node.Attrs = make(map[string]string, len(start.Attr))
		for _, attr := range start.Attr {
			node.Attrs[attr.Name.Local] = attr.Value
		}
	}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of document inside <%s>", node.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("XML parse error: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			child, err := DecodeElement(decoder, t)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)

		case xml.CharData:
			text := string(t)
			if node.Kind.blockOnly() && strings.TrimSpace(text) == "" {
				continue
			}
			// Adjacent character data (split around comments or CDATA) joins up.
			if n := len(node.Children); n > 0 && node.Children[n-1].Kind == KindText {
				node.Children[n-1].Text += text
				continue
			}
			node.Children = append(node.Children, NewText(text))

		case xml.EndElement:
			return node, nil
		}
	}
}
