// Package parser provides interfaces for reading documentation sources into
// the IR.
package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// Parser is the interface for document parsers.
type Parser interface {
	// Parse reads the document and returns an IR representation.
	Parse() (*ir.Document, error)

	// Close releases any resources held by the parser.
	Close() error
}

// Format represents an input format.
type Format int

const (
	FormatUnknown  Format = iota
	FormatXMLDir          // a Doxygen XML output directory
	FormatIndex           // index.xml
	FormatCompound        // a single compound file
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatXMLDir:
		return "xml-dir"
	case FormatIndex:
		return "index"
	case FormatCompound:
		return "compound"
	default:
		return "unknown"
	}
}

// IndexFileName is the name of Doxygen's compound index.
const IndexFileName = "index.xml"

// DetectFormat detects the input format from the path.
func DetectFormat(path string) Format {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		if _, err := os.Stat(filepath.Join(path, IndexFileName)); err == nil {
			return FormatXMLDir
		}
		return FormatUnknown
	}

	switch {
	case strings.EqualFold(filepath.Base(path), IndexFileName):
		return FormatIndex
	case strings.EqualFold(filepath.Ext(path), ".xml"):
		return FormatCompound
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format from the root element.
func DetectFormatFromReader(r io.Reader) (Format, error) {
	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return FormatUnknown, fmt.Errorf("no root element")
		}
		if err != nil {
			return FormatUnknown, fmt.Errorf("failed to read root element: %w", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "doxygenindex":
			return FormatIndex, nil
		case "doxygen":
			return FormatCompound, nil
		default:
			return FormatUnknown, nil
		}
	}
}

// Options contains parser configuration options.
type Options struct {
	Logger *slog.Logger

	ImageDir     string   // joined to relative image names
	ImageType    string   // which <image type=".."> variant to use
	SuppressXRef []string // xrefsect categories to drop
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		ImageType:    "html",
		SuppressXRef: []string{"todo", "bug"},
	}
}
