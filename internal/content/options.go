package content

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// Resolver looks up the compound a Doxygen reference id belongs to.
type Resolver interface {
	// CompoundKind returns the kind (class, file, dir, ...) of the compound
	// identified by refid.
	CompoundKind(refid string) (kind string, ok bool)
}

// Options contains content builder configuration.
type Options struct {
	Logger   *slog.Logger
	Resolver Resolver

	// ImageDir is joined to relative image names.
	ImageDir string
	// ImageType selects which of Doxygen's per-output <image type="..">
	// variants is used. Images of other types are skipped.
	ImageType string
	// SuppressXRef lists xrefsect categories (todo, bug, ...) to drop.
	SuppressXRef []string
}

// DefaultOptions returns default builder options.
func DefaultOptions() Options {
	return Options{
		ImageType:    "html",
		SuppressXRef: []string{"todo", "bug"},
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}

func (o Options) suppressed(category string) bool {
	for _, s := range o.SuppressXRef {
		if strings.EqualFold(s, category) {
			return true
		}
	}
	return false
}

func (o Options) imagePath(name string) string {
	if o.ImageDir == "" || filepath.IsAbs(name) || strings.Contains(name, "://") {
		return name
	}
	return filepath.Join(o.ImageDir, name)
}

func (o Options) fileLike(refid string) (fileLike, known bool) {
	if o.Resolver == nil {
		return false, false
	}
	kind, ok := o.Resolver.CompoundKind(refid)
	if !ok {
		return false, false
	}
	return kind == "file" || kind == "dir", true
}
