package media

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// Inspect fills in the format and pixel size of a local image. Remote images
// and vector formats are left as they are.
func Inspect(img *ir.ImageBlock) error {
	if strings.Contains(img.Path, "://") {
		return nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(img.Path), "."))
	if ext == "svg" {
		if _, err := os.Stat(img.Path); err != nil {
			return fmt.Errorf("image not found: %w", err)
		}
		img.Format = "svg"
		return nil
	}

	f, err := os.Open(img.Path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("decoding image header: %w", err)
	}
	img.Format = format
	img.SetDimensions(cfg.Width, cfg.Height)
	return nil
}
