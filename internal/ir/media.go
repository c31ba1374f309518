package ir

// ImageBlock represents an image reference in the document.
type ImageBlock struct {
	Path    string `json:"path"`              // resolved file path
	Name    string `json:"name,omitempty"`    // name as written in the source
	Caption []Run  `json:"caption,omitempty"` // image caption
	Inline  bool   `json:"inline,omitempty"`  // placed within the text flow
	Width   int    `json:"width,omitempty"`   // width in pixels
	Height  int    `json:"height,omitempty"`  // height in pixels
	Format  string `json:"format,omitempty"`  // png, jpeg, gif, bmp, etc.
}

// NewImage creates a new image block with the given path.
func NewImage(path string) *ImageBlock {
	return &ImageBlock{
		Path: path,
	}
}

// SetDimensions sets the width and height of the image.
func (img *ImageBlock) SetDimensions(width, height int) {
	img.Width = width
	img.Height = height
}

// HasDimensions returns true if the image size is known.
func (img *ImageBlock) HasDimensions() bool {
	return img.Width > 0 && img.Height > 0
}

// DiagramEngine names the tool that renders a diagram's source.
type DiagramEngine string

const (
	DiagramDot      DiagramEngine = "dot"
	DiagramPlantUML DiagramEngine = "plantuml"
	DiagramMsc      DiagramEngine = "msc"
	DiagramDia      DiagramEngine = "dia"
)

// DiagramBlock carries unevaluated diagram source or a reference to a
// source file. RenderedPath is filled once an external renderer produced an
// image for it.
type DiagramBlock struct {
	Engine       DiagramEngine `json:"engine"`
	Source       string        `json:"source,omitempty"`
	File         string        `json:"file,omitempty"`
	Caption      []Run         `json:"caption,omitempty"`
	Inline       bool          `json:"inline,omitempty"`
	RenderedPath string        `json:"rendered_path,omitempty"`
}

// IsEmpty returns true if there is nothing to render.
func (d *DiagramBlock) IsEmpty() bool {
	return d.Source == "" && d.File == "" && d.RenderedPath == ""
}
