package extractor

import (
	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/ir/semantic"
)

// ShadingPattern reports a type 2 pattern.
type ShadingPattern struct {
	Pattern       *semantic.ShadingPattern
	ID            string
	ShadingID     string
	GraphicsState string
}

func (e *ShadingPattern) Category() features.Category { return features.CategoryPattern }

func (e *ShadingPattern) Extract(c *features.Collection) *features.Node {
	if e.Pattern == nil {
		return nil
	}
	root := newRoot("pattern", e.ID)
	root.SetAttribute("type", "shading")
	features.LinkID(root, "shading", e.ShadingID)
	matrix := root.AddChild("matrix")
	for i, row := range e.Pattern.PatternMatrix().Rows() {
		for j, v := range row {
			el := matrix.AddChild("element")
			el.SetAttribute("row", features.FormatInt(int64(i+1)))
			el.SetAttribute("column", features.FormatInt(int64(j+1)))
			el.SetAttribute("value", features.FormatReal(v))
		}
	}
	features.LinkID(root, "graphicsState", e.GraphicsState)
	c.Add(features.CategoryPattern, root)
	return root
}
