package extractor

import (
	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/ir/semantic"
)

// GraphicsStateSave reports one q operator.
type GraphicsStateSave struct {
	Save *semantic.GraphicsStateSave
}

func (e *GraphicsStateSave) Category() features.Category { return features.CategoryGraphicsStateSave }

func (e *GraphicsStateSave) Extract(c *features.Collection) *features.Node {
	if e.Save == nil {
		return nil
	}
	root := features.NewRoot("graphicsStateSave")
	root.SetAttribute("nestingLevel", features.FormatInt(int64(e.Save.NestingLevel)))
	c.Add(features.CategoryGraphicsStateSave, root)
	return root
}
