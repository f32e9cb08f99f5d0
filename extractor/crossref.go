package extractor

import (
	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/ir/semantic"
)

// CrossReferenceTable reports the two layout flags of a classic xref
// section, as computed by xref.Inspect.
type CrossReferenceTable struct {
	Info *semantic.XRefInfo
}

func (e *CrossReferenceTable) Category() features.Category {
	return features.CategoryCrossReferenceTable
}

func (e *CrossReferenceTable) Extract(c *features.Collection) *features.Node {
	if e.Info == nil {
		return nil
	}
	root := features.NewRoot("crossReferenceTable")
	root.SetAttribute("subsectionHeaderSpaceSeparated", features.FormatBool(e.Info.SubsectionHeaderSpaceSeparated))
	root.SetAttribute("xrefEOLMarkersComplyPDFA", features.FormatBool(e.Info.EOLMarkersComply))
	c.Add(features.CategoryCrossReferenceTable, root)
	return root
}
