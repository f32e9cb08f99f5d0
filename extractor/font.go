package extractor

import (
	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/filters"
	"github.com/wudi/pdffeatures/ir/raw"
	"github.com/wudi/pdffeatures/ir/semantic"
	"github.com/wudi/pdffeatures/observability"
)

// ResourceIDs are the ids of the objects named in a resource dictionary.
type ResourceIDs struct {
	ExtGStates  []string
	ColorSpaces []string
	Patterns    []string
	Shadings    []string
	XObjects    []string
	Fonts       []string
	Properties  []string
}

func (r ResourceIDs) empty() bool {
	for _, set := range [][]string{r.ExtGStates, r.ColorSpaces, r.Patterns, r.Shadings, r.XObjects, r.Fonts, r.Properties} {
		for _, id := range set {
			if id != "" {
				return false
			}
		}
	}
	return true
}

// Font reports a font dictionary. For a Type0 font Resources.Fonts holds
// the ids of its descendant fonts; for a Type3 font all seven sets describe
// the glyph procedures' resources.
type Font struct {
	Font      semantic.Font
	ID        string
	Resources ResourceIDs
	Filters   *filters.Pipeline
	// Logger receives Data's diagnostics; Extract logs through the collection.
	Logger observability.Logger
}

func (e *Font) Category() features.Category { return features.CategoryFont }

func (e *Font) Extract(c *features.Collection) *features.Node {
	if e.Font == nil {
		return nil
	}
	root := newRoot("font", e.ID)
	features.AddNotEmpty(root, "type", e.Font.FontSubtype())

	switch f := e.Font.(type) {
	case *semantic.Type0Font:
		features.AddNotEmpty(root, "baseFont", f.BaseFont)
		features.LinkIDSet(root, e.Resources.Fonts, "descendantFont", "descendantFonts")
		e.descriptor(c, root, f.Descriptor())
	case *semantic.SimpleFont:
		features.AddNotEmpty(root, "baseFont", f.BaseFont)
		simpleFont(root, f.FirstChar, f.LastChar, f.Widths, f.Encoding)
		e.descriptor(c, root, f.Descriptor)
	case *semantic.Type3Font:
		simpleFont(root, f.FirstChar, f.LastChar, f.Widths, f.Encoding)
		e.descriptor(c, root, f.Descriptor)
		b := f.FontBBox
		features.AddBox(root, "fontBBox", b.LLX, b.LLY, b.URX, b.URY)
		matrix := root.AddChild("fontMatrix")
		for i, row := range f.FontMatrix.Rows() {
			for j, v := range row {
				el := matrix.AddChild("element")
				el.SetAttribute("row", features.FormatInt(int64(i)))
				el.SetAttribute("column", features.FormatInt(int64(j)))
				el.SetAttribute("value", features.FormatReal(v))
			}
		}
		e.resources(root)
	case *semantic.CIDFont:
		features.AddNotEmpty(root, "baseFont", f.BaseFont)
		if dw, ok := f.DW.(raw.Number); ok && dw.IsInteger() {
			addInt(root, "defaultWidth", int(dw.Int()))
		}
		if info := f.CIDSystemInfo; info != nil {
			n := root.AddChild("cidSystemInfo")
			features.AddNotEmpty(n, "registry", info.Registry)
			features.AddNotEmpty(n, "ordering", info.Ordering)
			addInt(n, "supplement", info.Supplement)
		}
		e.descriptor(c, root, f.Descriptor)
	}

	c.Add(features.CategoryFont, root)
	return root
}

func simpleFont(root *features.Node, firstChar, lastChar *int, widths []int, encoding raw.Object) {
	// A negative FirstChar is treated as absent.
	if firstChar != nil && *firstChar < 0 {
		firstChar = nil
	}
	if firstChar != nil {
		addInt(root, "firstChar", *firstChar)
	}
	if lastChar != nil {
		addInt(root, "lastChar", *lastChar)
	}
	if widths != nil {
		fc := 0
		if firstChar != nil {
			fc = *firstChar
		}
		wn := root.AddChild("widths")
		for i, w := range widths {
			addInt(wn, "width", w).SetAttribute("char", features.FormatInt(int64(fc+i)))
		}
	}
	features.AddNotEmpty(root, "encoding", encodingName(encoding))
}

// encodingName returns a named encoding or the BaseEncoding of an encoding
// dictionary.
func encodingName(enc raw.Object) string {
	switch v := enc.(type) {
	case raw.Name:
		return v.Value()
	case raw.Dictionary:
		name, _ := raw.NameOf(v, "BaseEncoding")
		return name
	}
	return ""
}

func (e *Font) resources(root *features.Node) {
	r := e.Resources
	if r.empty() {
		return
	}
	n := root.AddChild("resources")
	features.LinkIDSet(n, r.ExtGStates, "graphicsState", "graphicsStates")
	features.LinkIDSet(n, r.ColorSpaces, "colorSpace", "colorSpaces")
	features.LinkIDSet(n, r.Patterns, "pattern", "patterns")
	features.LinkIDSet(n, r.Shadings, "shading", "shadings")
	features.LinkIDSet(n, r.XObjects, "xobject", "xobjects")
	features.LinkIDSet(n, r.Fonts, "font", "fonts")
	features.LinkIDSet(n, r.Properties, "propertiesDict", "propertiesDicts")
}
