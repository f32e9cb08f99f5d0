package extractor

import (
	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/filters"
	"github.com/wudi/pdffeatures/ir/raw"
	"github.com/wudi/pdffeatures/ir/semantic"
)

const (
	errIndexedHival      = "Indexed color space has no element hival or hival is not a number"
	errIndexedLookupType = "Indexed color space has element lookup but it is not a String or a stream"
	errIndexedNoLookup   = "Indexed color space has no element lookup"
	errIndexedNotAnArray = "Indexed color space is not an array"
)

// ColorSpace reports one color space. AlternateID names the alternate
// space of ICCBased, Separation and DeviceN spaces and the base space of an
// Indexed space.
type ColorSpace struct {
	Space        semantic.ColorSpace
	ID           string
	AlternateID  string
	ICCProfileID string
	Filters      *filters.Pipeline
}

func (e *ColorSpace) Category() features.Category { return features.CategoryColorSpace }

func (e *ColorSpace) Extract(c *features.Collection) *features.Node {
	if e.Space == nil {
		return nil
	}
	root := newRoot("colorSpace", e.ID)
	root.SetAttribute("family", e.Space.ColorSpaceName())

	switch cs := e.Space.(type) {
	case *semantic.CalGray:
		cieDictionary(root, cs.CIEDictionary)
		addReal(root, "gamma", cs.Gamma)
	case *semantic.CalRGB:
		cieDictionary(root, cs.CIEDictionary)
		gamma := root.AddChild("gamma")
		gamma.SetAttribute("red", features.FormatReal(cs.Gamma.Red))
		gamma.SetAttribute("green", features.FormatReal(cs.Gamma.Green))
		gamma.SetAttribute("blue", features.FormatReal(cs.Gamma.Blue))
		matrix := root.AddChild("matrix")
		for i, v := range cs.Matrix {
			el := matrix.AddChild("element")
			el.SetAttribute("number", features.FormatInt(int64(i)))
			el.SetAttribute("value", features.FormatReal(v))
		}
	case *semantic.Lab:
		cieDictionary(root, cs.CIEDictionary)
		rng := root.AddChild("range")
		rng.SetAttribute("aMin", features.FormatReal(cs.ARange.Min))
		rng.SetAttribute("aMax", features.FormatReal(cs.ARange.Max))
		rng.SetAttribute("bMin", features.FormatReal(cs.BRange.Min))
		rng.SetAttribute("bMax", features.FormatReal(cs.BRange.Max))
	case *semantic.ICCBased:
		features.LinkID(root, "alternate", e.AlternateID)
		addInt(root, "components", cs.Components)
		features.LinkID(root, "iccProfile", e.ICCProfileID)
	case *semantic.Indexed:
		e.indexed(c, root, cs)
	case *semantic.Separation:
		features.LinkID(root, "alternate", e.AlternateID)
		features.AddNotEmpty(root, "colorantName", cs.ColorantName)
	case *semantic.DeviceN:
		features.LinkID(root, "alternate", e.AlternateID)
		if cs.Names != nil {
			names := root.AddChild("colorantNames")
			for _, n := range cs.Names {
				features.AddNotEmpty(names, "colorantName", n)
			}
		}
	}

	c.Add(features.CategoryColorSpace, root)
	return root
}

func cieDictionary(root *features.Node, d semantic.CIEDictionary) {
	tristimulus(root.AddChild("whitePoint"), d.WhitePoint)
	tristimulus(root.AddChild("blackPoint"), d.BlackPoint)
}

func tristimulus(n *features.Node, t semantic.Tristimulus) {
	n.SetAttribute("x", features.FormatReal(t.X))
	n.SetAttribute("y", features.FormatReal(t.Y))
	n.SetAttribute("z", features.FormatReal(t.Z))
}

// indexed reads [/Indexed base hival lookup] straight from the raw array.
func (e *ColorSpace) indexed(c *features.Collection, root *features.Node, cs *semantic.Indexed) {
	features.LinkID(root, "base", e.AlternateID)

	arr, ok := cs.Object.(raw.Array)
	if !ok {
		c.RecordError(root, errIndexedNotAnArray)
		return
	}

	hival := root.AddChild("hival")
	if el, ok := arr.Get(2); ok {
		if n, isNum := el.(raw.Number); isNum {
			hival.SetValue(features.FormatInt(n.Int()))
		} else {
			c.RecordError(hival, errIndexedHival)
		}
	} else {
		c.RecordError(hival, errIndexedHival)
	}

	lookup := root.AddChild("lookup")
	el, ok := arr.Get(3)
	if !ok {
		c.RecordError(lookup, errIndexedNoLookup)
		return
	}
	var data []byte
	switch v := el.(type) {
	case raw.String:
		data = v.Value()
	case raw.Stream:
		decoded, err := decodeStream(logger(c), e.Filters, v, "indexed lookup")
		if err != nil {
			c.RecordError(lookup, err.Error())
			return
		}
		data = decoded
	default:
		c.RecordError(lookup, errIndexedLookupType)
		return
	}
	lookup.SetValue(features.EncodeHex(data))
}
