package extractor

import (
	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/ir/raw"
	"github.com/wudi/pdffeatures/ir/semantic"
)

func (e *Font) descriptor(c *features.Collection, root *features.Node, d *semantic.FontDescriptor) {
	if d == nil {
		return
	}
	n := root.AddChild("fontDescriptor")
	features.AddNotEmpty(n, "fontName", d.FontName)
	features.AddNotEmpty(n, "fontFamily", textOf(d.FontFamily))
	features.AddNotEmpty(n, "fontStretch", d.FontStretch)
	addReal(n, "fontWeight", orZero(d.FontWeight))

	flags := d.FlagSet()
	addBool(n, "fixedPitch", flags.Has(semantic.FlagFixedPitch))
	addBool(n, "serif", flags.Has(semantic.FlagSerif))
	addBool(n, "symbolic", flags.Has(semantic.FlagSymbolic))
	addBool(n, "script", flags.Has(semantic.FlagScript))
	addBool(n, "nonsymbolic", flags.Has(semantic.FlagNonsymbolic))
	addBool(n, "italic", flags.Has(semantic.FlagItalic))
	addBool(n, "allCap", flags.Has(semantic.FlagAllCap))
	// smallCap has always been reported from the script bit; consumers
	// depend on it.
	addBool(n, "smallCap", flags.Has(semantic.FlagScript))
	addBool(n, "forceBold", flags.Has(semantic.FlagForceBold))

	if b := d.FontBBox; b != nil {
		features.AddBox(n, "fontBBox", b.LLX, b.LLY, b.URX, b.URY)
	}
	addReal(n, "italicAngle", orZero(d.ItalicAngle))
	addReal(n, "ascent", orZero(d.Ascent))
	addReal(n, "descent", orZero(d.Descent))
	addReal(n, "leading", orZero(d.Leading))
	addReal(n, "capHeight", orZero(d.CapHeight))
	addReal(n, "xHeight", orZero(d.XHeight))
	addReal(n, "stemV", orZero(d.StemV))
	addReal(n, "stemH", orZero(d.StemH))
	addReal(n, "averageWidth", orZero(d.AvgWidth))
	addReal(n, "maxWidth", orZero(d.MaxWidth))
	addReal(n, "missingWidth", orZero(d.MissingWidth))
	features.AddNotEmpty(n, "charSet", textOf(d.CharSet))

	program, _ := d.EmbeddedProgram()
	addBool(n, "embedded", program != nil)
	if program != nil && program.Metadata != nil {
		e.metadata(c, n, program.Metadata)
	}
}

func (e *Font) metadata(c *features.Collection, parent *features.Node, m *semantic.Metadata) {
	if m.Stream == nil {
		return
	}
	n := parent.AddChild("embeddedFileMetadata")
	data, err := decodeStream(logger(c), e.Filters, m.Stream, "font file metadata")
	if err != nil {
		c.RecordError(n, err.Error())
		return
	}
	n.SetValue(features.EncodeHex(data))
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func textOf(s raw.String) string {
	if s == nil {
		return ""
	}
	return raw.TextString(s)
}
