package semantic

import "github.com/wudi/pdffeatures/ir/raw"

// Font is implemented by every font-like dictionary: simple fonts, Type3,
// Type0 and bare CID fonts.
type Font interface {
	FontSubtype() string
	font()
}

// SimpleFont covers Type1, MMType1 and TrueType fonts.
type SimpleFont struct {
	Subtype    string
	BaseFont   string
	FirstChar  *int
	LastChar   *int
	Widths     []int
	Encoding   raw.Object // name or encoding dictionary
	Descriptor *FontDescriptor
}

func (f *SimpleFont) FontSubtype() string { return f.Subtype }
func (*SimpleFont) font()                 {}

// Type3Font is a simple font whose glyphs are content streams.
type Type3Font struct {
	FirstChar  *int
	LastChar   *int
	Widths     []int
	Encoding   raw.Object
	Descriptor *FontDescriptor
	FontBBox   Rectangle
	FontMatrix Matrix
}

func (*Type3Font) FontSubtype() string { return "Type3" }
func (*Type3Font) font()               {}

// Type0Font is a composite font with a single descendant.
type Type0Font struct {
	BaseFont   string
	Descendant *CIDFont
}

func (*Type0Font) FontSubtype() string { return "Type0" }
func (*Type0Font) font()               {}

// Descriptor returns the descendant's descriptor, if any.
func (f *Type0Font) Descriptor() *FontDescriptor {
	if f.Descendant == nil {
		return nil
	}
	return f.Descendant.Descriptor
}

// CIDSystemInfo describes the registry/ordering of a CID font.
type CIDSystemInfo struct {
	Registry   string
	Ordering   string
	Supplement int
}

// CIDFont is a CIDFontType0 or CIDFontType2 dictionary.
type CIDFont struct {
	Subtype       string
	BaseFont      string
	DW            raw.Object
	CIDSystemInfo *CIDSystemInfo
	Descriptor    *FontDescriptor
}

func (f *CIDFont) FontSubtype() string { return f.Subtype }
func (*CIDFont) font()                 {}

// FontFlags is the /Flags bit set of a font descriptor.
type FontFlags int

const (
	FlagFixedPitch  FontFlags = 1 << 0
	FlagSerif       FontFlags = 1 << 1
	FlagSymbolic    FontFlags = 1 << 2
	FlagScript      FontFlags = 1 << 3
	FlagNonsymbolic FontFlags = 1 << 5
	FlagItalic      FontFlags = 1 << 6
	FlagAllCap      FontFlags = 1 << 16
	FlagSmallCap    FontFlags = 1 << 17
	FlagForceBold   FontFlags = 1 << 18
)

func (f FontFlags) Has(flag FontFlags) bool { return f&flag != 0 }

// FontProgram is an embedded font file stream.
type FontProgram struct {
	Stream   raw.Stream
	Subtype  string // FontFile3 subtype, e.g. Type1C or OpenType
	Metadata *Metadata
}

// FontDescriptor carries metrics and font file embedding details. Numeric
// entries are nil when missing from the dictionary.
type FontDescriptor struct {
	FontName     string
	FontFamily   raw.String
	FontStretch  string
	FontWeight   *float64
	Flags        *int
	FontBBox     *Rectangle
	ItalicAngle  *float64
	Ascent       *float64
	Descent      *float64
	Leading      *float64
	CapHeight    *float64
	XHeight      *float64
	StemV        *float64
	StemH        *float64
	AvgWidth     *float64
	MaxWidth     *float64
	MissingWidth *float64
	CharSet      raw.String

	FontFile  *FontProgram // Type 1
	FontFile2 *FontProgram // TrueType
	FontFile3 *FontProgram // CFF or OpenType
}

// FlagSet returns the descriptor flags, zero when absent.
func (d *FontDescriptor) FlagSet() FontFlags {
	if d.Flags == nil {
		return 0
	}
	return FontFlags(*d.Flags)
}

// EmbeddedProgram returns the first present of FontFile, FontFile2 and
// FontFile3 together with its key.
func (d *FontDescriptor) EmbeddedProgram() (*FontProgram, string) {
	switch {
	case d.FontFile != nil:
		return d.FontFile, "FontFile"
	case d.FontFile2 != nil:
		return d.FontFile2, "FontFile2"
	case d.FontFile3 != nil:
		return d.FontFile3, "FontFile3"
	}
	return nil, ""
}
