package semantic

import "github.com/wudi/pdffeatures/ir/raw"

// ColorSpace is implemented by the color-space families below.
type ColorSpace interface {
	ColorSpaceName() string
	colorSpace()
}

// Tristimulus is a CIE XYZ triple.
type Tristimulus struct {
	X, Y, Z float64
}

// CIEDictionary holds the entries shared by CalGray, CalRGB and Lab.
type CIEDictionary struct {
	WhitePoint Tristimulus
	BlackPoint Tristimulus
}

type CalGray struct {
	CIEDictionary
	Gamma float64
}

func (*CalGray) ColorSpaceName() string { return "CalGray" }
func (*CalGray) colorSpace()            {}

// RGBGamma is the per-component gamma of a CalRGB space.
type RGBGamma struct {
	Red, Green, Blue float64
}

type CalRGB struct {
	CIEDictionary
	Gamma  RGBGamma
	Matrix []float64
}

func (*CalRGB) ColorSpaceName() string { return "CalRGB" }
func (*CalRGB) colorSpace()            {}

// Range is a closed numeric interval.
type Range struct {
	Min, Max float64
}

type Lab struct {
	CIEDictionary
	ARange Range
	BRange Range
}

func (*Lab) ColorSpaceName() string { return "Lab" }
func (*Lab) colorSpace()            {}

// ICCBased represents an ICC-based color space.
type ICCBased struct {
	Components int
}

func (*ICCBased) ColorSpaceName() string { return "ICCBased" }
func (*ICCBased) colorSpace()            {}

// Indexed keeps the raw array [/Indexed base hival lookup] so malformed
// shapes can be reported.
type Indexed struct {
	Object raw.Object
}

func (*Indexed) ColorSpaceName() string { return "Indexed" }
func (*Indexed) colorSpace()            {}

// Separation represents a Separation color space.
type Separation struct {
	ColorantName string
}

func (*Separation) ColorSpaceName() string { return "Separation" }
func (*Separation) colorSpace()            {}

// DeviceN represents a DeviceN color space. A nil Names slice means the
// name array was missing.
type DeviceN struct {
	Names []string
}

func (*DeviceN) ColorSpaceName() string { return "DeviceN" }
func (*DeviceN) colorSpace()            {}

// OtherColorSpace covers families reported by name only (DeviceGray,
// DeviceRGB, DeviceCMYK, Pattern, ...).
type OtherColorSpace struct {
	Name string
}

func (cs *OtherColorSpace) ColorSpaceName() string { return cs.Name }
func (*OtherColorSpace) colorSpace()               {}
