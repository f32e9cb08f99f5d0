// Package semantic is the resolved object graph the feature extractors read.
//
// An external parser builds these values; identifiers of related objects are
// resolved separately and handed to the extractors as strings. Variant sets
// (color spaces, fonts) are sealed interfaces so that every implementation
// lives in this package.
package semantic

import "github.com/wudi/pdffeatures/ir/raw"

// Rectangle represents a PDF rectangle.
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

// Matrix is a PDF transformation matrix [a b c d e f].
type Matrix [6]float64

// IdentityMatrix is the default pattern and font-space matrix.
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// Rows expands m into its 3x3 form and returns the two significant columns
// of each row: [[a b] [c d] [e f]].
func (m Matrix) Rows() [3][2]float64 {
	return [3][2]float64{{m[0], m[1]}, {m[2], m[3]}, {m[4], m[5]}}
}

// Metadata is a metadata stream attached to another object.
type Metadata struct {
	Stream raw.Stream
}

// XRefInfo records the layout facts of a classic cross-reference section.
type XRefInfo struct {
	SubsectionHeaderSpaceSeparated bool
	EOLMarkersComply               bool
}

// GraphicsStateSave is one q operator together with the depth of the
// graphics-state stack after it was applied.
type GraphicsStateSave struct {
	NestingLevel int
	Operands     []raw.Object
}
