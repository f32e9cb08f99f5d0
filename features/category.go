package features

import "fmt"

// Category classifies feature trees inside a Collection.
type Category int

const (
	CategoryColorSpace Category = iota
	CategoryFont
	CategoryPattern
	CategoryDocumentSecurity
	CategoryCrossReferenceTable
	CategoryGraphicsStateSave
	CategoryImageXObject
	CategorySoftMaskImage

	numCategories
)

var categoryNames = [numCategories]string{
	CategoryColorSpace:          "colorSpace",
	CategoryFont:                "font",
	CategoryPattern:             "pattern",
	CategoryDocumentSecurity:    "documentSecurity",
	CategoryCrossReferenceTable: "crossReferenceTable",
	CategoryGraphicsStateSave:   "graphicsStateSave",
	CategoryImageXObject:        "imageXObject",
	CategorySoftMaskImage:       "softMaskImage",
}

func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool { return c >= 0 && c < numCategories }

// ParseCategory is the inverse of Category.String.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown feature category %q", s)
}

// AllCategories lists every category in declaration order.
func AllCategories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}
