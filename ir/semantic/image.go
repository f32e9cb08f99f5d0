package semantic

// ImageXObject is an image XObject dictionary. Related objects (color
// space, masks, alternates) are linked by id, not held here.
type ImageXObject struct {
	Width            int
	Height           int
	BitsPerComponent *int
	ImageMask        bool
	Interpolate      bool
	Intent           string
	Filters          []string
}
