package extractor

import (
	"github.com/wudi/pdffeatures/fonts"
	"github.com/wudi/pdffeatures/ir/semantic"
	"github.com/wudi/pdffeatures/observability"
)

// FontData is the auxiliary payload of an embedded font: the decoded
// program, its metadata and the descriptor metrics. Pointer fields are nil
// when the descriptor entry is missing or not numeric.
type FontData struct {
	Stream   []byte
	Metadata []byte

	FontName     string
	FontFamily   string
	FontStretch  string
	FontWeight   *float64
	Flags        *int
	FontBBox     []float64
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
	CharSet      string

	// Program is set when the embedded program could be inspected.
	Program *fonts.ProgramInfo
}

func (e *Font) descriptorOf() *semantic.FontDescriptor {
	switch f := e.Font.(type) {
	case *semantic.SimpleFont:
		return f.Descriptor
	case *semantic.Type3Font:
		return f.Descriptor
	case *semantic.Type0Font:
		return f.Descriptor()
	case *semantic.CIDFont:
		return f.Descriptor
	}
	return nil
}

// Data returns the embedded program of the font's descriptor, or nil when
// there is none or it cannot be decoded. A metadata stream that fails to
// decode only leaves Metadata nil.
func (e *Font) Data() *FontData {
	if e.Font == nil {
		return nil
	}
	d := e.descriptorOf()
	if d == nil {
		return nil
	}
	program, key := d.EmbeddedProgram()
	if program == nil || program.Stream == nil {
		return nil
	}
	log := e.logger()
	stream, err := decodeStream(log, e.Filters, program.Stream, key)
	if err != nil {
		return nil
	}

	out := &FontData{
		Stream:       stream,
		FontName:     d.FontName,
		FontFamily:   textOf(d.FontFamily),
		FontStretch:  d.FontStretch,
		FontWeight:   d.FontWeight,
		Flags:        d.Flags,
		ItalicAngle:  d.ItalicAngle,
		Ascent:       d.Ascent,
		Descent:      d.Descent,
		Leading:      d.Leading,
		CapHeight:    d.CapHeight,
		XHeight:      d.XHeight,
		StemV:        d.StemV,
		StemH:        d.StemH,
		AvgWidth:     d.AvgWidth,
		MaxWidth:     d.MaxWidth,
		MissingWidth: d.MissingWidth,
		CharSet:      textOf(d.CharSet),
	}
	if b := d.FontBBox; b != nil {
		out.FontBBox = []float64{b.LLX, b.LLY, b.URX, b.URY}
	}
	if m := program.Metadata; m != nil && m.Stream != nil {
		if md, err := decodeStream(log, e.Filters, m.Stream, "font file metadata"); err == nil {
			out.Metadata = md
		}
	}
	if info, err := fonts.Inspect(stream); err == nil {
		out.Program = info
	} else {
		log.Debug("font program inspection failed", observability.String("key", key), observability.Error("error", err))
	}
	return out
}

func (e *Font) logger() observability.Logger {
	if e.Logger == nil {
		return observability.NopLogger{}
	}
	return e.Logger
}
