// Package fonts inspects embedded font programs.
package fonts

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/image/font/sfnt"
)

// ErrUnknownFormat is returned for data that is not a recognised font program.
var ErrUnknownFormat = errors.New("unknown font program format")

type Format int

const (
	FormatUnknown Format = iota
	FormatTrueType
	FormatOpenType
	FormatCFF
	FormatType1
)

func (f Format) String() string {
	switch f {
	case FormatTrueType:
		return "TrueType"
	case FormatOpenType:
		return "OpenType"
	case FormatCFF:
		return "CFF"
	case FormatType1:
		return "Type1"
	}
	return "unknown"
}

// ProgramInfo summarises one font program.
type ProgramInfo struct {
	Format         Format
	PostScriptName string
	NumGlyphs      int
	UnitsPerEm     int
	ItalicAngle    float64
	// CIDKeyed is set for CFF programs whose top dict carries ROS.
	CIDKeyed bool
	// Tables lists sfnt table tags in tag order.
	Tables []string
}

// Detect guesses the program format from its leading bytes.
func Detect(data []byte) Format {
	switch {
	case len(data) >= 4 && (binary.BigEndian.Uint32(data) == 0x00010000 || bytes.HasPrefix(data, []byte("true"))):
		return FormatTrueType
	case bytes.HasPrefix(data, []byte("OTTO")):
		return FormatOpenType
	case len(data) >= 2 && data[0] == 0x80 && data[1] == 0x01, bytes.HasPrefix(data, []byte("%!")):
		return FormatType1
	case len(data) >= 4 && data[0] == 1 && data[2] >= 4:
		return FormatCFF
	}
	return FormatUnknown
}

// Inspect parses the decoded program bytes.
func Inspect(data []byte) (*ProgramInfo, error) {
	if len(data) == 0 {
		return nil, errors.New("font program is empty")
	}
	switch format := Detect(data); format {
	case FormatTrueType, FormatOpenType:
		return inspectSFNT(data, format)
	case FormatCFF:
		cff, err := parseCFF(data)
		if err != nil {
			return nil, fmt.Errorf("parse cff: %w", err)
		}
		info := &ProgramInfo{Format: FormatCFF, NumGlyphs: cff.glyphs, CIDKeyed: cff.cid}
		if len(cff.names) > 0 {
			info.PostScriptName = cff.names[0]
		}
		return info, nil
	case FormatType1:
		t1, err := parseType1(data)
		if err != nil {
			return nil, fmt.Errorf("parse type1: %w", err)
		}
		return &ProgramInfo{Format: FormatType1, PostScriptName: t1.fontName, ItalicAngle: t1.italicAngle, UnitsPerEm: 1000}, nil
	}
	return nil, ErrUnknownFormat
}

func inspectSFNT(data []byte, format Format) (*ProgramInfo, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse sfnt: %w", err)
	}
	info := &ProgramInfo{
		Format:     format,
		NumGlyphs:  f.NumGlyphs(),
		UnitsPerEm: int(f.UnitsPerEm()),
	}
	var buf sfnt.Buffer
	if ps, err := f.Name(&buf, sfnt.NameIDPostScript); err == nil {
		info.PostScriptName = ps
	}
	if post := f.PostTable(); post != nil {
		info.ItalicAngle = post.ItalicAngle
	}
	if tags, err := tableTags(data); err == nil {
		info.Tables = tags
	}
	return info, nil
}

// tableTags reads the sfnt table directory.
func tableTags(data []byte) ([]string, error) {
	if len(data) < 12 {
		return nil, errors.New("table directory truncated")
	}
	n := int(binary.BigEndian.Uint16(data[4:6]))
	if len(data) < 12+16*n {
		return nil, errors.New("table directory truncated")
	}
	tags := make([]string, 0, n)
	for i := 0; i < n; i++ {
		rec := data[12+16*i:]
		offset := binary.BigEndian.Uint32(rec[8:12])
		length := binary.BigEndian.Uint32(rec[12:16])
		if uint64(offset)+uint64(length) > uint64(len(data)) {
			return nil, fmt.Errorf("table %s out of bounds", rec[:4])
		}
		tags = append(tags, string(rec[:4]))
	}
	sort.Strings(tags)
	return tags, nil
}
