package fonts

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strconv"
)

type type1Header struct {
	fontName    string
	italicAngle float64
}

// parseType1 scans the clear-text portion of a PFA or PFB program.
func parseType1(data []byte) (*type1Header, error) {
	clear := data
	if len(data) >= 2 && data[0] == 0x80 {
		if len(data) < 6 || data[1] != 1 {
			return nil, errors.New("invalid pfb segment header")
		}
		n := int(binary.LittleEndian.Uint32(data[2:6]))
		if 6+n > len(data) {
			return nil, errors.New("pfb segment truncated")
		}
		clear = data[6 : 6+n]
	}
	if i := bytes.Index(clear, []byte("eexec")); i >= 0 {
		clear = clear[:i]
	}
	h := &type1Header{}
	fields := bytes.Fields(clear)
	for i := 0; i+1 < len(fields); i++ {
		switch string(fields[i]) {
		case "/FontName":
			h.fontName = string(bytes.TrimPrefix(fields[i+1], []byte("/")))
		case "/ItalicAngle":
			h.italicAngle, _ = strconv.ParseFloat(string(fields[i+1]), 64)
		}
	}
	if h.fontName == "" {
		return nil, errors.New("FontName not found")
	}
	return h, nil
}
