// Package xref inspects the layout of classic cross-reference sections.
package xref

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wudi/pdffeatures/ir/semantic"
)

var (
	ErrNoStartXRef = errors.New("startxref not found")
	ErrNotTable    = errors.New("xref keyword not found at offset")
)

// Subsection is one "first count" run of a classic table.
type Subsection struct {
	First int
	Count int
}

// Section is the layout of one classic xref section.
type Section struct {
	Offset      int64
	Subsections []Subsection
	Info        semantic.XRefInfo
}

// StartXRef returns the offset recorded after the last startxref keyword.
func StartXRef(data []byte) (int64, error) {
	idx := bytes.LastIndex(data, []byte("startxref"))
	if idx < 0 {
		return 0, ErrNoStartXRef
	}
	for _, field := range strings.Fields(string(data[idx+len("startxref"):])) {
		val, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse startxref: %w", err)
		}
		if val < 0 || val >= int64(len(data)) {
			return 0, fmt.Errorf("xref offset out of range: %d", val)
		}
		return val, nil
	}
	return 0, ErrNoStartXRef
}

// Inspect reads the classic table starting at offset and reports whether
// its subsection headers are separated by a single space and whether every
// entry is 20 bytes long with a two byte end-of-line marker.
func Inspect(data []byte, offset int64) (*Section, error) {
	if offset < 0 || offset >= int64(len(data)) {
		return nil, fmt.Errorf("xref offset out of range: %d", offset)
	}
	l := &lines{data: data, pos: int(offset)}
	first, _, ok := l.next()
	if !ok || strings.TrimSpace(string(first)) != "xref" {
		return nil, ErrNotTable
	}

	sec := &Section{
		Offset: offset,
		Info: semantic.XRefInfo{
			SubsectionHeaderSpaceSeparated: true,
			EOLMarkersComply:               true,
		},
	}
	for {
		line, _, ok := l.next()
		if !ok {
			return nil, errors.New("unexpected end of xref section")
		}
		text := strings.TrimSpace(string(line))
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "trailer") {
			break
		}
		sub, singleSpace, err := parseHeader(text)
		if err != nil {
			return nil, err
		}
		if !singleSpace {
			sec.Info.SubsectionHeaderSpaceSeparated = false
		}
		sec.Subsections = append(sec.Subsections, sub)

		for i := 0; i < sub.Count; i++ {
			entry, eol, ok := l.next()
			if !ok {
				return nil, errors.New("unexpected end of xref section")
			}
			if len(strings.Fields(string(entry))) < 3 {
				return nil, fmt.Errorf("invalid xref entry: %q", entry)
			}
			if !entryComplies(entry, eol) {
				sec.Info.EOLMarkersComply = false
			}
		}
	}
	return sec, nil
}

func parseHeader(text string) (Subsection, bool, error) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return Subsection{}, false, fmt.Errorf("invalid xref subsection header: %q", text)
	}
	first, err := strconv.Atoi(parts[0])
	if err != nil {
		return Subsection{}, false, fmt.Errorf("parse xref start: %w", err)
	}
	count, err := strconv.Atoi(parts[1])
	if err != nil {
		return Subsection{}, false, fmt.Errorf("parse xref count: %w", err)
	}
	single := text == parts[0]+" "+parts[1]
	return Subsection{First: first, Count: count}, single, nil
}

// entryComplies accepts "nnnnnnnnnn ggggg n" followed by SP CR, SP LF or CR LF.
func entryComplies(content, eol []byte) bool {
	switch len(content) {
	case 19:
		return content[18] == ' ' && len(eol) == 1
	case 18:
		return bytes.Equal(eol, []byte("\r\n"))
	}
	return false
}

// lines splits data on CR, LF or CR LF and keeps the marker of each line.
type lines struct {
	data []byte
	pos  int
}

func (l *lines) next() (content, eol []byte, ok bool) {
	if l.pos >= len(l.data) {
		return nil, nil, false
	}
	start := l.pos
	for l.pos < len(l.data) && l.data[l.pos] != '\r' && l.data[l.pos] != '\n' {
		l.pos++
	}
	content = l.data[start:l.pos]
	eolStart := l.pos
	if l.pos < len(l.data) && l.data[l.pos] == '\r' {
		l.pos++
	}
	if l.pos < len(l.data) && l.data[l.pos] == '\n' {
		l.pos++
	}
	return content, l.data[eolStart:l.pos], true
}
