package fonts

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	cffOpCharStrings = 17
	cffOpROS         = 1230
)

type cffFont struct {
	names  []string
	cid    bool
	glyphs int
}

type cffReader struct {
	data []byte
	pos  int
}

func (r *cffReader) index() ([][]byte, error) {
	if r.pos+2 > len(r.data) {
		return nil, errors.New("index count truncated")
	}
	count := int(binary.BigEndian.Uint16(r.data[r.pos:]))
	r.pos += 2
	if count == 0 {
		return nil, nil
	}
	if r.pos >= len(r.data) {
		return nil, errors.New("index offset size truncated")
	}
	offSize := int(r.data[r.pos])
	r.pos++
	if offSize < 1 || offSize > 4 {
		return nil, fmt.Errorf("invalid index offset size %d", offSize)
	}
	if r.pos+(count+1)*offSize > len(r.data) {
		return nil, errors.New("index offsets truncated")
	}
	offsets := make([]int, count+1)
	for i := range offsets {
		v := 0
		for _, b := range r.data[r.pos : r.pos+offSize] {
			v = v<<8 | int(b)
		}
		offsets[i] = v
		r.pos += offSize
	}
	base := r.pos - 1 // offsets are 1-based
	items := make([][]byte, count)
	for i := 0; i < count; i++ {
		start, end := base+offsets[i], base+offsets[i+1]
		if offsets[i] < 1 || start > end || end > len(r.data) {
			return nil, errors.New("invalid index offsets")
		}
		items[i] = r.data[start:end]
	}
	r.pos = base + offsets[count]
	return items, nil
}

// parseCFF reads the Name INDEX and the first Top DICT of a bare CFF program.
func parseCFF(data []byte) (*cffFont, error) {
	if len(data) < 4 {
		return nil, errors.New("header truncated")
	}
	r := &cffReader{data: data, pos: int(data[2])}
	names, err := r.index()
	if err != nil {
		return nil, fmt.Errorf("read name index: %w", err)
	}
	tops, err := r.index()
	if err != nil {
		return nil, fmt.Errorf("read top dict index: %w", err)
	}
	out := &cffFont{}
	for _, n := range names {
		out.names = append(out.names, string(n))
	}
	if len(tops) == 0 {
		return out, nil
	}
	ops, err := cffDict(tops[0])
	if err != nil {
		return nil, fmt.Errorf("parse top dict: %w", err)
	}
	_, out.cid = ops[cffOpROS]
	if cs, ok := ops[cffOpCharStrings]; ok && len(cs) == 1 && cs[0] > 0 && cs[0] < len(data) {
		sub := &cffReader{data: data, pos: cs[0]}
		if glyphs, err := sub.index(); err == nil {
			out.glyphs = len(glyphs)
		}
	}
	return out, nil
}

// cffDict maps each operator to its integer operands. Real operands are
// skipped.
func cffDict(data []byte) (map[int][]int, error) {
	ops := make(map[int][]int)
	var operands []int
	for i := 0; i < len(data); {
		b := data[i]
		switch {
		case b == 12:
			if i+1 >= len(data) {
				return nil, errors.New("escaped operator truncated")
			}
			ops[1200+int(data[i+1])] = operands
			operands = nil
			i += 2
		case b <= 21:
			ops[int(b)] = operands
			operands = nil
			i++
		case b == 28:
			if i+3 > len(data) {
				return nil, errors.New("shortint truncated")
			}
			operands = append(operands, int(int16(binary.BigEndian.Uint16(data[i+1:]))))
			i += 3
		case b == 29:
			if i+5 > len(data) {
				return nil, errors.New("longint truncated")
			}
			operands = append(operands, int(int32(binary.BigEndian.Uint32(data[i+1:]))))
			i += 5
		case b == 30:
			i++
			for i < len(data) {
				n := data[i]
				i++
				if n&0x0f == 0x0f || n>>4 == 0x0f {
					break
				}
			}
		case b >= 32 && b <= 246:
			operands = append(operands, int(b)-139)
			i++
		case b >= 247 && b <= 254:
			if i+2 > len(data) {
				return nil, errors.New("integer truncated")
			}
			v := (int(b)-247)*256 + int(data[i+1]) + 108
			if b >= 251 {
				v = -(int(b)-251)*256 - int(data[i+1]) - 108
			}
			operands = append(operands, v)
			i += 2
		default:
			i++
		}
	}
	return ops, nil
}
