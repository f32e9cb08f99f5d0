package contentstream

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/wudi/pdffeatures/ir/raw"
)

var errUnterminated = errors.New("unterminated token")

type tokenKind int

const (
	tokenOperand tokenKind = iota
	tokenOperator
	tokenArrayEnd
	tokenDictEnd
)

type token struct {
	kind tokenKind
	obj  raw.Object
	op   string
}

// lexer splits content stream bytes into operands and operators.
type lexer struct {
	data []byte
	pos  int
}

func isWhite(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if isWhite(c) {
			l.pos++
			continue
		}
		if c == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
			continue
		}
		return
	}
}

// next returns the next token, or ok=false at end of input.
func (l *lexer) next() (token, bool, error) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return token{}, false, nil
	}
	c := l.data[l.pos]
	switch {
	case c == '(':
		s, err := l.literal()
		return token{kind: tokenOperand, obj: s}, true, err
	case c == '<' && l.peek(1) == '<':
		l.pos += 2
		d, err := l.dict()
		return token{kind: tokenOperand, obj: d}, true, err
	case c == '<':
		s, err := l.hex()
		return token{kind: tokenOperand, obj: s}, true, err
	case c == '>' && l.peek(1) == '>':
		l.pos += 2
		return token{kind: tokenDictEnd}, true, nil
	case c == '[':
		l.pos++
		a, err := l.array()
		return token{kind: tokenOperand, obj: a}, true, err
	case c == ']':
		l.pos++
		return token{kind: tokenArrayEnd}, true, nil
	case c == '/':
		l.pos++
		return token{kind: tokenOperand, obj: raw.NameLiteral(string(l.regular()))}, true, nil
	case isDelim(c):
		// stray ')', '>', '{' or '}'
		l.pos++
		return token{kind: tokenOperator, op: string(c)}, true, nil
	}
	word := l.regular()
	if n, ok := number(word); ok {
		return token{kind: tokenOperand, obj: n}, true, nil
	}
	switch string(word) {
	case "true":
		return token{kind: tokenOperand, obj: raw.Bool(true)}, true, nil
	case "false":
		return token{kind: tokenOperand, obj: raw.Bool(false)}, true, nil
	case "null":
		return token{kind: tokenOperand, obj: raw.NullObj{}}, true, nil
	}
	return token{kind: tokenOperator, op: string(word)}, true, nil
}

func (l *lexer) peek(off int) byte {
	if l.pos+off < len(l.data) {
		return l.data[l.pos+off]
	}
	return 0
}

func (l *lexer) regular() []byte {
	start := l.pos
	for l.pos < len(l.data) && !isWhite(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	return l.data[start:l.pos]
}

func number(word []byte) (raw.Object, bool) {
	if len(word) == 0 {
		return nil, false
	}
	if i, err := strconv.ParseInt(string(word), 10, 64); err == nil {
		return raw.NumberInt(i), true
	}
	if f, err := strconv.ParseFloat(string(word), 64); err == nil {
		return raw.NumberFloat(f), true
	}
	return nil, false
}

func (l *lexer) literal() (raw.Object, error) {
	l.pos++ // (
	var out []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '\\':
			if l.pos < len(l.data) {
				out = append(out, unescape(l.data[l.pos]))
				l.pos++
			}
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return raw.Str(out), nil
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return nil, errUnterminated
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	}
	return c
}

func (l *lexer) hex() (raw.Object, error) {
	l.pos++ // <
	end := bytes.IndexByte(l.data[l.pos:], '>')
	if end < 0 {
		return nil, errUnterminated
	}
	body := l.data[l.pos : l.pos+end]
	l.pos += end + 1
	var digits []byte
	for _, c := range body {
		if !isWhite(c) {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	for i := range out {
		v, err := strconv.ParseUint(string(digits[2*i:2*i+2]), 16, 8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return raw.HexStr(out), nil
}

func (l *lexer) array() (raw.Object, error) {
	arr := raw.NewArray()
	for {
		tok, ok, err := l.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errUnterminated
		}
		switch tok.kind {
		case tokenArrayEnd:
			return arr, nil
		case tokenOperand:
			arr.Append(tok.obj)
		}
	}
}

func (l *lexer) dict() (raw.Object, error) {
	d := raw.Dict()
	var key string
	for {
		tok, ok, err := l.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errUnterminated
		}
		switch tok.kind {
		case tokenDictEnd:
			return d, nil
		case tokenOperand:
			if key == "" {
				if n, isName := tok.obj.(raw.NameObj); isName {
					key = n.Val
				}
				continue
			}
			d.Set(key, tok.obj)
			key = ""
		}
	}
}

// skipInlineImage moves past the binary data that follows an ID operator.
func (l *lexer) skipInlineImage() error {
	if l.pos < len(l.data) && isWhite(l.data[l.pos]) {
		l.pos++
	}
	for i := l.pos; i+1 < len(l.data); i++ {
		if l.data[i] != 'E' || l.data[i+1] != 'I' {
			continue
		}
		if i > 0 && !isWhite(l.data[i-1]) {
			continue
		}
		if i+2 < len(l.data) && !isWhite(l.data[i+2]) && !isDelim(l.data[i+2]) {
			continue
		}
		l.pos = i + 2
		return nil
	}
	return errUnterminated
}
