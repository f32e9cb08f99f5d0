package features

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"
)

// FormatInt renders an integer in base 10.
func FormatInt(v int64) string { return strconv.FormatInt(v, 10) }

// FormatReal renders a real number in its shortest round-trippable form. The
// result always carries a fractional part ("100.0"); magnitudes outside
// [1e-3, 1e7) use scientific notation such as "1.0E7" or "1.5E-4".
func FormatReal(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(v)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.ContainsRune(s, '.') {
			s += ".0"
		}
		return s
	}

	mant, exp, _ := strings.Cut(strconv.FormatFloat(v, 'E', -1, 64), "E")
	if !strings.ContainsRune(mant, '.') {
		mant += ".0"
	}
	e, _ := strconv.Atoi(exp)
	return mant + "E" + strconv.Itoa(e)
}

func FormatBool(v bool) string { return strconv.FormatBool(v) }

// EncodeHex renders b as uppercase hex without separators.
func EncodeHex(b []byte) string { return strings.ToUpper(hex.EncodeToString(b)) }

// DecodeHex is the inverse of EncodeHex; lowercase digits are accepted.
func DecodeHex(s string) ([]byte, error) { return hex.DecodeString(s) }
