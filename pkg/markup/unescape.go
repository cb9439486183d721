package markup

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ajitpratap0/safemarkup/pkg/entity"
)

// UnescapeString decodes named and numeric character references in s.
// It never fails: a reference that is unknown, unterminated, empty or out of
// range is copied to the output exactly as written. Numeric references to
// control characters other than tab, newline and carriage return count as
// out of range.
func UnescapeString(s string) string {
	if strings.IndexByte(s, '&') < 0 {
		return s
	}
	return string(appendUnescaped(make([]byte, 0, len(s)), s))
}

// UnescapeBytes is the byte-sequence form of UnescapeString. The result
// never aliases b.
func UnescapeBytes(b []byte) []byte {
	if bytes.IndexByte(b, '&') < 0 {
		return bytes.Clone(b)
	}
	return appendUnescaped(make([]byte, 0, len(b)), b)
}

func appendUnescaped[T text](dst []byte, src T) []byte {
	last := 0
	for i := 0; i < len(src); {
		if src[i] != '&' {
			i++
			continue
		}
		dst = append(dst, src[last:i]...)
		r, n, ok := decodeReference(src[i:])
		switch {
		case n == 0:
			// A lone '&' is copied and scanning resumes at the next byte.
			dst = append(dst, '&')
			i++
		case ok:
			dst = utf8.AppendRune(dst, r)
			i += n
		default:
			dst = append(dst, src[i:i+n]...)
			i += n
		}
		last = i
	}
	return append(dst, src[last:]...)
}

// decodeReference parses the reference at the start of s, where s[0] is '&'.
// n is the number of bytes consumed. n == 0 means the '&' does not start a
// reference at all; ok == false with n > 0 means the n consumed bytes must be
// emitted literally.
func decodeReference[T text](s T) (r rune, n int, ok bool) {
	if len(s) > 1 && s[1] == '#' {
		return decodeNumeric(s)
	}

	j := 1
	for j < len(s) && isAlnum(s[j]) {
		j++
	}
	if j == 1 {
		return 0, 0, false
	}
	ref, found := entity.Get(string(s[1:j]))
	switch {
	case !found:
		return 0, j, false
	case j < len(s) && s[j] == ';':
		return ref.Codepoint, j + 1, true
	case !ref.Terminated:
		return ref.Codepoint, j, true
	default:
		return 0, j, false
	}
}

const maxRune = 0x10FFFF

func decodeNumeric[T text](s T) (r rune, n int, ok bool) {
	j := 2
	base := rune(10)
	if j < len(s) && (s[j] == 'x' || s[j] == 'X') {
		base = 16
		j++
	}

	start := j
	var v rune
	for j < len(s) {
		d, isDigit := digitValue(s[j], base)
		if !isDigit {
			break
		}
		// Saturate rather than overflow on absurdly long digit runs.
		if v <= maxRune {
			v = v*base + d
		}
		j++
	}

	if j == start || j >= len(s) || s[j] != ';' {
		return 0, j, false
	}
	j++ // ';'
	if v > maxRune || (v >= 0xD800 && v <= 0xDFFF) || isLiteralControl(v) {
		return 0, j, false
	}
	return v, j, true
}

// isLiteralControl reports control characters (C0, DEL and C1) that a
// numeric reference may not produce. Tab, newline and carriage return are
// allowed; NUL is always refused.
func isLiteralControl(r rune) bool {
	return unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r'
}

func digitValue(c byte, base rune) (rune, bool) {
	switch {
	case '0' <= c && c <= '9':
		return rune(c - '0'), true
	case base == 16 && 'a' <= c && c <= 'f':
		return rune(c-'a') + 10, true
	case base == 16 && 'A' <= c && c <= 'F':
		return rune(c-'A') + 10, true
	}
	return 0, false
}

func isAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
