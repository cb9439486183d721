// Package markup escapes text for embedding in HTML and XML documents,
// decodes character references back to text, and provides Safe, a string
// wrapper that remembers its content is already escaped so that composing
// markup never escapes twice.
//
// Only five characters are structurally significant: & < > " and '. The
// escaper replaces those and nothing else; it is not a sanitizer.
package markup

import (
	"bytes"
	"fmt"
)

// Apostrophe selects the reference written for a single quote.
type Apostrophe int

const (
	// ApostropheHex writes &#x27;. It is the default because &apos; is not
	// understood by legacy HTML parsers.
	ApostropheHex Apostrophe = iota
	// ApostropheNamed writes &apos;, the XML predefined entity.
	ApostropheNamed
	// ApostropheDecimal writes &#39;.
	ApostropheDecimal
)

func (a Apostrophe) reference() string {
	switch a {
	case ApostropheNamed:
		return "&apos;"
	case ApostropheDecimal:
		return "&#39;"
	default:
		return "&#x27;"
	}
}

func (a Apostrophe) String() string {
	switch a {
	case ApostropheNamed:
		return "named"
	case ApostropheDecimal:
		return "decimal"
	default:
		return "hex"
	}
}

// ParseApostrophe maps "hex", "named" or "decimal" to an Apostrophe.
func ParseApostrophe(s string) (Apostrophe, error) {
	switch s {
	case "hex", "":
		return ApostropheHex, nil
	case "named":
		return ApostropheNamed, nil
	case "decimal":
		return ApostropheDecimal, nil
	default:
		return ApostropheHex, fmt.Errorf("unknown apostrophe style %q: must be one of hex, named, decimal", s)
	}
}

// Escaper replaces structurally significant characters with references.
// An Escaper is immutable and safe for concurrent use.
type Escaper struct {
	apos string
}

// Option configures an Escaper.
type Option func(*Escaper)

// WithApostrophe sets the reference used for '.
func WithApostrophe(a Apostrophe) Option {
	return func(e *Escaper) { e.apos = a.reference() }
}

// NewEscaper returns an Escaper. Without options it writes &#x27; for '.
func NewEscaper(opts ...Option) *Escaper {
	e := &Escaper{apos: ApostropheHex.reference()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEscaper = NewEscaper()

// EscapeString escapes s with the default Escaper. It fails with a
// *ControlCharacterError if s contains a control character other than tab,
// newline, carriage return or form feed.
func EscapeString(s string) (string, error) { return defaultEscaper.String(s) }

// EscapeSilent escapes *s with the default Escaper without checking for
// control characters. A nil s yields "".
func EscapeSilent(s *string) string { return defaultEscaper.Silent(s) }

// EscapeBytes is the byte-sequence form of EscapeString.
func EscapeBytes(b []byte) ([]byte, error) { return defaultEscaper.Bytes(b) }

// EscapeBytesSilent is the byte-sequence form of EscapeSilent. A nil b yields nil.
func EscapeBytesSilent(b []byte) []byte { return defaultEscaper.BytesSilent(b) }

// NeedsEscaping reports whether s contains any of & < > " '.
func NeedsEscaping(s string) bool {
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i]) {
			return true
		}
	}
	return false
}

// String escapes s, rejecting disallowed control characters.
func (e *Escaper) String(s string) (string, error) {
	if !needsWork(s, true) {
		return s, nil
	}
	buf, err := appendEscaped(make([]byte, 0, grow(len(s))), s, e.apos, true)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Silent escapes *s and never fails. Control characters pass through.
func (e *Escaper) Silent(s *string) string {
	if s == nil {
		return ""
	}
	return e.silent(*s)
}

func (e *Escaper) silent(s string) string {
	if !needsWork(s, false) {
		return s
	}
	// appendEscaped cannot fail when strict is false.
	buf, _ := appendEscaped(make([]byte, 0, grow(len(s))), s, e.apos, false)
	return string(buf)
}

// Bytes escapes b, rejecting disallowed control characters. Only ASCII bytes
// are ever replaced, so multi-byte UTF-8 sequences are copied intact. The
// result never aliases b.
func (e *Escaper) Bytes(b []byte) ([]byte, error) {
	if !needsWork(b, true) {
		return bytes.Clone(b), nil
	}
	buf, err := appendEscaped(make([]byte, 0, grow(len(b))), b, e.apos, true)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// BytesSilent escapes b and never fails. A nil b yields nil.
func (e *Escaper) BytesSilent(b []byte) []byte {
	if !needsWork(b, false) {
		return bytes.Clone(b)
	}
	buf, _ := appendEscaped(make([]byte, 0, grow(len(b))), b, e.apos, false)
	return buf
}

type text interface {
	~string | ~[]byte
}

func grow(n int) int { return n + n/8 + 8 }

func isSpecial(c byte) bool {
	switch c {
	case '&', '<', '>', '"', '\'':
		return true
	}
	return false
}

// isDisallowedControl reports C0 controls other than \t \n \f \r.
func isDisallowedControl(c byte) bool {
	return c <= 0x08 || c == 0x0B || (c >= 0x0E && c <= 0x1F)
}

func needsWork[T text](src T, strict bool) bool {
	for i := 0; i < len(src); i++ {
		c := src[i]
		if isSpecial(c) || (strict && isDisallowedControl(c)) {
			return true
		}
	}
	return false
}

// appendEscaped appends the escaped form of src to dst. Every byte it
// inspects is ASCII, so working bytewise is the same as working by scalar
// value and never splits a UTF-8 sequence.
func appendEscaped[T text](dst []byte, src T, apos string, strict bool) ([]byte, error) {
	last := 0
	for i := 0; i < len(src); i++ {
		var ref string
		switch c := src[i]; c {
		case '&':
			ref = "&amp;"
		case '<':
			ref = "&lt;"
		case '>':
			ref = "&gt;"
		case '"':
			ref = "&quot;"
		case '\'':
			ref = apos
		default:
			if strict && isDisallowedControl(c) {
				return dst, &ControlCharacterError{Codepoint: rune(c), Offset: i}
			}
			continue
		}
		dst = append(dst, src[last:i]...)
		dst = append(dst, ref...)
		last = i + 1
	}
	return append(dst, src[last:]...), nil
}
