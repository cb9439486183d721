package markup

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Text transforms treat a recognised reference as one opaque character: case
// mapping skips it and it counts as a single column when padding.

// segments yields the runs of s in order, reporting for each whether it is a
// recognised reference.
func segments(s string) iter.Seq2[string, bool] {
	return func(yield func(string, bool) bool) {
		last := 0
		for i := 0; i < len(s); {
			if s[i] != '&' {
				i++
				continue
			}
			_, n, ok := decodeReference(s[i:])
			if !ok {
				i++
				continue
			}
			if last < i && !yield(s[last:i], false) {
				return
			}
			if !yield(s[i:i+n], true) {
				return
			}
			i += n
			last = i
		}
		if last < len(s) {
			yield(s[last:], false)
		}
	}
}

// mapText applies f to the runs of s that are not recognised references.
func mapText(s string, f func(string) string) string {
	if strings.IndexByte(s, '&') < 0 {
		return f(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	for seg, ref := range segments(s) {
		if ref {
			b.WriteString(seg)
		} else {
			b.WriteString(f(seg))
		}
	}
	return b.String()
}

// width counts characters, with each reference counting as one.
func width(s string) int {
	n := 0
	for seg, ref := range segments(s) {
		if ref {
			n++
		} else {
			n += utf8.RuneCountInString(seg)
		}
	}
	return n
}

// Lower lower-cases the text between references. References are kept as
// written, so "&QUOT;" stays a reference.
func (m Safe) Lower() Safe { return Safe{s: mapText(m.s, strings.ToLower)} }

// Upper upper-cases the text between references.
func (m Safe) Upper() Safe { return Safe{s: mapText(m.s, strings.ToUpper)} }

// Title title-cases the text between references.
func (m Safe) Title() Safe {
	caser := cases.Title(language.Und)
	return Safe{s: mapText(m.s, caser.String)}
}

// Fold applies Unicode case folding to the text between references.
func (m Safe) Fold() Safe {
	caser := cases.Fold()
	return Safe{s: mapText(m.s, caser.String)}
}

// SwapCase swaps upper and lower case in the text between references.
func (m Safe) SwapCase() Safe {
	return Safe{s: mapText(m.s, func(s string) string {
		return strings.Map(func(r rune) rune {
			switch {
			case unicode.IsUpper(r):
				return unicode.ToLower(r)
			case unicode.IsLower(r):
				return unicode.ToUpper(r)
			}
			return r
		}, s)
	})}
}

// Capitalize title-cases the first character and lower-cases the rest. A
// leading reference counts as the first character and is left alone.
func (m Safe) Capitalize() Safe {
	var b strings.Builder
	b.Grow(len(m.s))
	first := true
	for seg, ref := range segments(m.s) {
		switch {
		case ref:
			b.WriteString(seg)
		case first:
			r, size := utf8.DecodeRuneInString(seg)
			if r == utf8.RuneError && size <= 1 {
				b.WriteString(seg[:size])
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			b.WriteString(strings.ToLower(seg[size:]))
		default:
			b.WriteString(strings.ToLower(seg))
		}
		first = false
	}
	return Safe{s: b.String()}
}

// Center pads m on both sides with fill to n characters. Extra padding goes
// on the right when it cannot be split evenly, except when n is odd.
func (m Safe) Center(n int, fill rune) Safe {
	pad := n - width(m.s)
	if pad <= 0 {
		return m
	}
	left := pad/2 + (pad & n & 1)
	f := fillText(fill)
	return Safe{s: strings.Repeat(f, left) + m.s + strings.Repeat(f, pad-left)}
}

// LJust pads m on the right with fill to n characters.
func (m Safe) LJust(n int, fill rune) Safe {
	pad := n - width(m.s)
	if pad <= 0 {
		return m
	}
	return Safe{s: m.s + strings.Repeat(fillText(fill), pad)}
}

// RJust pads m on the left with fill to n characters.
func (m Safe) RJust(n int, fill rune) Safe {
	pad := n - width(m.s)
	if pad <= 0 {
		return m
	}
	return Safe{s: strings.Repeat(fillText(fill), pad) + m.s}
}

// ZFill pads m on the left with zeros to n characters, keeping a leading
// sign in front.
func (m Safe) ZFill(n int) Safe {
	pad := n - width(m.s)
	if pad <= 0 {
		return m
	}
	zeros := strings.Repeat("0", pad)
	if m.s != "" && (m.s[0] == '+' || m.s[0] == '-') {
		return Safe{s: m.s[:1] + zeros + m.s[1:]}
	}
	return Safe{s: zeros + m.s}
}

// fillText is the escaped form of a fill character.
func fillText(fill rune) string { return defaultEscaper.silent(string(fill)) }

// ExpandTabs replaces each tab with spaces up to the next multiple of
// tabSize columns. Newlines and carriage returns reset the column. A
// tabSize of zero or less removes tabs.
func (m Safe) ExpandTabs(tabSize int) Safe {
	if strings.IndexByte(m.s, '\t') < 0 {
		return m
	}
	var b strings.Builder
	b.Grow(len(m.s))
	col := 0
	for seg, ref := range segments(m.s) {
		if ref {
			b.WriteString(seg)
			col++
			continue
		}
		for _, r := range seg {
			switch r {
			case '\t':
				if tabSize > 0 {
					n := tabSize - col%tabSize
					b.WriteString(strings.Repeat(" ", n))
					col += n
				}
			case '\n', '\r':
				b.WriteRune(r)
				col = 0
			default:
				b.WriteRune(r)
				col++
			}
		}
	}
	return Safe{s: b.String()}
}

// Lines splits m into lines without their line endings. Line boundaries are
// \n, \r, \r\n, \v, \f, the file, group and record separators (U+001C to
// U+001E), NEL (U+0085), U+2028 and U+2029. A trailing boundary does not
// start an empty final line.
func (m Safe) Lines() []Safe {
	var out []Safe
	start := 0
	for i := 0; i < len(m.s); {
		r, size := utf8.DecodeRuneInString(m.s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		out = append(out, Safe{s: m.s[start:i]})
		i += size
		if r == '\r' && i < len(m.s) && m.s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(m.s) {
		out = append(out, Safe{s: m.s[start:]})
	}
	return out
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1C, 0x1D, 0x1E, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}
