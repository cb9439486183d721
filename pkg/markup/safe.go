package markup

import (
	"fmt"
	"slices"
	"strings"
)

// Safe is text that can be embedded in a document as-is: either it came out
// of the escaper or the caller vouched for it with Trust. A plain string is
// untrusted and is escaped whenever it is combined with a Safe.
//
// Methods on Safe escape their plain operands with the default Escaper. Use
// the composition methods on an Escaper to pick another apostrophe style.
//
// The zero value is empty markup.
type Safe struct {
	s string
}

// Renderer is implemented by values that know how to render themselves as
// markup. Composition trusts the returned Safe without escaping it again.
type Renderer interface {
	HTML() Safe
}

// Trust wraps s without escaping it. The caller is responsible for s being
// safe to embed.
func Trust(s string) Safe { return Safe{s: s} }

// Escape escapes s with the default Escaper and wraps the result.
func Escape(s string) (Safe, error) {
	out, err := defaultEscaper.String(s)
	if err != nil {
		return Safe{}, err
	}
	return Safe{s: out}, nil
}

// EscapeValue converts v to markup with the default Escaper. See
// Escaper.Value.
func EscapeValue(v any) Safe { return defaultEscaper.Value(v) }

// Value converts any value to markup. Renderers (Safe included) are used as
// they render themselves; nil and a nil *Safe become empty markup; byte
// slices are decoded as UTF-8 with invalid sequences replaced; every other
// value is formatted as text and escaped. Control characters are not
// rejected. A nil pointer of any other Renderer type is called like any
// other value, so its HTML method must handle a nil receiver.
func (e *Escaper) Value(v any) Safe {
	switch x := v.(type) {
	case nil:
		return Safe{}
	case *Safe:
		if x == nil {
			return Safe{}
		}
		return *x
	case Renderer:
		return x.HTML()
	case string:
		return Safe{s: e.silent(x)}
	case []byte:
		return Safe{s: e.silent(strings.ToValidUTF8(string(x), "\uFFFD"))}
	case fmt.Stringer:
		return Safe{s: e.silent(x.String())}
	case error:
		return Safe{s: e.silent(x.Error())}
	default:
		return Safe{s: e.silent(fmt.Sprint(x))}
	}
}

// Add appends v to m, escaping it with e unless it is a Renderer.
func (e *Escaper) Add(m Safe, v any) Safe { return Safe{s: m.s + e.Value(v).s} }

// Join concatenates items with sep between them, converting each with
// e.Value.
func (e *Escaper) Join(sep Safe, items ...any) Safe { return JoinWith(e, sep, items) }

// Replace replaces the first n occurrences of old in m with repl (all when
// n < 0). Plain operands are escaped with e first.
func (e *Escaper) Replace(m Safe, old, repl any, n int) Safe {
	return Safe{s: strings.Replace(m.s, e.Value(old).s, e.Value(repl).s, n)}
}

// JoinWith is the typed counterpart of Escaper.Join for slices.
func JoinWith[T any](e *Escaper, sep Safe, items []T) Safe {
	parts := make([]string, len(items))
	for i := range items {
		parts[i] = e.Value(items[i]).s
	}
	return Safe{s: strings.Join(parts, sep.s)}
}

// Join is JoinWith using the default Escaper.
func Join[T any](sep Safe, items []T) Safe { return JoinWith(defaultEscaper, sep, items) }

// HTML implements Renderer.
func (m Safe) HTML() Safe { return m }

// String returns the escaped content.
func (m Safe) String() string { return m.s }

// MarshalText implements encoding.TextMarshaler.
func (m Safe) MarshalText() ([]byte, error) { return []byte(m.s), nil }

// Unescape decodes the content back to plain, untrusted text.
func (m Safe) Unescape() string { return UnescapeString(m.s) }

// Len returns the length of the escaped content in bytes.
func (m Safe) Len() int { return len(m.s) }

// IsEmpty reports whether the content is empty.
func (m Safe) IsEmpty() bool { return m.s == "" }

// Concat appends other verbatim.
func (m Safe) Concat(other Safe) Safe { return Safe{s: m.s + other.s} }

// Add appends v, escaping it unless it is a Renderer.
func (m Safe) Add(v any) Safe { return defaultEscaper.Add(m, v) }

// Prepend puts v in front of m, escaping it unless it is a Renderer.
func (m Safe) Prepend(v any) Safe { return Safe{s: EscapeValue(v).s + m.s} }

// Join concatenates items with m as the separator. Each item is converted
// with EscapeValue.
func (m Safe) Join(items ...any) Safe { return JoinWith(defaultEscaper, m, items) }

// Repeat returns n copies of m. A negative n yields empty markup.
func (m Safe) Repeat(n int) Safe {
	if n <= 0 {
		return Safe{}
	}
	return Safe{s: strings.Repeat(m.s, n)}
}

// Replace replaces the first n occurrences of old with repl (all when n < 0).
// Plain operands are escaped first, so Replace("<", ...) matches "&lt;".
func (m Safe) Replace(old, repl any, n int) Safe { return defaultEscaper.Replace(m, old, repl, n) }

// Contains reports whether the escaped form of v occurs in m.
func (m Safe) Contains(v any) bool { return strings.Contains(m.s, EscapeValue(v).s) }

// Slice returns m[i:j] by byte offset. It panics on out-of-range indexes
// like a slice expression.
func (m Safe) Slice(i, j int) Safe { return Safe{s: m.s[i:j]} }

// Cut slices m around the first occurrence of the escaped form of sep. If
// sep does not occur, Cut returns m, empty markup, false.
func (m Safe) Cut(sep any) (before, after Safe, found bool) {
	b, a, ok := strings.Cut(m.s, EscapeValue(sep).s)
	return Safe{s: b}, Safe{s: a}, ok
}

// CutLast is Cut around the last occurrence of sep.
func (m Safe) CutLast(sep any) (before, after Safe, found bool) {
	needle := EscapeValue(sep).s
	i := strings.LastIndex(m.s, needle)
	if i < 0 {
		return m, Safe{}, false
	}
	return Safe{s: m.s[:i]}, Safe{s: m.s[i+len(needle):]}, true
}

// Split splits m around each occurrence of the escaped form of sep.
func (m Safe) Split(sep any) []Safe { return m.SplitN(sep, -1) }

// SplitN is Split returning at most n parts, as strings.SplitN.
func (m Safe) SplitN(sep any, n int) []Safe {
	return wrapAll(strings.SplitN(m.s, EscapeValue(sep).s, n))
}

// SplitLastN is SplitN counting from the end: with n > 0 the first part
// holds the unsplit remainder. An empty sep behaves as in SplitN.
func (m Safe) SplitLastN(sep any, n int) []Safe {
	needle := EscapeValue(sep).s
	if n < 0 || needle == "" {
		return m.SplitN(sep, n)
	}
	if n == 0 {
		return nil
	}
	var parts []string
	rest := m.s
	for len(parts) < n-1 {
		i := strings.LastIndex(rest, needle)
		if i < 0 {
			break
		}
		parts = append(parts, rest[i+len(needle):])
		rest = rest[:i]
	}
	parts = append(parts, rest)
	slices.Reverse(parts)
	return wrapAll(parts)
}

// TrimSpace removes leading and trailing white space.
func (m Safe) TrimSpace() Safe { return Safe{s: strings.TrimSpace(m.s)} }

// Trim removes leading and trailing characters contained in cutset.
func (m Safe) Trim(cutset string) Safe { return Safe{s: strings.Trim(m.s, cutset)} }

// TrimLeft removes leading characters contained in cutset.
func (m Safe) TrimLeft(cutset string) Safe { return Safe{s: strings.TrimLeft(m.s, cutset)} }

// TrimRight removes trailing characters contained in cutset.
func (m Safe) TrimRight(cutset string) Safe { return Safe{s: strings.TrimRight(m.s, cutset)} }

func wrapAll(parts []string) []Safe {
	if parts == nil {
		return nil
	}
	out := make([]Safe, len(parts))
	for i, p := range parts {
		out[i] = Safe{s: p}
	}
	return out
}
