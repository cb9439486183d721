// Package xmlutil provides the XML flavour of escaping, which writes the
// predefined &apos; entity for single quotes.
package xmlutil

import "github.com/ajitpratap0/safemarkup/pkg/markup"

var xmlEscaper = markup.NewEscaper(markup.WithApostrophe(markup.ApostropheNamed))

// Escaper returns the shared XML escaper.
func Escaper() *markup.Escaper { return xmlEscaper }

// Escape replaces characters with special meaning in XML so that untrusted
// content can be embedded in XML-delimited documents. Control characters
// are passed through; use EscapeStrict to reject them.
func Escape(s string) string {
	return xmlEscaper.Silent(&s)
}

// EscapeStrict is Escape but fails on disallowed control characters.
func EscapeStrict(s string) (string, error) {
	return xmlEscaper.String(s)
}

// Unescape decodes character references, including &apos;.
func Unescape(s string) string {
	return markup.UnescapeString(s)
}

// Value converts v to markup for an XML document. See markup.Escaper.Value.
func Value(v any) markup.Safe { return xmlEscaper.Value(v) }

// Join escapes items for XML and joins them with the trusted sep.
func Join(sep markup.Safe, items ...any) markup.Safe { return xmlEscaper.Join(sep, items...) }

// Format fills the printf verbs of tmpl with XML-escaped args.
func Format(tmpl markup.Safe, args ...any) markup.Safe { return xmlEscaper.Format(tmpl, args...) }
