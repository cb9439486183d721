package markup

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Format uses m as a printf-style template, escaping arguments with the
// default Escaper. See Escaper.Format.
func (m Safe) Format(args ...any) Safe { return defaultEscaper.Format(m, args...) }

// Expand substitutes vars into m with the default Escaper. See
// Escaper.Expand.
func (m Safe) Expand(vars map[string]any) Safe { return defaultEscaper.Expand(m, vars) }

// Format uses tmpl as a printf-style template. Each argument is formatted
// with its verb and then escaped. A Renderer under %s or %v is inserted as
// rendered, padded to the requested width; under any other verb its
// unescaped text is formatted and escaped like a plain value:
//
//	Trust("<em>%s</em> (%d)").Format("<b>", 3) // <em>&lt;b&gt;</em> (3)
func (e *Escaper) Format(tmpl Safe, args ...any) Safe {
	wrapped := make([]any, len(args))
	for i, arg := range args {
		wrapped[i] = formatArg{v: arg, esc: e}
	}
	return Safe{s: fmt.Sprintf(tmpl.s, wrapped...)}
}

// Expand replaces ${name} and $name in tmpl with the matching entry of vars,
// converted with e.Value. Unknown names expand to nothing, as with
// os.Expand.
func (e *Escaper) Expand(tmpl Safe, vars map[string]any) Safe {
	return Safe{s: os.Expand(tmpl.s, func(name string) string {
		v, ok := vars[name]
		if !ok {
			return ""
		}
		return e.Value(v).s
	})}
}

type formatArg struct {
	v   any
	esc *Escaper
}

func (a formatArg) Format(f fmt.State, verb rune) {
	if verb == 'T' {
		_, _ = io.WriteString(f, a.esc.silent(fmt.Sprintf("%T", a.v)))
		return
	}
	format := fmt.FormatString(f, verb)

	v := a.v
	if p, ok := v.(*Safe); ok && p == nil {
		v = Safe{}
	}
	r, ok := v.(Renderer)
	if !ok {
		_, _ = io.WriteString(f, a.esc.silent(fmt.Sprintf(format, a.v)))
		return
	}

	m := r.HTML()
	if verb != 's' && verb != 'v' {
		_, _ = io.WriteString(f, a.esc.silent(fmt.Sprintf(format, m.Unescape())))
		return
	}
	out := m.s
	if n, ok := f.Width(); ok {
		if pad := n - width(m.s); pad > 0 {
			if f.Flag('-') {
				out += strings.Repeat(" ", pad)
			} else {
				out = strings.Repeat(" ", pad) + out
			}
		}
	}
	_, _ = io.WriteString(f, out)
}
