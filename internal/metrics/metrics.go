// Package metrics provides application-level counters using stdlib expvar.
// Counters are automatically exported on the /debug/vars HTTP endpoint
// when expvar's handler is mounted by the serve command.
package metrics

import "expvar"

// Operation counters.
var (
	EscapeTotal    = expvar.NewInt("safemarkup_escape_total")
	EscapeRejected = expvar.NewInt("safemarkup_escape_rejected_total")
	UnescapeTotal  = expvar.NewInt("safemarkup_unescape_total")
	ComposeTotal   = expvar.NewInt("safemarkup_compose_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }
