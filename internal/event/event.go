// Package event defines the broadcast event type, the console input
// grammar that produces events, and the SSE wire encoding consumed by
// browser clients.
package event

import (
	"strings"
	"time"
)

// KindMessage is the default event kind. Events of this kind are
// delivered on the SSE stream without an "event:" line, so browsers
// dispatch them to the plain onmessage handler.
const KindMessage = "message"

// Event is one unit of broadcast: a kind (either KindMessage or a
// custom event name chosen by the operator) and a payload string.
// Kind is never empty; Payload may be.
type Event struct {
	Kind    string
	Payload string
}

// Frame encodes e as a single SSE frame. Custom kinds get an "event:"
// line; KindMessage does not. The data line carries a small JSON object
// with the payload and a timestamp taken at encode time, so each
// subscriber stream stamps its own delivery moment. The frame is
// terminated by the blank line SSE framing requires.
//
// Kind is operator-controlled input and is emitted as-is; only the
// payload is escaped.
func Frame(e Event, ts time.Time) []byte {
	var b strings.Builder
	if e.Kind != KindMessage {
		b.WriteString("event: ")
		b.WriteString(e.Kind)
		b.WriteByte('\n')
	}
	b.WriteString(`data: {"message": "`)
	b.WriteString(escapeJSON(e.Payload))
	b.WriteString(`", "timestamp": "`)
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteString("\"}\n\n")
	return []byte(b.String())
}

// escapeJSON escapes backslash, double quote, and newline so the
// payload embeds safely in the data line's JSON object.
func escapeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
