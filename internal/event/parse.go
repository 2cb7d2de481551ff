package event

import (
	"strings"
	"unicode"
)

// Parse turns one line of console input into an Event.
//
// A "data:" prefix (case-insensitive) yields a KindMessage event with
// the trimmed remainder as payload. An "event:" prefix yields a custom
// event: the remainder splits on the first run of whitespace into the
// event name and an optional payload. A bare "event:" with nothing
// after it falls back to a KindMessage event carrying the whole line.
// Anything else is a KindMessage event carrying the line verbatim.
//
// Control commands (/quit, /help) are not events and are handled by the
// console loop before Parse is called.
func Parse(line string) Event {
	line = strings.TrimSpace(line)
	lower := strings.ToLower(line)

	if strings.HasPrefix(lower, "data:") {
		return Event{Kind: KindMessage, Payload: strings.TrimSpace(line[len("data:"):])}
	}

	if strings.HasPrefix(lower, "event:") {
		rest := strings.TrimSpace(line[len("event:"):])
		if rest == "" {
			// Degenerate "event:" with no name: treat the whole
			// line as a plain message.
			return Event{Kind: KindMessage, Payload: line}
		}
		if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
			return Event{Kind: rest[:i], Payload: strings.TrimSpace(rest[i:])}
		}
		return Event{Kind: rest}
	}

	return Event{Kind: KindMessage, Payload: line}
}
