package event_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/karwey/ssecast/internal/event"
)

var frameTime = time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

func TestFrameMessageKindOmitsEventLine(t *testing.T) {
	frame := string(event.Frame(event.Event{Kind: event.KindMessage, Payload: "hi"}, frameTime))
	if strings.Contains(frame, "event:") {
		t.Errorf("message frame should not carry an event line, got %q", frame)
	}
	if !strings.HasPrefix(frame, `data: {"message": "hi", "timestamp": "`) {
		t.Errorf("unexpected data line: %q", frame)
	}
}

func TestFrameCustomKindHasEventLine(t *testing.T) {
	frame := string(event.Frame(event.Event{Kind: "ping", Payload: "hello"}, frameTime))
	if !strings.HasPrefix(frame, "event: ping\n") {
		t.Errorf("custom frame should start with event line, got %q", frame)
	}
}

func TestFrameTerminatedByBlankLine(t *testing.T) {
	for _, e := range []event.Event{
		{Kind: event.KindMessage, Payload: "a"},
		{Kind: "custom", Payload: "b"},
		{Kind: "empty"},
	} {
		frame := string(event.Frame(e, frameTime))
		if !strings.HasSuffix(frame, "\n\n") {
			t.Errorf("frame for %+v not blank-line terminated: %q", e, frame)
		}
	}
}

func TestFrameEscapesPayloadToValidJSON(t *testing.T) {
	payloads := []string{
		`back\slash`,
		`quo"te`,
		"new\nline",
		"all\\three\"at\nonce",
		"",
	}
	for _, p := range payloads {
		frame := string(event.Frame(event.Event{Kind: event.KindMessage, Payload: p}, frameTime))
		data := strings.TrimPrefix(frame, "data: ")
		data = strings.TrimSuffix(data, "\n\n")

		var body struct {
			Message   string `json:"message"`
			Timestamp string `json:"timestamp"`
		}
		if err := json.Unmarshal([]byte(data), &body); err != nil {
			t.Fatalf("payload %q produced invalid JSON %q: %v", p, data, err)
		}
		if body.Message != p {
			t.Errorf("payload %q round-tripped as %q", p, body.Message)
		}
		if _, err := time.Parse(time.RFC3339Nano, body.Timestamp); err != nil {
			t.Errorf("timestamp %q not RFC 3339: %v", body.Timestamp, err)
		}
	}
}

func TestFrameUsesEncodeTimeTimestamp(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	frame := string(event.Frame(event.Event{Kind: event.KindMessage, Payload: "x"}, ts))
	if !strings.Contains(frame, `"timestamp": "2025-01-02T03:04:05Z"`) {
		t.Errorf("frame does not carry the encode-time timestamp: %q", frame)
	}
}
