package repl_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karwey/ssecast/internal/event"
	"github.com/karwey/ssecast/internal/repl"
)

// runScript feeds input to the console loop and collects every event it
// submits, reporting whether shutdown was raised.
func runScript(t *testing.T, input string) (events []event.Event, out string, shutdown bool) {
	t.Helper()

	ch := make(chan event.Event)
	collected := make(chan []event.Event)
	go func() {
		var got []event.Event
		for e := range ch {
			got = append(got, e)
		}
		collected <- got
	}()

	var buf bytes.Buffer
	err := repl.Run(context.Background(), strings.NewReader(input), &buf, ch, func() { shutdown = true })
	require.NoError(t, err)
	close(ch)

	select {
	case events = <-collected:
	case <-time.After(2 * time.Second):
		t.Fatal("collector did not finish")
	}
	return events, buf.String(), shutdown
}

func TestRunSubmitsParsedEvents(t *testing.T) {
	events, _, shutdown := runScript(t, "data: hi\nevent: ping pong\nplain text\n")

	assert.False(t, shutdown)
	assert.Equal(t, []event.Event{
		{Kind: "message", Payload: "hi"},
		{Kind: "ping", Payload: "pong"},
		{Kind: "message", Payload: "plain text"},
	}, events)
}

func TestRunSkipsBlankLines(t *testing.T) {
	events, _, _ := runScript(t, "\n   \n\t\ndata: one\n")
	assert.Equal(t, []event.Event{{Kind: "message", Payload: "one"}}, events)
}

func TestRunQuitRaisesShutdownAndStops(t *testing.T) {
	events, _, shutdown := runScript(t, "data: before\n/quit\ndata: after\n")

	assert.True(t, shutdown, "quit must raise the shutdown signal")
	assert.Equal(t, []event.Event{{Kind: "message", Payload: "before"}}, events,
		"nothing after /quit may be read")
}

func TestRunQuitShortFormCaseInsensitive(t *testing.T) {
	_, _, shutdown := runScript(t, "/Q\n")
	assert.True(t, shutdown)
}

func TestRunHelpPrintsUsageWithoutEvent(t *testing.T) {
	events, out, shutdown := runScript(t, "/help\n/h\n")

	assert.False(t, shutdown)
	assert.Empty(t, events)
	assert.Contains(t, out, "data: <message>")
	assert.Contains(t, out, "/quit or /q")
}

func TestRunSurvivesVeryLongLine(t *testing.T) {
	long := strings.Repeat("x", 70*1024)
	events, _, shutdown := runScript(t, "data: "+long+"\n/quit\n")

	require.Len(t, events, 1, "the long line must come through as one event")
	assert.Equal(t, event.Event{Kind: "message", Payload: long}, events[0])
	assert.True(t, shutdown, "the console must still be alive to process /quit")
}

func TestRunLastLineWithoutNewline(t *testing.T) {
	events, _, shutdown := runScript(t, "data: tail")

	assert.False(t, shutdown)
	assert.Equal(t, []event.Event{{Kind: "message", Payload: "tail"}}, events)
}

func TestRunEndOfInputDoesNotRaiseShutdown(t *testing.T) {
	_, _, shutdown := runScript(t, "data: last\n")
	assert.False(t, shutdown)
}
