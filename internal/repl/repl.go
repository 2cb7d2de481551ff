// Package repl implements the operator console: a blocking,
// line-oriented loop that turns typed commands into broadcast events.
// It is the one place in the process where blocking a goroutine on
// stdin is expected.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/karwey/ssecast/internal/event"
)

const helpText = `Usage:
  data: <message>         - Send as regular data message
  event: <name> <message> - Send as custom event
  /help or /h             - Show this help message
  /quit or /q             - Quit the console and stop the server`

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ruleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Run reads operator input from in one line at a time until end of
// input or a quit command. Empty lines are skipped. /help prints the
// usage text. /quit calls shutdown and returns. Every other line is
// parsed into an event and handed to the serving side over events.
//
// End of input returns without calling shutdown. Run never fails on
// input content, whatever its length; only a read error is returned.
func Run(ctx context.Context, in io.Reader, out io.Writer, events chan<- event.Event, shutdown func()) error {
	banner(out)

	// ReadString rather than a Scanner: operator lines have no length
	// limit, and an oversized paste must not kill the console.
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "> ")
		raw, err := reader.ReadString('\n')

		line := strings.TrimSpace(raw)
		if line != "" {
			switch strings.ToLower(line) {
			case "/quit", "/q":
				shutdown()
				return nil
			case "/help", "/h":
				fmt.Fprintln(out, helpStyle.Render(helpText))
			default:
				select {
				case events <- event.Parse(line):
				case <-ctx.Done():
					return nil
				}
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
	}
}

func banner(out io.Writer) {
	rule := ruleStyle.Render(strings.Repeat("=", 60))
	fmt.Fprintln(out)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, titleStyle.Render("Console started - type messages to broadcast via SSE"))
	fmt.Fprintln(out, "Messages are sent to every client connected to /events")
	fmt.Fprintln(out)
	fmt.Fprintln(out, helpStyle.Render(helpText))
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out)
}
