package diag

import (
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/fatih/color"
)

// Sink is the diagnostics queue threaded through a compiler state (C8).
// Messages are prepended as they are produced, so the head of the slice
// is always the most recently added message, mirroring the source
// compiler's cons-list of messages. Draining walks the slice in reverse
// of storage order, which restores chronological (oldest-first) order.
type Sink struct {
	messages  []Message
	numErrors int
}

// Add records a message and bumps the error counter when Severity is
// SevError. It never returns an error itself; diagnostics are the only
// channel a pass has for reporting failure (§7).
func (s *Sink) Add(m Message) {
	s.messages = append([]Message{m}, s.messages...)
	if m.Severity == SevError {
		s.numErrors++
	}
}

// Errorf is a convenience wrapper for Add with SevError.
func (s *Sink) Errorf(format string, args ...any) {
	s.Add(Message{Severity: SevError, Text: fmt.Sprintf(format, args...)})
}

// NumErrors returns the cumulative error count (invariant I1: equals the
// count of SevError messages ever added, independent of draining).
func (s *Sink) NumErrors() int {
	return s.numErrors
}

// Pending returns the messages currently queued, chronological order,
// without draining them. Used by IDE mode, which retains diagnostics
// instead of printing them at each pass boundary.
func (s *Sink) Pending() []Message {
	out := make([]Message, len(s.messages))
	n, err := safecast.Conv[int](len(s.messages))
	if err != nil {
		panic(fmt.Errorf("diag: message count overflow: %w", err))
	}
	for i := 0; i < n; i++ {
		out[i] = s.messages[n-1-i]
	}
	return out
}

// Drain returns the queued messages in chronological order and clears
// the queue (INV-2: a pass's diagnostics are drained exactly once).
func (s *Sink) Drain() []Message {
	out := s.Pending()
	s.messages = nil
	return out
}

// Print writes messages to w, colorizing the severity label when color
// is enabled. Used by the non-IDE pass runner and by the entry point
// for resolver-level diagnostics.
func Print(w io.Writer, msgs []Message, colorEnabled bool) {
	for _, m := range msgs {
		label := m.Severity.String()
		if colorEnabled {
			label = severityColor(m.Severity).Sprint(label)
		}
		if m.Pos.IsNull() {
			fmt.Fprintf(w, "%s: %s\n", label, m.Text)
			continue
		}
		fmt.Fprintf(w, "%s: %s: %s\n", m.Pos.String(), label, m.Text)
	}
}

func severityColor(s Severity) *color.Color {
	switch s {
	case SevError:
		return color.New(color.FgRed, color.Bold)
	case SevWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
