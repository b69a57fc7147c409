package diag

import "fregec/internal/source"

// Message is a single diagnostic produced by a pass or by input
// resolution. It carries no out-of-band control flow: passes communicate
// failure purely by appending an error-severity Message and bumping
// G.Sub.NumErrors.
type Message struct {
	Severity Severity
	Pos      source.Pos
	Text     string
}

func (m Message) String() string {
	if m.Pos.IsNull() {
		return m.Severity.String() + ": " + m.Text
	}
	return m.Pos.String() + ": " + m.Severity.String() + ": " + m.Text
}
