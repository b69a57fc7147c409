package diag

import (
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// record is the wire shape for IDE-mode diagnostic export: Message's
// Pos is flattened since source.Pos has no msgpack tags of its own.
type record struct {
	Severity string `msgpack:"severity"`
	File     string `msgpack:"file,omitempty"`
	Line     int    `msgpack:"line,omitempty"`
	Col      int    `msgpack:"col,omitempty"`
	Text     string `msgpack:"text"`
}

// ExportIDE serializes msgs to path as msgpack, for IDE mode's "retain
// diagnostics... for later programmatic retrieval" (§6, GLOSSARY). An
// empty path is a no-op so callers can invoke this unconditionally.
func ExportIDE(path string, msgs []Message) error {
	if path == "" {
		return nil
	}
	recs := make([]record, len(msgs))
	for i, m := range msgs {
		recs[i] = record{
			Severity: m.Severity.String(),
			File:     m.Pos.File,
			Line:     m.Pos.Line,
			Col:      m.Pos.Col,
			Text:     m.Text,
		}
	}
	data, err := msgpack.Marshal(recs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
