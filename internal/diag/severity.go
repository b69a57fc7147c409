package diag

// Severity classifies a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics (pass timing, notes).
	SevInfo Severity = iota
	// SevWarning is for non-fatal diagnostics.
	SevWarning
	// SevError is for diagnostics that stop the pipeline for their module.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}
