package diag

// Severity ranks how serious a diagnostic is. The parser never escalates a
// Severity past SevWarning on its own — SevError is reserved for the
// small set of conditions that abort the parse entirely, which are
// reported as Go errors, not diagnostics.
type Severity uint8

const (
	// SevInfo records a choice the parser made that a host might care
	// about (e.g. which register-location strategy succeeded) but that
	// does not indicate anything is wrong with the file.
	SevInfo Severity = iota
	// SevWarning records a recoverable anomaly that doesn't abort the parse.
	SevWarning
	// SevError is reserved for diagnostics attached to a fatal parse
	// failure; day-to-day component output never emits one directly.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
