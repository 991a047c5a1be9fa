package diag

import "bgui/internal/source"

// New constructs a Diagnostic directly; most call sites prefer the
// severity-specific helpers below.
func New(sev Severity, code Code, primary source.ByteRange, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewInfo(code Code, primary source.ByteRange, msg string) Diagnostic {
	return New(SevInfo, code, primary, msg)
}

func NewWarning(code Code, primary source.ByteRange, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}
