package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning is for convention violations.
	SevWarning Severity = iota + 1
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity is the inverse of String.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "warning":
		return SevWarning, true
	case "error":
		return SevError, true
	}
	return 0, false
}

// Code is the stable identifier of the rule that produced a diagnostic.
type Code string

func (c Code) String() string {
	return string(c)
}
