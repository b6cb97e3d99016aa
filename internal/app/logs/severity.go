package logs

import (
	"fmt"

	"orslog/internal/app/errors"
)

// Severity classifies a log entry
type Severity int

// Severities in declaration order
const (
	Debug Severity = iota
	Info
	Warning
	Error
	Verbose
)

// RGB is a plain color triple
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var severityNames = [...]string{
	Debug:   "DEBUG",
	Info:    "INFO",
	Warning: "WARNING",
	Error:   "ERROR",
	Verbose: "VERBOSE",
}

var severityColors = [...]RGB{
	Debug:   {R: 0, G: 0, B: 255},
	Info:    {R: 0, G: 255, B: 0},
	Warning: {R: 255, G: 165, B: 0},
	Error:   {R: 255, G: 0, B: 0},
	Verbose: {R: 128, G: 0, B: 128},
}

// Severities returns every severity in declaration order
func Severities() []Severity {
	return []Severity{Debug, Info, Warning, Error, Verbose}
}

// String returns the wire name of the severity
func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Severity(%d)", int(s))
	}

	return severityNames[s]
}

// Valid reports whether s is one of the known severities
func (s Severity) Valid() bool {
	return s >= Debug && s <= Verbose
}

// Color returns the display color of the severity
func (s Severity) Color() RGB {
	if !s.Valid() {
		return RGB{}
	}

	return severityColors[s]
}

// ParseSeverity converts a wire name into a Severity, matching case-sensitively
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if n == name {
			return Severity(i), nil
		}
	}

	return 0, fmt.Errorf("%w: '%s'", errors.ErrUnknownSeverity, name)
}

// MarshalText implements encoding.TextMarshaler
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", errors.ErrUnknownSeverity, int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}
