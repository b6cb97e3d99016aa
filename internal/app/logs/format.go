package logs

import (
	"fmt"
	"regexp"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[;\\d]*m")

// StripANSI removes SGR color sequences such as ESC[31m or ESC[1;32m
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// ConsoleLine returns the plain text line written to the local console sink
func ConsoleLine(tag string, severity Severity, timestamp, message string) string {
	return fmt.Sprintf("%s: [%s] %s - %s", tag, severity, timestamp, message)
}

// FormatMessage builds the composite message stored for an entry.
// Publisher and receiver both go through here so the stored text never diverges.
func FormatMessage(tag string, severity Severity, timestamp, message string, caller Caller) string {
	return fmt.Sprintf("%s\nFile: %s, Line: %d",
		ConsoleLine(tag, severity, timestamp, StripANSI(message)),
		caller.FileOrUnknown(),
		caller.Line,
	)
}
