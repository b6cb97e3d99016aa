package logs

import (
	"fmt"
	"time"

	"orslog/internal/app/errors"
)

// TimestampLayout is the wire format of entry timestamps (yyyy-MM-dd HH:mm:ss.SSS)
const TimestampLayout = "2006-01-02 15:04:05.000"

// UnknownFile is substituted when the caller location has no file name
const UnknownFile = "Unknown"

// Entry is one immutable log event as stored by the viewer
type Entry struct {
	Severity  Severity
	Tag       string
	Message   string
	Timestamp string
	Source    string
}

// Time parses the entry timestamp in local time
func (e Entry) Time() (time.Time, error) {
	return ParseTimestamp(e.Timestamp)
}

// Timestamp formats t in the wire layout
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a wire timestamp in local time
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: '%s'", errors.ErrInvalidTimestamp, s)
	}

	return t, nil
}

// Caller is the source location that emitted an event
type Caller struct {
	File string
	Line int
}

// FileOrUnknown returns the file name, or UnknownFile when it is empty
func (c Caller) FileOrUnknown() string {
	if c.File == "" {
		return UnknownFile
	}

	return c.File
}

// NewEntry builds an entry whose message is the composite display text
func NewEntry(severity Severity, tag, message, timestamp string, caller Caller) Entry {
	return Entry{
		Severity:  severity,
		Tag:       tag,
		Message:   FormatMessage(tag, severity, timestamp, message, caller),
		Timestamp: timestamp,
	}
}
