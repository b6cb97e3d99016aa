package broadcast

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"orslog/internal/app/errors"
	"orslog/internal/config"
)

// Envelope is one JSON line on the wire; Action carries the topic name
type Envelope struct {
	Action     string `json:"action"`
	Type       string `json:"type"`
	Tag        string `json:"tag"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	FileName   string `json:"fileName,omitempty"`
	LineNumber int    `json:"lineNumber,omitempty"`
	PID        int    `json:"pid,omitempty"`
}

// Encode marshals an envelope into a newline terminated line
func Encode(env Envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToMarshal, err)
	}

	return append(data, '\n'), nil
}

// Decode parses a single line; a missing type is rejected
func Decode(line []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return Envelope{}, err
	}

	if env.Type == "" {
		return Envelope{}, errors.ErrMissingPayloadType
	}

	return env, nil
}

// SocketPath returns the endpoint for a topic inside socketDir
func SocketPath(socketDir, topic string) string {
	return filepath.Join(socketDir, config.SocketPrefix+topic+config.SocketSuffix)
}
