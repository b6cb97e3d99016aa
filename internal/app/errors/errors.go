package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")

	ErrInvalidTransportBuffer = errors.New("transport buffer must be greater than 0")
	ErrInvalidTopic           = errors.New("transport topic must not contain path separators")
	ErrInvalidDialTimeout     = errors.New("transport dial timeout must not be negative")
	ErrInvalidMaxEntries      = errors.New("viewer max entries must not be negative")

	ErrTransportUnavailable  = errors.New("transport channel unavailable")
	ErrFailedToCleanupSocket = errors.New("failed to cleanup stale socket")
	ErrFailedToListenSocket  = errors.New("failed to listen on socket")
	ErrSocketAlreadyInUse    = errors.New("socket already in use by another viewer")
	ErrFailedToWriteSocket   = errors.New("failed to write to socket")
	ErrFailedToMarshal       = errors.New("failed to marshal payload")

	ErrUnknownSeverity    = errors.New("unknown severity")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrMissingPayloadType = errors.New("payload type is required")

	ErrExportFailed           = errors.New("failed to export logs")
	ErrExportPermissionDenied = errors.New("permission denied for export directory")
	ErrExportNotAwaiting      = errors.New("export is not awaiting permission")

	ErrConfigAlreadyExists = errors.New("config file already exists")
	ErrNoWatchPatterns     = errors.New("watch requires at least one include pattern")
	ErrInvalidCutoff       = errors.New("invalid cutoff, expected yyyy-MM-dd HH:mm")

	ErrUnknownCommand = errors.New("unknown command")
)

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)
