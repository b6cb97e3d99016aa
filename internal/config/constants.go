package config

import "time"

// app constants
const (
	AppName        = "orslog"
	AppDescription = "Local log broadcast viewer with filtering, charts and CSV export"
	Version        = "0.3.0"

	ConfigFile = "orslog.yaml"
	EnvFile    = ".env"
	EnvPrefix  = "ORSLOG"

	LogLevel  = "info"
	LogFormat = "console"
)

// transport constants
const (
	DefaultTopic = "com.example.logviewer.LOG_BROADCAST"
	SocketDir    = "/tmp"
	SocketPrefix = "orslog-"
	SocketSuffix = ".sock"

	SocketDialTimeout   = 100 * time.Millisecond
	SocketWriteTimeout  = 200 * time.Millisecond
	SocketReadLineLimit = 64 * 1024

	TransportBufferSize = 1000
)

// viewer constants
const (
	// MaxEntries of zero keeps every received entry until an explicit clear
	MaxEntries       = 0
	ExportDirName    = "LogExports"
	DownloadsDirName = "Downloads"
)

// publisher constants
const (
	DefaultTag = "LoggerDemo"
)

// watch constants
const (
	WatchDebounce = 300 * time.Millisecond
)
