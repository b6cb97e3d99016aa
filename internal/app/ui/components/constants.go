package components

import "time"

// UI timing constants
const (
	// UITickInterval is the base tick rate for animations
	UITickInterval = 100 * time.Millisecond

	// UITicksPerSecond is the derived animation FPS
	UITicksPerSecond = int(time.Second / UITickInterval)

	// NotificationTTL is how long a transient notification stays visible
	NotificationTTL = 3 * time.Second
)

// Header layout constants
const (
	HeaderSeparatorMinWidth = 4
	HeaderFixedChars        = 10
)

// Footer layout constants
const (
	FooterSeparatorMinWidth = 4
	FooterFixedChars        = 5
)

// Viewer layout constants
const (
	DefaultViewportWidth  = 80
	DefaultViewportHeight = 20
	ChromeHeight          = 9
	MinViewportHeight     = 3
	ChartLabelWidth       = 8
	ChartCountWidth       = 12
	PieWidth              = 50
)

// CutoffLayout is the minute precision layout accepted by the cutoff input
const CutoffLayout = "2006-01-02 15:04"

// Stats polling constants
const (
	StatsPollingInterval = 2 * time.Second
	StatsCallTimeout     = 500 * time.Millisecond
	MBToGB               = 1024.0
)
