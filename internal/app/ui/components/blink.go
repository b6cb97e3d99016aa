package components

import (
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const (
	empty = "◯"
	full  = "◉"

	blinkFPS = UITicksPerSecond

	// Spring physics parameters
	blinkAngularFrequency = 8.0
	blinkDampingRatio     = 0.7

	// Heartbeat pattern per pulse: ◉ - ◯ ◉ --- ◯
	blinkBeat1Ticks    = 1
	blinkMicroGapTicks = 1
	blinkBeat2Ticks    = 1
	blinkRecoveryTicks = 3

	blinkFrameThreshold = 0.3

	blinkPositionFull  = 1.0
	blinkPositionEmpty = 0.0
)

// Blink is the live indicator: every Pulse plays one heartbeat, then it rests
type Blink struct {
	spring    harmonica.Spring
	position  float64
	velocity  float64
	target    float64
	active    bool
	tickCount int
	state     state
	pulses    int
}

type state int

const (
	idle     state = iota // Resting, empty
	beat1                 // First beat (full)
	microGap              // Micro-gap (empty)
	beat2                 // Second beat (full)
	recovery              // Recovery phase (empty, returns to idle)
)

// NewBlink creates a resting live indicator
func NewBlink() *Blink {
	return &Blink{
		spring:   harmonica.NewSpring(harmonica.FPS(blinkFPS), blinkAngularFrequency, blinkDampingRatio),
		position: blinkPositionEmpty,
		velocity: blinkPositionEmpty,
		target:   blinkPositionEmpty,
		state:    idle,
	}
}

// Pulse starts a heartbeat; pulses arriving mid-beat restart it
func (b *Blink) Pulse() {
	b.active = true
	b.state = beat1
	b.target = blinkPositionFull
	b.tickCount = 0
	b.pulses++
}

// Stop ends the animation and resets to empty state
func (b *Blink) Stop() {
	b.active = false
	b.target = blinkPositionEmpty
	b.position = blinkPositionEmpty
	b.velocity = blinkPositionEmpty
	b.tickCount = 0
	b.state = idle
}

// Update advances the animation (called on each UI tick)
func (b *Blink) Update() {
	if !b.active {
		return
	}

	b.tickCount++
	b.position, b.velocity = b.spring.Update(b.position, b.velocity, b.target)

	switch b.state {
	case beat1:
		if b.tickCount >= blinkBeat1Ticks {
			b.advance(microGap, blinkPositionEmpty)
		}
	case microGap:
		if b.tickCount >= blinkMicroGapTicks {
			b.advance(beat2, blinkPositionFull)
		}
	case beat2:
		if b.tickCount >= blinkBeat2Ticks {
			b.advance(recovery, blinkPositionEmpty)
		}
	case recovery:
		if b.tickCount >= blinkRecoveryTicks {
			b.advance(idle, blinkPositionEmpty)
		}
	case idle:
		if b.position < blinkFrameThreshold {
			b.active = false
		}
	}
}

func (b *Blink) advance(next state, target float64) {
	b.state = next
	b.target = target
	b.tickCount = 0
}

// Frame returns the current frame based on the spring position
func (b *Blink) Frame() string {
	if !b.active || b.position < blinkFrameThreshold {
		return empty
	}

	return full
}

// Render returns the styled frame
func (b *Blink) Render(style lipgloss.Style) string {
	return style.Render(b.Frame())
}

// IsActive returns whether a heartbeat is in progress
func (b *Blink) IsActive() bool {
	return b.active
}

// Pulses returns how many times the indicator was triggered
func (b *Blink) Pulses() int {
	return b.pulses
}
