package carousel

import "time"

// DefaultInterval is the ceiling on how long a single clip stays on screen
// before the carousel advances on its own.
const DefaultInterval = 10 * time.Second

// ClipSequence is the ordered list of media sources a carousel cycles through.
// An empty sequence leaves the controller idle.
type ClipSequence []string

// Advance reasons reported to a Recorder.
const (
	ReasonEnded = "ended"
	ReasonTimer = "timer"
	ReasonJump  = "jump"
)

// State is a point-in-time snapshot of a Controller.
type State struct {
	ActiveIndex int
	IsLoaded    bool
	IsPlaying   bool

	// Clip is the source at ActiveIndex, or "" while idle.
	Clip string

	// Idle is true when no clips are active (never activated, or activated
	// with an empty sequence).
	Idle bool

	// TimerArmed reports whether the cycling timer is pending.
	TimerArmed bool

	// AutoplayUnlocked mirrors the autoplay gate: true once the host has
	// forwarded the first user interaction.
	AutoplayUnlocked bool

	Deactivated bool
}
