package carousel

import (
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Options configures a Controller. Zero values select the real clock,
// DefaultInterval and a discarding logger.
type Options struct {
	Clock    clockwork.Clock
	Interval time.Duration
	Logger   *slog.Logger
	Recorder Recorder
}

// Controller owns index cycling and playback attempts for one ClipSequence
// bound to one MediaSurface.
//
// Every entry point takes the same mutex, so surface notifications, timer
// fires and host calls are applied one at a time in arrival order. At most one
// cycling timer is armed at any moment.
type Controller struct {
	surface  MediaSurface
	clock    clockwork.Clock
	interval time.Duration
	log      *slog.Logger
	rec      Recorder

	mu          sync.Mutex
	clips       ClipSequence
	index       int
	loaded      bool
	playing     bool
	unlocked    bool
	deactivated bool
	unsubscribe func()

	timer    clockwork.Timer
	timerGen uint64
	// loadGen identifies the current load so play results that resolve
	// after a newer load are not applied to it.
	loadGen uint64
}

// NewController returns an idle Controller for surface.
func NewController(surface MediaSurface, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		surface:  surface,
		clock:    opts.Clock,
		interval: opts.Interval,
		log:      opts.Logger,
		rec:      opts.Recorder,
	}
}

// Activate replaces the clip list and restarts playback from the first clip.
// An empty list leaves the controller idle without touching the surface.
func (c *Controller) Activate(clips ClipSequence) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.deactivated {
		return
	}

	c.stopTimerLocked()
	c.clips = slices.Clone(clips)
	c.index = 0
	c.loaded = false
	c.playing = false
	c.loadGen++

	if len(c.clips) == 0 {
		c.log.Debug("carousel idle, no clips")
		return
	}

	if c.unsubscribe == nil {
		c.unsubscribe = c.surface.Subscribe(c.OnSurfaceReady, c.OnSurfaceEnded)
	}
	c.loadLocked()
	c.log.Debug("carousel activated", slog.Int("clips", len(c.clips)))
}

// OnSurfaceReady handles the surface reporting usable metadata for the
// current clip: it attempts playback and arms the cycling timer if none is
// pending.
func (c *Controller) OnSurfaceReady() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inactiveLocked() {
		return
	}

	c.loaded = true
	c.attemptPlayLocked()
	if c.timer == nil {
		c.armTimerLocked()
	}
}

// OnSurfaceEnded advances to the next clip when the current one finishes.
func (c *Controller) OnSurfaceEnded() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inactiveLocked() {
		return
	}
	c.advanceLocked(ReasonEnded)
}

// OnTimerFire advances to the next clip. The internal timer calls it once
// the interval elapses; it behaves exactly like OnSurfaceEnded.
func (c *Controller) OnTimerFire() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inactiveLocked() {
		return
	}
	c.advanceLocked(ReasonTimer)
}

// JumpTo shows the clip at index and gives it a full interval. Indices
// outside the clip list are ignored.
func (c *Controller) JumpTo(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inactiveLocked() || index < 0 || index >= len(c.clips) {
		return
	}
	c.switchToLocked(index, ReasonJump)
}

// OnUserInteraction opens the autoplay gate. Only the first call has an
// effect: if the current clip is loaded but paused because an earlier attempt
// was blocked, playback is attempted once more.
func (c *Controller) OnUserInteraction() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unlocked {
		return
	}
	c.unlocked = true

	if c.inactiveLocked() {
		return
	}
	if c.loaded && c.surface.Paused() {
		c.log.Debug("retrying playback after user interaction", slog.String("clip", c.clips[c.index]))
		c.attemptPlayLocked()
	}
}

// Deactivate cancels the timer and releases the surface subscription. No
// callback changes state afterwards. Calling it again is a no-op.
func (c *Controller) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.deactivated {
		return
	}
	c.deactivated = true
	c.stopTimerLocked()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.log.Debug("carousel deactivated")
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		ActiveIndex:      c.index,
		IsLoaded:         c.loaded,
		IsPlaying:        c.playing,
		Idle:             len(c.clips) == 0,
		TimerArmed:       c.timer != nil,
		AutoplayUnlocked: c.unlocked,
		Deactivated:      c.deactivated,
	}
	if !st.Idle {
		st.Clip = c.clips[c.index]
	}
	return st
}

// Clips returns a copy of the active clip list.
func (c *Controller) Clips() ClipSequence {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.clips)
}

// inactiveLocked reports whether events must be dropped.
// Caller must hold c.mu.
func (c *Controller) inactiveLocked() bool {
	return c.deactivated || len(c.clips) == 0
}

// advanceLocked moves to (index+1) mod len.
// Caller must hold c.mu.
func (c *Controller) advanceLocked(reason string) {
	next := (c.index + 1) % len(c.clips)
	c.switchToLocked(next, reason)
}

// switchToLocked loads the clip at index and restarts the cycling clock.
// Caller must hold c.mu.
func (c *Controller) switchToLocked(index int, reason string) {
	c.index = index
	c.loadLocked()
	c.armTimerLocked()
	if c.rec != nil {
		c.rec.RecordAdvance(reason)
	}
	c.log.Debug("carousel switched",
		slog.String("reason", reason),
		slog.Int("index", index),
		slog.String("clip", c.clips[index]))
}

// loadLocked points the surface at the current clip.
// Caller must hold c.mu.
func (c *Controller) loadLocked() {
	c.loadGen++
	c.loaded = false
	c.playing = false
	c.surface.Load(c.clips[c.index])
}

// attemptPlayLocked forces the surface muted and issues a play request
// unless it is already playing.
// Caller must hold c.mu.
func (c *Controller) attemptPlayLocked() {
	if !c.surface.Paused() {
		return
	}
	c.surface.SetMuted(true)

	gen := c.loadGen
	clip := c.clips[c.index]
	c.surface.RequestPlay(func(err error) {
		c.onPlayResult(gen, clip, err)
	})
}

func (c *Controller) onPlayResult(gen uint64, clip string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	outcome := Classify(err)
	if c.rec != nil {
		c.rec.RecordPlayOutcome(outcome.String())
	}

	if c.deactivated || gen != c.loadGen {
		c.log.Debug("ignoring play result for superseded load",
			slog.String("clip", clip),
			slog.String("outcome", outcome.String()))
		return
	}

	switch outcome {
	case OutcomePlaying:
		c.playing = true
	case OutcomePolicyBlocked:
		// Expected until the first user gesture; OnUserInteraction retries.
		c.log.Debug("autoplay blocked, waiting for user interaction", slog.String("clip", clip))
	case OutcomeFormatUnsupported:
		c.log.Error("video format not supported", slog.String("clip", clip))
	case OutcomeSourceUnreadable:
		c.log.Error("video file cannot be read", slog.String("clip", clip))
	case OutcomeLoadAborted:
		c.log.Error("video playback was aborted", slog.String("clip", clip))
	default:
		c.log.Error("unknown playback error", slog.String("clip", clip), slog.String("error", err.Error()))
	}
}

// armTimerLocked replaces any pending timer with a fresh one.
// Caller must hold c.mu.
func (c *Controller) armTimerLocked() {
	c.stopTimerLocked()
	gen := c.timerGen
	c.timer = c.clock.AfterFunc(c.interval, func() {
		c.fire(gen)
	})
}

// stopTimerLocked cancels the pending timer. Bumping the generation also
// voids a callback that already started but has not taken the lock yet.
// Caller must hold c.mu.
func (c *Controller) stopTimerLocked() {
	c.timerGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.timerGen || c.inactiveLocked() {
		return
	}
	c.timer = nil
	c.advanceLocked(ReasonTimer)
}
