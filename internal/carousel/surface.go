package carousel

// MediaSurface is the addressable video-rendering element a Controller drives.
// The host creates it and hands it to exactly one Controller.
type MediaSurface interface {
	// Load points the surface at a new source. Readiness is reported later
	// through the onReady subscription.
	Load(source string)

	// RequestPlay starts an asynchronous play attempt. onResult is called
	// exactly once with nil on success or the rejection error, and never
	// before RequestPlay has returned.
	RequestPlay(onResult func(error))

	// Paused reports whether the surface is currently not playing.
	Paused() bool

	SetMuted(muted bool)

	// Subscribe registers the ready (metadata available) and ended
	// (end of clip) listeners. The returned func removes them.
	Subscribe(onReady, onEnded func()) (unsubscribe func())
}

// Recorder receives carousel activity for metrics. It may be nil.
type Recorder interface {
	RecordAdvance(reason string)
	RecordPlayOutcome(outcome string)
}
